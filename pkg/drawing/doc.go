// Package drawing defines the serializable form of a placed structure.
//
// A [Drawing] is what renderers, caches and the HTTP API exchange: flat
// lists of nucleotides, helices, loops and unpaired runs with their
// coordinates, plus a nested [Motif] tree for display. It is produced from
// a [layout.Layout] with [Export] and can be written as JSON or YAML.
//
//	d := drawing.Export(l)
//	data, _ := drawing.Marshal(d)
//	d2, _ := drawing.Unmarshal(data)
//
// The format is designed for round-trip fidelity: marshal followed by
// unmarshal yields an identical Drawing.
package drawing
