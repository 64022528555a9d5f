// Package structure turns a dot-bracket annotation into a typed tree of
// RNA secondary-structure motifs.
//
// # Overview
//
// Parsing happens in two steps. [MatchPairs] scans the dot-bracket string
// once with a stack and produces a [Pairs] array: for every position the
// index of its partner, or [NoPartner]. [Build] then classifies contiguous
// index ranges of that array into motifs:
//
//   - [Helix]: a maximal run of perfectly stacked base pairs
//   - [TerminalLoop]: the unpaired run closing a hairpin
//   - [Bulge]: unpaired nucleotides on exactly one strand between two helices
//   - [InternalLoop]: unpaired nucleotides on both strands between two helices
//   - [MultiLoop]: a loop from which two or more helices branch
//   - [Unpaired]: a maximal run of unpaired positions
//
// The tree is rooted at a synthetic [Root] whose segments are the exterior
// unpaired runs and helices.
//
//	tree, err := structure.Parse("hairpin", "GCAAGC", "((..))")
//	// Root -> Helix (0,5)(1,4) -> TerminalLoop -> Unpaired "AA"
//
// # Node Kinds
//
// The set of node types is closed: every type implements the unexported
// marker method of [Node]. Code that needs to handle every kind implements
// [Visitor]; adding a kind breaks every visitor at compile time. [Loop] and
// [Segment] narrow the set to what can follow a helix and what a loop is
// made of, respectively.
//
// Nodes are numbered in preorder ([Node.ID]) and keep a non-owning
// reference to their parent. The tree is immutable once built.
//
// # Errors
//
// [MatchPairs] reports [*UnbalancedBracketError]. [Build] validates its
// input first and reports [*MalformedStructureError] for asymmetric,
// self-paired, out-of-range or crossing pairs, so the classifier itself
// never sees a pseudoknot.
package structure
