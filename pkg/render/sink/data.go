package sink

import (
	"github.com/matzehuels/stemloop/pkg/drawing"
)

// RenderJSON emits the drawing document as indented JSON.
func RenderJSON(d drawing.Drawing) ([]byte, error) {
	return drawing.Marshal(d)
}

// RenderYAML emits the drawing document as YAML.
func RenderYAML(d drawing.Drawing) ([]byte, error) {
	return drawing.MarshalYAML(d)
}
