package layout

import (
	"fmt"

	errs "github.com/matzehuels/stemloop/pkg/errors"
	"github.com/matzehuels/stemloop/pkg/structure"
)

// GeometryError reports a loop that cannot be placed: a degenerate closing
// chord, a chord longer than the loop's diameter, or more helices than the
// circle has room for.
type GeometryError struct {
	NodeID int // -1 when not tied to a node
	Kind   structure.Kind
	Chord  float64
	Radius float64
	Reason string
}

func (e *GeometryError) Error() string {
	if e.NodeID < 0 {
		return fmt.Sprintf("geometry: chord %.3f, radius %.3f: %s", e.Chord, e.Radius, e.Reason)
	}
	return fmt.Sprintf("geometry: %s %d (chord %.3f, radius %.3f): %s", e.Kind, e.NodeID, e.Chord, e.Radius, e.Reason)
}

// Code returns the error code for this error type.
func (e *GeometryError) Code() errs.Code { return errs.ErrCodeGeometry }

// Warning is a non-fatal adjustment made while laying out a node.
type Warning struct {
	NodeID  int    `json:"node_id"`
	Message string `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("node %d: %s", w.NodeID, w.Message)
}
