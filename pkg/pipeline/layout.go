package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/stemloop/pkg/drawing"
	"github.com/matzehuels/stemloop/pkg/layout"
	"github.com/matzehuels/stemloop/pkg/observability"
	"github.com/matzehuels/stemloop/pkg/structure"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout places tree and applies the requested moves, then flips.
// Options must have been through ValidateForLayout.
func GenerateLayout(ctx context.Context, tree *structure.Tree, opts Options) (*layout.Layout, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, tree.Name, len(tree.Nodes()))
	start := time.Now()

	l, err := generateLayout(tree, opts)

	warnings := 0
	if l != nil {
		warnings = len(l.Warnings)
	}
	hooks.OnLayoutComplete(ctx, tree.Name, warnings, time.Since(start), err)
	return l, err
}

func generateLayout(tree *structure.Tree, opts Options) (*layout.Layout, error) {
	l, err := layout.New(tree, *opts.Layout)
	if err != nil {
		return nil, err
	}
	for _, m := range opts.Moves {
		if err := l.Rearrange(m.Helix, m.Angle); err != nil {
			return nil, fmt.Errorf("move %s: %w", m, err)
		}
	}
	for _, id := range opts.Flips {
		if id == tree.Root.ID() {
			l.FlipAll(l.Baseline())
			continue
		}
		if err := l.Flip(id); err != nil {
			return nil, fmt.Errorf("flip %d: %w", id, err)
		}
	}
	for _, w := range l.Warnings {
		opts.Logger.Warn("layout", "warning", w.String())
	}
	return l, nil
}

// GenerateDrawing is GenerateLayout followed by drawing.Export.
func GenerateDrawing(ctx context.Context, tree *structure.Tree, opts Options) (drawing.Drawing, error) {
	l, err := GenerateLayout(ctx, tree, opts)
	if err != nil {
		return drawing.Drawing{}, err
	}
	return drawing.Export(l), nil
}
