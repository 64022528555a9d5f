package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/stemloop/pkg/io/vienna"
	"github.com/matzehuels/stemloop/pkg/observability"
	"github.com/matzehuels/stemloop/pkg/structure"
)

// Parse builds the structure tree for validated options.
func Parse(ctx context.Context, opts Options) (*structure.Tree, error) {
	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, opts.Name, len(opts.Sequence))
	start := time.Now()

	tree, err := structure.Parse(opts.Name, opts.Sequence, opts.Structure)

	nodes := 0
	if tree != nil {
		nodes = len(tree.Nodes())
	}
	hooks.OnParseComplete(ctx, opts.Name, nodes, time.Since(start), err)
	return tree, err
}

// readInput fills name, sequence and structure from the first Vienna record.
func (o *Options) readInput() error {
	recs, err := vienna.ParseString(o.Input)
	if err != nil {
		return err
	}
	r := recs[0]
	if o.Name == "" {
		o.Name = r.Name
	}
	o.Sequence, o.Structure = r.Sequence, r.Structure
	return nil
}
