package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/observability"
)

// =============================================================================
// Layout Generation
// =============================================================================

// GenerateLayout lays out g with the engine and wraps the result with the
// metadata renderers need. It does no caching; see Runner.ComputeLayout.
//
// Strategies the engine does not know return the graph's own positions, as
// the engine does. Callers that want an error validate the name first.
func GenerateLayout(ctx context.Context, e *layout.Engine, g graph.Graph, opts Options) graph.Layout {
	opts.SetLayoutDefaults()
	s := layout.Strategy(opts.Strategy)
	lo := opts.LayoutOptions()
	nodes, edges := g.ToLayout()

	observability.Layout().OnLayoutStart(ctx, opts.Strategy, len(nodes))
	start := time.Now()
	res := e.Layout(s, nodes, edges, lo)
	elapsed := time.Since(start)
	observability.Layout().OnLayoutComplete(ctx, opts.Strategy, len(nodes), elapsed, nil)

	opts.Logger.Debug("computed layout",
		"strategy", s,
		"nodes", len(nodes),
		"edges", len(edges),
		"duration", elapsed)

	return graph.NewLayout(s, lo, e.Config(), res)
}
