// Package pkg provides the core libraries for kintree, a family-tree layout
// engine.
//
// # Overview
//
// kintree places the people of a family tree on a canvas. Four strategies
// are built in: hierarchical (generations in ranks), circular, grid and
// radial (generations in rings around one person). The pkg directory is
// organized into these areas:
//
//  1. [layout] - The layout engine and its strategies
//  2. [dag], [dag/transform], [ordering] - Layered-graph machinery behind the
//     hierarchical strategy
//  3. [graph] - Family-tree documents (JSON, YAML) and serialized layouts
//  4. [render] - Node-link diagrams (DOT, SVG, PNG, PDF)
//  5. [pipeline] - Orchestration (layout → render) with caching
//
// # Architecture
//
// The typical data flow:
//
//	family.json / family.yaml
//	         ↓
//	    [graph] package (decode + validate)
//	         ↓
//	    [layout] package (place nodes)
//	         ↓
//	    [render] package (draw)
//	         ↓
//	    JSON/DOT/SVG/PNG/PDF output
//
// # Quick Start
//
//	g, _ := graph.ReadGraphFile("family.yaml")
//	nodes, edges := g.ToLayout()
//
//	e := layout.New(layout.DefaultConfig())
//	res := e.Layout(layout.StrategyHierarchical, nodes, edges, layout.Options{})
//
//	l := graph.NewLayout(layout.StrategyHierarchical, layout.Options{}, e.Config(), res)
//	svg, _ := nodelink.RenderSVG(ctx, nodelink.ToDOT(l, nodelink.Options{}))
//
// # Main Packages
//
// [layout] - Strategies, the dispatching [layout.Engine], pixel configuration
// and options. Layout functions never fail: malformed input is tolerated and
// an unknown strategy returns the input unchanged.
//
// [dag] - Directed graph with nodes organized into rows, plus crossing
// counting. [dag/transform] breaks cycles, assigns ranks and subdivides long
// edges. [ordering] reduces crossings with barycentric sweeps.
//
// [graph] - The family-tree document format and the serialized layout that
// the API returns and the cache stores.
//
// [render/nodelink] - Graphviz DOT with pinned positions, rendered to SVG.
// [render] converts SVG to PDF and PNG.
//
// ## Infrastructure
//
// [pipeline] - The layout → render pipeline used by the CLI and the API.
//
// [cache] - File, Redis and null caches plus cache key derivation.
//
// [observability] - Hook interfaces for metrics and tracing.
//
// [errors] - Coded errors shared by the CLI and the API.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/layout/...    # Specific package
//	go test -run Example ./...  # Examples only
//
// [layout]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/layout
// [dag]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/dag
// [dag/transform]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/dag/transform
// [ordering]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/ordering
// [graph]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/graph
// [render]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/render/nodelink
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/kintree/pkg/buildinfo
package pkg
