// Package layout computes 2D positions for the people and relationships of a
// family tree.
//
// # Strategies
//
// Four strategies are built in, each a plain [Func]:
//
//   - [Hierarchical]: layered ranks, parents above (TB) or left of (LR) children
//   - [Circular]: every node on one circle, in input order
//   - [Grid]: a near-square grid filled row by row
//   - [Radial]: breadth-first rings around the first node
//
// A layout only moves nodes. The result always has the same nodes in the same
// order and the same edges as the input, an empty input gives an empty
// result, and the input slices are never modified. Edges that name unknown
// nodes are ignored. None of the functions can fail.
//
// # Engine
//
// An [Engine] binds a [Config] to a table of strategies:
//
//	eng := layout.New(layout.DefaultConfig())
//	res := eng.Layout(layout.StrategyRadial, nodes, edges, layout.Options{})
//
// An unknown strategy is a no-op. Surfaces that accept user input should call
// [ParseStrategy] first. New strategies are added with [Engine.Register].
//
// # Configuration
//
// Every pixel constant lives in [Config]: node size, separations, the shared
// center of the circular and radial layouts, ring spacing and grid origin.
// [ReadConfigFile] overlays a TOML file on [DefaultConfig]:
//
//	node_width = 200
//	rank_sep = 80
//
//	[center]
//	x = 500
//	y = 400
//
// # Concurrency
//
// Each call builds its own working graph, so layouts run safely in parallel.
// An Engine may be shared between goroutines.
package layout
