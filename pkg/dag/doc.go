// Package dag provides the directed graph used by kintree's hierarchical
// layout.
//
// # Overview
//
// The hierarchical layout arranges people into ranks (rows) so that parents
// sit above their children. This package holds the working graph for that
// computation: nodes carry a Row, edges are directed parent → child, and the
// graph keeps an index of the nodes in each row.
//
// Unlike a map-backed graph, every listing method ([DAG.Nodes], [DAG.Sources],
// [DAG.NodesInRow]) returns nodes in insertion order. Layouts are required to
// be deterministic, and insertion order is the tie-breaker every algorithm in
// kintree falls back on.
//
// # Basic Usage
//
//	g := dag.New()
//	g.AddNode(dag.Node{ID: "grandma"})
//	g.AddNode(dag.Node{ID: "mum"})
//	g.AddEdge(dag.Edge{From: "grandma", To: "mum"})
//
// # Node Kinds
//
//   - [NodeKindRegular]: a person supplied by the caller
//   - [NodeKindVirtual]: a placeholder splitting an edge that spans several
//     ranks, so that crossing reduction only ever compares adjacent rows
//
// # Edge Crossings
//
// [CountCrossings] and [CountLayerCrossings] use a Fenwick tree (binary
// indexed tree) to count inversions in O(E log V) time. [CountPairCrossings]
// supports local adjacent-swap refinement.
//
// # Concurrency
//
// DAG instances are not safe for concurrent use. The layout engine builds a
// fresh DAG for every call, so independent calls never share one.
//
// # Related Packages
//
// The [transform] subpackage breaks cycles, assigns ranks by longest path and
// subdivides long edges.
//
// [transform]: github.com/matzehuels/kintree/pkg/dag/transform
package dag
