// Package graph provides the document types for family trees and their
// layouts.
//
// This package defines the wire format used for files, API requests and
// responses, and cache entries. It sits at the boundary between external
// formats and the layout engine:
//
//   - [Graph], [Node], [Edge]: the family tree as the editor stores it
//   - [Layout]: a laid-out tree with bounds and, for hierarchical layouts, ranks
//   - pkg/layout: the engine the documents convert to and from
//
// # Graph Documents
//
// Graphs use a node-link format, in JSON or YAML:
//
//	{
//	  "nodes": [
//	    {"id": "ada", "position": {"x": 0, "y": 0}, "data": {"name": "Ada"}},
//	    {"id": "byron", "data": {"name": "Byron"}}
//	  ],
//	  "edges": [{"id": "e1", "source": "byron", "target": "ada"}]
//	}
//
// Node IDs must be unique and non-empty. Edge IDs are optional; missing ones
// are derived from the endpoints as name-based UUIDs, so re-reading a file
// yields the same IDs. Edges naming unknown people are kept and reported by
// [Graph.DanglingEdges].
//
// Common operations:
//
//	g, _ := graph.ReadGraphFile("family.yaml")   // File → Graph
//	nodes, edges := g.ToLayout()                 // Graph → engine input
//	graph.WriteGraphFile(graph.FromResult(res), "out.json")
//
// # Layout Documents
//
//	l := graph.NewLayout(strategy, opts, cfg, res)
//	data, _ := graph.MarshalLayout(l)
//	back, _ := graph.UnmarshalLayout(data)
//
// # Concurrency
//
// All functions are safe for concurrent reads but not concurrent writes.
package graph
