package transform

import "github.com/matzehuels/kintree/pkg/dag"

// BreakCycles makes g acyclic by reversing every back edge found by a
// depth-first search, and returns the edges that were reversed (in their
// original orientation).
//
// The search starts from the sources in insertion order and then visits any
// node still unvisited, so the result depends only on insertion order.
// Reversing rather than deleting keeps the relationship between the two
// nodes, so they still end up on different ranks. A self loop cannot be
// reversed and is removed instead. If the reversed edge already exists, the
// back edge is simply removed.
//
// BreakCycles panics if g is nil.
func BreakCycles(g *dag.DAG) []dag.Edge {
	const (
		white = iota
		gray
		black
	)

	color := make(map[string]int, g.NodeCount())
	var backEdges []dag.Edge

	var dfs func(node string)
	dfs = func(node string) {
		color[node] = gray
		for _, child := range g.Children(node) {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				backEdges = append(backEdges, dag.Edge{From: node, To: child})
			}
		}
		color[node] = black
	}

	for _, n := range g.Sources() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}
	for _, n := range g.Nodes() {
		if color[n.ID] == white {
			dfs(n.ID)
		}
	}

	for _, e := range backEdges {
		g.RemoveEdge(e.From, e.To)
		if e.From == e.To || g.HasEdge(e.To, e.From) {
			continue
		}
		if err := g.AddEdge(dag.Edge{From: e.To, To: e.From}); err != nil {
			panic(err)
		}
	}
	return backEdges
}
