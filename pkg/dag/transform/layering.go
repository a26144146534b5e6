package transform

import "github.com/matzehuels/kintree/pkg/dag"

// AssignLayers assigns every node the minimal rank consistent with edge
// direction: sources get rank 0 and every other node gets one more than the
// deepest of its parents (longest path from a source). Existing rows are
// overwritten. It returns the number of ranks, 0 for an empty graph.
//
// The traversal is Kahn's algorithm seeded with the sources in insertion
// order. g must be acyclic; nodes on a cycle never reach in-degree zero and
// keep rank 0, so run [BreakCycles] first.
//
// Time complexity is O(V + E).
func AssignLayers(g *dag.DAG) int {
	nodes := g.Nodes()
	if len(nodes) == 0 {
		return 0
	}

	inDegree := make(map[string]int, len(nodes))
	rows := make(map[string]int, len(nodes))
	queue := make([]string, 0, len(nodes))

	for _, n := range nodes {
		degree := g.InDegree(n.ID)
		inDegree[n.ID] = degree
		rows[n.ID] = 0
		if degree == 0 {
			queue = append(queue, n.ID)
		}
	}

	maxRow := 0
	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]

		for _, child := range g.Children(curr) {
			if row := rows[curr] + 1; row > rows[child] {
				rows[child] = row
				maxRow = max(maxRow, row)
			}
			inDegree[child]--
			if inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	g.SetRows(rows)
	return maxRow + 1
}
