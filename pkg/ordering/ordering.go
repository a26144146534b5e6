// Package ordering decides the left-to-right order of nodes within each rank
// of a layered graph so that edges cross as little as possible.
package ordering

import (
	"cmp"
	"slices"

	"github.com/matzehuels/kintree/pkg/dag"
)

// DefaultPasses is the number of sweeps used when Barycentric.Passes is zero.
const DefaultPasses = 24

// Orderer computes a horizontal order for every row of a layered graph.
// The returned map is keyed by row and lists node IDs left to right.
type Orderer interface {
	OrderRows(g *dag.DAG) map[int][]string
}

// Barycentric is the classic layer-sweep heuristic. Each pass re-sorts one
// row at a time by the mean position of its neighbors in the previous row,
// alternating downward and upward sweeps, and then refines the row with
// adjacent swaps. The best ordering seen is kept.
//
// The result only depends on the insertion order of g, never on map
// iteration, so identical graphs always get identical orderings.
type Barycentric struct {
	// Passes is the number of sweeps. Zero means DefaultPasses.
	Passes int
}

// OrderRows implements Orderer. g must be layered: every edge joins
// consecutive rows (see transform.Subdivide).
func (b Barycentric) OrderRows(g *dag.DAG) map[int][]string {
	orders := initialOrder(g)
	if len(orders) < 2 {
		return orders
	}

	passes := b.Passes
	if passes <= 0 {
		passes = DefaultPasses
	}

	rows := g.RowIDs()
	best := cloneOrders(orders)
	bestCrossings := dag.CountCrossings(g, orders)

	for pass := 0; pass < passes && bestCrossings > 0; pass++ {
		if pass%2 == 0 {
			for i := 1; i < len(rows); i++ {
				sortByBarycenter(g, orders, rows[i], rows[i-1], true)
			}
		} else {
			for i := len(rows) - 2; i >= 0; i-- {
				sortByBarycenter(g, orders, rows[i], rows[i+1], false)
			}
		}
		for _, r := range rows {
			transpose(g, orders, r)
		}

		if c := dag.CountCrossings(g, orders); c < bestCrossings {
			bestCrossings = c
			best = cloneOrders(orders)
		}
	}
	return best
}

// initialOrder seeds each row by a depth-first walk from the nodes in row
// order, so that children of the same parent start out next to each other.
func initialOrder(g *dag.DAG) map[int][]string {
	orders := make(map[int][]string, g.RowCount())
	visited := make(map[string]bool, g.NodeCount())

	var dfs func(id string)
	dfs = func(id string) {
		if visited[id] {
			return
		}
		visited[id] = true
		n, _ := g.Node(id)
		orders[n.Row] = append(orders[n.Row], id)
		for _, child := range g.Children(id) {
			dfs(child)
		}
	}

	for _, r := range g.RowIDs() {
		for _, n := range g.NodesInRow(r) {
			dfs(n.ID)
		}
	}
	return orders
}

// sortByBarycenter reorders row by the mean position of each node's
// neighbors in adj. Nodes without neighbors there keep their current index
// as their weight, which holds them roughly in place.
func sortByBarycenter(g *dag.DAG, orders map[int][]string, row, adj int, useParents bool) {
	adjPos := dag.PosMap(orders[adj])

	type weighted struct {
		id     string
		weight float64
	}
	current := orders[row]
	items := make([]weighted, len(current))
	for i, id := range current {
		neighbors := g.Children(id)
		if useParents {
			neighbors = g.Parents(id)
		}
		sum, count := 0, 0
		for _, nb := range neighbors {
			if p, ok := adjPos[nb]; ok {
				sum += p
				count++
			}
		}
		w := float64(i)
		if count > 0 {
			w = float64(sum) / float64(count)
		}
		items[i] = weighted{id: id, weight: w}
	}

	slices.SortStableFunc(items, func(a, b weighted) int { return cmp.Compare(a.weight, b.weight) })

	sorted := make([]string, len(items))
	for i, it := range items {
		sorted[i] = it.id
	}
	orders[row] = sorted
}

// transpose swaps adjacent nodes of row while doing so strictly reduces the
// crossings against both neighboring rows.
func transpose(g *dag.DAG, orders map[int][]string, row int) {
	order := orders[row]
	if len(order) < 2 {
		return
	}
	upper := dag.PosMap(orders[row-1])
	lower := dag.PosMap(orders[row+1])

	cost := func(left, right string) int {
		return dag.CountPairCrossings(g, left, right, upper, true) +
			dag.CountPairCrossings(g, left, right, lower, false)
	}

	for iter := 0; iter < len(order); iter++ {
		improved := false
		for i := 0; i < len(order)-1; i++ {
			v, w := order[i], order[i+1]
			if cost(w, v) < cost(v, w) {
				order[i], order[i+1] = w, v
				improved = true
			}
		}
		if !improved {
			return
		}
	}
}

func cloneOrders(orders map[int][]string) map[int][]string {
	out := make(map[int][]string, len(orders))
	for r, ids := range orders {
		out[r] = slices.Clone(ids)
	}
	return out
}
