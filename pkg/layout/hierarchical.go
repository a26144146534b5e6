package layout

import (
	"math"

	"github.com/matzehuels/kintree/pkg/dag"
	"github.com/matzehuels/kintree/pkg/dag/transform"
	"github.com/matzehuels/kintree/pkg/ordering"
)

// alignPasses is the number of sweeps that pull nodes toward the mean
// position of their neighbors in the adjacent rank.
const alignPasses = 8

// Hierarchical arranges nodes in ranks so that every edge points down (TB)
// or right (LR). It runs the layered pipeline on a graph built for this call
// only:
//
//  1. cycles are broken by reversing back edges
//  2. ranks are assigned by longest path from the sources
//  3. edges spanning several ranks are split with virtual nodes
//  4. nodes within a rank are ordered to reduce crossings
//  5. coordinates are assigned with at least NodeWidth+NodeSep between
//     neighbors and NodeHeight+RankSep between ranks (width and height swap
//     roles for LR)
//
// The computed point is the node's center; the returned Position is its
// top-left corner. The layout is shifted so the leftmost and topmost boxes
// touch 0, which puts a lone node at (0,0).
//
// Every node gets connector sides: top/bottom for TB and left/right for LR.
// Self loops, repeated edges and edges to unknown IDs do not affect the
// result. A node whose ID is empty keeps its position; a repeated ID shares
// the position of its first occurrence.
func Hierarchical(nodes []Node, edges []Edge, cfg Config, opts Options) Result {
	out := passthrough(nodes, edges)
	if len(out.Nodes) == 0 {
		return out
	}

	dir := opts.direction()
	g := rankedGraph(out.Nodes, edges)
	transform.Subdivide(g)
	orders := ordering.Barycentric{Passes: cfg.OrderingPasses}.OrderRows(g)
	centers := assignCoordinates(g, orders, cfg, dir)

	target, source := SideTop, SideBottom
	if dir == LeftRight {
		target, source = SideLeft, SideRight
	}
	for i := range out.Nodes {
		n := &out.Nodes[i]
		n.TargetSide, n.SourceSide = target, source
		if c, ok := centers[n.ID]; ok {
			n.Position = Position{X: c.X - cfg.NodeWidth/2, Y: c.Y - cfg.NodeHeight/2}
		}
	}
	return out
}

// Ranks returns the rank Hierarchical assigns to each node ID. Sources have
// rank 0.
func Ranks(nodes []Node, edges []Edge) map[string]int {
	g := rankedGraph(nodes, edges)
	ranks := make(map[string]int, g.NodeCount())
	for _, n := range g.Nodes() {
		ranks[n.ID] = n.Row
	}
	return ranks
}

// rankedGraph builds an acyclic graph from nodes and edges and assigns rows.
func rankedGraph(nodes []Node, edges []Edge) *dag.DAG {
	g := dag.New()
	for _, n := range nodes {
		// Empty and repeated IDs are rejected here and take no part.
		_ = g.AddNode(dag.Node{ID: n.ID})
	}
	for _, e := range edges {
		if e.Source == e.Target || g.HasEdge(e.Source, e.Target) {
			continue
		}
		// Dangling edges are rejected here and take no part.
		_ = g.AddEdge(dag.Edge{From: e.Source, To: e.Target})
	}
	transform.BreakCycles(g)
	transform.AssignLayers(g)
	return g
}

// assignCoordinates returns the center of every real node. u is the position
// along a rank (x for TB, y for LR); the rank index gives the other axis.
func assignCoordinates(g *dag.DAG, orders map[int][]string, cfg Config, dir Direction) map[string]Position {
	along, across := cfg.NodeWidth, cfg.NodeHeight
	if dir == LeftRight {
		along, across = cfg.NodeHeight, cfg.NodeWidth
	}
	sep := along + cfg.NodeSep
	rankStep := across + cfg.RankSep
	rows := g.RowIDs()

	u := make(map[string]float64, g.NodeCount())
	for _, r := range rows {
		for i, id := range orders[r] {
			u[id] = float64(i) * sep
		}
	}

	for pass := 0; pass < alignPasses; pass++ {
		if pass%2 == 0 {
			for i := 1; i < len(rows); i++ {
				alignRow(g, orders[rows[i]], u, sep, true)
			}
		} else {
			for i := len(rows) - 2; i >= 0; i-- {
				alignRow(g, orders[rows[i]], u, sep, false)
			}
		}
	}

	minU := math.Inf(1)
	for _, n := range g.Nodes() {
		if !n.IsVirtual() {
			minU = min(minU, u[n.ID])
		}
	}

	centers := make(map[string]Position, len(u))
	for _, n := range g.Nodes() {
		if n.IsVirtual() {
			continue
		}
		w := u[n.ID] - minU + along/2
		k := float64(n.Row)*rankStep + across/2
		if dir == LeftRight {
			centers[n.ID] = Position{X: k, Y: w}
		} else {
			centers[n.ID] = Position{X: w, Y: k}
		}
	}
	return centers
}

// alignRow moves each node of order toward the mean position of its parents
// (or children) while keeping the order and at least sep between neighbors.
// It packs once from the left and once from the right and takes the midpoint,
// which satisfies the separation because both packings do.
func alignRow(g *dag.DAG, order []string, u map[string]float64, sep float64, useParents bool) {
	n := len(order)
	if n == 0 {
		return
	}
	desired := make([]float64, n)
	for i, id := range order {
		neighbors := g.Children(id)
		if useParents {
			neighbors = g.Parents(id)
		}
		if len(neighbors) == 0 {
			desired[i] = u[id]
			continue
		}
		sum := 0.0
		for _, nb := range neighbors {
			sum += u[nb]
		}
		desired[i] = sum / float64(len(neighbors))
	}

	left := make([]float64, n)
	for i := range n {
		left[i] = desired[i]
		if i > 0 {
			left[i] = max(left[i], left[i-1]+sep)
		}
	}
	right := make([]float64, n)
	for i := n - 1; i >= 0; i-- {
		right[i] = desired[i]
		if i < n-1 {
			right[i] = min(right[i], right[i+1]-sep)
		}
	}
	for i, id := range order {
		u[id] = (left[i] + right[i]) / 2
	}
}
