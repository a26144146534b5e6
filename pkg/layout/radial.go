package layout

import "math"

// Radial places the first node at cfg.Center and every other node on a ring
// whose index is its breadth-first distance from that node.
//
// The traversal follows edges from source to target only, so an ancestor of
// the center is not found unless opts.Undirected is set. Nodes that are never
// found keep their input position unless opts.Unreached is UnreachedRing.
//
// Level L uses radius L*cfg.RingSpacing with its nodes at even angles. A ring
// nominally holds cfg.RingSlots*L nodes; with opts.GrowRings a level with more
// nodes than that grows its radius in proportion so the arc between neighbors
// never shrinks below a full ring's.
func Radial(nodes []Node, edges []Edge, cfg Config, opts Options) Result {
	out := passthrough(nodes, edges)
	if len(out.Nodes) == 0 {
		return out
	}

	out.Nodes[0].Position = cfg.Center
	levels, seen := bfsLevels(out.Nodes, edges, opts.Undirected)

	if opts.Unreached == UnreachedRing {
		var rest []int
		for i := 1; i < len(out.Nodes); i++ {
			if !seen[i] {
				rest = append(rest, i)
			}
		}
		if len(rest) > 0 {
			levels = append(levels, rest)
		}
	}

	for l := 1; l < len(levels); l++ {
		ring := levels[l]
		r := ringRadius(l, len(ring), cfg, opts.GrowRings)
		for i, idx := range ring {
			theta := 2 * math.Pi * float64(i) / float64(len(ring))
			out.Nodes[idx].Position = onCircle(cfg.Center, r, theta)
		}
	}
	return out
}

// bfsLevels walks from nodes[0]. levels[0] is the center alone; levels[L]
// lists node indices first discovered at depth L, in discovery order. seen
// marks every discovered index.
func bfsLevels(nodes []Node, edges []Edge, undirected bool) (levels [][]int, seen []bool) {
	index := indexOf(nodes)
	adj := make([][]int, len(nodes))
	for _, e := range edges {
		s, ok1 := index[e.Source]
		t, ok2 := index[e.Target]
		if !ok1 || !ok2 {
			continue
		}
		adj[s] = append(adj[s], t)
		if undirected {
			adj[t] = append(adj[t], s)
		}
	}

	seen = make([]bool, len(nodes))
	seen[0] = true
	frontier := []int{0}
	levels = [][]int{frontier}
	for len(frontier) > 0 {
		var next []int
		for _, u := range frontier {
			for _, v := range adj[u] {
				if !seen[v] {
					seen[v] = true
					next = append(next, v)
				}
			}
		}
		if len(next) > 0 {
			levels = append(levels, next)
		}
		frontier = next
	}
	return levels, seen
}

// ringRadius is the radius of level l holding count nodes.
func ringRadius(l, count int, cfg Config, grow bool) float64 {
	r := float64(l) * cfg.RingSpacing
	if capacity := cfg.RingSlots * l; grow && capacity > 0 && count > capacity {
		r *= float64(count) / float64(capacity)
	}
	return r
}
