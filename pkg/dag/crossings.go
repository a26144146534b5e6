package dag

import (
	"maps"
	"slices"
)

// CountCrossings returns the total number of edge crossings for the given row
// orderings, summed over each pair of consecutive rows. Rows missing from
// orders are treated as empty.
func CountCrossings(g *DAG, orders map[int][]string) int {
	rows := slices.Sorted(maps.Keys(orders))
	crossings := 0
	for i := 0; i < len(rows)-1; i++ {
		r := rows[i]
		crossings += CountLayerCrossings(g, orders[r], orders[r+1])
	}
	return crossings
}

// CountLayerCrossings counts edge crossings between two adjacent rows using a
// Fenwick tree in O(E log V).
//
// Two edges (u1,v1) and (u2,v2) cross if and only if:
//
//	pos(u1) < pos(u2) AND pos(v1) > pos(v2)
//
// which is the number of inversions in the sequence of target positions when
// edges are sorted by source position.
func CountLayerCrossings(g *DAG, upper, lower []string) int {
	if len(upper) == 0 || len(lower) == 0 {
		return 0
	}

	lowerPos := PosMap(lower)

	type edge struct{ upper, lower int }
	edges := make([]edge, 0, len(upper)*2)
	for i, nodeID := range upper {
		for _, child := range g.Children(nodeID) {
			if pos, ok := lowerPos[child]; ok {
				edges = append(edges, edge{i, pos})
			}
		}
	}
	if len(edges) < 2 {
		return 0
	}

	slices.SortFunc(edges, func(a, b edge) int {
		if a.upper != b.upper {
			return a.upper - b.upper
		}
		return a.lower - b.lower
	})

	fenwick := make([]int, len(lower)+1)
	crossings, total := 0, 0
	for _, e := range edges {
		lessOrEqual := 0
		for q := e.lower + 1; q > 0; q -= q & (-q) {
			lessOrEqual += fenwick[q]
		}
		crossings += total - lessOrEqual

		total++
		for idx := e.lower + 1; idx < len(fenwick); idx += idx & (-idx) {
			fenwick[idx]++
		}
	}
	return crossings
}

// CountPairCrossings counts the crossings between the edges of two nodes in
// the same row, left before right, against an adjacent row whose positions are
// given by adjPos. With useParents the row above is considered, otherwise the
// row below. Neighbors missing from adjPos are ignored.
//
// Comparing CountPairCrossings(l, r) with CountPairCrossings(r, l) tells
// whether swapping two adjacent nodes reduces crossings.
func CountPairCrossings(g *DAG, left, right string, adjPos map[string]int, useParents bool) int {
	var lnbr, rnbr []string
	if useParents {
		lnbr = g.Parents(left)
		rnbr = g.Parents(right)
	} else {
		lnbr = g.Children(left)
		rnbr = g.Children(right)
	}

	crossings := 0
	for _, ln := range lnbr {
		lp, ok := adjPos[ln]
		if !ok {
			continue
		}
		for _, rn := range rnbr {
			if rp, ok := adjPos[rn]; ok && lp > rp {
				crossings++
			}
		}
	}
	return crossings
}
