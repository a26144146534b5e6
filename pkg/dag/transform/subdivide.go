package transform

import (
	"fmt"

	"github.com/matzehuels/kintree/pkg/dag"
)

// Subdivide replaces every edge spanning more than one rank with a chain of
// single-rank edges through virtual nodes, and returns the number of virtual
// nodes added:
//
//	Before: grandma (row 0) → grandkid (row 2)
//	After:  grandma → grandma_v_1 → grandkid
//
// Virtual nodes carry [dag.NodeKindVirtual] and a MasterID naming the edge
// source. IDs have the form "source_v_row"; on collision a numeric suffix is
// appended ("grandma_v_1__2"). Edges are processed in insertion order, so the
// generated IDs are stable across calls.
//
// Rows must already be assigned (see [AssignLayers]) and every edge must point
// downward; edges within a rank or pointing upward are left untouched.
// After Subdivide, [dag.DAG.ValidateLayered] succeeds on an acyclic layered graph.
func Subdivide(g *dag.DAG) int {
	gen := newIDGen(g.Nodes())
	added := 0

	var toRemove []dag.Edge
	for _, e := range g.Edges() {
		src, srcOK := g.Node(e.From)
		dst, dstOK := g.Node(e.To)
		if !srcOK || !dstOK || dst.Row <= src.Row+1 {
			continue
		}

		toRemove = append(toRemove, e)
		prevID := src.ID
		for row := src.Row + 1; row < dst.Row; row++ {
			prevID = addVirtual(g, gen, prevID, src.ID, row)
			added++
		}
		if err := g.AddEdge(dag.Edge{From: prevID, To: dst.ID}); err != nil {
			panic(err)
		}
	}

	for _, e := range toRemove {
		g.RemoveEdge(e.From, e.To)
	}
	return added
}

func addVirtual(g *dag.DAG, gen *idGen, from, master string, row int) string {
	id := gen.next(master, row)
	if err := g.AddNode(dag.Node{
		ID:       id,
		Row:      row,
		Kind:     dag.NodeKindVirtual,
		MasterID: master,
	}); err != nil {
		panic(err)
	}
	if err := g.AddEdge(dag.Edge{From: from, To: id}); err != nil {
		panic(err)
	}
	return id
}

type idGen struct {
	used map[string]struct{}
}

func newIDGen(nodes []*dag.Node) *idGen {
	m := make(map[string]struct{}, len(nodes)*2)
	for _, n := range nodes {
		m[n.ID] = struct{}{}
	}
	return &idGen{used: m}
}

func (gen *idGen) next(base string, row int) string {
	prefix := fmt.Sprintf("%s_v_%d", base, row)
	id := prefix
	for i := 1; ; i++ {
		if _, exists := gen.used[id]; !exists {
			gen.used[id] = struct{}{}
			return id
		}
		id = fmt.Sprintf("%s__%d", prefix, i)
	}
}
