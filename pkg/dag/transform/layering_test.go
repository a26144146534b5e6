package transform

import (
	"testing"

	"github.com/matzehuels/kintree/pkg/dag"
)

func TestAssignLayers(t *testing.T) {
	tests := []struct {
		name      string
		ids       []string
		edges     [][2]string
		wantRows  map[string]int
		wantRanks int
	}{
		{
			name:      "empty",
			wantRows:  map[string]int{},
			wantRanks: 0,
		},
		{
			name:      "single",
			ids:       []string{"a"},
			wantRows:  map[string]int{"a": 0},
			wantRanks: 1,
		},
		{
			name:      "family",
			ids:       []string{"A", "B", "C", "D"},
			edges:     [][2]string{{"A", "B"}, {"A", "C"}, {"B", "D"}},
			wantRows:  map[string]int{"A": 0, "B": 1, "C": 1, "D": 2},
			wantRanks: 3,
		},
		{
			name:      "longest path wins",
			ids:       []string{"a", "b", "c"},
			edges:     [][2]string{{"a", "c"}, {"a", "b"}, {"b", "c"}},
			wantRows:  map[string]int{"a": 0, "b": 1, "c": 2},
			wantRanks: 3,
		},
		{
			name:      "disconnected",
			ids:       []string{"a", "b", "x"},
			edges:     [][2]string{{"a", "b"}},
			wantRows:  map[string]int{"a": 0, "b": 1, "x": 0},
			wantRanks: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := buildGraph(tt.ids, tt.edges)
			ranks := AssignLayers(g)
			if ranks != tt.wantRanks {
				t.Errorf("AssignLayers() = %d, want %d", ranks, tt.wantRanks)
			}
			for id, want := range tt.wantRows {
				n, _ := g.Node(id)
				if n.Row != want {
					t.Errorf("row(%s) = %d, want %d", id, n.Row, want)
				}
			}
		})
	}
}

func TestSubdivide(t *testing.T) {
	g := buildGraph([]string{"a", "b", "c", "d"}, [][2]string{{"a", "b"}, {"b", "c"}, {"c", "d"}, {"a", "d"}})
	AssignLayers(g)

	added := Subdivide(g)

	if added != 2 {
		t.Fatalf("Subdivide() added %d virtual nodes, want 2", added)
	}
	if err := g.ValidateLayered(); err != nil {
		t.Fatalf("ValidateLayered() = %v", err)
	}
	if g.HasEdge("a", "d") {
		t.Error("long edge a→d should have been replaced")
	}

	v1, ok := g.Node("a_v_1")
	if !ok {
		t.Fatal("missing virtual node a_v_1")
	}
	if !v1.IsVirtual() || v1.MasterID != "a" || v1.Row != 1 {
		t.Errorf("a_v_1 = %+v", *v1)
	}
	if !g.HasEdge("a_v_2", "d") {
		t.Error("chain should end with a_v_2→d")
	}
}

func TestSubdivideIDCollision(t *testing.T) {
	g := buildGraph([]string{"a", "a_v_1", "c"}, [][2]string{{"a", "a_v_1"}, {"a_v_1", "c"}, {"a", "c"}})
	AssignLayers(g)

	Subdivide(g)

	if _, ok := g.Node("a_v_1__1"); !ok {
		t.Errorf("expected suffixed virtual node, got %v", dag.NodeIDs(g.Nodes()))
	}
}
