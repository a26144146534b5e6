package ordering_test

import (
	"fmt"

	"github.com/matzehuels/kintree/pkg/dag"
	"github.com/matzehuels/kintree/pkg/ordering"
)

func ExampleBarycentric() {
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "mum", Row: 0})
	_ = g.AddNode(dag.Node{ID: "alice", Row: 1})
	_ = g.AddNode(dag.Node{ID: "bob", Row: 1})
	_ = g.AddNode(dag.Node{ID: "carol", Row: 2})
	_ = g.AddEdge(dag.Edge{From: "mum", To: "alice"})
	_ = g.AddEdge(dag.Edge{From: "mum", To: "bob"})
	_ = g.AddEdge(dag.Edge{From: "alice", To: "carol"})

	orders := ordering.Barycentric{Passes: 24}.OrderRows(g)

	fmt.Println("Row count:", len(orders))
	fmt.Println("Row 1:", orders[1])
	// Output:
	// Row count: 3
	// Row 1: [alice bob]
}

func ExampleBarycentric_crossingMinimization() {
	// Classic X pattern: a→y, b→x
	g := dag.New()
	_ = g.AddNode(dag.Node{ID: "a", Row: 0})
	_ = g.AddNode(dag.Node{ID: "b", Row: 0})
	_ = g.AddNode(dag.Node{ID: "x", Row: 1})
	_ = g.AddNode(dag.Node{ID: "y", Row: 1})
	_ = g.AddEdge(dag.Edge{From: "a", To: "y"})
	_ = g.AddEdge(dag.Edge{From: "b", To: "x"})

	fmt.Println("Initial crossings:", dag.CountLayerCrossings(g, []string{"a", "b"}, []string{"x", "y"}))

	orders := ordering.Barycentric{}.OrderRows(g)

	fmt.Println("After ordering:", dag.CountLayerCrossings(g, orders[0], orders[1]))
	// Output:
	// Initial crossings: 1
	// After ordering: 0
}
