package graph_test

import (
	"fmt"
	"strings"

	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/layout"
)

func ExampleReadGraph() {
	doc := `
nodes:
  - id: grandma
    data: {name: Rose}
  - id: mum
  - id: me
edges:
  - {source: grandma, target: mum}
  - {source: mum, target: me}
  - {source: me, target: cousin}
`
	g, err := graph.ReadGraph(strings.NewReader(doc), graph.FormatYAML)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println("People:", len(g.Nodes))
	fmt.Println("First:", g.Nodes[0].Label())
	fmt.Println("Dangling:", len(g.DanglingEdges()))
	// Output:
	// People: 3
	// First: Rose
	// Dangling: 1
}

func ExampleNewLayout() {
	g := graph.Graph{
		Nodes: []graph.Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
		Edges: []graph.Edge{{ID: "ab", Source: "a", Target: "b"}, {ID: "bc", Source: "b", Target: "c"}},
	}
	cfg := layout.DefaultConfig()
	nodes, edges := g.ToLayout()
	res := layout.Hierarchical(nodes, edges, cfg, layout.Options{})

	l := graph.NewLayout(layout.StrategyHierarchical, layout.Options{}, cfg, res)
	fmt.Println("Ranks:", l.RankCount())
	fmt.Printf("Bounds: %.0fx%.0f\n", l.Bounds.Width, l.Bounds.Height)
	// Output:
	// Ranks: 3
	// Bounds: 172x308
}
