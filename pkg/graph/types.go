package graph

import (
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/layout"
)

// =============================================================================
// Graph - Family Tree Document
// =============================================================================

// Graph is the canonical document for a family tree: people and the
// parent → child relationships between them. It is read from JSON or YAML
// files and API requests, and hashed for cache keys.
type Graph struct {
	Nodes []Node `json:"nodes" yaml:"nodes"`
	Edges []Edge `json:"edges" yaml:"edges"`
}

// Node is a person. Data carries whatever the editor stores about them
// (name, birth date, notes); the layout engine never reads it.
type Node struct {
	ID       string          `json:"id" yaml:"id"`
	Position layout.Position `json:"position" yaml:"position"`
	Data     map[string]any  `json:"data,omitempty" yaml:"data,omitempty"`
}

// Label returns Data["name"] when it is a non-empty string, otherwise the ID.
func (n Node) Label() string {
	if name, ok := n.Data["name"].(string); ok && name != "" {
		return name
	}
	return n.ID
}

// Edge is a directed relationship from Source (parent) to Target (child).
type Edge struct {
	ID     string `json:"id,omitempty" yaml:"id,omitempty"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
}

// =============================================================================
// Validation
// =============================================================================

// Validate checks the structural rules layouts rely on: node IDs are
// non-empty and unique, edges name both ends and edge IDs are unique.
// Edges pointing at unknown people are allowed; see [Graph.DanglingEdges].
func (g Graph) Validate() error {
	seen := make(map[string]struct{}, len(g.Nodes))
	for i, n := range g.Nodes {
		if n.ID == "" {
			return errors.New(errors.ErrCodeInvalidInput, "node %d: empty id", i)
		}
		if _, dup := seen[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = struct{}{}
	}

	edgeIDs := make(map[string]struct{}, len(g.Edges))
	for i, e := range g.Edges {
		if e.Source == "" || e.Target == "" {
			return errors.New(errors.ErrCodeInvalidInput, "edge %d: source and target are required", i)
		}
		if e.ID == "" {
			continue
		}
		if _, dup := edgeIDs[e.ID]; dup {
			return errors.New(errors.ErrCodeInvalidInput, "duplicate edge id %q", e.ID)
		}
		edgeIDs[e.ID] = struct{}{}
	}
	return nil
}

// DanglingEdges returns the edges whose source or target is not a node of g,
// in document order. Layouts ignore them.
func (g Graph) DanglingEdges() []Edge {
	ids := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		ids[n.ID] = struct{}{}
	}
	var out []Edge
	for _, e := range g.Edges {
		_, okS := ids[e.Source]
		_, okT := ids[e.Target]
		if !okS || !okT {
			out = append(out, e)
		}
	}
	return out
}

// edgeNamespace scopes the name-based UUIDs generated for edges.
var edgeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/matzehuels/kintree/edge"))

// EdgeID returns the ID assigned to the n-th (zero-based) ID-less edge from
// source to target. The same inputs always give the same ID.
func EdgeID(source, target string, n int) string {
	name := source + "\x1f" + target + "\x1f" + strconv.Itoa(n)
	return uuid.NewSHA1(edgeNamespace, []byte(name)).String()
}

// FillEdgeIDs gives every edge without an ID a deterministic one (see
// [EdgeID]) and returns how many were filled. Parallel edges get distinct IDs.
func (g *Graph) FillEdgeIDs() int {
	counts := make(map[[2]string]int)
	filled := 0
	for i := range g.Edges {
		e := &g.Edges[i]
		if e.ID != "" {
			continue
		}
		key := [2]string{e.Source, e.Target}
		e.ID = EdgeID(e.Source, e.Target, counts[key])
		counts[key]++
		filled++
	}
	return filled
}

// =============================================================================
// Graph ↔ layout Conversion
// =============================================================================

// ToLayout converts the document into layout input, preserving order.
func (g Graph) ToLayout() ([]layout.Node, []layout.Edge) {
	nodes := make([]layout.Node, len(g.Nodes))
	for i, n := range g.Nodes {
		nodes[i] = layout.Node{ID: n.ID, Position: n.Position, Data: n.Data}
	}
	edges := make([]layout.Edge, len(g.Edges))
	for i, e := range g.Edges {
		edges[i] = layout.Edge{ID: e.ID, Source: e.Source, Target: e.Target}
	}
	return nodes, edges
}

// FromResult builds a document from a layout result, so that a laid-out tree
// can be saved and re-read with its new positions.
func FromResult(res layout.Result) Graph {
	g := Graph{
		Nodes: make([]Node, len(res.Nodes)),
		Edges: make([]Edge, len(res.Edges)),
	}
	for i, n := range res.Nodes {
		g.Nodes[i] = Node{ID: n.ID, Position: n.Position, Data: n.Data}
	}
	for i, e := range res.Edges {
		g.Edges[i] = Edge{ID: e.ID, Source: e.Source, Target: e.Target}
	}
	return g
}
