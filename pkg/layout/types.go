package layout

import (
	"math"
	"slices"
)

// Position is a point in the rendering coordinate space (pixels, y down).
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Side names the edge of a node box a connector attaches to.
type Side string

// Connector sides.
const (
	SideTop    Side = "top"
	SideBottom Side = "bottom"
	SideLeft   Side = "left"
	SideRight  Side = "right"
)

// Node is a person on the canvas. Layouts overwrite Position and, for the
// hierarchical strategy, the connector sides. ID and Data are never touched.
type Node struct {
	ID       string   `json:"id"`
	Position Position `json:"position"`

	// SourceSide is where outgoing connectors leave the node.
	SourceSide Side `json:"sourcePosition,omitempty"`
	// TargetSide is where incoming connectors enter the node.
	TargetSide Side `json:"targetPosition,omitempty"`

	// Data is an opaque payload (name, dates, notes) owned by the caller.
	Data map[string]any `json:"data,omitempty"`
}

// Edge is a directed relationship, Source above or before Target.
type Edge struct {
	ID     string `json:"id"`
	Source string `json:"source"`
	Target string `json:"target"`
}

// Result is the output of a layout: the input nodes in input order with new
// positions, and the input edges unchanged.
type Result struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// passthrough returns a Result holding copies of nodes and edges. Slices are
// never nil so that JSON encodes them as [].
func passthrough(nodes []Node, edges []Edge) Result {
	out := Result{
		Nodes: make([]Node, len(nodes)),
		Edges: make([]Edge, len(edges)),
	}
	copy(out.Nodes, nodes)
	copy(out.Edges, edges)
	return out
}

// Rect is an axis-aligned box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bounds returns the box enclosing every node, each node occupying
// cfg.NodeWidth × cfg.NodeHeight from its top-left Position. It returns the
// zero Rect for no nodes.
func Bounds(nodes []Node, cfg Config) Rect {
	if len(nodes) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		minX = min(minX, n.Position.X)
		minY = min(minY, n.Position.Y)
		maxX = max(maxX, n.Position.X+cfg.NodeWidth)
		maxY = max(maxY, n.Position.Y+cfg.NodeHeight)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// indexOf maps node IDs to their index in nodes. When IDs repeat, the first
// occurrence wins.
func indexOf(nodes []Node) map[string]int {
	m := make(map[string]int, len(nodes))
	for i, n := range nodes {
		if _, ok := m[n.ID]; !ok {
			m[n.ID] = i
		}
	}
	return m
}

// NodeIDs returns the IDs of nodes in order.
func NodeIDs(nodes []Node) []string {
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	return ids
}

// SameEdges reports whether two edge lists are identical, element by element.
func SameEdges(a, b []Edge) bool { return slices.Equal(a, b) }
