package layout

import "math"

// Circular spaces the nodes evenly on one circle around cfg.Center, in input
// order, starting at angle 0 and turning clockwise on screen. Edges are
// ignored.
func Circular(nodes []Node, edges []Edge, cfg Config, _ Options) Result {
	out := passthrough(nodes, edges)
	n := len(out.Nodes)
	if n == 0 {
		return out
	}

	r := CircleRadius(n, cfg)
	for i := range out.Nodes {
		theta := 2 * math.Pi * float64(i) / float64(n)
		out.Nodes[i].Position = onCircle(cfg.Center, r, theta)
	}
	return out
}

// CircleRadius is the radius Circular uses for n nodes.
func CircleRadius(n int, cfg Config) float64 {
	return math.Max(cfg.CircleMinRadius, float64(n)*cfg.CircleNodeSpacing)
}

func onCircle(c Position, r, theta float64) Position {
	return Position{X: c.X + r*math.Cos(theta), Y: c.Y + r*math.Sin(theta)}
}
