package layout

import "math"

// Grid fills a near-square grid row by row in input order. Edges are ignored.
func Grid(nodes []Node, edges []Edge, cfg Config, _ Options) Result {
	out := passthrough(nodes, edges)
	cols, _ := GridShape(len(out.Nodes))
	if cols == 0 {
		return out
	}

	colSpacing := cfg.NodeWidth + cfg.NodeSep
	rowSpacing := cfg.NodeHeight + cfg.RankSep
	for i := range out.Nodes {
		row, col := i/cols, i%cols
		out.Nodes[i].Position = Position{
			X: cfg.GridOrigin.X + float64(col)*colSpacing,
			Y: cfg.GridOrigin.Y + float64(row)*rowSpacing,
		}
	}
	return out
}

// GridShape returns the column and row count Grid uses for n nodes:
// ceil(sqrt(n)) columns and as many rows as needed.
func GridShape(n int) (cols, rows int) {
	if n <= 0 {
		return 0, 0
	}
	cols = int(math.Ceil(math.Sqrt(float64(n))))
	rows = (n + cols - 1) / cols
	return cols, rows
}
