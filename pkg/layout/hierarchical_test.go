package layout

import (
	"fmt"
	"math"
	"testing"
)

func TestHierarchicalExampleRanks(t *testing.T) {
	nodes := people("A", "B", "C", "D")
	edges := rels([2]string{"A", "B"}, [2]string{"A", "C"}, [2]string{"B", "D"})

	ranks := Ranks(nodes, edges)
	if !(ranks["A"] < ranks["B"] && ranks["B"] == ranks["C"] && ranks["C"] < ranks["D"]) {
		t.Errorf("ranks = %v, want A < B = C < D", ranks)
	}

	pos := byID(Hierarchical(nodes, edges, DefaultConfig(), Options{Direction: TopBottom}))
	if !(pos["A"].Y < pos["B"].Y && pos["A"].Y < pos["C"].Y) {
		t.Errorf("A.Y = %g not above B.Y = %g, C.Y = %g", pos["A"].Y, pos["B"].Y, pos["C"].Y)
	}
	if pos["B"].Y != pos["C"].Y {
		t.Errorf("B.Y = %g, C.Y = %g, want equal", pos["B"].Y, pos["C"].Y)
	}
	if !(pos["B"].Y < pos["D"].Y) {
		t.Errorf("B.Y = %g not above D.Y = %g", pos["B"].Y, pos["D"].Y)
	}
}

func TestHierarchicalRankConsistency(t *testing.T) {
	ids := make([]string, 30)
	for i := range ids {
		ids[i] = fmt.Sprintf("p%02d", i)
	}
	var pairs [][2]string
	for i := range ids {
		for _, j := range []int{(i*7 + 3) % 30, (i*11 + 5) % 30} {
			if j > i {
				pairs = append(pairs, [2]string{ids[i], ids[j]})
			}
		}
	}
	nodes, edges := people(ids...), rels(pairs...)
	cfg := DefaultConfig()

	for _, dir := range []Direction{TopBottom, LeftRight} {
		t.Run(string(dir), func(t *testing.T) {
			pos := byID(Hierarchical(nodes, edges, cfg, Options{Direction: dir}))
			for _, e := range edges {
				s, d := pos[e.Source], pos[e.Target]
				rankS, rankD := s.Y, d.Y
				if dir == LeftRight {
					rankS, rankD = s.X, d.X
				}
				if rankD <= rankS {
					t.Errorf("%s -> %s: target rank coordinate %g not after source %g", e.Source, e.Target, rankD, rankS)
				}
			}
		})
	}
}

func TestHierarchicalSeparation(t *testing.T) {
	nodes, edges := family()
	cfg := DefaultConfig()

	tests := []struct {
		dir      Direction
		sep, gap float64
	}{
		{TopBottom, cfg.NodeWidth + cfg.NodeSep, cfg.NodeHeight + cfg.RankSep},
		{LeftRight, cfg.NodeHeight + cfg.NodeSep, cfg.NodeWidth + cfg.RankSep},
	}
	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			res := Hierarchical(nodes, edges, cfg, Options{Direction: tt.dir})
			for i, a := range res.Nodes {
				for _, b := range res.Nodes[i+1:] {
					alongA, rankA := a.Position.X, a.Position.Y
					alongB, rankB := b.Position.X, b.Position.Y
					if tt.dir == LeftRight {
						alongA, rankA = a.Position.Y, a.Position.X
						alongB, rankB = b.Position.Y, b.Position.X
					}
					if near(rankA, rankB) {
						if d := math.Abs(alongA - alongB); d < tt.sep-eps {
							t.Errorf("%s and %s share a rank %g apart, want >= %g", a.ID, b.ID, d, tt.sep)
						}
						continue
					}
					steps := math.Abs(rankA-rankB) / tt.gap
					if !near(steps, math.Round(steps)) {
						t.Errorf("%s and %s: rank distance %g is not a multiple of %g", a.ID, b.ID, math.Abs(rankA-rankB), tt.gap)
					}
				}
			}
		})
	}
}

func TestHierarchicalSides(t *testing.T) {
	nodes := people("a", "b")
	edges := rels([2]string{"a", "b"})
	tests := []struct {
		dir            Direction
		target, source Side
	}{
		{"", SideTop, SideBottom},
		{TopBottom, SideTop, SideBottom},
		{LeftRight, SideLeft, SideRight},
	}
	for _, tt := range tests {
		t.Run(string(tt.dir), func(t *testing.T) {
			for _, n := range Hierarchical(nodes, edges, DefaultConfig(), Options{Direction: tt.dir}).Nodes {
				if n.TargetSide != tt.target || n.SourceSide != tt.source {
					t.Errorf("%s sides = %s/%s, want %s/%s", n.ID, n.TargetSide, n.SourceSide, tt.target, tt.source)
				}
			}
		})
	}
}

func TestHierarchicalSingleNode(t *testing.T) {
	for _, dir := range []Direction{TopBottom, LeftRight} {
		res := Hierarchical(people("solo"), nil, DefaultConfig(), Options{Direction: dir})
		if got := res.Nodes[0].Position; got != (Position{}) {
			t.Errorf("%s: solo at %v, want (0,0)", dir, got)
		}
	}
}

func TestHierarchicalTopLeftAtOrigin(t *testing.T) {
	nodes, edges := family()
	cfg := DefaultConfig()
	b := Bounds(Hierarchical(nodes, edges, cfg, Options{}).Nodes, cfg)
	if !near(b.X, 0) || !near(b.Y, 0) {
		t.Errorf("bounds start at %g,%g, want 0,0", b.X, b.Y)
	}
}

func TestHierarchicalParentAboveChildLR(t *testing.T) {
	cfg := DefaultConfig()
	pos := byID(Hierarchical(people("a", "b"), rels([2]string{"a", "b"}), cfg, Options{Direction: LeftRight}))
	if want := cfg.NodeWidth + cfg.RankSep; !near(pos["b"].X-pos["a"].X, want) {
		t.Errorf("b.X - a.X = %g, want %g", pos["b"].X-pos["a"].X, want)
	}
	if !near(pos["a"].Y, pos["b"].Y) {
		t.Errorf("a.Y = %g, b.Y = %g, want aligned", pos["a"].Y, pos["b"].Y)
	}
}

func TestHierarchicalCycle(t *testing.T) {
	nodes := people("a", "b", "c")
	edges := rels([2]string{"a", "b"}, [2]string{"b", "c"}, [2]string{"c", "a"})

	ranks := Ranks(nodes, edges)
	seen := map[int]bool{}
	for _, r := range ranks {
		seen[r] = true
	}
	if len(seen) != 3 {
		t.Errorf("ranks = %v, want three distinct ranks", ranks)
	}

	res := Hierarchical(nodes, edges, DefaultConfig(), Options{})
	if len(res.Nodes) != 3 {
		t.Fatalf("len(Nodes) = %d", len(res.Nodes))
	}
}

func TestHierarchicalIgnoresNoise(t *testing.T) {
	cfg := DefaultConfig()
	nodes := people("a", "b", "c")
	clean := rels([2]string{"a", "b"}, [2]string{"a", "c"})
	noisy := rels(
		[2]string{"a", "b"}, [2]string{"a", "c"},
		[2]string{"a", "b"},
		[2]string{"c", "c"},
		[2]string{"b", "stranger"},
		[2]string{"", "a"},
	)

	want := byID(Hierarchical(nodes, clean, cfg, Options{}))
	got := byID(Hierarchical(nodes, noisy, cfg, Options{}))
	for id, p := range want {
		if got[id] != p {
			t.Errorf("%s = %v with noise, want %v", id, got[id], p)
		}
	}
}

func TestHierarchicalNoLeakBetweenCalls(t *testing.T) {
	cfg := DefaultConfig()
	small := people("x", "y")
	smallEdges := rels([2]string{"x", "y"})
	want := Hierarchical(small, smallEdges, cfg, Options{})

	big, bigEdges := family()
	Hierarchical(big, bigEdges, cfg, Options{})

	got := Hierarchical(small, smallEdges, cfg, Options{})
	for i := range want.Nodes {
		if got.Nodes[i].Position != want.Nodes[i].Position {
			t.Errorf("%s = %v after another layout, want %v", got.Nodes[i].ID, got.Nodes[i].Position, want.Nodes[i].Position)
		}
	}
}

func TestHierarchicalOddIDs(t *testing.T) {
	nodes := []Node{
		{ID: "a"},
		{ID: "", Position: Position{X: 7, Y: 8}},
		{ID: "a", Position: Position{X: 9, Y: 9}},
	}
	res := Hierarchical(nodes, nil, DefaultConfig(), Options{})
	if got := res.Nodes[1].Position; got != (Position{X: 7, Y: 8}) {
		t.Errorf("empty ID moved to %v", got)
	}
	if res.Nodes[2].Position != res.Nodes[0].Position {
		t.Errorf("repeated ID at %v, want %v", res.Nodes[2].Position, res.Nodes[0].Position)
	}
}
