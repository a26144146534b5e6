package pipeline

import (
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/observability"
)

// memCache is an in-memory cache.Cache that counts its traffic.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

func quiet() *log.Logger { return log.NewWithOptions(io.Discard, log.Options{}) }

func family() graph.Graph {
	return graph.Graph{
		Nodes: []graph.Node{
			{ID: "rose", Data: map[string]any{"name": "Rose"}},
			{ID: "tom"},
			{ID: "ann"},
		},
		Edges: []graph.Edge{
			{ID: "e1", Source: "rose", Target: "ann"},
			{ID: "e2", Source: "tom", Target: "ann"},
		},
	}
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"dot", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"SVG", true}, // case-sensitive
		{"gif", true},
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidFormat) {
			t.Errorf("ValidateFormat(%q) code = %s", tt.format, errors.GetCode(err))
		}
	}
}

func TestValidateFormats(t *testing.T) {
	if err := ValidateFormats([]string{"svg", "png"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "invalid"}); err == nil {
		t.Error("Invalid format should fail")
	}
	// Empty slice is valid
	if err := ValidateFormats(nil); err != nil {
		t.Errorf("Empty formats should pass: %v", err)
	}
}

func TestFormatNames(t *testing.T) {
	got := strings.Join(FormatNames(), ",")
	if got != "dot,json,pdf,png,svg" {
		t.Errorf("FormatNames() = %s", got)
	}
}

func TestOptionsValidateForLayout(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForLayout(); err != nil {
		t.Fatalf("zero options should pass: %v", err)
	}
	if opts.Strategy != DefaultStrategy {
		t.Errorf("Strategy = %q, want %q", opts.Strategy, DefaultStrategy)
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discarding logger")
	}

	tests := []struct {
		name string
		opts Options
		code errors.Code
	}{
		{"direction", Options{Direction: "diagonal"}, errors.ErrCodeInvalidDirection},
		{"unreached", Options{Unreached: "drop"}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateForLayout()
			if !errors.Is(err, tt.code) {
				t.Errorf("ValidateForLayout() = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestOptionsValidateForRender(t *testing.T) {
	opts := Options{}
	if err := opts.ValidateForRender(); err != nil {
		t.Fatalf("zero options should pass: %v", err)
	}
	if len(opts.Formats) != 1 || opts.Formats[0] != FormatSVG {
		t.Errorf("Formats = %v, want [svg]", opts.Formats)
	}
	if opts.Scale != DefaultScale {
		t.Errorf("Scale = %g, want %g", opts.Scale, DefaultScale)
	}

	bad := Options{Scale: -1}
	if err := bad.ValidateForRender(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("negative scale: %v", err)
	}
	bad = Options{Formats: []string{"gif"}}
	if err := bad.ValidateForRender(); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("bad format: %v", err)
	}
}

func TestLayoutKeyOpts(t *testing.T) {
	tests := []struct {
		name string
		a, b Options
		same bool
	}{
		{"grid ignores direction", Options{Strategy: "grid"}, Options{Strategy: "grid", Direction: "LR"}, true},
		{"circular ignores radial options", Options{Strategy: "circular"}, Options{Strategy: "circular", Undirected: true, Unreached: "ring"}, true},
		{"hierarchical default direction", Options{Strategy: "hierarchical"}, Options{Strategy: "hierarchical", Direction: "tb"}, true},
		{"hierarchical direction", Options{Strategy: "hierarchical"}, Options{Strategy: "hierarchical", Direction: "LR"}, false},
		{"radial undirected", Options{Strategy: "radial"}, Options{Strategy: "radial", Undirected: true}, false},
		{"radial unreached", Options{Strategy: "radial"}, Options{Strategy: "radial", Unreached: "ring"}, false},
		{"radial grow rings", Options{Strategy: "radial"}, Options{Strategy: "radial", GrowRings: true}, false},
		{"grid ignores grow rings", Options{Strategy: "grid"}, Options{Strategy: "grid", GrowRings: true}, true},
		{"strategy", Options{Strategy: "grid"}, Options{Strategy: "circular"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka, kb := tt.a.LayoutKeyOpts("cfg"), tt.b.LayoutKeyOpts("cfg")
			if (ka == kb) != tt.same {
				t.Errorf("keys %+v and %+v: same = %v, want %v", ka, kb, ka == kb, tt.same)
			}
		})
	}
}

func TestArtifactKeyOpts(t *testing.T) {
	opts := Options{Detailed: true, Scale: 3}
	if k := opts.ArtifactKeyOpts(FormatJSON); k.Detailed || k.Scale != 0 {
		t.Errorf("json key should ignore render options: %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatSVG); !k.Detailed || k.Scale != 0 {
		t.Errorf("svg key = %+v", k)
	}
	if k := opts.ArtifactKeyOpts(FormatPNG); !k.Detailed || k.Scale != 3 {
		t.Errorf("png key = %+v", k)
	}
}

func TestRunnerComputeLayoutCaches(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil, quiet())
	g := family()

	first, hit, err := r.ComputeLayoutWithCacheInfo(ctx, g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("first call should miss")
	}
	if first.Strategy != layout.StrategyHierarchical {
		t.Errorf("Strategy = %s", first.Strategy)
	}

	second, hit, err := r.ComputeLayoutWithCacheInfo(ctx, g, Options{})
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second call should hit")
	}
	for i := range first.Nodes {
		if first.Nodes[i].ID != second.Nodes[i].ID || first.Nodes[i].Position != second.Nodes[i].Position {
			t.Errorf("cached node %d = %+v, want %+v", i, second.Nodes[i], first.Nodes[i])
		}
	}

	if _, hit, _ := r.ComputeLayoutWithCacheInfo(ctx, g, Options{Refresh: true}); hit {
		t.Error("refresh should bypass the cache")
	}
	if _, hit, _ := r.ComputeLayoutWithCacheInfo(ctx, g, Options{Direction: "LR"}); hit {
		t.Error("a different direction should miss")
	}

	cfg := layout.DefaultConfig()
	cfg.NodeSep = 80
	other := NewRunner(c, nil, layout.New(cfg), quiet())
	if _, hit, _ := other.ComputeLayoutWithCacheInfo(ctx, g, Options{}); hit {
		t.Error("a different config should miss")
	}
}

func TestRunnerUnknownStrategy(t *testing.T) {
	r := NewRunner(nil, nil, nil, quiet())
	_, err := r.ComputeLayout(context.Background(), family(), Options{Strategy: "spiral"})
	if !errors.Is(err, errors.ErrCodeInvalidStrategy) {
		t.Fatalf("err = %v, want INVALID_STRATEGY", err)
	}
	if !strings.Contains(err.Error(), "circular, grid, hierarchical, radial") {
		t.Errorf("error should list strategies: %v", err)
	}
}

func TestRunnerRegisteredStrategy(t *testing.T) {
	e := layout.New(layout.DefaultConfig())
	e.Register("diagonal", func(nodes []layout.Node, edges []layout.Edge, _ layout.Config, _ layout.Options) layout.Result {
		out := make([]layout.Node, len(nodes))
		for i, n := range nodes {
			n.Position = layout.Position{X: float64(i), Y: float64(i)}
			out[i] = n
		}
		return layout.Result{Nodes: out, Edges: append([]layout.Edge(nil), edges...)}
	})
	r := NewRunner(nil, nil, e, quiet())

	l, err := r.ComputeLayout(context.Background(), family(), Options{Strategy: "diagonal"})
	if err != nil {
		t.Fatal(err)
	}
	if got := l.Nodes[2].Position; got != (layout.Position{X: 2, Y: 2}) {
		t.Errorf("ann = %+v", got)
	}
}

func TestRunnerCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewRunner(nil, nil, nil, quiet())
	if _, err := r.ComputeLayout(ctx, family(), Options{}); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestComputeAll(t *testing.T) {
	r := NewRunner(newMemCache(), nil, nil, quiet())
	layouts, err := r.ComputeAll(context.Background(), family(), layout.Strategies(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(layouts) != 4 {
		t.Fatalf("got %d layouts, want 4", len(layouts))
	}
	for s, l := range layouts {
		if l.Strategy != s {
			t.Errorf("layouts[%s].Strategy = %s", s, l.Strategy)
		}
		if len(l.Nodes) != 3 || len(l.Edges) != 2 {
			t.Errorf("%s: %d nodes, %d edges", s, len(l.Nodes), len(l.Edges))
		}
	}
	if got := layouts[layout.StrategyHierarchical].Ranks["ann"]; got != 1 {
		t.Errorf("ann rank = %d, want 1", got)
	}
}

func TestComputeAllFails(t *testing.T) {
	r := NewRunner(nil, nil, nil, quiet())
	_, err := r.ComputeAll(context.Background(), family(), []layout.Strategy{"grid", "spiral"}, Options{})
	if !errors.Is(err, errors.ErrCodeInvalidStrategy) {
		t.Errorf("err = %v, want INVALID_STRATEGY", err)
	}
}

func TestRunnerRender(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRunner(c, nil, nil, quiet())
	l, err := r.ComputeLayout(ctx, family(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	setsAfterLayout := c.sets

	opts := Options{Formats: []string{FormatJSON, FormatDOT}}
	artifacts, hit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		t.Fatal(err)
	}
	if hit {
		t.Error("first render should miss")
	}
	if c.sets-setsAfterLayout != 2 {
		t.Errorf("cached %d artifacts, want 2", c.sets-setsAfterLayout)
	}

	back, err := graph.UnmarshalLayout(artifacts[FormatJSON])
	if err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if back.Strategy != layout.StrategyHierarchical || len(back.Nodes) != 3 {
		t.Errorf("json artifact = %+v", back)
	}

	dot := string(artifacts[FormatDOT])
	for _, want := range []string{"digraph G {", `"rose" [label="Rose"`, `"rose" -> "ann" [id="e1", tailport=s, headport=n];`} {
		if !strings.Contains(dot, want) {
			t.Errorf("dot artifact missing %q:\n%s", want, dot)
		}
	}

	again, hit, err := r.RenderWithCacheInfo(ctx, l, opts)
	if err != nil {
		t.Fatal(err)
	}
	if !hit {
		t.Error("second render should hit")
	}
	if string(again[FormatDOT]) != dot {
		t.Error("cached dot differs")
	}

	detailed := Options{Formats: []string{FormatDOT}, Detailed: true}
	if _, hit, _ := r.RenderWithCacheInfo(ctx, l, detailed); hit {
		t.Error("detailed labels should miss")
	}
}

func TestRenderLayoutUnsupported(t *testing.T) {
	_, err := RenderLayout(context.Background(), graph.Layout{Strategy: layout.StrategyGrid}, Options{Formats: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

func TestExecute(t *testing.T) {
	g := family()
	g.Edges = append(g.Edges, graph.Edge{ID: "e3", Source: "ann", Target: "ghost"})

	r := NewRunner(newMemCache(), nil, nil, quiet())
	res, err := r.Execute(context.Background(), g, Options{Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	if res.GraphHash != graph.Hash(g) {
		t.Error("GraphHash mismatch")
	}
	want := Stats{NodeCount: 3, EdgeCount: 3, DanglingEdges: 1, RankCount: 2}
	got := res.Stats
	got.LayoutTime, got.RenderTime = 0, 0
	if got != want {
		t.Errorf("Stats = %+v, want %+v", got, want)
	}
	if _, ok := res.Artifacts[FormatJSON]; !ok {
		t.Error("json artifact missing")
	}

	res, err = r.Execute(context.Background(), g, Options{Formats: []string{FormatJSON}})
	if err != nil {
		t.Fatal(err)
	}
	if !res.CacheInfo.LayoutHit || !res.CacheInfo.RenderHit {
		t.Errorf("CacheInfo = %+v, want both hits", res.CacheInfo)
	}
}

func TestExecuteInvalidOptions(t *testing.T) {
	r := NewRunner(nil, nil, nil, quiet())
	_, err := r.Execute(context.Background(), family(), Options{Formats: []string{"gif"}})
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}

type recordingHooks struct {
	observability.NoopLayoutHooks
	mu         sync.Mutex
	strategies []string
	nodes      []int
}

func (h *recordingHooks) OnLayoutComplete(_ context.Context, strategy string, n int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.strategies = append(h.strategies, strategy)
	h.nodes = append(h.nodes, n)
}

func TestLayoutHooks(t *testing.T) {
	h := &recordingHooks{}
	observability.SetLayoutHooks(h)
	defer observability.Reset()

	r := NewRunner(newMemCache(), nil, nil, quiet())
	for i := 0; i < 2; i++ {
		if _, err := r.ComputeLayout(context.Background(), family(), Options{Strategy: "radial"}); err != nil {
			t.Fatal(err)
		}
	}

	if len(h.strategies) != 1 {
		t.Fatalf("hook fired %d times, want 1 (second call is cached)", len(h.strategies))
	}
	if h.strategies[0] != "radial" || h.nodes[0] != 3 {
		t.Errorf("hook got (%s, %d)", h.strategies[0], h.nodes[0])
	}
}
