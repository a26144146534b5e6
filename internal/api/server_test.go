package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/observability"
	"github.com/matzehuels/kintree/pkg/pipeline"
)

const familyBody = `{
  "graph": {
    "nodes": [
      {"id": "rose", "data": {"name": "Rose"}},
      {"id": "tom"},
      {"id": "ann"}
    ],
    "edges": [
      {"source": "rose", "target": "ann"},
      {"source": "tom", "target": "ann"}
    ]
  },
  "options": %s
}`

func body(opts string) string {
	return strings.Replace(familyBody, "%s", opts, 1)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	logger := log.NewWithOptions(io.Discard, log.Options{})
	runner := pipeline.NewRunner(fc, nil, nil, logger)
	srv := httptest.NewServer(New(runner, nil, Options{AllowedOrigin: "https://example.org"}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, path, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeError(t *testing.T, resp *http.Response) ErrorBody {
	t.Helper()
	var e ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&e); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return e.Error
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	var h HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil {
		t.Fatal(err)
	}
	if h.Status != "ok" || h.Version == "" {
		t.Errorf("health = %+v", h)
	}
}

func TestStrategies(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v1/strategies")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var s StrategiesResponse
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		t.Fatal(err)
	}
	want := []layout.Strategy{"circular", "grid", "hierarchical", "radial"}
	if len(s.Strategies) != len(want) {
		t.Fatalf("strategies = %v", s.Strategies)
	}
	for i := range want {
		if s.Strategies[i] != want[i] {
			t.Errorf("strategies[%d] = %s, want %s", i, s.Strategies[i], want[i])
		}
	}
	if s.Config.NodeWidth != layout.DefaultNodeWidth {
		t.Errorf("config node width = %g", s.Config.NodeWidth)
	}
	if len(s.Formats) != 5 {
		t.Errorf("formats = %v", s.Formats)
	}
}

func TestCORS(t *testing.T) {
	srv := newTestServer(t)
	req, _ := http.NewRequest(http.MethodOptions, srv.URL+"/v1/layout", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Errorf("preflight status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Origin"); got != "https://example.org" {
		t.Errorf("Allow-Origin = %q", got)
	}
}

func TestLayout(t *testing.T) {
	srv := newTestServer(t)

	resp := post(t, srv, "/v1/layout", body(`{"strategy": "hierarchical"}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if got := resp.Header.Get("X-Cache"); got != "miss" {
		t.Errorf("X-Cache = %q, want miss", got)
	}
	var l graph.Layout
	if err := json.NewDecoder(resp.Body).Decode(&l); err != nil {
		t.Fatal(err)
	}
	if l.Strategy != layout.StrategyHierarchical || len(l.Nodes) != 3 {
		t.Fatalf("layout = %+v", l)
	}
	if l.Ranks["ann"] != 1 || l.Ranks["rose"] != 0 {
		t.Errorf("ranks = %v", l.Ranks)
	}
	for _, e := range l.Edges {
		if e.ID == "" {
			t.Errorf("edge %s->%s has no ID", e.Source, e.Target)
		}
	}

	again := post(t, srv, "/v1/layout", body(`{"strategy": "hierarchical"}`))
	if got := again.Header.Get("X-Cache"); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}
}

func TestLayoutErrors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   errors.Code
	}{
		{"empty body", "", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"malformed", "{", http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown field", `{"graph": {}, "colour": "red"}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"duplicate node", `{"graph": {"nodes": [{"id": "a"}, {"id": "a"}]}}`, http.StatusBadRequest, errors.ErrCodeInvalidInput},
		{"unknown strategy", body(`{"strategy": "spiral"}`), http.StatusBadRequest, errors.ErrCodeInvalidStrategy},
		{"bad direction", body(`{"direction": "up"}`), http.StatusBadRequest, errors.ErrCodeInvalidDirection},
	}

	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := post(t, srv, "/v1/layout", tt.body)
			if resp.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.status)
			}
			if e := decodeError(t, resp); e.Code != tt.code {
				t.Errorf("code = %s, want %s (%s)", e.Code, tt.code, e.Message)
			}
		})
	}
}

func TestRenderDOT(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/render", body(`{"strategy": "circular", "formats": ["dot"]}`))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/vnd.graphviz") {
		t.Errorf("Content-Type = %q", ct)
	}
	data, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(data), "digraph G {") || !strings.Contains(string(data), `"rose" -> "ann"`) {
		t.Errorf("body:\n%s", data)
	}
}

func TestRenderRejectsSeveralFormats(t *testing.T) {
	srv := newTestServer(t)
	resp := post(t, srv, "/v1/render", body(`{"formats": ["dot", "json"]}`))
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if e := decodeError(t, resp); e.Code != errors.ErrCodeInvalidFormat {
		t.Errorf("code = %s", e.Code)
	}
}

func TestNotFound(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/v2/nothing")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", resp.StatusCode)
	}
	if e := decodeError(t, resp); e.Code != errors.ErrCodeNotFound {
		t.Errorf("code = %s", e.Code)
	}
}

type recordingHTTPHooks struct {
	observability.NoopHTTPHooks
	mu     sync.Mutex
	routes []string
	status []int
}

func (h *recordingHTTPHooks) OnResponse(_ context.Context, _, route string, status int, _ time.Duration) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.routes = append(h.routes, route)
	h.status = append(h.status, status)
}

func TestHTTPHooks(t *testing.T) {
	h := &recordingHTTPHooks{}
	observability.SetHTTPHooks(h)
	defer observability.Reset()

	srv := newTestServer(t)
	post(t, srv, "/v1/layout", body(`{}`))

	h.mu.Lock()
	defer h.mu.Unlock()
	if len(h.routes) != 1 || h.routes[0] != "/v1/layout" || h.status[0] != http.StatusOK {
		t.Errorf("hooks saw routes %v status %v", h.routes, h.status)
	}
}
