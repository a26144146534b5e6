package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"runtime"
	"time"

	"github.com/matzehuels/kintree/pkg/buildinfo"
	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/layout"
	"github.com/matzehuels/kintree/pkg/pipeline"
)

// contentTypes maps output formats to response content types.
var contentTypes = map[string]string{
	pipeline.FormatJSON: "application/json",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
}

// Request is the body of the layout and render endpoints.
type Request struct {
	Graph   graph.Graph      `json:"graph"`
	Options pipeline.Options `json:"options"`
}

// HealthResponse is returned by /healthz.
type HealthResponse struct {
	Status    string `json:"status"`
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// StrategiesResponse is returned by /v1/strategies.
type StrategiesResponse struct {
	Strategies []layout.Strategy `json:"strategies"`
	Formats    []string          `json:"formats"`
	Config     layout.Config     `json:"config"`
}

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody carries the error code and a user-facing message.
type ErrorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Version:   buildinfo.Version,
		Commit:    buildinfo.Commit,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) handleStrategies(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StrategiesResponse{
		Strategies: s.runner.Engine.Strategies(),
		Formats:    pipeline.FormatNames(),
		Config:     s.runner.Engine.Config(),
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		writeError(w, err)
		return
	}

	l, hit, err := s.runner.ComputeLayoutWithCacheInfo(r.Context(), req.Graph, req.Options)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("X-Cache", cacheStatus(hit))
	writeJSON(w, http.StatusOK, l)
}

// handleRender returns the raw artifact, so exactly one format may be asked
// for. No format means SVG.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := s.decode(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(req.Options.Formats) > 1 {
		writeError(w, errors.New(errors.ErrCodeInvalidFormat, "render takes one format, got %d", len(req.Options.Formats)))
		return
	}

	res, err := s.runner.Execute(r.Context(), req.Graph, req.Options)
	if err != nil {
		writeError(w, err)
		return
	}

	format := pipeline.FormatSVG
	if len(req.Options.Formats) == 1 {
		format = req.Options.Formats[0]
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Cache", cacheStatus(res.CacheInfo.LayoutHit && res.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(res.Artifacts[format]); err != nil {
		s.logger.Warn("write response", "error", err)
	}
}

// decode reads and validates a Request. Edges without an ID get one, as
// when a document is read from a file.
func (s *Server) decode(w http.ResponseWriter, r *http.Request) (Request, error) {
	var req Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case stderrors.As(err, &tooLarge):
			return Request{}, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", tooLarge.Limit)
		case stderrors.Is(err, io.EOF):
			return Request{}, errors.New(errors.ErrCodeInvalidInput, "request body is empty")
		}
		return Request{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request")
	}
	if err := req.Graph.Validate(); err != nil {
		return Request{}, err
	}
	req.Graph.FillEdgeIDs()
	return req, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errors.HTTPStatus(err), ErrorResponse{Error: ErrorBody{
		Code:    codeOf(err),
		Message: errors.UserMessage(err),
	}})
}

func codeOf(err error) errors.Code {
	if c := errors.GetCode(err); c != "" {
		return c
	}
	return errors.ErrCodeInternal
}
