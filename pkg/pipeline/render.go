package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/observability"
	"github.com/matzehuels/kintree/pkg/render"
	"github.com/matzehuels/kintree/pkg/render/nodelink"
)

// RenderLayout generates output artifacts in the requested formats. It does
// no caching; see Runner.Render.
//
// DOT and SVG are produced at most once per call and shared by the formats
// derived from them.
func RenderLayout(ctx context.Context, l graph.Layout, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	rr := &renderer{layout: l, opts: opts}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		if _, done := artifacts[format]; done {
			continue
		}
		observability.Render().OnRenderStart(ctx, format)
		start := time.Now()
		data, err := rr.render(ctx, format)
		observability.Render().OnRenderComplete(ctx, format, len(data), time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

type renderer struct {
	layout graph.Layout
	opts   Options

	dot string
	svg []byte
}

func (r *renderer) render(ctx context.Context, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		return graph.MarshalLayout(r.layout)
	case FormatDOT:
		return []byte(r.toDOT()), nil
	case FormatSVG:
		return r.toSVG(ctx)
	case FormatPNG:
		svg, err := r.toSVG(ctx)
		if err != nil {
			return nil, err
		}
		return render.ToPNG(ctx, svg, r.opts.Scale)
	case FormatPDF:
		svg, err := r.toSVG(ctx)
		if err != nil {
			return nil, err
		}
		return render.ToPDF(ctx, svg)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
}

func (r *renderer) toDOT() string {
	if r.dot == "" {
		r.dot = nodelink.ToDOT(r.layout, nodelink.Options{Detailed: r.opts.Detailed})
	}
	return r.dot
}

func (r *renderer) toSVG(ctx context.Context) ([]byte, error) {
	if r.svg != nil {
		return r.svg, nil
	}
	svg, err := nodelink.RenderSVG(ctx, r.toDOT())
	if err != nil {
		return nil, err
	}
	r.svg = svg
	return svg, nil
}
