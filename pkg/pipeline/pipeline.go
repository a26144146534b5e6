// Package pipeline provides the layout → render pipeline shared by the CLI
// and the API server.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Layout: place every person of a family tree with one of the layout
//     strategies
//  2. Render: turn the layout into artifacts (JSON, DOT, SVG, PNG, PDF)
//
// Both stages are cached. A layout is keyed by the graph content, the
// strategy options and the layout configuration; an artifact by the layout
// content and the render options.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, nil, logger)
//	result, err := runner.Execute(ctx, g, pipeline.Options{
//	    Strategy: "hierarchical",
//	    Formats:  []string{"svg"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	l, err := runner.ComputeLayout(ctx, g, opts)
//	artifacts, err := runner.Render(ctx, l, opts)
//
// Compute several strategies at once:
//
//	layouts, err := runner.ComputeAll(ctx, g, layout.Strategies(), opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kintree/pkg/cache"
	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/graph"
	"github.com/matzehuels/kintree/pkg/layout"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultStrategy is the layout strategy used when none is named.
	DefaultStrategy = string(layout.StrategyHierarchical)

	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0
)

// Format constants for output formats.
const (
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON: true,
	FormatDOT:  true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
}

// FormatNames returns the supported formats, sorted.
func FormatNames() []string {
	names := make([]string, 0, len(ValidFormats))
	for f := range ValidFormats {
		names = append(names, f)
	}
	slices.Sort(names)
	return names
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all per-request choices for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Strategy   string `json:"strategy,omitempty"`
	Direction  string `json:"direction,omitempty"`
	Undirected bool   `json:"undirected,omitempty"`
	Unreached  string `json:"unreached,omitempty"`
	GrowRings  bool   `json:"grow_rings,omitempty"` // Widen overfull radial rings
	Refresh    bool   `json:"refresh,omitempty"`    // Recompute even on a cache hit

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Show every data field in node labels
	Scale    float64  `json:"scale,omitempty"`    // PNG scale factor

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed layout.
	Layout graph.Layout

	// GraphHash is the content hash of the input graph.
	GraphHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount     int
	EdgeCount     int
	DanglingEdges int
	RankCount     int // Hierarchical layouts only
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout sets defaults and checks the layout options. Whether the
// strategy exists is decided by the Runner's engine, which may carry
// registered strategies.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if _, err := layout.ParseDirection(o.Direction); err != nil {
		return err
	}
	if _, err := layout.ParseUnreached(o.Unreached); err != nil {
		return err
	}
	return nil
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets defaults and checks the render options.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// Validate checks the options for a full layout and render run.
func (o *Options) Validate() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	return o.ValidateForRender()
}

// LayoutOptions converts the options to layout engine options. Values that
// do not parse fall back to the defaults; call ValidateForLayout first.
func (o *Options) LayoutOptions() layout.Options {
	dir, _ := layout.ParseDirection(o.Direction)
	unreached, _ := layout.ParseUnreached(o.Unreached)
	return layout.Options{
		Direction:  dir,
		Undirected: o.Undirected,
		Unreached:  unreached,
		GrowRings:  o.GrowRings,
	}
}

// LayoutKeyOpts returns cache key options for layout computation. Options a
// strategy ignores are left out so they do not split the cache.
func (o *Options) LayoutKeyOpts(configHash string) cache.LayoutKeyOpts {
	lo := o.LayoutOptions()
	k := cache.LayoutKeyOpts{
		Strategy:   o.Strategy,
		ConfigHash: configHash,
	}
	switch layout.Strategy(o.Strategy) {
	case layout.StrategyHierarchical:
		k.Direction = string(lo.Direction)
	case layout.StrategyRadial:
		k.Undirected = lo.Undirected
		k.Unreached = string(lo.Unreached)
		k.GrowRings = lo.GrowRings
	case layout.StrategyCircular, layout.StrategyGrid:
	default:
		k.Direction = string(lo.Direction)
		k.Undirected = lo.Undirected
		k.Unreached = string(lo.Unreached)
		k.GrowRings = lo.GrowRings
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatDOT, FormatSVG, FormatPDF:
		k.Detailed = o.Detailed
	case FormatPNG:
		k.Detailed = o.Detailed
		k.Scale = o.Scale
	}
	return k
}
