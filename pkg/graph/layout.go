package graph

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/matzehuels/kintree/pkg/errors"
	"github.com/matzehuels/kintree/pkg/layout"
)

// =============================================================================
// Layout - Laid-out Family Tree
// =============================================================================

// Layout is the serialized result of a layout run. It is what the API
// returns, what the cache stores and what renderers consume.
//
// Nodes carry positions and, for hierarchical layouts, connector sides. Edges
// are the input edges unchanged. Ranks is only set for hierarchical layouts.
type Layout struct {
	Strategy  layout.Strategy  `json:"strategy"`
	Direction layout.Direction `json:"direction,omitempty"`

	Bounds layout.Rect   `json:"bounds"`
	Nodes  []layout.Node `json:"nodes"`
	Edges  []layout.Edge `json:"edges"`

	Ranks map[string]int `json:"ranks,omitempty"`

	// NodeWidth and NodeHeight record the box size the positions assume.
	NodeWidth  float64 `json:"node_width"`
	NodeHeight float64 `json:"node_height"`
}

// NewLayout wraps a layout result with the metadata renderers need.
func NewLayout(s layout.Strategy, opts layout.Options, cfg layout.Config, res layout.Result) Layout {
	l := Layout{
		Strategy:   s,
		Bounds:     layout.Bounds(res.Nodes, cfg),
		Nodes:      res.Nodes,
		Edges:      res.Edges,
		NodeWidth:  cfg.NodeWidth,
		NodeHeight: cfg.NodeHeight,
	}
	if s == layout.StrategyHierarchical {
		l.Direction = opts.Direction
		if l.Direction == "" {
			l.Direction = layout.TopBottom
		}
		l.Ranks = layout.Ranks(res.Nodes, res.Edges)
	}
	return l
}

// Result returns the nodes and edges as a layout result.
func (l Layout) Result() layout.Result {
	return layout.Result{Nodes: l.Nodes, Edges: l.Edges}
}

// RankCount returns the number of distinct ranks, 0 if none were recorded.
func (l Layout) RankCount() int {
	seen := make(map[int]struct{}, len(l.Ranks))
	for _, r := range l.Ranks {
		seen[r] = struct{}{}
	}
	return len(seen)
}

// =============================================================================
// Layout Serialization API
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
// A layout must name its strategy.
func UnmarshalLayout(data []byte) (Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return Layout{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "unmarshal layout")
	}
	if l.Strategy == "" {
		return Layout{}, errors.New(errors.ErrCodeInvalidInput, "layout must name its strategy")
	}
	if l.Nodes == nil {
		l.Nodes = []layout.Node{}
	}
	if l.Edges == nil {
		l.Edges = []layout.Edge{}
	}
	return l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadLayoutFile reads a Layout from a JSON file.
func ReadLayoutFile(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalLayout(data)
}
