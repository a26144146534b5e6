package layout

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/kintree/pkg/errors"
)

// =============================================================================
// Default Values - shared by every strategy
// =============================================================================

const (
	// DefaultNodeWidth and DefaultNodeHeight are the fixed box size of a person.
	DefaultNodeWidth  = 172.0
	DefaultNodeHeight = 36.0

	// DefaultNodeSep is the gap between neighbors in a rank or grid row.
	DefaultNodeSep = 50.0

	// DefaultRankSep is the gap between ranks or grid rows.
	DefaultRankSep = 100.0

	// DefaultCenterX and DefaultCenterY are shared by circular and radial so
	// that switching between them does not move the picture.
	DefaultCenterX = 400.0
	DefaultCenterY = 300.0

	DefaultCircleMinRadius   = 200.0
	DefaultCircleNodeSpacing = 30.0

	DefaultRingSpacing = 200.0
	DefaultRingSlots   = 8

	DefaultOrderingPasses = 24
)

// Config holds every pixel constant the layouts use. A single Config is
// injected into all strategies so they cannot drift apart.
type Config struct {
	NodeWidth  float64 `toml:"node_width" json:"node_width"`
	NodeHeight float64 `toml:"node_height" json:"node_height"`
	NodeSep    float64 `toml:"node_sep" json:"node_sep"`
	RankSep    float64 `toml:"rank_sep" json:"rank_sep"`

	Center Position `toml:"center" json:"center"`

	// Circular: radius = max(CircleMinRadius, n*CircleNodeSpacing).
	CircleMinRadius   float64 `toml:"circle_min_radius" json:"circle_min_radius"`
	CircleNodeSpacing float64 `toml:"circle_node_spacing" json:"circle_node_spacing"`

	// Radial: level L sits on radius L*RingSpacing with RingSlots*L slots.
	RingSpacing float64 `toml:"ring_spacing" json:"ring_spacing"`
	RingSlots   int     `toml:"ring_slots" json:"ring_slots"`

	GridOrigin Position `toml:"grid_origin" json:"grid_origin"`

	// OrderingPasses bounds the barycentric sweeps of the hierarchical layout.
	OrderingPasses int `toml:"ordering_passes" json:"ordering_passes"`
}

// DefaultConfig returns the stock configuration.
func DefaultConfig() Config {
	return Config{
		NodeWidth:         DefaultNodeWidth,
		NodeHeight:        DefaultNodeHeight,
		NodeSep:           DefaultNodeSep,
		RankSep:           DefaultRankSep,
		Center:            Position{X: DefaultCenterX, Y: DefaultCenterY},
		CircleMinRadius:   DefaultCircleMinRadius,
		CircleNodeSpacing: DefaultCircleNodeSpacing,
		RingSpacing:       DefaultRingSpacing,
		RingSlots:         DefaultRingSlots,
		OrderingPasses:    DefaultOrderingPasses,
	}
}

// Validate reports the first field that cannot produce a sensible layout.
func (c Config) Validate() error {
	switch {
	case c.NodeWidth <= 0 || c.NodeHeight <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "node size must be positive, got %gx%g", c.NodeWidth, c.NodeHeight)
	case c.NodeSep < 0 || c.RankSep < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "separations must not be negative")
	case c.CircleMinRadius < 0 || c.CircleNodeSpacing < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "circle radius and spacing must not be negative")
	case c.RingSpacing <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "ring_spacing must be positive, got %g", c.RingSpacing)
	case c.RingSlots <= 0:
		return errors.New(errors.ErrCodeInvalidConfig, "ring_slots must be positive, got %d", c.RingSlots)
	case c.OrderingPasses < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "ordering_passes must not be negative")
	}
	return nil
}

// ReadConfigFile decodes a TOML file on top of DefaultConfig, so a file only
// needs the keys it changes. The result is validated.
func ReadConfigFile(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return cfg, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return cfg, errors.Wrap(errors.ErrCodeInternal, err, "config %s", path)
	}
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, cfg.Validate()
}
