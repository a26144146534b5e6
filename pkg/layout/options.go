package layout

import (
	"strings"

	"github.com/matzehuels/kintree/pkg/errors"
)

// Direction is the flow of ranks in the hierarchical layout.
type Direction string

const (
	// TopBottom puts parents above children. It is the default.
	TopBottom Direction = "TB"
	// LeftRight puts parents left of children.
	LeftRight Direction = "LR"
)

// ParseDirection accepts "TB" or "LR" in any case. The empty string yields
// TopBottom.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", string(TopBottom):
		return TopBottom, nil
	case string(LeftRight):
		return LeftRight, nil
	}
	return "", errors.New(errors.ErrCodeInvalidDirection, "invalid direction: %q (must be one of: TB, LR)", s)
}

// Unreached says what the radial layout does with nodes its traversal never
// finds.
type Unreached string

const (
	// UnreachedKeep leaves them at their input position. It is the default.
	UnreachedKeep Unreached = "keep"
	// UnreachedRing places them together on the ring after the deepest level.
	UnreachedRing Unreached = "ring"
)

// ParseUnreached accepts "keep" or "ring". The empty string yields
// UnreachedKeep.
func ParseUnreached(s string) (Unreached, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(UnreachedKeep):
		return UnreachedKeep, nil
	case string(UnreachedRing):
		return UnreachedRing, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "invalid unreached policy: %q (must be one of: keep, ring)", s)
}

// Options are per-call choices. The zero value selects the default of every
// strategy.
type Options struct {
	// Direction applies to the hierarchical layout.
	Direction Direction `json:"direction,omitempty"`

	// Undirected makes the radial traversal walk edges both ways.
	Undirected bool `json:"undirected,omitempty"`

	// Unreached applies to the radial layout.
	Unreached Unreached `json:"unreached,omitempty"`

	// GrowRings lets an overfull radial ring widen its radius instead of
	// crowding its nodes.
	GrowRings bool `json:"grow_rings,omitempty"`
}

func (o Options) direction() Direction {
	if o.Direction == LeftRight {
		return LeftRight
	}
	return TopBottom
}
