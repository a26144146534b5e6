// Package cache stores computed layouts and rendered artifacts so that
// identical requests are served without recomputation.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: one JSON file per entry, used by the CLI
//   - [RedisCache]: a shared cache for API servers
//   - [NullCache]: never stores anything
//
// Keys come from a [Keyer]. [DefaultKeyer] hashes the graph content and every
// option that changes the output; [ScopedKeyer] adds a namespace prefix.
package cache

import (
	"context"
	"time"
)

// Default time-to-live for each kind of entry. Layouts are pure functions of
// their key, so they only expire to bound disk use.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry. Get reports a miss with
// found == false and a nil error.
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, found bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// LayoutKeyOpts lists every input besides the graph that changes a layout.
type LayoutKeyOpts struct {
	Strategy   string `json:"strategy"`
	Direction  string `json:"direction,omitempty"`
	Undirected bool   `json:"undirected,omitempty"`
	Unreached  string `json:"unreached,omitempty"`
	GrowRings  bool   `json:"grow_rings,omitempty"`
	// ConfigHash is the hash of the layout configuration.
	ConfigHash string `json:"config_hash"`
}

// ArtifactKeyOpts lists every input besides the layout that changes a
// rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Detailed bool    `json:"detailed,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
}

// Keyer builds cache keys.
type Keyer interface {
	LayoutKey(graphHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer builds keys of the form "kind:sha256".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default Keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey returns "layout:" followed by a hash of graphHash and opts.
func (DefaultKeyer) LayoutKey(graphHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", graphHash, opts)
}

// ArtifactKey returns "artifact:" followed by a hash of layoutHash and opts.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}
