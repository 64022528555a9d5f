// Package cache stores computed layouts and rendered artifacts.
//
// A [Cache] is a byte store with per-entry TTL. Four backends are provided:
//
//   - [FileCache]: one JSON file per entry, for the CLI
//   - [RedisCache]: shared cache for API server replicas
//   - [MongoCache]: document store with a TTL index
//   - [NullCache]: caching disabled
//
// Keys come from a [Keyer], which hashes every input that affects the cached
// value. [ScopedKeyer] prefixes keys so several tenants can share a backend.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with expiry.
type Cache interface {
	// Get returns the value for key. A miss is (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of 0 stores without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}

// Default TTLs.
const (
	LayoutTTL   = 7 * 24 * time.Hour
	ArtifactTTL = 7 * 24 * time.Hour
)

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies a drawing computed from an input.
	// inputHash should cover the name, sequence and structure.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendered file for a drawing.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists the layout inputs besides the structure itself.
type LayoutKeyOpts struct {
	Geometry any      `json:"geometry,omitempty"` // layout configuration, hashed as JSON
	Moves    []string `json:"moves,omitempty"`    // "helix:angle", in application order
	Flips    []int    `json:"flips,omitempty"`
}

// ArtifactKeyOpts lists the rendering inputs.
type ArtifactKeyOpts struct {
	VizType  string  `json:"viz_type"`
	Format   string  `json:"format"`
	Palette  any     `json:"palette,omitempty"`
	Loops    bool    `json:"loops,omitempty"`
	Numbers  int     `json:"numbers,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Detailed bool    `json:"detailed,omitempty"`
}

// DefaultKeyer hashes options into "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// InputHash hashes the parts of an input that determine its layout.
func InputHash(name, sequence, structure string) string {
	return Hash([]byte(name + "\x00" + sequence + "\x00" + structure))
}
