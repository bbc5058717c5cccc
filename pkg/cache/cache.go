// Package cache stores generated dungeon artifacts keyed by their inputs.
//
// Generation is deterministic for a fixed level, graph, seed and retry
// configuration, so the layout hand-off JSON can be memoised. The CLI uses
// a [FileCache] under the user cache directory, the HTTP server can share a
// [RedisCache] between instances, and [NullCache] disables caching.
//
// # Keys
//
// A [Keyer] derives keys from a level content hash (see [Hash]) and the
// options that affect the output. [ScopedKeyer] adds a prefix so several
// deployments can share one Redis database.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store with optional expiry.
type Cache interface {
	// Get returns the value for key. The bool is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Default TTLs for cached entries.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// LayoutKeyOpts holds everything besides the level that changes a layout.
type LayoutKeyOpts struct {
	Graph              string `json:"graph,omitempty"`
	Seed               uint64 `json:"seed"`
	MaxBuildAttempts   int    `json:"max_build_attempts"`
	MaxRebuildAttempts int    `json:"max_rebuild_attempts"`
}

// ArtifactKeyOpts identifies a rendered artifact of a level graph.
type ArtifactKeyOpts struct {
	Graph  string `json:"graph"`
	Format string `json:"format"`
}

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey is the key for a generated layout.
	LayoutKey(levelHash string, opts LayoutKeyOpts) string

	// ArtifactKey is the key for a rendered graph artifact such as an SVG.
	ArtifactKey(levelHash string, opts ArtifactKeyOpts) string
}

// DefaultKeyer hashes key components into fixed-length keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns a DefaultKeyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// LayoutKey implements Keyer.
func (DefaultKeyer) LayoutKey(levelHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", levelHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(levelHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", levelHash, opts)
}
