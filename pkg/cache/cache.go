// Package cache provides content-addressed caching for pipeline results.
//
// # Overview
//
// The pipeline caches three kinds of results, each keyed by a hash of its
// input plus the options that affect it:
//
//   - Outline: the title forest parsed from a document
//   - Layout: mind-map geometry for one root at one canvas size
//   - Artifact: a rendered output (SVG, PNG, PDF, JSON)
//
// Keys are produced by a [Keyer] so deployments can namespace them (see
// [ScopedKeyer]). Values are opaque bytes.
//
// # Backends
//
//   - [FileCache]: JSON entry files under a directory, used by the CLI
//   - [RedisCache]: shared cache for the API server
//   - [MongoCache]: persistent cache with a TTL index
//   - [NullCache]: disables caching
package cache

import (
	"context"
	"strings"
	"time"
)

// Cache stores opaque values by key.
type Cache interface {
	// Get returns the value for key. A miss is reported as ok == false with a
	// nil error.
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)

	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}

// Default time-to-live per result kind.
const (
	TTLOutline  = 7 * 24 * time.Hour
	TTLLayout   = 24 * time.Hour
	TTLArtifact = 24 * time.Hour
)

// Keyer builds cache keys.
type Keyer interface {
	OutlineKey(docHash string, opts OutlineKeyOpts) string
	LayoutKey(outlineHash string, opts LayoutKeyOpts) string
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// OutlineKeyOpts are the options that change a parsed outline.
type OutlineKeyOpts struct {
	Parser string `json:"parser"`
}

// LayoutKeyOpts are the options that change a layout.
type LayoutKeyOpts struct {
	VizType string `json:"viz_type"`
	Root    int    `json:"root"`
	Measure string `json:"measure"`
	Theme   string `json:"theme"` // hash of the theme; font sizes change box widths
}

// ArtifactKeyOpts are the options that change a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Theme    string  `json:"theme"`
	Width    float64 `json:"width,omitempty"` // raster container
	Height   float64 `json:"height,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	NoText   bool    `json:"no_text,omitempty"`
	Detailed bool    `json:"detailed,omitempty"` // nodelink label style
}

// DefaultKeyer produces keys of the form "kind:sha256(input, opts)".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// OutlineKey implements [Keyer].
func (DefaultKeyer) OutlineKey(docHash string, opts OutlineKeyOpts) string {
	return hashKey("outline", docHash, opts)
}

// LayoutKey implements [Keyer].
func (DefaultKeyer) LayoutKey(outlineHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", outlineHash, opts)
}

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

// KeyType returns the kind segment ("outline", "layout", "artifact") of a key
// built by [DefaultKeyer], ignoring any scope prefix. It labels
// observability events.
func KeyType(key string) string {
	i := strings.LastIndex(key, ":")
	if i < 0 {
		return "unknown"
	}
	prefix := key[:i]
	return prefix[strings.LastIndex(prefix, ":")+1:]
}
