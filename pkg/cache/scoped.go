package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when several servers or tenants share one Redis or Mongo
// cache and must not see each other's entries.
//
// Example usage:
//
//	// Keys for one deployment
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
//
//	// Unscoped keys
//	keyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// OutlineKey generates a prefixed key for outline caching.
func (k *ScopedKeyer) OutlineKey(docHash string, opts OutlineKeyOpts) string {
	return k.prefix + k.inner.OutlineKey(docHash, opts)
}

// LayoutKey generates a prefixed key for layout caching.
func (k *ScopedKeyer) LayoutKey(outlineHash string, opts LayoutKeyOpts) string {
	return k.prefix + k.inner.LayoutKey(outlineHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(layoutHash, opts)
}
