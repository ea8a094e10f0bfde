package cache

// ScopedKeyer wraps a Keyer with a prefix for multi-tenant isolation.
// The shared server scopes geometry per session so one table's cached
// scenes never collide with another's.
//
// Example usage:
//
//	// Session-specific keys on the shared server
//	sessionKeyer := NewScopedKeyer(NewDefaultKeyer(), "session:abc123:")
//
//	// Global keys for single-user CLI runs
//	globalKeyer := NewDefaultKeyer()
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

// SceneKey generates a prefixed key for scene geometry caching.
func (k *ScopedKeyer) SceneKey(cellsHash string, opts SceneKeyOpts) string {
	return k.prefix + k.inner.SceneKey(cellsHash, opts)
}

// FrameKey generates a prefixed key for frame caching.
func (k *ScopedKeyer) FrameKey(sceneHash string, opts FrameKeyOpts) string {
	return k.prefix + k.inner.FrameKey(sceneHash, opts)
}

// ArtifactKey generates a prefixed key for artifact caching.
func (k *ScopedKeyer) ArtifactKey(frameHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(frameHash, opts)
}
