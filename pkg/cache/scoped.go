package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// The serve command uses this to keep API cache entries apart from local
// CLI runs, so clearing one namespace never touches the other's entries.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "api:")
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

// SnapshotKey generates a prefixed key for snapshot caching.
func (k *ScopedKeyer) SnapshotKey(source, format string) string {
	return k.prefix + k.inner.SnapshotKey(source, format)
}

// MatrixKey generates a prefixed key for closure-matrix caching.
func (k *ScopedKeyer) MatrixKey(snapshotHash string, opts MatrixKeyOpts) string {
	return k.prefix + k.inner.MatrixKey(snapshotHash, opts)
}

// ArtifactKey generates a prefixed key for rendered-artifact caching.
func (k *ScopedKeyer) ArtifactKey(matrixHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(matrixHash, opts)
}
