package cache

// ScopedKeyer wraps a Keyer with a prefix so separate deployments or
// tenants sharing one Redis never collide.
//
// Example usage:
//
//	// Per-environment keys on a shared instance
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "staging:")
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

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// ChartKey generates a prefixed key for chart image caching.
func (k *ScopedKeyer) ChartKey(specHash string, opts ChartKeyOpts) string {
	return k.prefix + k.inner.ChartKey(specHash, opts)
}

// Ensure ScopedKeyer implements Keyer.
var _ Keyer = (*ScopedKeyer)(nil)
