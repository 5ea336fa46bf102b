package cache

// ScopedKeyer prefixes every key of an inner Keyer, giving callers that
// share one backend separate namespaces.
//
//	k := NewScopedKeyer(NewDefaultKeyer(), "v1:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// the default one.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ChartKey returns the inner key with the prefix prepended.
func (k *ScopedKeyer) ChartKey(datasetHash string, opts ChartKeyOpts) string {
	return k.prefix + k.inner.ChartKey(datasetHash, opts)
}
