package cache

import "strings"

// ScopedKeyer prefixes every key of an inner Keyer, so several deployments
// can share one Redis database. A prefix without a trailing colon gets one.
//
//	keyer := NewScopedKeyer(nil, "mosaic:staging")
//	keyer.PlacementKey(h, opts) // "mosaic:staging:placement:…"
type ScopedKeyer struct {
	Inner  Keyer
	Prefix string
}

// NewScopedKeyer wraps inner, or DefaultKeyer when inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) *ScopedKeyer {
	if inner == nil {
		inner = DefaultKeyer{}
	}
	if prefix != "" && !strings.HasSuffix(prefix, ":") {
		prefix += ":"
	}
	return &ScopedKeyer{Inner: inner, Prefix: prefix}
}

// PlacementKey implements Keyer.
func (k *ScopedKeyer) PlacementKey(inputHash string, opts PlacementKeyOpts) string {
	return k.Prefix + k.Inner.PlacementKey(inputHash, opts)
}
