package providers

import "fmt"

// Registry holds one adapter per version tag. Selection is a pure function
// of the tag; there is no fallback between adapters.
type Registry struct {
	byVersion map[Version]Provider
}

// NewRegistry creates a registry from the given adapters.
func NewRegistry(esv, net Provider) *Registry {
	return &Registry{byVersion: map[Version]Provider{
		VersionESV: esv,
		VersionNET: net,
	}}
}

// ForVersion returns the adapter for v.
func (r *Registry) ForVersion(v Version) (Provider, error) {
	p, ok := r.byVersion[v]
	if !ok || p == nil {
		return nil, fmt.Errorf("no provider registered for version %q", v)
	}
	return p, nil
}
