package hxcontent

import "maps"

// State is a context object with prototype-style fallback.
//
// Reads check the local overlay first and then walk the base chain. Writes
// always land in the overlay, so a clone can shadow a value from its
// container without changing it, while values it never set keep tracking
// the container's state.
//
// A State is not safe for concurrent use.
type State struct {
	base   *State
	values map[string]any
}

// NewState creates a root state holding a copy of values.
func NewState(values map[string]any) *State {
	return Inherit(nil, values)
}

// Inherit creates a state that falls back to base for keys it does not set
// locally. base may be nil.
func Inherit(base *State, values map[string]any) *State {
	local := make(map[string]any, len(values))
	maps.Copy(local, values)
	return &State{base: base, values: local}
}

// Base returns the fallback state, or nil.
func (s *State) Base() *State {
	if s == nil {
		return nil
	}
	return s.base
}

// Get resolves key against the overlay, then the base chain.
func (s *State) Get(key string) (any, bool) {
	for cur := s; cur != nil; cur = cur.base {
		if v, ok := cur.values[key]; ok {
			return v, true
		}
	}
	return nil, false
}

// Has reports whether key resolves anywhere in the chain.
func (s *State) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Set writes key into the overlay.
func (s *State) Set(key string, value any) {
	s.values[key] = value
}

// Delete removes key from the overlay only. A base value for the same key
// becomes visible again.
func (s *State) Delete(key string) {
	delete(s.values, key)
}

// Merge copies values into the overlay, overwriting local keys.
func (s *State) Merge(values map[string]any) {
	maps.Copy(s.values, values)
}

// Local returns a copy of the overlay.
func (s *State) Local() map[string]any {
	if s == nil {
		return nil
	}
	return maps.Clone(s.values)
}

// Resolve flattens the chain into one map. Overlay values win.
func (s *State) Resolve() map[string]any {
	out := make(map[string]any)
	var chain []*State
	for cur := s; cur != nil; cur = cur.base {
		chain = append(chain, cur)
	}
	for i := len(chain) - 1; i >= 0; i-- {
		maps.Copy(out, chain[i].values)
	}
	return out
}

// Snapshot implements encoding.Encodable.
func (s *State) Snapshot() map[string]any {
	return s.Resolve()
}
