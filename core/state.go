package core

import (
	"maps"
	"sync"
	"time"
)

// SharedState is the single mutable medium of inter-stage communication: a
// mapping from string keys to JSON-like values (numbers, strings, booleans,
// nested maps and slices). It is created empty at the start of a coordinator
// attempt, mutated in place by stage completions and discarded at run end.
// Keys are unique and last writer wins; no history is kept.
//
// SharedState is safe for concurrent access. Concurrent parallel stages may
// read overlapping keys, but each owns a disjoint output key, so no
// write-write race is possible by construction (the workflow validates this
// at assembly time).
type SharedState struct {
	mu      sync.RWMutex
	data    map[string]any
	updated time.Time
}

// NewSharedState constructs an empty shared state.
func NewSharedState() *SharedState {
	return &SharedState{data: map[string]any{}, updated: time.Now()}
}

// Get returns the value and existence flag for a state key.
func (s *SharedState) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

// Set stores a key/value pair, replacing any previous value for the key.
func (s *SharedState) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	s.updated = time.Now()
}

// ApplyDelta merges the provided key/value pairs into the state.
func (s *SharedState) ApplyDelta(delta map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	maps.Copy(s.data, delta)
	s.updated = time.Now()
}

// Keys returns the currently populated state keys in unspecified order.
func (s *SharedState) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys
}

// Len returns the number of populated keys.
func (s *SharedState) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Updated returns the time of the most recent mutation.
func (s *SharedState) Updated() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.updated
}

// Snapshot returns a top-level copy of the state suitable for handing to
// convergence predicates. Mutating the snapshot does not affect the state;
// nested values are shared and must be treated as read-only.
func (s *SharedState) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(Snapshot, len(s.data))
	maps.Copy(snap, s.data)
	return snap
}

// Snapshot is a read-only view of SharedState at a point in time. Convergence
// predicates receive a Snapshot and must not mutate it.
type Snapshot map[string]any

// GetMap returns the value under key if it is a nested mapping.
func (s Snapshot) GetMap(key string) (map[string]any, bool) {
	m, ok := s[key].(map[string]any)
	return m, ok
}

// GetBool returns the boolean stored at snapshot[key][field].
func (s Snapshot) GetBool(key, field string) (bool, bool) {
	m, ok := s.GetMap(key)
	if !ok {
		return false, false
	}
	b, ok := m[field].(bool)
	return b, ok
}
