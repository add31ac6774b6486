package core

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSharedState_SetGet(t *testing.T) {
	s := NewSharedState()

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Set("flight_options", map[string]any{"price": 500.0})

	v, ok := s.Get("flight_options")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"price": 500.0}, v)

	// Last writer wins.
	s.Set("flight_options", "replaced")
	v, _ = s.Get("flight_options")
	assert.Equal(t, "replaced", v)

	assert.Equal(t, 1, s.Len())
}

func TestSharedState_ApplyDelta(t *testing.T) {
	s := NewSharedState()
	s.Set("a", 1)

	s.ApplyDelta(map[string]any{"a": 2, "b": true})

	a, _ := s.Get("a")
	b, _ := s.Get("b")
	assert.Equal(t, 2, a)
	assert.Equal(t, true, b)
	assert.ElementsMatch(t, []string{"a", "b"}, s.Keys())
}

func TestSharedState_SnapshotIsolation(t *testing.T) {
	s := NewSharedState()
	s.Set("budget_analysis", map[string]any{"within_budget": false})

	snap := s.Snapshot()
	snap["budget_analysis"] = "mutated"
	snap["extra"] = 1

	v, ok := s.Get("budget_analysis")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"within_budget": false}, v)

	_, ok = s.Get("extra")
	assert.False(t, ok)
}

func TestSharedState_ConcurrentAccess(t *testing.T) {
	s := NewSharedState()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := string(rune('a' + n))
			s.Set(key, n)
			_, _ = s.Get(key)
			_ = s.Snapshot()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, s.Len())
}

func TestSnapshot_GetBool(t *testing.T) {
	snap := Snapshot{
		"budget_analysis": map[string]any{"within_budget": true, "total_cost": 1890.0},
		"note":            "text",
	}

	b, ok := snap.GetBool("budget_analysis", "within_budget")
	assert.True(t, ok)
	assert.True(t, b)

	_, ok = snap.GetBool("budget_analysis", "missing")
	assert.False(t, ok)

	_, ok = snap.GetBool("note", "anything")
	assert.False(t, ok)

	m, ok := snap.GetMap("budget_analysis")
	assert.True(t, ok)
	assert.Equal(t, 1890.0, m["total_cost"])
}
