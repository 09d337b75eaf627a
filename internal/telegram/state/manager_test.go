package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager(NewCacheStorage(time.Minute))

	_, ok := m.Get(42)
	require.False(t, ok)

	m.Set(42, &Session{Flow: "concrete", Values: map[string]float64{}})
	sess, ok := m.Get(42)
	require.True(t, ok)
	require.Equal(t, "concrete", sess.Flow)

	require.True(t, m.Delete(42))
	_, ok = m.Get(42)
	require.False(t, ok)
	require.False(t, m.Delete(42))
}

func TestSetOverwritesExistingSession(t *testing.T) {
	m := NewManager(NewCacheStorage(time.Minute))

	m.Set(1, &Session{Flow: "concrete", Step: 2, Values: map[string]float64{"length": 5}})
	m.Set(1, &Session{Flow: "tile", Values: map[string]float64{}})

	sess, ok := m.Get(1)
	require.True(t, ok)
	require.Equal(t, "tile", sess.Flow)
	require.Equal(t, 0, sess.Step)
	require.Empty(t, sess.Values)
}
