package bvh

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestArenaAllocateFree(t *testing.T) {
	a := newArena(4)
	require.Equal(t, 0, a.liveCount)

	h0, err := a.allocate()
	require.NoError(t, err)
	h1, err := a.allocate()
	require.NoError(t, err)
	require.NotEqual(t, h0, h1)
	require.Equal(t, 2, a.liveCount)

	a.free(h0)
	require.Equal(t, 1, a.liveCount)
	require.False(t, a.inRange(h0))

	h2, err := a.allocate()
	require.NoError(t, err)
	require.Equal(t, h0, h2, "freed slot should be reused before growing further")
}

func TestArenaCapacityExceeded(t *testing.T) {
	a := newArena(2)
	_, err := a.allocate()
	require.NoError(t, err)
	_, err = a.allocate()
	require.NoError(t, err)
	_, err = a.allocate()
	require.True(t, errors.Is(err, ErrCapacityExceeded))
}

func TestArenaReset(t *testing.T) {
	a := newArena(3)
	_, _ = a.allocate()
	_, _ = a.allocate()
	a.reset()
	require.Equal(t, 0, a.liveCount)
	for i := 0; i < 3; i++ {
		_, err := a.allocate()
		require.NoError(t, err)
	}
}
