package bvh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPQueuePopsInCostOrder(t *testing.T) {
	q := newPQueue(8)
	costs := []float64{5, 1, 4, 2, 3}
	for i, c := range costs {
		require.True(t, q.push(pqueueEntry{node: Handle(i), cost: c}))
	}

	var got []float64
	for q.len() > 0 {
		got = append(got, q.pop().cost)
	}
	require.Equal(t, []float64{1, 2, 3, 4, 5}, got)
}

func TestPQueueFullRejectsPush(t *testing.T) {
	q := newPQueue(2)
	require.True(t, q.push(pqueueEntry{node: 0, cost: 1}))
	require.True(t, q.push(pqueueEntry{node: 1, cost: 2}))
	require.False(t, q.push(pqueueEntry{node: 2, cost: 3}))
	require.True(t, q.full())
}

func TestPQueueReset(t *testing.T) {
	q := newPQueue(2)
	q.push(pqueueEntry{node: 0, cost: 1})
	q.reset()
	require.Equal(t, 0, q.len())
	require.False(t, q.full())
}
