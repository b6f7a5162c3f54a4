package simulation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionQueue_PopsInCompletionOrder(t *testing.T) {
	q := NewCompletionQueue(0)
	_, ok := q.PeekMin()
	assert.False(t, ok)
	_, ok = q.PopMin()
	assert.False(t, ok)

	for _, e := range []CompletionEvent{
		{CompletionTime: 300, JobIndex: 0},
		{CompletionTime: 100, JobIndex: 3},
		{CompletionTime: 200, JobIndex: 1},
		{CompletionTime: 100, JobIndex: 2},
	} {
		q.PushEvent(e)
	}
	assert.Equal(t, 4, q.Len())

	first, ok := q.PeekMin()
	require.True(t, ok)
	assert.Equal(t, CompletionEvent{CompletionTime: 100, JobIndex: 2}, first)
	assert.Equal(t, 4, q.Len())

	var popped []CompletionEvent
	for q.Len() > 0 {
		e, ok := q.PopMin()
		require.True(t, ok)
		popped = append(popped, e)
	}
	assert.Equal(t, []CompletionEvent{
		{CompletionTime: 100, JobIndex: 2},
		{CompletionTime: 100, JobIndex: 3},
		{CompletionTime: 200, JobIndex: 1},
		{CompletionTime: 300, JobIndex: 0},
	}, popped)
}
