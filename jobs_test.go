package lineedit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJobPoolSubmitAndDrain(t *testing.T) {
	pool := NewJobPool(2)
	defer pool.Close()

	done := make(chan struct{}, 1)
	pool.Submit("kind", 1, "text", func(generation uint64, text string) interface{} {
		return text + "!"
	}, func(result interface{}) {
		require.Equal(t, "text!", result)
		done <- struct{}{}
	})

	pool.DrainOne()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("apply callback never ran")
	}
}

func TestJobPoolIsLatestDiscardsSuperseded(t *testing.T) {
	pool := NewJobPool(1)
	defer pool.Close()

	pool.Submit("kind", 1, "a", func(uint64, string) interface{} { return nil }, func(interface{}) {})
	pool.Submit("kind", 2, "b", func(uint64, string) interface{} { return nil }, func(interface{}) {})

	require.False(t, pool.IsLatest("kind", 1))
	require.True(t, pool.IsLatest("kind", 2))

	pool.DrainOne()
	pool.DrainOne()
}

func TestJobPoolPendingReflectsUndrainedResults(t *testing.T) {
	pool := NewJobPool(1)
	defer pool.Close()

	require.False(t, pool.Pending())
	pool.Submit("kind", 1, "", func(uint64, string) interface{} { return nil }, func(interface{}) {})

	require.Eventually(t, pool.Pending, time.Second, time.Millisecond)
	pool.Drain()
	require.False(t, pool.Pending())
}
