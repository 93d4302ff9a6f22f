package lineedit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScheduleHighlightMergesResult(t *testing.T) {
	pool := NewJobPool(1)
	defer pool.Close()

	core := NewEditCore(newTestStore(), NewKillRing())
	typeText(core, "select 1")

	scheduleHighlight(pool, core, func(text string) []ColorSpan {
		return []ColorSpan{{Start: 0, End: 6, Value: "\x1b[1m"}}
	})
	pool.DrainOne()

	require.Equal(t, []ColorSpan{{Start: 0, End: 6, Value: "\x1b[1m"}}, core.Colors())
}

func TestScheduleHighlightDiscardsStaleResult(t *testing.T) {
	pool := NewJobPool(2)
	defer pool.Close()

	core := NewEditCore(newTestStore(), NewKillRing())
	typeText(core, "select 1")

	scheduleHighlight(pool, core, func(text string) []ColorSpan {
		return []ColorSpan{{Start: 0, End: 1, Value: "stale"}}
	})

	// A newer edit supersedes the in-flight job before it is drained.
	typeText(core, "!")
	fresh := []ColorSpan{{Start: 0, End: 9, Value: "fresh"}}
	scheduleHighlight(pool, core, func(text string) []ColorSpan { return fresh })

	pool.DrainOne()
	pool.DrainOne()

	require.Equal(t, fresh, core.Colors())
}
