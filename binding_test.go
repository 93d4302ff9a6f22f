package lineedit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// sliceQueue is a minimal ByteQueue backed by a preloaded slice of Events,
// for exercising the Binding Engine without real terminal I/O.
type sliceQueue struct {
	events []Event
}

func newSliceQueue(chars ...rune) *sliceQueue {
	q := &sliceQueue{}
	for _, c := range chars {
		q.events = append(q.events, charEvent(c, StyleNormal))
	}
	return q
}

func (q *sliceQueue) ReadEvent() Event {
	if len(q.events) == 0 {
		return Event{Kind: EventEOF}
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev
}

func (q *sliceQueue) ReadEventTimeout(d time.Duration) (Event, bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	return q.ReadEvent(), true
}

func (q *sliceQueue) PushFront(ev Event) { q.events = append([]Event{ev}, q.events...) }
func (q *sliceQueue) PushBack(ev Event)  { q.events = append(q.events, ev) }
func (q *sliceQueue) PromoteInterruptions() {}

func TestBindingEngineLongestPrefixMatch(t *testing.T) {
	mappings := NewInputMappingSet()
	mappings.AddPreset(Binding{Sequence: []CodePoint{27}, Mode: ModeDefault, Command: CmdAbort})
	mappings.AddPreset(Binding{Sequence: []CodePoint{27, '['}, Mode: ModeDefault, Command: CmdBackwardChar})
	mappings.AddPreset(Binding{Mode: ModeDefault, Command: CmdSelfInsert})

	engine := NewBindingEngine(mappings, time.Millisecond)
	q := newSliceQueue(27, '[')

	ev, mode := engine.Next(q, ModeDefault)
	require.Equal(t, ModeDefault, mode)
	require.Equal(t, EventReadline, ev.Kind)
	require.Equal(t, CmdBackwardChar, ev.Cmd)
}

func TestBindingEngineFallsBackToGeneric(t *testing.T) {
	mappings := NewInputMappingSet()
	mappings.AddPreset(Binding{Sequence: []CodePoint{27, '['}, Mode: ModeDefault, Command: CmdBackwardChar})
	mappings.AddPreset(Binding{Mode: ModeDefault, Command: CmdSelfInsert})

	engine := NewBindingEngine(mappings, time.Millisecond)
	q := newSliceQueue('a')

	ev, _ := engine.Next(q, ModeDefault)
	require.Equal(t, EventReadline, ev.Kind)
	require.Equal(t, CmdSelfInsert, ev.Cmd)
	require.Equal(t, []CodePoint{'a'}, ev.Seq)
}

func TestBindingEngineUserBindingShadowsPreset(t *testing.T) {
	mappings := NewInputMappingSet()
	mappings.AddPreset(Binding{Sequence: []CodePoint{1}, Mode: ModeDefault, Command: CmdBeginningOfLine})
	mappings.AddUser(Binding{Sequence: []CodePoint{1}, Mode: ModeDefault, Command: CmdAbort})

	engine := NewBindingEngine(mappings, time.Millisecond)
	q := newSliceQueue(1)

	ev, _ := engine.Next(q, ModeDefault)
	require.Equal(t, CmdAbort, ev.Cmd)
}

func TestBindingEngineFailedMatchRollsBack(t *testing.T) {
	mappings := NewInputMappingSet()
	mappings.AddPreset(Binding{Sequence: []CodePoint{27, '[', 'A'}, Mode: ModeDefault, Command: CmdPreviousHistory})
	mappings.AddPreset(Binding{Sequence: []CodePoint{27}, Mode: ModeDefault, Command: CmdAbort})
	mappings.AddPreset(Binding{Mode: ModeDefault, Command: CmdSelfInsert})

	engine := NewBindingEngine(mappings, time.Millisecond)
	// 27 '[' 'B' doesn't match the 3-seq binding; it should roll back to
	// just matching the bare ESC binding, leaving '[' and 'B' queued.
	q := newSliceQueue(27, '[', 'B')

	ev, _ := engine.Next(q, ModeDefault)
	require.Equal(t, CmdAbort, ev.Cmd)

	ev2, _ := engine.Next(q, ModeDefault)
	require.Equal(t, CmdSelfInsert, ev2.Cmd)
	require.Equal(t, []CodePoint{'['}, ev2.Seq)
}
