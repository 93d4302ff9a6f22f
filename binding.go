package lineedit

import (
	"time"
)

// Binding matches a key sequence in a given mode to a named readline
// command (spec.md §3 "Binding"). A Binding with an empty Sequence is the
// mode's "generic" fallback, invoked when nothing else matches.
type Binding struct {
	Sequence []CodePoint
	Mode     string
	Command  Command
	SetsMode string
	User     bool
}

func (b Binding) isGeneric() bool { return len(b.Sequence) == 0 }

// InputMappingSet is an ordered list of bindings, partitioned into user and
// preset bindings with user bindings shadowing preset ones that bind the
// identical sequence in the identical mode (spec.md §3 "Input mapping
// set"). It generalizes the teacher's single map[rune]command (bind.go)
// to multi-key sequences, modes, and the user/preset split.
type InputMappingSet struct {
	user   []Binding
	preset []Binding
}

// NewInputMappingSet returns an empty mapping set.
func NewInputMappingSet() *InputMappingSet {
	return &InputMappingSet{}
}

// AddPreset appends a built-in binding.
func (s *InputMappingSet) AddPreset(b Binding) {
	b.User = false
	s.preset = append(s.preset, b)
}

// AddUser appends a user-supplied binding. User bindings shadow preset
// bindings with an identical (Mode, Sequence).
func (s *InputMappingSet) AddUser(b Binding) {
	b.User = true
	s.user = append(s.user, b)
}

func sameSeq(a, b []CodePoint) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// forMode returns the bindings visible in mode, in lookup precedence order:
// user bindings first (insertion order), then preset bindings (insertion
// order) that are not shadowed by a user binding with the same sequence.
func (s *InputMappingSet) forMode(mode string) []Binding {
	var result []Binding
	for _, b := range s.user {
		if b.Mode == mode {
			result = append(result, b)
		}
	}
	for _, b := range s.preset {
		if b.Mode != mode {
			continue
		}
		shadowed := false
		for _, u := range s.user {
			if u.Mode == mode && sameSeq(u.Sequence, b.Sequence) {
				shadowed = true
				break
			}
		}
		if !shadowed {
			result = append(result, b)
		}
	}
	return result
}

// BindingEngine matches the longest prefix of pending input against the
// current mode's bindings (spec.md §4.3), using a Peeker over a ByteQueue so
// a failed longest-match attempt can be rolled back byte-for-byte.
type BindingEngine struct {
	Mappings *InputMappingSet
	EscDelay time.Duration
}

// NewBindingEngine returns an engine with the given escape-disambiguation
// timeout (spec.md §4.2/§4.3); 0 selects the default.
func NewBindingEngine(mappings *InputMappingSet, escDelay time.Duration) *BindingEngine {
	if escDelay <= 0 {
		escDelay = defaultEscapeDelay
	}
	return &BindingEngine{Mappings: mappings, EscDelay: clampEscapeDelay(escDelay)}
}

// peeker provisionally reads events from a ByteQueue, recording how much has
// been read so a failed match can be rolled back as one unit (spec.md §9
// "Peeker").
type peeker struct {
	q        ByteQueue
	consumed []Event
	escDelay time.Duration
}

// at returns the i'th tentatively-read event (0-indexed), reading more from
// the queue as needed. It returns ok=false if a timed read (used once the
// first event is an escape) expires.
func (p *peeker) at(i int) (Event, bool) {
	for len(p.consumed) <= i {
		var ev Event
		var ok bool
		if len(p.consumed) == 0 {
			ev = p.q.ReadEvent()
			ok = true
		} else if p.consumed[0].Kind == EventChar && p.consumed[0].Char == keyEscape {
			ev, ok = p.q.ReadEventTimeout(p.escDelay)
		} else {
			ev = p.q.ReadEvent()
			ok = true
		}
		if !ok {
			return Event{}, false
		}
		p.consumed = append(p.consumed, ev)
	}
	return p.consumed[i], true
}

// commit accepts the first n tentatively-read events, pushing any further
// look-ahead back onto the queue's front in order.
func (p *peeker) commit(n int) []Event {
	accepted := append([]Event(nil), p.consumed[:n]...)
	remainder := p.consumed[n:]
	for i := len(remainder) - 1; i >= 0; i-- {
		p.q.PushFront(remainder[i])
	}
	p.consumed = nil
	return accepted
}

// abort rolls back every tentatively-read event.
func (p *peeker) abort() {
	for i := len(p.consumed) - 1; i >= 0; i-- {
		p.q.PushFront(p.consumed[i])
	}
	p.consumed = nil
}

// keyEscape is the ESC code point (also defined, for key-name rendering
// purposes, in binding tables built from terminfo capability names).
const keyEscape CodePoint = 27

// Next reads one match's worth of input from q under the given mode and
// returns the resulting Event plus the mode that should be active
// afterwards (equal to mode unless the matched binding set a new one).
func (e *BindingEngine) Next(q ByteQueue, mode string) (Event, string) {
	bindings := e.Mappings.forMode(mode)

	pk := &peeker{q: q, escDelay: e.EscDelay}

	first, ok := pk.at(0)
	if !ok {
		// The only way at(0) can fail is a timed read, which Next never
		// issues for i==0; kept defensively in case escDelay is reused.
		return Event{Kind: EventCheckExit}, mode
	}
	if first.Kind != EventChar {
		// Control signals (EOF/CheckExit) and pre-built Readline events
		// (e.g. injected by the Reader Loop) bypass key binding entirely.
		pk.commit(1)
		return first, mode
	}

	type candidate struct {
		length int
		index  int
		b      Binding
	}
	var best *candidate

	for idx, b := range bindings {
		if b.isGeneric() {
			continue
		}
		matched := true
		for i, want := range b.Sequence {
			ev, ok := pk.at(i)
			if !ok || ev.Kind != EventChar || ev.Char != want {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		if best == nil || len(b.Sequence) > best.length ||
			(len(b.Sequence) == best.length && idx < best.index) {
			best = &candidate{length: len(b.Sequence), index: idx, b: b}
		}
	}

	if best != nil {
		matched := pk.commit(best.length)
		seq := make([]CodePoint, len(matched))
		for i, ev := range matched {
			seq[i] = ev.Char
		}
		newMode := mode
		if best.b.SetsMode != "" {
			newMode = best.b.SetsMode
		}
		return readlineEvent(best.b.Command, seq), newMode
	}

	// No non-empty binding matched; fall back to the generic binding for
	// this mode, if any (spec.md §4.3 step 5).
	for _, b := range bindings {
		if b.isGeneric() {
			consumed := pk.commit(1)
			newMode := mode
			if b.SetsMode != "" {
				newMode = b.SetsMode
			}
			return readlineEvent(b.Command, []CodePoint{consumed[0].Char}), newMode
		}
	}

	// No generic binding either: the event is dropped (spec.md §4.3 step
	// 5), but the byte itself must still be consumed so we make progress.
	pk.commit(1)
	return Event{Kind: EventCheckExit}, mode
}
