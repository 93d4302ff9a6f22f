package lineedit

import "container/list"

// KillRing is an LRU-ordered circular list of clipboard entries (spec.md
// §3 "Kill entry", §4.4). It generalizes the teacher's fixed-capacity
// killRing (kill_ring.go) — which kept a single accumulating slice entry —
// into the spec's deque-of-entries model: Add pushes a fresh entry to the
// front, Yank reads the front without mutating it, and Rotate (yank-pop)
// moves the front to the back.
//
// The ring itself has no notion of "the previous command was a kill of the
// same kind"; that bookkeeping belongs to the Edit Core (editcore.go,
// field lastWasKill), which calls AppendFront/PrependFront to continue an
// in-progress kill instead of Add-ing a new entry.
type KillRing struct {
	entries *list.List // front (Front()) is most recently killed
}

// NewKillRing returns an empty kill ring.
func NewKillRing() *KillRing {
	return &KillRing{entries: list.New()}
}

// Add pushes s to the front of the ring. It is a no-op if s is empty. If an
// identical entry already exists elsewhere in the ring it is moved to the
// front instead of duplicated (de-duplicated on insertion, per spec.md §3).
func (r *KillRing) Add(s string) {
	if s == "" {
		return
	}
	if r.entries == nil {
		r.entries = list.New()
	}
	for e := r.entries.Front(); e != nil; e = e.Next() {
		if e.Value.(string) == s {
			r.entries.MoveToFront(e)
			return
		}
	}
	r.entries.PushFront(s)
}

// Remove removes the first occurrence of s from the ring.
func (r *KillRing) Remove(s string) {
	if r.entries == nil {
		return
	}
	for e := r.entries.Front(); e != nil; e = e.Next() {
		if e.Value.(string) == s {
			r.entries.Remove(e)
			return
		}
	}
}

// Replace removes old and adds newEntry, preserving de-duplication.
func (r *KillRing) Replace(old, newEntry string) {
	r.Remove(old)
	r.Add(newEntry)
}

// Yank returns the current front entry without mutating the ring. It
// returns the empty string if the ring is empty; this is the only storage
// Yank ever reads, so it never allocates new storage beyond the front entry
// (testable property spec.md §8.5).
func (r *KillRing) Yank() string {
	if r.entries == nil || r.entries.Len() == 0 {
		return ""
	}
	return r.entries.Front().Value.(string)
}

// Rotate moves the current front entry to the back of the ring and returns
// the new front (yank-pop).
func (r *KillRing) Rotate() string {
	if r.entries == nil || r.entries.Len() <= 1 {
		return r.Yank()
	}
	front := r.entries.Front()
	r.entries.MoveToBack(front)
	return r.Yank()
}

// AppendFront appends s to the current front entry, starting a new entry if
// the ring is empty. Used by kill-line/kill-word style commands that
// continue a run of same-kind kills (spec.md §4.4).
func (r *KillRing) AppendFront(s string) {
	if s == "" {
		return
	}
	if r.entries == nil {
		r.entries = list.New()
	}
	if r.entries.Len() == 0 {
		r.entries.PushFront(s)
		return
	}
	front := r.entries.Front()
	front.Value = front.Value.(string) + s
}

// PrependFront prepends s to the current front entry, starting a new entry
// if the ring is empty. Used by backward-kill-word style commands.
func (r *KillRing) PrependFront(s string) {
	if s == "" {
		return
	}
	if r.entries == nil {
		r.entries = list.New()
	}
	if r.entries.Len() == 0 {
		r.entries.PushFront(s)
		return
	}
	front := r.entries.Front()
	front.Value = s + front.Value.(string)
}

// Len reports the number of entries currently in the ring.
func (r *KillRing) Len() int {
	if r.entries == nil {
		return 0
	}
	return r.entries.Len()
}
