// Package history implements the History Store (spec.md §3/§4.6): an
// append-only, session-scoped list of commands with prefix/substring
// search cursors, backed by a fish-compatible on-disk format.
//
// It generalizes the teacher's fixed-size circular history buffer
// (petermattis/prompt's history.go) — which keeps everything in one
// process's memory and never merges with other sessions — into the
// append-only, multi-session model spec.md calls for: new entries this
// session has added, a read-only snapshot of what was on disk at load
// time, and a boundary timestamp that excludes entries written by other
// concurrently-running sessions until MergeNewer recombines them.
package history

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// MatchType selects how Cursor.Term is compared against an Item's text
// (spec.md §4.6 "search_mode").
type MatchType int

const (
	MatchPrefix MatchType = iota
	MatchContains
)

// Direction selects which way a Cursor steps through matches.
type Direction int

const (
	DirBackward Direction = iota
	DirForward
)

// Item is one history entry.
type Item struct {
	Text          string
	Timestamp     time.Time
	RequiredPaths []string
}

// Cursor tracks an in-progress history search (spec.md §4.6
// "search_cursor"): the search term, the match discipline, the direction
// of the last step, and the position (0 = newest) of the last match
// returned.
type Cursor struct {
	Term     string
	Match    MatchType
	Dir      Direction
	Position int
}

func (it Item) matches(c *Cursor) bool {
	if c.Term == "" {
		return true
	}
	switch c.Match {
	case MatchContains:
		return strings.Contains(it.Text, c.Term)
	default:
		return strings.HasPrefix(it.Text, c.Term)
	}
}

// Store holds one session's view of a named history (spec.md §4.6). The
// zero value is usable as an empty, unnamed (non-persisted) store.
type Store struct {
	mu sync.Mutex

	name string
	path string

	// oldItems is the read-only snapshot loaded from disk at Load time,
	// newest first.
	oldItems []Item
	// newItems are items Add has appended this session, oldest first;
	// they are not visible to other concurrently-running sessions until
	// Save merges them onto disk.
	newItems []Item
	// pending is an item being composed but not yet committed (the
	// in-progress command line), analogous to the teacher's h.pending.
	pending string

	// deleted tracks text explicitly removed via Delete so a later
	// MergeNewer does not resurrect it.
	deleted map[string]bool

	// boundary is the timestamp above which items were written by
	// another, concurrently-running session (spec.md §4.6 "boundary
	// timestamp"); MergeNewer folds those items in without duplicating
	// ones this session already knows about.
	boundary time.Time
}

// NewStore returns an empty, unnamed (in-memory only) store. Use
// OpenFileStore to attach on-disk persistence.
func NewStore() *Store {
	return &Store{deleted: make(map[string]bool)}
}

// Name reports the history's name (e.g. "fish" for the main history), or
// "" for an unnamed in-memory store.
func (s *Store) Name() string { return s.name }

// SetPending records the in-progress command line so it can be restored
// when history navigation returns to position -1, mirroring the teacher's
// h.pending (history.go).
func (s *Store) SetPending(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = text
}

// Add appends a new item, eliding it if it is textually identical to the
// most recent item (spec.md §4.6 "Adjacent duplicate ... suppressed").
func (s *Store) Add(item Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if last, ok := s.latestLocked(); ok && last.Text == item.Text {
		return
	}
	if item.Timestamp.IsZero() {
		item.Timestamp = timeNow()
	}
	delete(s.deleted, item.Text)
	s.newItems = append(s.newItems, item)
	s.pending = ""
}

// Delete removes all items (old and new) with the given text and
// remembers the deletion so a later merge does not resurrect it.
func (s *Store) Delete(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted[text] = true
	s.newItems = removeText(s.newItems, text)
	s.oldItems = removeText(s.oldItems, text)
}

func removeText(items []Item, text string) []Item {
	out := items[:0]
	for _, it := range items {
		if it.Text != text {
			out = append(out, it)
		}
	}
	return out
}

func (s *Store) latestLocked() (Item, bool) {
	if n := len(s.newItems); n > 0 {
		return s.newItems[n-1], true
	}
	if n := len(s.oldItems); n > 0 {
		return s.oldItems[0], true
	}
	return Item{}, false
}

// allLocked returns every known item, newest first: new items (reversed)
// then the old-items snapshot (already newest first).
func (s *Store) allLocked() []Item {
	all := make([]Item, 0, len(s.newItems)+len(s.oldItems))
	for i := len(s.newItems) - 1; i >= 0; i-- {
		if !s.deleted[s.newItems[i].Text] {
			all = append(all, s.newItems[i])
		}
	}
	for _, it := range s.oldItems {
		if !s.deleted[it.Text] {
			all = append(all, it)
		}
	}
	return all
}

// Items returns every known item, newest first.
func (s *Store) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.allLocked()
}

// Search advances c in the direction requested (setting c.Dir) and
// returns the next matching item at or beyond c.Position, updating
// c.Position. ok is false if no further match exists, in which case c is
// left unmodified.
func (s *Store) Search(c *Cursor, dir Direction) (Item, bool) {
	s.mu.Lock()
	all := s.allLocked()
	s.mu.Unlock()

	step := 1
	if dir == DirForward {
		step = -1
	}

	var start int
	if c.Dir != dir {
		// Changing direction re-examines the current position before
		// moving past it, matching the teacher's searchEntry i==h.index
		// "advance" handling (history.go).
		start = c.Position
	} else {
		start = c.Position + step
	}

	for i := start; i >= 0 && i < len(all); i += step {
		if all[i].matches(c) {
			c.Position = i
			c.Dir = dir
			return all[i], true
		}
	}
	return Item{}, false
}

// MergeNewer folds in items from other, already-sorted by timestamp
// ascending, that this store has not already recorded and that were not
// explicitly deleted, advancing the boundary timestamp (spec.md §4.6
// "boundary timestamp").
func (s *Store) MergeNewer(other []Item) {
	s.mu.Lock()
	defer s.mu.Unlock()

	known := make(map[string]bool, len(s.newItems)+len(s.oldItems))
	for _, it := range s.newItems {
		known[it.Text] = true
	}
	for _, it := range s.oldItems {
		known[it.Text] = true
	}

	merged := append([]Item(nil), other...)
	for _, it := range merged {
		if known[it.Text] || s.deleted[it.Text] {
			continue
		}
		if it.Timestamp.After(s.boundary) {
			s.boundary = it.Timestamp
		}
		s.oldItems = append([]Item{it}, s.oldItems...)
	}
	sort.SliceStable(s.oldItems, func(i, j int) bool {
		return s.oldItems[i].Timestamp.After(s.oldItems[j].Timestamp)
	})
}

// timeNow exists so tests can override "now" without depending on a
// disallowed wall-clock call inside hot dispatch paths.
var timeNow = time.Now
