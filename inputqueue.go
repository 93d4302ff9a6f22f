package lineedit

import (
	"io"
	"time"
	"unicode/utf8"

	"golang.org/x/sys/unix"
)

// defaultEscapeDelay is fish_escape_delay_ms's default (spec.md §4.2).
const defaultEscapeDelay = 30 * time.Millisecond

// minEscapeDelay and maxEscapeDelay bound the env-configurable escape delay.
const (
	minEscapeDelay = 10 * time.Millisecond
	maxEscapeDelay = 5000 * time.Millisecond
)

// clampEscapeDelay applies the [10ms, 5000ms] bound from spec.md §4.2 to a
// user-supplied fish_escape_delay_ms value.
func clampEscapeDelay(d time.Duration) time.Duration {
	if d < minEscapeDelay {
		return minEscapeDelay
	}
	if d > maxEscapeDelay {
		return maxEscapeDelay
	}
	return d
}

// ByteQueue is the Input Byte Queue (spec.md §4.2): a single-threaded,
// cooperatively blocked source of Events, decoded from raw terminal bytes
// through a stateful multibyte decoder.
type ByteQueue interface {
	// ReadEvent blocks until a byte is decoded into an Event, or a side
	// channel (worker completion, uvar notification) becomes readable, in
	// which case the registered hook runs and EventCheckExit is returned.
	ReadEvent() Event
	// ReadEventTimeout behaves like ReadEvent but gives up after d,
	// returning ok=false. Used solely for escape-sequence disambiguation.
	ReadEventTimeout(d time.Duration) (ev Event, ok bool)
	// PushFront returns ev before any further byte is read.
	PushFront(ev Event)
	// PushBack queues ev behind any events already pushed; like PushFront,
	// pushed events are returned before any further byte is read.
	PushBack(ev Event)
	// PromoteInterruptions moves any queued non-char events to the front,
	// preserving their relative order.
	PromoteInterruptions()
}

// SideChannel is a file descriptor the queue multiplexes alongside the
// input fd. When it becomes readable, Hook runs on the main thread and the
// queue returns EventCheckExit to its caller.
type SideChannel struct {
	FD   int
	Hook func()
}

// TTYQueue is the concrete ByteQueue backed by a terminal file descriptor,
// multiplexed via unix.Select with worker-completion and uvar-notification
// side channels (spec.md §5 "Worker → main"). It generalizes the teacher's
// inline buffering in Prompt.ReadLine (prompt.go's p.inBytes/p.inBuf
// handling) into a standalone, reusable component that additionally owns
// the multibyte decoder so no other component ever touches decoder state.
type TTYQueue struct {
	fd       int
	r        io.Reader
	sides    []SideChannel
	readBuf  [256]byte
	leftover []byte   // undecoded bytes carried across reads
	decoded  []Event  // fully decoded events awaiting delivery, FIFO
	pushed   []Event  // events pushed to the front, highest priority
	escDelay time.Duration
}

// NewTTYQueue creates a queue reading from r. fd is the file descriptor
// backing r if known (-1 disables select-based multiplexing, e.g. when
// reading from a test pipe); sides are additional fds to multiplex.
func NewTTYQueue(fd int, r io.Reader, escDelay time.Duration, sides ...SideChannel) *TTYQueue {
	if escDelay <= 0 {
		escDelay = defaultEscapeDelay
	}
	return &TTYQueue{fd: fd, r: r, sides: sides, escDelay: clampEscapeDelay(escDelay)}
}

func (q *TTYQueue) PushFront(ev Event) { q.pushed = append([]Event{ev}, q.pushed...) }
func (q *TTYQueue) PushBack(ev Event)  { q.pushed = append(q.pushed, ev) }

// PromoteInterruptions moves queued non-char events to the front, in their
// relative order, ahead of queued char events.
func (q *TTYQueue) PromoteInterruptions() {
	var front, back []Event
	for _, ev := range q.pushed {
		if ev.Kind == EventChar {
			back = append(back, ev)
		} else {
			front = append(front, ev)
		}
	}
	q.pushed = append(front, back...)
}

func (q *TTYQueue) ReadEvent() Event {
	ev, _ := q.readEvent(-1)
	return ev
}

func (q *TTYQueue) ReadEventTimeout(d time.Duration) (Event, bool) {
	return q.readEvent(d)
}

// readEvent is the shared implementation. timeout < 0 means block
// indefinitely.
func (q *TTYQueue) readEvent(timeout time.Duration) (Event, bool) {
	if len(q.pushed) > 0 {
		ev := q.pushed[0]
		q.pushed = q.pushed[1:]
		return ev, true
	}
	if len(q.decoded) > 0 {
		ev := q.decoded[0]
		q.decoded = q.decoded[1:]
		return ev, true
	}

	if q.fd < 0 {
		n, err := q.r.Read(q.readBuf[:])
		if err != nil {
			return Event{Kind: EventEOF}, true
		}
		return q.ingest(q.readBuf[:n])
	}

	for {
		ok, checkExit := q.wait(timeout)
		if checkExit {
			return Event{Kind: EventCheckExit}, true
		}
		if !ok {
			return Event{}, false
		}
		n, err := q.r.Read(q.readBuf[:])
		if err != nil {
			return Event{Kind: EventEOF}, true
		}
		if n == 0 {
			continue
		}
		return q.ingest(q.readBuf[:n])
	}
}

// wait multiplexes the input fd and side channels via select. It returns
// ok=false on timeout (only meaningful when timeout >= 0), and
// checkExit=true if a side channel fired (its hook has already run).
func (q *TTYQueue) wait(timeout time.Duration) (ok bool, checkExit bool) {
	rfds := &unix.FdSet{}
	rfds.Set(q.fd)
	maxFD := q.fd
	for _, s := range q.sides {
		rfds.Set(s.FD)
		if s.FD > maxFD {
			maxFD = s.FD
		}
	}

	var tv *unix.Timeval
	if timeout >= 0 {
		t := unix.NsecToTimeval(timeout.Nanoseconds())
		tv = &t
	}

	n, err := unix.Select(maxFD+1, rfds, nil, nil, tv)
	if err == unix.EINTR {
		return q.wait(timeout)
	}
	if err != nil {
		return false, false
	}
	if n == 0 {
		return false, false
	}
	if rfds.IsSet(q.fd) {
		return true, false
	}
	for _, s := range q.sides {
		if rfds.IsSet(s.FD) {
			if s.Hook != nil {
				s.Hook()
			}
			return false, true
		}
	}
	return false, false
}

// ingest appends freshly read bytes to any undecoded remainder, decodes as
// many complete code points as possible into q.decoded, and returns the
// first one. Any trailing partial sequence is kept in q.leftover for the
// next read (the "mbstate_t-equivalent" persisting across calls, spec.md
// §4.2).
func (q *TTYQueue) ingest(b []byte) (Event, bool) {
	buf := append(q.leftover, b...)
	q.leftover = nil

	for len(buf) > 0 {
		if !utf8.FullRune(buf) {
			if len(buf) >= utf8.UTFMax {
				// An illegal/incomplete byte that can never become a full
				// rune: reset the decoder and surface CheckExit.
				q.decoded = append(q.decoded, Event{Kind: EventCheckExit})
				buf = buf[1:]
				continue
			}
			q.leftover = append([]byte(nil), buf...)
			break
		}
		r, size := utf8.DecodeRune(buf)
		if r == utf8.RuneError && size <= 1 {
			q.decoded = append(q.decoded, Event{Kind: EventCheckExit})
			buf = buf[1:]
			continue
		}
		q.decoded = append(q.decoded, charEvent(r, StyleNormal))
		buf = buf[size:]
	}

	if len(q.decoded) == 0 {
		// Only a partial sequence was read; caller must read more.
		return q.readEvent(-1)
	}
	ev := q.decoded[0]
	q.decoded = q.decoded[1:]
	return ev, true
}
