package lineedit

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Diagnostics is the editor's structured, rate-limited logger, generalizing
// the teacher's single debugPrintf sink (debug.go) into a zerolog.Logger
// gated by the LINEEDIT_DEBUG_LOG environment variable, plus a per-event-kind
// rate limit so a pathological burst of input events (e.g. a fast paste)
// can't flood the debug file.
type Diagnostics struct {
	logger  zerolog.Logger
	enabled bool

	mu       sync.Mutex
	lastSeen map[string]time.Time
	minGap   time.Duration
}

var diagOnce sync.Once
var diagShared *Diagnostics

// Diag returns the process-wide Diagnostics instance, opening the file
// named by LINEEDIT_DEBUG_LOG on first use (mirroring the teacher's
// PROMPT_DEBUG env var, debug.go's initDebug).
func Diag() *Diagnostics {
	diagOnce.Do(func() {
		diagShared = newDiagnostics(os.Getenv("LINEEDIT_DEBUG_LOG"))
	})
	return diagShared
}

func newDiagnostics(path string) *Diagnostics {
	d := &Diagnostics{lastSeen: make(map[string]time.Time), minGap: 5 * time.Millisecond}
	if path == "" {
		d.logger = zerolog.Nop()
		return d
	}
	f, err := os.Create(path)
	if err != nil {
		d.logger = zerolog.Nop()
		return d
	}
	d.enabled = true
	d.logger = zerolog.New(f).With().Timestamp().Logger()
	return d
}

// Event logs one named occurrence with fields, dropping repeats of the same
// key that arrive faster than minGap (spec.md's ambient logging concern: an
// input storm must not itself become a performance problem).
func (d *Diagnostics) Event(key string, fields map[string]interface{}) {
	if d == nil || !d.enabled {
		return
	}
	d.mu.Lock()
	last, seen := d.lastSeen[key]
	now := time.Now()
	if seen && now.Sub(last) < d.minGap {
		d.mu.Unlock()
		return
	}
	d.lastSeen[key] = now
	d.mu.Unlock()

	ev := d.logger.Debug().Str("event", key)
	for k, v := range fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(key)
}

// Key logs one decoded input event, the direct replacement for the
// teacher's debugPrintf(" input: %q -> %s\n", ...) call in
// processInputLocked (prompt.go).
func (d *Diagnostics) Key(raw string, ev Event) {
	if d == nil || !d.enabled {
		return
	}
	d.Event("input", map[string]interface{}{"raw": raw, "event": ev.String()})
}

// Error logs an unexpected but non-fatal condition (e.g. a malformed
// history file line).
func (d *Diagnostics) Error(msg string, err error) {
	if d == nil || !d.enabled {
		return
	}
	d.logger.Error().Err(err).Msg(msg)
}
