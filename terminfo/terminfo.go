// Package terminfo implements the Terminfo Adapter (spec.md §4.1): it
// resolves key names to and from terminal byte sequences, emits cursor
// motion/clear/color control sequences, and exposes the handful of terminal
// traits that affect the Differential Renderer's soft-wrap bookkeeping.
//
// Unlike the teacher (petermattis/prompt), which deliberately hardcodes a
// ~75%-of-terminals ANSI subset to avoid terminfo entirely, this package
// wraps github.com/xo/terminfo so the core can run correctly against the
// terminal named by $TERM rather than assuming xterm-compatible ANSI.
package terminfo

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-runewidth"
	"github.com/xo/terminfo"
)

// Traits are the terminal behaviors the Differential Renderer must account
// for (spec.md §4.1).
type Traits struct {
	// AutoRightMargin: the cursor sticks in the last column instead of
	// wrapping immediately.
	AutoRightMargin bool
	// EatNewlineGlitch: a newline emitted at the wrap point is absorbed
	// rather than producing a visible blank line.
	EatNewlineGlitch bool
	// CursorDownIsNewline: cursor_down is literally "\n", so moving down
	// also returns the cursor to column 0 (legacy terminals).
	CursorDownIsNewline bool
}

// Adapter resolves capability names to byte sequences (and back) and emits
// output primitives through tparm-style parameter substitution.
type Adapter struct {
	ti     *terminfo.Terminfo
	dumb   bool
	traits Traits

	// nameSeq/seqName are the fixed, priority-ordered key name
	// table (spec.md §4.1 "all_names"), populated from the loaded
	// terminfo's key_* string capabilities and, for capabilities the
	// loaded database lacks, from builtinKeySeqs (grounded on the
	// teacher's supportedSeqs table in input.go).
	nameSeq map[string]string
	seqName []nameAndSeq
}

type nameAndSeq struct {
	name string
	seq  string
}

// Load resolves termName (typically $TERM) to an Adapter. If the terminfo
// database lacks an entry, or termName is "dumb", the Adapter degrades to
// write-only mode (Dumb() returns true) and Renderer callers must use the
// no-diff fallback path (spec.md §4.1 "On a dumb terminal").
func Load(termName string) (*Adapter, error) {
	a := &Adapter{nameSeq: make(map[string]string)}

	if termName == "" {
		termName = os.Getenv("TERM")
	}
	if termName == "dumb" || termName == "" {
		a.dumb = true
		a.buildNameTable()
		return a, nil
	}

	ti, err := terminfo.Load(termName)
	if err != nil {
		// Fall back to the builtin ANSI table rather than failing the
		// whole adapter; a missing terminfo entry degrades capability, it
		// does not make the terminal unusable (spec.md §7 only treats
		// setupterm failure as fatal when there is no reasonable
		// fallback).
		a.dumb = true
		a.buildNameTable()
		return a, nil
	}

	a.ti = ti
	a.traits = Traits{
		AutoRightMargin:     ti.Has(terminfo.AutoRightMargin),
		EatNewlineGlitch:    ti.Has(terminfo.EatNewlineGlitch),
		CursorDownIsNewline: ti.Printf(terminfo.CursorDown) == "\n",
	}
	a.dumb = !(ti.Has(terminfo.CursorUp) || ti.Printf(terminfo.CursorAddress, 0, 0) != "")
	a.buildNameTable()
	return a, nil
}

// Dumb reports whether the adapter lacks the cursor motion capabilities the
// Differential Renderer needs for incremental updates.
func (a *Adapter) Dumb() bool { return a.dumb }

// Traits returns the terminal behavior flags (spec.md §4.1).
func (a *Adapter) Traits() Traits { return a.traits }

// SequenceForName looks up a capability by name (e.g. "key_up"), returning
// its byte sequence and true if known.
func (a *Adapter) SequenceForName(name string) (string, bool) {
	s, ok := a.nameSeq[name]
	return s, ok
}

// NameForSequence performs the reverse lookup: the first name (in
// priority order) whose sequence matches seq exactly.
func (a *Adapter) NameForSequence(seq string) (string, bool) {
	for _, e := range a.seqName {
		if e.seq == seq {
			return e.name, true
		}
	}
	return "", false
}

// AllNames enumerates known capability names. If skipEmpty is true, names
// whose sequence is empty (capability absent from the database) are
// omitted.
func (a *Adapter) AllNames(skipEmpty bool) []string {
	names := make([]string, 0, len(a.seqName))
	for _, e := range a.seqName {
		if skipEmpty && e.seq == "" {
			continue
		}
		names = append(names, e.name)
	}
	return names
}

// MoveCursor writes the escape sequence(s) to move the cursor by (dx, dy)
// relative to its current position, to sink.
func (a *Adapter) MoveCursor(dx, dy int, sink io.Writer) {
	if a.dumb {
		return
	}
	if dy < 0 {
		a.writeParam(sink, terminfo.CursorUp, -dy, terminfo.ParmUpCursor)
	} else if dy > 0 {
		a.writeParam(sink, terminfo.CursorDown, dy, terminfo.ParmDownCursor)
	}
	if dx < 0 {
		a.writeParam(sink, terminfo.CursorLeft, -dx, terminfo.ParmLeftCursor)
	} else if dx > 0 {
		a.writeParam(sink, terminfo.CursorRight, dx, terminfo.ParmRightCursor)
	}
}

// writeParam emits n repetitions of single, or the parameterized capability
// parm(n) when n > 1 and the terminal supports it.
func (a *Adapter) writeParam(sink io.Writer, single int, n int, parm int) {
	if n <= 0 {
		return
	}
	if a.ti == nil {
		return
	}
	if n > 1 {
		if s := a.ti.Printf(parm, n); s != "" {
			io.WriteString(sink, s)
			return
		}
	}
	for i := 0; i < n; i++ {
		io.WriteString(sink, a.ti.Printf(single))
	}
}

// MoveTo writes the escape sequence to move the cursor to absolute (col,
// row), 0-indexed.
func (a *Adapter) MoveTo(col, row int, sink io.Writer) {
	if a.dumb || a.ti == nil {
		return
	}
	io.WriteString(sink, a.ti.Printf(terminfo.CursorAddress, row, col))
}

// SetColors emits the capability(ies) to set foreground/background color.
// Values < 0 mean "leave unchanged".
func (a *Adapter) SetColors(fg, bg int, sink io.Writer) {
	if a.dumb {
		a.setColorsFallback(fg, bg, sink)
		return
	}
	if a.ti == nil {
		a.setColorsFallback(fg, bg, sink)
		return
	}
	if fg >= 0 {
		if s := a.ti.Printf(terminfo.SetAForeground, fg); s != "" {
			io.WriteString(sink, s)
		} else {
			fmt.Fprintf(sink, "\x1b[38;5;%dm", fg)
		}
	}
	if bg >= 0 {
		if s := a.ti.Printf(terminfo.SetABackground, bg); s != "" {
			io.WriteString(sink, s)
		} else {
			fmt.Fprintf(sink, "\x1b[48;5;%dm", bg)
		}
	}
}

func (a *Adapter) setColorsFallback(fg, bg int, sink io.Writer) {
	if fg >= 0 {
		fmt.Fprintf(sink, "\x1b[38;5;%dm", fg)
	}
	if bg >= 0 {
		fmt.Fprintf(sink, "\x1b[48;5;%dm", bg)
	}
}

// ClearToEOL writes the clear-to-end-of-line capability.
func (a *Adapter) ClearToEOL(sink io.Writer) {
	if a.dumb || a.ti == nil {
		io.WriteString(sink, "\x1b[K")
		return
	}
	io.WriteString(sink, a.ti.Printf(terminfo.ClrEol))
}

// ClearToEOS writes the clear-to-end-of-screen capability, if present.
func (a *Adapter) ClearToEOS(sink io.Writer) bool {
	if a.dumb || a.ti == nil {
		return false
	}
	if !a.ti.Has(terminfo.ClrEos) {
		return false
	}
	io.WriteString(sink, a.ti.Printf(terminfo.ClrEos))
	return true
}

// WriteChar writes a single code point, accounting for zero-width
// combining marks (which are always emitted without advancing the tracked
// cursor column by the caller).
func (a *Adapter) WriteChar(cp rune, sink io.Writer) {
	var buf bytes.Buffer
	buf.WriteRune(cp)
	sink.Write(buf.Bytes())
}

// WidthOf returns a code point's display width, treating width < 1
// (combining marks) as 0 per spec.md §4.9.
func WidthOf(cp rune) int {
	w := runewidth.RuneWidth(cp)
	if w < 1 {
		return 0
	}
	return w
}
