package lineedit

import "fmt"

// CodePoint is a 32-bit Unicode code point. Values below 32 and 127 are
// control characters; values at or above privateUseBase encode readline
// commands and synthetic events (spec.md §3 "Code point").
type CodePoint = rune

// InputStyle distinguishes the first character of a run of inserted text
// from the rest. It is carried on EventChar events; no command in the Edit
// Core reads it.
type InputStyle int

const (
	// StyleNormal marks an ordinary self-inserted character.
	StyleNormal InputStyle = iota
	// StyleNotFirst marks a character that is known not to be the first of
	// a batch (see CmdSelfInsertNotFirst).
	StyleNotFirst
)

// EventKind discriminates the tagged union described in spec.md §3.
type EventKind int

const (
	// EventChar carries a literal code point to insert.
	EventChar EventKind = iota
	// EventReadline carries a named edit command.
	EventReadline
	// EventEOF signals that the input stream has ended.
	EventEOF
	// EventCheckExit signals that the reader should check whether it has
	// been asked to exit (interrupted, decoder error, or a side channel
	// became readable).
	EventCheckExit
)

// Event is the tagged union that flows from the Input Byte Queue through the
// Binding Engine into the Edit Core.
type Event struct {
	Kind  EventKind
	Char  CodePoint
	Style InputStyle
	Cmd   Command
	Seq   []CodePoint
}

func charEvent(cp CodePoint, style InputStyle) Event {
	return Event{Kind: EventChar, Char: cp, Style: style}
}

func readlineEvent(cmd Command, seq []CodePoint) Event {
	return Event{Kind: EventReadline, Cmd: cmd, Seq: seq}
}

func (e Event) String() string {
	switch e.Kind {
	case EventChar:
		return fmt.Sprintf("char(%q)", e.Char)
	case EventReadline:
		return fmt.Sprintf("readline(%s)", e.Cmd)
	case EventEOF:
		return "eof"
	case EventCheckExit:
		return "check-exit"
	default:
		return "event(?)"
	}
}

// Private-use code point range used to smuggle readline commands and
// synthetic keys through a rune channel at the Binding Engine/Input Byte
// Queue boundary only; everywhere else in the core a proper Event is used.
const privateUseBase CodePoint = 0x100000

// isControl reports whether cp is a C0 control character or DEL.
func isControl(cp CodePoint) bool {
	return cp < 32 || cp == 127
}

// isPrivate reports whether cp lies in the private range reserved for
// synthetic commands.
func isPrivate(cp CodePoint) bool {
	return cp >= privateUseBase
}
