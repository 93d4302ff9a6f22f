package lineedit

import "github.com/jcorbin/lineedit/terminfo"

// ModeDefault is the mode name used when no user $fish_bind_mode override is
// active (spec.md §5 "fish_bind_mode").
const ModeDefault = "default"

// namedSeq turns each rune of s into a []CodePoint sequence.
func namedSeq(s string) []CodePoint {
	seq := make([]CodePoint, 0, len(s))
	for _, r := range s {
		seq = append(seq, CodePoint(r))
	}
	return seq
}

// ctrl returns the control-code sequence for an ASCII letter, e.g. ctrl('a')
// == 1.
func ctrl(c byte) []CodePoint {
	return []CodePoint{CodePoint(c&0x1f)}
}

// DefaultBindings builds the preset InputMappingSet for ModeDefault,
// generalizing the teacher's defaultBindings DSL string (bind.go) to the
// full command set of commands.go. Arrow/navigation keys are resolved
// through adapter so the actual sequence matches the terminal named by
// $TERM rather than the teacher's single hardcoded xterm-ish table.
func DefaultBindings(adapter *terminfo.Adapter) *InputMappingSet {
	s := NewInputMappingSet()

	add := func(seq []CodePoint, cmd Command) {
		s.AddPreset(Binding{Sequence: seq, Mode: ModeDefault, Command: cmd})
	}
	addNamed := func(name string, cmd Command) {
		if seq, ok := adapter.SequenceForName(name); ok && seq != "" {
			add(namedSeq(seq), cmd)
		}
	}

	// The generic fallback: anything not otherwise bound is inserted
	// literally (spec.md §4.3 step 5, §4.8 "SelfInsert").
	s.AddPreset(Binding{Mode: ModeDefault, Command: CmdSelfInsert})

	// Control characters, grounded on the teacher's keyCtrlX constants
	// (input.go) mapped onto fish's readline command names instead of the
	// teacher's hardcoded case statements (bind.go's baseCommands).
	add(ctrl('a'), CmdBeginningOfLine)
	add(ctrl('b'), CmdBackwardChar)
	add(ctrl('c'), CmdCancel)
	add(ctrl('d'), CmdExitOrDeleteChar)
	add(ctrl('e'), CmdEndOfLine)
	add(ctrl('f'), CmdForwardChar)
	add(ctrl('g'), CmdCancel)
	add(ctrl('h'), CmdBackwardDeleteChar)
	add(ctrl('k'), CmdKillLine)
	add(ctrl('l'), CmdClearScreen)
	add(ctrl('n'), CmdNextHistory)
	add(ctrl('p'), CmdPreviousHistory)
	add(ctrl('r'), CmdReverseSearchHistory)
	add(ctrl('s'), CmdForwardSearchHistory)
	add(ctrl('t'), CmdTransposeChars)
	add(ctrl('u'), CmdBackwardKillLine)
	add(ctrl('w'), CmdBackwardKillWord)
	add(ctrl('y'), CmdYank)
	add([]CodePoint{127}, CmdBackwardDeleteChar)
	add([]CodePoint{'\r'}, CmdExecute)
	add([]CodePoint{'\n'}, CmdExecute)
	add([]CodePoint{4}, CmdEof)

	// Bare ESC: cancel any in-progress search, otherwise no-op abort
	// (spec.md §4.8 "Escape ... exits search mode").
	add([]CodePoint{keyEscape}, CmdAbort)

	// Meta/Alt-prefixed word motions, grounded on fish's classic
	// M-b/M-f/M-d bindings (input_common's default table).
	add([]CodePoint{keyEscape, 'b'}, CmdBackwardWord)
	add([]CodePoint{keyEscape, 'f'}, CmdForwardWord)
	add([]CodePoint{keyEscape, 'd'}, CmdKillWord)
	add([]CodePoint{keyEscape, 127}, CmdBackwardKillWord)
	add([]CodePoint{keyEscape, 'c'}, CmdCapitalizeWord)
	add([]CodePoint{keyEscape, 'u'}, CmdUpcaseWord)
	add([]CodePoint{keyEscape, 'l'}, CmdDowncaseWord)
	add([]CodePoint{keyEscape, 't'}, CmdTransposeWords)
	add([]CodePoint{keyEscape, '<'}, CmdBeginningOfHistory)
	add([]CodePoint{keyEscape, '>'}, CmdEndOfHistory)
	add([]CodePoint{keyEscape, '.'}, CmdHistoryTokenSearchBack)
	add([]CodePoint{keyEscape, 'y'}, CmdYankPop)
	add([]CodePoint{keyEscape, '\t'}, CmdTabCompleteAndSearch)
	add([]CodePoint{'\t'}, CmdTabComplete)

	// Navigation keys resolved via terminfo (spec.md §4.1); falls back to
	// nothing bound if the terminal/database lacks the capability, which is
	// fine because the generic SelfInsert/drop path still makes progress.
	addNamed("key_up", CmdUpLine)
	addNamed("key_down", CmdDownLine)
	addNamed("key_left", CmdBackwardChar)
	addNamed("key_right", CmdForwardChar)
	addNamed("key_home", CmdBeginningOfLine)
	addNamed("key_end", CmdEndOfLine)
	addNamed("key_dc", CmdDeleteChar)
	addNamed("key_ppage", CmdBeginningOfHistory)
	addNamed("key_npage", CmdEndOfHistory)
	addNamed("key_up_alt", CmdUpLine)
	addNamed("key_down_alt", CmdDownLine)
	addNamed("key_left_alt", CmdBackwardChar)
	addNamed("key_right_alt", CmdForwardChar)
	addNamed("key_home_alt", CmdBeginningOfLine)
	addNamed("key_end_alt", CmdEndOfLine)
	addNamed("key_home_vt", CmdBeginningOfLine)
	addNamed("key_end_vt", CmdEndOfLine)

	return s
}
