package lineedit

import (
	"strings"
	"unicode"

	"github.com/jcorbin/lineedit/history"
)

// searchMode names the history-search sub-state of the Edit Core (spec.md
// §4.8 "search_mode").
type searchMode int

const (
	searchNone searchMode = iota
	searchLine
	searchToken
)

// ColorSpan marks a contiguous run of the buffer with a highlight/color
// value, generalizing the teacher's attrInfo (screen.go) from a
// rendering-only concept into something the async Highlighter can produce
// independently of the Differential Renderer.
type ColorSpan struct {
	Start, End int
	Value      string
}

// EditCore holds all line-editing state: the buffer, cursor, kill ring,
// history search state, and the generation counter that gates
// asynchronous highlighter/autosuggester results (spec.md §3 "Edit
// buffer", §5 "generation counter").
//
// It generalizes the teacher's screen struct (screen.go), which couples
// buffer state directly to terminal output, into a pure data model: all
// terminal I/O lives in render.go's Renderer instead, which diffs
// EditCore's current text/cursor against what's on screen.
type EditCore struct {
	buffer    []rune
	cursor    int
	wordStyle WordStyle
	mark      int
	hasMark   bool

	colors        []ColorSpan
	autosuggest   string
	generation    uint64

	kill *KillRing
	// lastWasKill records whether the previous dispatched command was
	// a kill, so consecutive kills accumulate into one ring entry instead
	// of each pushing a new one (spec.md §4.4).
	lastWasKill bool
	// lastWasYank records whether the previous command was Yank/YankPop,
	// the precondition for YankPop (spec.md §4.4 "Valid only immediately
	// after Yank/YankPop").
	lastWasYank bool
	yankStart   int // buffer offset where the most recent yank begins

	hist       *history.Store
	histCursor history.Cursor
	mode       searchMode
	searchBuf  []rune // text typed into the search prompt
	pendingBuf []rune // buffer snapshot to restore on search-abort
	pendingPos int

	tokenSearchBuf string
	tokenSearchPos int

	// testFunc decides whether Execute should commit the buffer or insert
	// a literal newline (spec.md §4.8 "Execute"). nil means always
	// complete.
	testFunc func(text string) bool

	// completer backs CmdTabComplete/CmdTabCompleteAndSearch; nil means
	// those commands are no-ops (spec.md §4.8 "Call the completion engine
	// (external)").
	completer Completer
}

// NewEditCore returns an empty Edit Core backed by the given history store
// (may be nil to disable history) and kill ring.
func NewEditCore(hist *history.Store, kill *KillRing) *EditCore {
	if kill == nil {
		kill = NewKillRing()
	}
	return &EditCore{kill: kill, hist: hist, wordStyle: WordStylePunctuation}
}

// SetTestFunc installs the external "is this buffer a complete command"
// predicate used by CmdExecute.
func (e *EditCore) SetTestFunc(f func(string) bool) { e.testFunc = f }

// SetCompleter installs the completion engine used by CmdTabComplete and
// CmdTabCompleteAndSearch.
func (e *EditCore) SetCompleter(c Completer) { e.completer = c }

// Text returns the current buffer contents.
func (e *EditCore) Text() string { return string(e.buffer) }

// Cursor returns the current cursor offset (in runes).
func (e *EditCore) Cursor() int { return e.cursor }

// Generation returns the counter incremented on every edit, used by
// asynchronous jobs to discard stale results (spec.md §5).
func (e *EditCore) Generation() uint64 { return e.generation }

// Colors returns the current highlight spans.
func (e *EditCore) Colors() []ColorSpan { return e.colors }

// SetColors installs highlight spans produced by an async highlighter job,
// if gen still matches the current generation (otherwise the result is
// stale and is dropped).
func (e *EditCore) SetColors(gen uint64, spans []ColorSpan) bool {
	if gen != e.generation {
		return false
	}
	e.colors = spans
	return true
}

// Autosuggestion returns the current autosuggestion tail (the part of a
// suggested command after the buffer's own text).
func (e *EditCore) Autosuggestion() string { return e.autosuggest }

// SetAutosuggestion installs an autosuggestion produced by an async job, if
// gen still matches and the suggestion is still a case-insensitive
// superstring of the buffer (spec.md §4.7).
func (e *EditCore) SetAutosuggestion(gen uint64, full string) bool {
	if gen != e.generation {
		return false
	}
	if !strings.HasPrefix(strings.ToLower(full), strings.ToLower(string(e.buffer))) {
		return false
	}
	e.autosuggest = full[len(string(e.buffer)):]
	return true
}

// ClearAutosuggestion discards any current autosuggestion.
func (e *EditCore) ClearAutosuggestion() { e.autosuggest = "" }

// Reset clears the buffer for a new line, preserving history/kill ring.
func (e *EditCore) Reset() {
	e.buffer = nil
	e.cursor = 0
	e.mark = 0
	e.hasMark = false
	e.colors = nil
	e.autosuggest = ""
	e.mode = searchNone
	e.lastWasKill = false
	e.lastWasYank = false
	e.generation++
}

func (e *EditCore) bump() { e.generation++ }

// setText replaces the whole buffer and places the cursor at the given
// offset (clamped).
func (e *EditCore) setText(text string, pos int) {
	e.buffer = []rune(text)
	if pos < 0 {
		pos = 0
	}
	if pos > len(e.buffer) {
		pos = len(e.buffer)
	}
	e.cursor = pos
	e.colors = nil
	e.bump()
}

func (e *EditCore) insertAt(pos int, text []rune) {
	e.buffer = append(e.buffer[:pos], append(append([]rune(nil), text...), e.buffer[pos:]...)...)
	e.bump()
}

func (e *EditCore) eraseRange(start, end int) string {
	if start > end {
		start, end = end, start
	}
	if start < 0 {
		start = 0
	}
	if end > len(e.buffer) {
		end = len(e.buffer)
	}
	if start >= end {
		return ""
	}
	erased := string(e.buffer[start:end])
	e.buffer = append(e.buffer[:start], e.buffer[end:]...)
	if e.cursor > end {
		e.cursor -= end - start
	} else if e.cursor > start {
		e.cursor = start
	}
	e.bump()
	return erased
}

// nextGraphemeEnd/prevGraphemeStart delegate to the grapheme helpers
// (grapheme.go) so cursor motion and rendering agree on cluster
// boundaries; declared here to keep Dispatch self-contained.
func (e *EditCore) nextGraphemeEnd() int  { return graphemeEnd(e.buffer, e.cursor) }
func (e *EditCore) prevGraphemeStart() int { return graphemeStart(e.buffer, e.cursor) }

// lineStart/lineEnd return the nearest '\n' bound around the cursor without
// crossing it (spec.md §4.8 "BeginningOfLine"/"EndOfLine" on multi-line
// buffers).
func (e *EditCore) lineStart() int {
	i := e.cursor
	for i > 0 && e.buffer[i-1] != '\n' {
		i--
	}
	return i
}

func (e *EditCore) lineEnd() int {
	i := e.cursor
	for i < len(e.buffer) && e.buffer[i] != '\n' {
		i++
	}
	return i
}

// lineMove returns the cursor offset for moving one logical line up
// (delta<0) or down (delta>0), holding the rune column within the line
// steady (clamped to the target line's length). This is a rune-column
// simplification of spec.md §4.8's "same visual column": true display-width
// column tracking needs the terminal width available to Layout/Renderer,
// not EditCore (see DESIGN.md Open Questions).
func (e *EditCore) lineMove(delta int) int {
	start := e.lineStart()
	col := e.cursor - start
	if delta < 0 {
		if start == 0 {
			return e.cursor
		}
		prevEnd := start - 1
		prevStart := prevEnd
		for prevStart > 0 && e.buffer[prevStart-1] != '\n' {
			prevStart--
		}
		if lineLen := prevEnd - prevStart; col > lineLen {
			col = lineLen
		}
		return prevStart + col
	}
	end := e.lineEnd()
	if end == len(e.buffer) {
		return e.cursor
	}
	nextStart := end + 1
	nextEnd := nextStart
	for nextEnd < len(e.buffer) && e.buffer[nextEnd] != '\n' {
		nextEnd++
	}
	if lineLen := nextEnd - nextStart; col > lineLen {
		col = lineLen
	}
	return nextStart + col
}

// Dispatch applies one readline command to the Edit Core, returning
// whether the reader loop should stop reading this line (Execute, Eof,
// Cancel with an empty buffer).
func (e *EditCore) Dispatch(ev Event) (done bool, eof bool) {
	cmd := ev.Cmd

	if e.mode != searchNone && !e.inSearchCommand(cmd) {
		e.exitSearch(true)
	}
	if e.tokenSearchBuf != "" && !historyTokenSearchCommands[cmd] {
		e.tokenSearchBuf = ""
		e.tokenSearchPos = 0
	}

	if killCommands[cmd] {
		defer func() { e.lastWasKill = true }()
	} else {
		e.lastWasKill = false
	}
	if cmd != CmdYank && cmd != CmdYankPop {
		e.lastWasYank = false
	}

	switch cmd {
	case CmdSelfInsert:
		e.insertAt(e.cursor, ev.Seq)
		e.cursor += len(ev.Seq)
		return false, false

	case CmdSelfInsertNotFirst:
		if e.cursor > 0 {
			e.insertAt(e.cursor, ev.Seq)
			e.cursor += len(ev.Seq)
		}
		return false, false

	case CmdNewline:
		e.insertAt(e.cursor, []rune{'\n'})
		e.cursor++
		return false, false

	case CmdForwardChar:
		if e.cursor == len(e.buffer) && e.autosuggest != "" {
			e.insertAt(e.cursor, []rune(e.autosuggest))
			e.cursor = len(e.buffer)
			e.autosuggest = ""
		} else {
			e.cursor = e.nextGraphemeEnd()
		}
	case CmdBackwardChar:
		e.cursor = e.prevGraphemeStart()
	case CmdDeleteChar:
		e.eraseRange(e.cursor, e.nextGraphemeEnd())
	case CmdBackwardDeleteChar:
		e.eraseRange(e.prevGraphemeStart(), e.cursor)
	case CmdExitOrDeleteChar:
		if len(e.buffer) == 0 {
			return true, true
		}
		e.eraseRange(e.cursor, e.nextGraphemeEnd())

	case CmdBeginningOfLine:
		e.cursor = e.lineStart()
	case CmdEndOfLine:
		e.cursor = e.lineEnd()

	case CmdUpLine:
		e.cursor = e.lineMove(-1)
	case CmdDownLine:
		e.cursor = e.lineMove(1)

	case CmdForwardWord:
		e.cursor = nextWordEnd(e.buffer, e.cursor, e.wordStyle)
	case CmdBackwardWord:
		e.cursor = prevWordStart(e.buffer, e.cursor, e.wordStyle)

	case CmdKillWord:
		end := nextWordEnd(e.buffer, e.cursor, e.wordStyle)
		e.killSpan(e.cursor, end, true)
	case CmdBackwardKillWord:
		start := prevWordStart(e.buffer, e.cursor, e.wordStyle)
		e.killSpan(start, e.cursor, false)
	case CmdKillLine:
		e.killSpan(e.cursor, len(e.buffer), true)
	case CmdBackwardKillLine:
		e.killSpan(0, e.cursor, false)
	case CmdKillWholeLine:
		e.killSpan(0, len(e.buffer), true)
		e.cursor = 0

	case CmdDeleteHorizontalSpace:
		start := e.cursor
		for start > 0 && unicode.IsSpace(e.buffer[start-1]) {
			start--
		}
		end := e.cursor
		for end < len(e.buffer) && unicode.IsSpace(e.buffer[end]) {
			end++
		}
		e.cursor = start
		e.eraseRange(start, end)

	case CmdYank:
		text := e.kill.Yank()
		e.yankStart = e.cursor
		e.insertAt(e.cursor, []rune(text))
		e.cursor += len([]rune(text))
		e.lastWasYank = true
	case CmdYankPop:
		if e.lastWasYank {
			e.eraseRange(e.yankStart, e.cursor)
			text := e.kill.Rotate()
			e.cursor = e.yankStart
			e.insertAt(e.cursor, []rune(text))
			e.cursor += len([]rune(text))
			e.lastWasYank = true
		}

	case CmdTransposeChars:
		if e.cursor > 0 && e.cursor < len(e.buffer) {
			e.buffer[e.cursor-1], e.buffer[e.cursor] = e.buffer[e.cursor], e.buffer[e.cursor-1]
			e.cursor++
			e.bump()
		} else if e.cursor == len(e.buffer) && e.cursor >= 2 {
			e.buffer[e.cursor-2], e.buffer[e.cursor-1] = e.buffer[e.cursor-1], e.buffer[e.cursor-2]
			e.bump()
		}
	case CmdTransposeWords:
		e.transposeWords()

	case CmdUpcaseWord:
		e.mapWord(unicode.ToUpper)
	case CmdDowncaseWord:
		e.mapWord(unicode.ToLower)
	case CmdCapitalizeWord:
		e.capitalizeWord()

	case CmdSetMark:
		e.mark, e.hasMark = e.cursor, true

	case CmdClearScreen, CmdRepaint, CmdForceRepaint, CmdRepaintMode:
		// Handled by the Reader Loop/Renderer; no buffer change.

	case CmdAcceptAutosuggestion:
		if e.autosuggest != "" {
			e.insertAt(e.cursor, []rune(e.autosuggest))
			e.cursor = len(e.buffer)
			e.autosuggest = ""
		}
	case CmdSuppressAutosuggestion:
		e.autosuggest = ""

	case CmdCancel:
		if len(e.buffer) == 0 {
			return true, true
		}
		e.Reset()
		return false, false
	case CmdAbort:
		// No-op outside search mode (search handling above already exited
		// search before reaching here).

	case CmdEof:
		return true, true

	case CmdExecute:
		if e.testFunc == nil || e.testFunc(string(e.buffer)) {
			return true, false
		}
		e.insertAt(e.cursor, []rune{'\n'})
		e.cursor++

	case CmdPreviousHistory:
		e.historyStep(history.DirBackward, history.MatchPrefix, "")
	case CmdNextHistory:
		e.historyStep(history.DirForward, history.MatchPrefix, "")
	case CmdBeginningOfHistory:
		e.jumpHistory(history.DirBackward)
	case CmdEndOfHistory:
		e.jumpHistory(history.DirForward)

	case CmdReverseSearchHistory:
		e.enterSearch(searchLine)
		e.historySearchStep(history.DirBackward)
	case CmdForwardSearchHistory:
		e.enterSearch(searchLine)
		e.historySearchStep(history.DirForward)
	case CmdHistorySearchBackward:
		e.historyStep(history.DirBackward, history.MatchPrefix, string(e.buffer[:e.cursor]))
	case CmdHistorySearchForward:
		e.historyStep(history.DirForward, history.MatchPrefix, string(e.buffer[:e.cursor]))

	case CmdHistoryTokenSearchBack:
		e.tokenHistoryStep(history.DirBackward)
	case CmdHistoryTokenSearchFwd:
		e.tokenHistoryStep(history.DirForward)

	case CmdUndo:
		// Undo is intentionally unimplemented: it requires an edit log
		// per buffer (sequences of Insert/Erase ops), which no caller of
		// this package exercises yet.

	case CmdTabComplete, CmdTabCompleteAndSearch:
		if e.completer != nil {
			insert, matches := completeWord(e.completer, e.buffer, e.cursor)
			if insert != "" && len(matches) > 0 {
				start := wordStartAt(string(e.buffer), e.cursor)
				e.eraseRange(start, e.cursor)
				e.cursor = start
				e.insertAt(e.cursor, []rune(insert))
				e.cursor += len([]rune(insert))
			}
		}
	}

	if e.mode != searchNone {
		e.refreshSearchSuffix()
	}

	return false, false
}

func (e *EditCore) inSearchCommand(cmd Command) bool {
	return historySearchCommands[cmd] || cmd == CmdBackwardDeleteChar
}

func (e *EditCore) killSpan(start, end int, forward bool) {
	text := e.eraseRange(start, end)
	if text == "" {
		return
	}
	if e.lastWasKill {
		if forward {
			e.kill.AppendFront(text)
		} else {
			e.kill.PrependFront(text)
		}
	} else {
		e.kill.Add(text)
	}
	e.cursor = start
}

func (e *EditCore) mapWord(f func(rune) rune) {
	end := nextWordEnd(e.buffer, e.cursor, e.wordStyle)
	for i := e.cursor; i < end; i++ {
		e.buffer[i] = f(e.buffer[i])
	}
	e.cursor = end
	e.bump()
}

func (e *EditCore) capitalizeWord() {
	end := nextWordEnd(e.buffer, e.cursor, e.wordStyle)
	first := true
	for i := e.cursor; i < end; i++ {
		if isWordRune(e.buffer[i], e.wordStyle) {
			if first {
				e.buffer[i] = unicode.ToUpper(e.buffer[i])
				first = false
			} else {
				e.buffer[i] = unicode.ToLower(e.buffer[i])
			}
		}
	}
	e.cursor = end
	e.bump()
}

func (e *EditCore) transposeWords() {
	nextEnd := nextWordEnd(e.buffer, e.cursor, e.wordStyle)
	nextStart := prevWordStart(e.buffer, nextEnd, e.wordStyle)
	prevStart := prevWordStart(e.buffer, nextStart, e.wordStyle)
	prevEnd := nextWordEnd(e.buffer, prevStart, e.wordStyle)
	if prevStart == nextStart {
		return
	}
	nextWord := string(e.buffer[nextStart:nextEnd])
	between := string(e.buffer[prevEnd:nextStart])
	prevWord := string(e.buffer[prevStart:prevEnd])

	e.cursor = prevStart
	e.eraseRange(prevStart, nextEnd)
	combined := nextWord + between + prevWord
	e.insertAt(prevStart, []rune(combined))
	e.cursor = prevStart + len([]rune(combined))
}

// historyStep moves the history cursor and replaces the buffer, saving
// any in-progress edit as the "pending" entry (spec.md §4.8, generalizing
// the teacher's history.Previous/Next in history.go).
func (e *EditCore) historyStep(dir history.Direction, match history.MatchType, term string) {
	if e.hist == nil {
		return
	}
	if e.histCursor.Position == 0 && dir == history.DirForward {
		e.setText(e.pendingStash(), 0)
		return
	}
	c := e.histCursor
	c.Term = term
	c.Match = match
	if c.Position == 0 {
		e.hist.SetPending(string(e.buffer))
	}
	item, ok := e.hist.Search(&c, dir)
	if !ok {
		return
	}
	e.histCursor = c
	e.setText(item.Text, len(item.Text))
}

func (e *EditCore) pendingStash() string { return string(e.buffer) }

func (e *EditCore) jumpHistory(dir history.Direction) {
	if e.hist == nil {
		return
	}
	items := e.hist.Items()
	if len(items) == 0 {
		return
	}
	if dir == history.DirBackward {
		e.setText(items[len(items)-1].Text, 0)
		e.histCursor = history.Cursor{Position: len(items) - 1}
	} else {
		e.setText("", 0)
		e.histCursor = history.Cursor{Position: -1}
	}
}

func (e *EditCore) enterSearch(m searchMode) {
	if e.mode == m {
		return
	}
	e.mode = m
	e.pendingBuf = append([]rune(nil), e.buffer...)
	e.pendingPos = e.cursor
	e.searchBuf = nil
	e.histCursor = history.Cursor{Position: -1}
}

func (e *EditCore) exitSearch(restore bool) {
	if e.mode == searchNone {
		return
	}
	e.mode = searchNone
	if restore {
		e.setText(string(e.pendingBuf), e.pendingPos)
	}
	e.searchBuf = nil
}

func (e *EditCore) historySearchStep(dir history.Direction) {
	if e.hist == nil {
		return
	}
	c := e.histCursor
	c.Term = string(e.searchBuf)
	c.Match = history.MatchContains
	item, ok := e.hist.Search(&c, dir)
	if !ok {
		return
	}
	e.histCursor = c
	e.buffer = []rune(item.Text)
	e.cursor = strings.Index(item.Text, string(e.searchBuf))
	if e.cursor < 0 {
		e.cursor = 0
	}
	e.bump()
}

func (e *EditCore) refreshSearchSuffix() {
	// The actual suffix text ("bck-i-search: `term'") is rendered by the
	// Renderer (render.go) by reading SearchPrompt(); nothing to do here
	// beyond keeping searchBuf current, which callers mutate via
	// AppendSearchChar below.
}

// AppendSearchChar appends to the in-progress search term and re-runs the
// search (spec.md §4.8 "AppendSearchKey").
func (e *EditCore) AppendSearchChar(r rune) {
	if e.mode == searchNone {
		return
	}
	e.searchBuf = append(e.searchBuf, r)
	e.historySearchStep(e.histCursor.Dir)
}

// SearchPrompt returns the suffix text describing the in-progress history
// search, or "" outside search mode.
func (e *EditCore) SearchPrompt() string {
	if e.mode == searchNone {
		return ""
	}
	dir := "bck"
	if e.histCursor.Dir == history.DirForward {
		dir = "fwd"
	}
	return "\n" + dir + "-i-search: `" + string(e.searchBuf) + "'"
}

func (e *EditCore) tokenHistoryStep(dir history.Direction) {
	if e.hist == nil {
		return
	}
	if e.tokenSearchBuf == "" {
		fields := strings.Fields(string(e.buffer))
		if len(fields) == 0 {
			return
		}
		e.tokenSearchBuf = fields[len(fields)-1]
		e.tokenSearchPos = 0
	}
	c := history.Cursor{Term: e.tokenSearchBuf, Match: history.MatchContains, Position: e.tokenSearchPos - 1}
	item, ok := e.hist.Search(&c, dir)
	if !ok {
		return
	}
	e.tokenSearchPos = c.Position
	tokens := strings.Fields(item.Text)
	if len(tokens) == 0 {
		return
	}
	last := tokens[len(tokens)-1]
	fields := strings.Fields(string(e.buffer))
	if len(fields) == 0 {
		e.setText(last, len(last))
		return
	}
	fields[len(fields)-1] = last
	e.setText(strings.Join(fields, " "), 0)
	e.cursor = len(e.buffer)
}
