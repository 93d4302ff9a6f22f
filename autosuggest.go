package lineedit

import (
	"unicode"

	"github.com/jcorbin/lineedit/history"
)

// Completer proposes completions for the word at [wordStart, wordEnd) in
// text, grounded on the signature the teacher's demo/tests already assume
// (cmd/demo's completer, prompt_test.go's WithCompleter) even though the
// teacher repo itself never finished wiring the option through.
type Completer func(text []rune, wordStart, wordEnd int) []string

// SpecialCommandSuggester proposes a full-line autosuggestion for known
// non-history commands (e.g. "cd -" style shell built-ins), consulted
// before falling back to tab completion (spec.md §4.7 "Autosuggester"
// pipeline, step 2).
type SpecialCommandSuggester func(text string) (suggestion string, ok bool)

// autosuggestKind tags Autosuggester jobs in the Job Pool.
const autosuggestKind = "autosuggest"

// Autosuggester runs the three-stage pipeline of spec.md §4.7: a history
// prefix search, a special-command handler, and finally a completion-engine
// fallback that suggests only when there is a single unambiguous match.
type Autosuggester struct {
	Hist      *history.Store
	Special   SpecialCommandSuggester
	Completer Completer
}

// Suggest computes one autosuggestion for text, or ok=false if none
// applies. It never runs on the main goroutine directly — callers reach it
// through Schedule.
func (a *Autosuggester) Suggest(text string) (string, bool) {
	if text == "" {
		return "", false
	}
	if r := []rune(text); unicode.IsSpace(r[len(r)-1]) {
		// Whitespace at the cursor is never completed into a suggestion
		// (spec.md §4.7 step 3: "no suggestion is offered").
		return "", false
	}

	if a.Hist != nil {
		if item, ok := a.Hist.Search(&history.Cursor{Term: text, Match: history.MatchPrefix}, history.DirBackward); ok {
			return item.Text, true
		}
	}

	if a.Special != nil {
		if s, ok := a.Special(text); ok {
			return s, true
		}
	}

	if a.Completer != nil {
		start := wordStartAt(text, len(text))
		matches := a.Completer([]rune(text), start, len(text))
		if len(matches) == 1 {
			return text[:start] + matches[0], true
		}
	}

	return "", false
}

// wordStartAt returns the offset of the start of the shell word ending at
// pos, splitting on unquoted whitespace (a simplification of the teacher's
// absent tokenizer — full shell quoting/escaping is out of scope here).
func wordStartAt(text string, pos int) int {
	i := pos
	for i > 0 && !unicode.IsSpace(rune(text[i-1])) {
		i--
	}
	return i
}

// Schedule submits a's pipeline against core's current text/generation to
// pool, merging the result through core.SetAutosuggestion if it is still
// current when the job completes (spec.md §5).
func (a *Autosuggester) Schedule(pool *JobPool, core *EditCore) {
	if pool == nil {
		return
	}
	gen := core.Generation()
	text := core.Text()
	pool.Submit(autosuggestKind, gen, text, func(generation uint64, text string) interface{} {
		s, ok := a.Suggest(text)
		if !ok {
			return nil
		}
		return s
	}, func(result interface{}) {
		if !pool.IsLatest(autosuggestKind, gen) {
			return
		}
		if result == nil {
			core.ClearAutosuggestion()
			return
		}
		core.SetAutosuggestion(gen, result.(string))
	})
}

// completeWord runs Completer synchronously for CmdTabComplete, returning
// the common prefix of all matches (or the sole match) to insert at the
// cursor, and the full match list for a future "show completions" UI
// (spec.md §4.7, tab-complete fallback referenced from editcore.go's
// CmdTabComplete handling).
func completeWord(c Completer, text []rune, pos int) (insert string, matches []string) {
	if c == nil {
		return "", nil
	}
	start := wordStartAt(string(text), pos)
	matches = c([]rune(text), start, pos)
	if len(matches) == 0 {
		return "", nil
	}
	common := matches[0]
	for _, m := range matches[1:] {
		common = commonPrefix(common, m)
	}
	return common, matches
}

func commonPrefix(a, b string) string {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return a[:i]
}
