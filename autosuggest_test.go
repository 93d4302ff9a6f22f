package lineedit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcorbin/lineedit/history"
)

func TestAutosuggesterHistoryPrefixWins(t *testing.T) {
	hist := newTestStore()
	hist.Add(history.Item{Text: "select * from widgets"})
	a := &Autosuggester{Hist: hist}

	s, ok := a.Suggest("select")
	require.True(t, ok)
	require.Equal(t, "select * from widgets", s)
}

func TestAutosuggesterTrailingWhitespaceSuppressesSuggestion(t *testing.T) {
	hist := newTestStore()
	hist.Add(history.Item{Text: "select 1"})
	a := &Autosuggester{Hist: hist}

	_, ok := a.Suggest("select ")
	require.False(t, ok)
}

func TestAutosuggesterFallsBackToSpecialCommand(t *testing.T) {
	a := &Autosuggester{
		Special: func(text string) (string, bool) {
			if text == "cd" {
				return "cd -", true
			}
			return "", false
		},
	}

	s, ok := a.Suggest("cd")
	require.True(t, ok)
	require.Equal(t, "cd -", s)
}

func TestAutosuggesterCompleterRequiresSingleMatch(t *testing.T) {
	a := &Autosuggester{
		Completer: func(text []rune, wordStart, wordEnd int) []string {
			return []string{"dog", "duck"}
		},
	}
	_, ok := a.Suggest("d")
	require.False(t, ok, "ambiguous completion must not become a suggestion")

	a.Completer = func(text []rune, wordStart, wordEnd int) []string {
		return []string{"dog"}
	}
	s, ok := a.Suggest("d")
	require.True(t, ok)
	require.Equal(t, "dog", s)
}

func TestCompleteWordReturnsCommonPrefix(t *testing.T) {
	completer := func(text []rune, wordStart, wordEnd int) []string {
		return []string{"select", "seldom"}
	}
	insert, matches := completeWord(completer, []rune("sel"), 3)
	require.Equal(t, "sel", insert)
	require.Len(t, matches, 2)
}

func TestScheduleAutosuggestSetsAndClears(t *testing.T) {
	pool := NewJobPool(1)
	defer pool.Close()

	hist := newTestStore()
	hist.Add(history.Item{Text: "select 1"})
	a := &Autosuggester{Hist: hist}

	core := NewEditCore(hist, NewKillRing())
	typeText(core, "select")
	a.Schedule(pool, core)
	pool.DrainOne()
	require.Equal(t, " 1", core.Autosuggestion())

	typeText(core, "zzz")
	a.Schedule(pool, core)
	pool.DrainOne()
	require.Equal(t, "", core.Autosuggestion())
}
