package lineedit

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcorbin/lineedit/history"
)

func newTestStore() *history.Store {
	return history.NewStore()
}

func typeText(core *EditCore, s string) {
	core.Dispatch(readlineEvent(CmdSelfInsert, []CodePoint(s)))
}

func TestEditCoreInsertAndCursor(t *testing.T) {
	core := NewEditCore(newTestStore(), NewKillRing())
	typeText(core, "hello")
	require.Equal(t, "hello", core.Text())
	require.Equal(t, 5, core.Cursor())
}

func TestEditCoreBackwardDeleteChar(t *testing.T) {
	core := NewEditCore(newTestStore(), NewKillRing())
	typeText(core, "hello")
	core.Dispatch(readlineEvent(CmdBackwardDeleteChar, nil))
	require.Equal(t, "hell", core.Text())
	require.Equal(t, 4, core.Cursor())
}

func TestEditCoreKillLineAndYank(t *testing.T) {
	kill := NewKillRing()
	core := NewEditCore(newTestStore(), kill)
	typeText(core, "hello world")
	core.Dispatch(readlineEvent(CmdBeginningOfLine, nil))
	core.Dispatch(readlineEvent(CmdKillLine, nil))
	require.Equal(t, "", core.Text())
	require.Equal(t, "hello world", kill.Yank())

	core.Dispatch(readlineEvent(CmdYank, nil))
	require.Equal(t, "hello world", core.Text())
}

func TestEditCoreConsecutiveKillWordsAccumulate(t *testing.T) {
	kill := NewKillRing()
	core := NewEditCore(newTestStore(), kill)
	typeText(core, "one two three")
	core.Dispatch(readlineEvent(CmdBeginningOfLine, nil))
	core.Dispatch(readlineEvent(CmdKillWord, nil))
	core.Dispatch(readlineEvent(CmdKillWord, nil))
	require.Equal(t, "one two", kill.Yank())
}

func TestEditCoreExecuteReturnsDone(t *testing.T) {
	core := NewEditCore(newTestStore(), NewKillRing())
	typeText(core, "select 1")
	done, eof := core.Dispatch(readlineEvent(CmdExecute, nil))
	require.True(t, done)
	require.False(t, eof)
}

func TestEditCoreCancelOnEmptyBufferIsEOF(t *testing.T) {
	core := NewEditCore(newTestStore(), NewKillRing())
	done, eof := core.Dispatch(readlineEvent(CmdCancel, nil))
	require.True(t, done)
	require.True(t, eof)
}

func TestEditCoreHistorySearchRestoresPendingOnAbort(t *testing.T) {
	hist := newTestStore()
	hist.Add(history.Item{Text: "select * from t"})
	core := NewEditCore(hist, NewKillRing())
	typeText(core, "unsaved")
	core.Dispatch(readlineEvent(CmdReverseSearchHistory, nil))
	core.AppendSearchChar('s')
	require.Equal(t, "select * from t", core.Text())
	core.Dispatch(readlineEvent(CmdAbort, nil))
	require.Equal(t, "unsaved", core.Text())
}

func TestEditCoreTransposeChars(t *testing.T) {
	core := NewEditCore(newTestStore(), NewKillRing())
	typeText(core, "ab")
	core.Dispatch(readlineEvent(CmdTransposeChars, nil))
	require.Equal(t, "ba", core.Text())
}
