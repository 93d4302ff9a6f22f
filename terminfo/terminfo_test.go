package terminfo

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDumbDegrades(t *testing.T) {
	a, err := Load("dumb")
	require.NoError(t, err)
	require.True(t, a.Dumb())
}

func TestLoadUnknownTermDegradesInsteadOfErroring(t *testing.T) {
	a, err := Load("this-terminal-does-not-exist-xyz")
	require.NoError(t, err)
	require.NotNil(t, a)
	require.True(t, a.Dumb())
}

func TestBuiltinNameTableHasNavigationKeys(t *testing.T) {
	a, err := Load("dumb")
	require.NoError(t, err)
	for _, name := range []string{"key_up", "key_down", "key_left", "key_right"} {
		_, ok := a.SequenceForName(name)
		require.True(t, ok, "missing builtin sequence for %s", name)
	}
}

func TestWidthOfClampsCombiningMarksToZero(t *testing.T) {
	require.Equal(t, 0, WidthOf('́')) // combining acute accent
	require.Equal(t, 1, WidthOf('a'))
}

func TestClearToEOLDumbFallback(t *testing.T) {
	a, _ := Load("dumb")
	var buf bytes.Buffer
	a.ClearToEOL(&buf)
	require.Equal(t, "\x1b[K", buf.String())
}

func TestMoveCursorDumbIsNoop(t *testing.T) {
	a, _ := Load("dumb")
	var buf bytes.Buffer
	a.MoveCursor(3, -2, &buf)
	require.Equal(t, "", buf.String())
}
