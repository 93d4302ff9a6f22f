package lineedit

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewEditorDefaultsToStdioSized80x24(t *testing.T) {
	e := New(WithOutput(&bytes.Buffer{}))
	defer e.Close()
	require.Equal(t, 80, e.width)
	require.Equal(t, 24, e.height)
}

func TestWithSizeOverridesDefault(t *testing.T) {
	e := New(WithOutput(&bytes.Buffer{}), WithSize(40, 10))
	defer e.Close()
	require.Equal(t, 40, e.width)
	require.Equal(t, 10, e.height)
}

func TestWithUserBindingShadowsPreset(t *testing.T) {
	e := New(
		WithOutput(&bytes.Buffer{}),
		WithUserBinding(Binding{Sequence: ctrl('a'), Mode: ModeDefault, Command: CmdCancel}),
	)
	defer e.Close()

	ev, _ := e.engine.Next(newSliceQueueFromString("\x01"), ModeDefault)
	require.Equal(t, CmdCancel, ev.Cmd)
}

// TestReadLineOverPipeReturnsLineOnEnter drives a full Editor.ReadLine call
// with no real tty (fd stays -1, so raw-mode/SIGWINCH setup is skipped,
// matching WithInput's documented test-only use case), grounded on the
// teacher's own pipe-backed prompt tests (prompt_test.go feeds p.inBytes
// directly rather than a real fd).
func TestReadLineOverPipeReturnsLineOnEnter(t *testing.T) {
	var out bytes.Buffer
	e := New(
		WithInput(strings.NewReader("hello\r")),
		WithOutput(&out),
		WithSize(40, 5),
	)
	defer e.Close()

	line, err := e.ReadLine("> ", "")
	require.NoError(t, err)
	require.Equal(t, "hello", line)
}

func TestReadLineOverPipeReturnsEOFOnEmptyStream(t *testing.T) {
	var out bytes.Buffer
	e := New(
		WithInput(strings.NewReader("")),
		WithOutput(&out),
		WithSize(40, 5),
	)
	defer e.Close()

	_, err := e.ReadLine("> ", "")
	require.Error(t, err)
}
