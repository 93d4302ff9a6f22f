package lineedit

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jcorbin/lineedit/internal/mockterm"
	"github.com/jcorbin/lineedit/terminfo"
)

func TestRendererDrawsPromptAndText(t *testing.T) {
	adapter, err := terminfo.Load("xterm-256color")
	if err != nil || adapter == nil {
		adapter, _ = terminfo.Load("dumb")
	}
	term := mockterm.New(40, 5)
	r := NewRenderer(adapter, term, 40, 5)

	hist := newTestStore()
	core := NewEditCore(hist, NewKillRing())
	core.Dispatch(readlineEvent(CmdSelfInsert, []CodePoint{'h', 'i'}))

	layout := PlanLayout(40, "$ ", "", core.Text(), "")
	frame := BuildFrame(layout, core, 40)
	row, col := cursorPosition(frame, []rune(layout.LeftPrompt), core, 40)
	r.Render(frame, row, col, layout.LeftPrompt)

	require.Contains(t, term.String(), "$ hi")
}

func TestRendererDiffSkipsUnchangedPrefix(t *testing.T) {
	adapter, _ := terminfo.Load("dumb")
	term := mockterm.New(40, 5)
	r := NewRenderer(adapter, term, 40, 5)

	hist := newTestStore()
	core := NewEditCore(hist, NewKillRing())
	core.Dispatch(readlineEvent(CmdSelfInsert, []CodePoint{'h', 'e', 'l', 'l', 'o'}))
	layout := PlanLayout(40, "$ ", "", core.Text(), "")
	frame := BuildFrame(layout, core, 40)
	row, col := cursorPosition(frame, []rune(layout.LeftPrompt), core, 40)
	r.Render(frame, row, col, layout.LeftPrompt)

	core.Dispatch(readlineEvent(CmdSelfInsert, []CodePoint{'!'}))
	layout2 := PlanLayout(40, "$ ", "", core.Text(), "")
	frame2 := BuildFrame(layout2, core, 40)
	row2, col2 := cursorPosition(frame2, []rune(layout2.LeftPrompt), core, 40)
	var emitted bytes.Buffer
	r.w = io.MultiWriter(term, &emitted)
	r.Render(frame2, row2, col2, layout2.LeftPrompt)

	require.Equal(t, "!", emitted.String())
	require.Contains(t, term.String(), "$ hello!")
}
