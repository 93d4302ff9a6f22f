package lineedit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlanLayoutFullFits(t *testing.T) {
	l := PlanLayout(80, "$ ", "", "echo hi", " there")
	require.False(t, l.PromptsOnOwnLine)
	require.Equal(t, "$ ", l.LeftPrompt)
	require.Equal(t, " there", l.Autosuggestion)
}

func TestPlanLayoutTruncatesAutosuggestion(t *testing.T) {
	cmd := make([]byte, 60)
	for i := range cmd {
		cmd[i] = 'x'
	}
	l := PlanLayout(80, "$ ", "", string(cmd), " this suggestion tail is too long to fit")
	require.NotEqual(t, " this suggestion tail is too long to fit", l.Autosuggestion)
	if l.Autosuggestion != "" {
		require.Contains(t, l.Autosuggestion, "…")
	}
}

func TestPlanLayoutPromptsOnOwnLine(t *testing.T) {
	cmd := make([]byte, 100)
	for i := range cmd {
		cmd[i] = 'x'
	}
	l := PlanLayout(40, "some-long-left-prompt> ", "[right]", string(cmd), "")
	require.True(t, l.PromptsOnOwnLine)
}

func TestPlanLayoutMinimalFallback(t *testing.T) {
	l := PlanLayout(5, "some-long-left-prompt-that-never-fits> ", "", "x", "")
	require.Equal(t, "> ", l.LeftPrompt)
}

func TestPromptWidthSkipsEmbeddedEscapes(t *testing.T) {
	require.Equal(t, 2, promptWidth("\x1b[1m$\x1b[0m "))
}
