package lineedit

import (
	"strings"

	"github.com/jcorbin/lineedit/terminfo"
)

// Layout is the result of the Layout Planner (spec.md §4.9): how much of
// the command line, autosuggestion, and which prompts fit on screen.
type Layout struct {
	LeftPrompt        string
	RightPrompt       string
	ShowRightPrompt   bool
	Autosuggestion    string // truncated/ellipsized tail actually shown
	PromptsOnOwnLine  bool
	LeftPromptWidth   int
	RightPromptWidth  int
}

const layoutSlack = 10
const minAutosuggestCols = 2

// PlanLayout tries the four fallback layouts of spec.md §4.9 in order and
// returns the first that fits screenWidth, generalizing the teacher
// (which has no prompt/autosuggestion layout concept at all — screen.go
// renders a single undifferentiated text buffer).
func PlanLayout(screenWidth int, leftPrompt, rightPrompt, commandLine, autosuggestion string) Layout {
	lw := promptWidth(leftPrompt)
	rw := promptWidth(rightPrompt)
	firstLine := commandLine
	if i := strings.IndexByte(firstLine, '\n'); i >= 0 {
		firstLine = firstLine[:i]
	}
	cmdWidth := stringWidth(firstLine)
	suggWidth := stringWidth(autosuggestion)

	// Layout 1: everything, plus slack.
	if lw+rw+cmdWidth+suggWidth+layoutSlack <= screenWidth {
		return Layout{
			LeftPrompt: leftPrompt, RightPrompt: rightPrompt, ShowRightPrompt: rw > 0,
			Autosuggestion: autosuggestion, LeftPromptWidth: lw, RightPromptWidth: rw,
		}
	}

	// Layout 2: truncate the autosuggestion to what's left, with an
	// ellipsis, as long as at least minAutosuggestCols remain.
	avail := screenWidth - lw - rw - cmdWidth
	if avail >= minAutosuggestCols && suggWidth > 0 {
		trunc := truncateToWidth(autosuggestion, avail-1) + "…"
		return Layout{
			LeftPrompt: leftPrompt, RightPrompt: rightPrompt, ShowRightPrompt: rw > 0,
			Autosuggestion: trunc, LeftPromptWidth: lw, RightPromptWidth: rw,
		}
	}
	if lw+rw+cmdWidth <= screenWidth {
		return Layout{
			LeftPrompt: leftPrompt, RightPrompt: rightPrompt, ShowRightPrompt: rw > 0,
			LeftPromptWidth: lw, RightPromptWidth: rw,
		}
	}

	// Layout 3: drop the right prompt and any autosuggestion.
	if lw+cmdWidth <= screenWidth {
		return Layout{LeftPrompt: leftPrompt, LeftPromptWidth: lw}
	}

	// Layout 4: prompts get their own line above the command line.
	if lw+rw <= screenWidth {
		return Layout{
			LeftPrompt: leftPrompt, RightPrompt: rightPrompt, ShowRightPrompt: rw > 0,
			PromptsOnOwnLine: true, LeftPromptWidth: lw, RightPromptWidth: rw,
		}
	}

	// The left prompt alone doesn't fit: replace it (spec.md §4.9 "If the
	// left prompt alone does not fit").
	return Layout{LeftPrompt: "> ", LeftPromptWidth: 2}
}

func truncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	var b strings.Builder
	w := 0
	for _, cl := range graphemeClusters([]rune(s)) {
		cw := clusterWidth(cl)
		if w+cw > width {
			break
		}
		b.WriteString(string(cl))
		w += cw
	}
	return b.String()
}

func clusterWidth(cl []rune) int {
	w := 0
	for _, r := range cl {
		w += terminfo.WidthOf(r)
	}
	return w
}

func stringWidth(s string) int {
	w := 0
	for _, cl := range graphemeClusters([]rune(s)) {
		w += clusterWidth(cl)
	}
	return w
}

// promptWidth computes the display width of a prompt string, skipping the
// embedded escape sequences spec.md §4.9 calls out: 8-color setf/setb,
// bold/underline/standout toggles, 256-color set-foreground/background,
// and the screen-specific \ek...\e\\ title envelope.
func promptWidth(s string) int {
	w := 0
	runes := []rune(s)
	for i := 0; i < len(runes); {
		if runes[i] == 0x1b {
			if n := skipEscape(runes[i:]); n > 0 {
				i += n
				continue
			}
		}
		w += terminfo.WidthOf(runes[i])
		i++
	}
	return w
}

// skipEscape returns the length, in runes, of one recognized embedded
// escape sequence at the start of s, or 0 if s doesn't start with one.
func skipEscape(s []rune) int {
	if len(s) < 2 || s[0] != 0x1b {
		return 0
	}
	switch s[1] {
	case 'k':
		// screen/tmux title envelope: ESC k ... ESC \
		for i := 2; i+1 < len(s); i++ {
			if s[i] == 0x1b && s[i+1] == '\\' {
				return i + 2
			}
		}
		return len(s)
	case '[':
		for i := 2; i < len(s); i++ {
			if (s[i] >= 'a' && s[i] <= 'z') || (s[i] >= 'A' && s[i] <= 'Z') {
				return i + 1
			}
		}
		return len(s)
	default:
		return 2
	}
}
