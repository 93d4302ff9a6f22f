package lineedit

// Cell is one displayed character plus the raw escape sequence (if any)
// needed to set its color/attributes before it is written, generalizing
// the teacher's separate text/attrs arrays (screen.go's text []rune plus
// attrs []attrInfo) into a single per-cell model that is easy to diff
// row-by-row (spec.md §3 "Screen data").
type Cell struct {
	R     rune
	Color string
}

// Row is one physical screen row.
type Row struct {
	Cells       []Cell
	SoftWrapped bool
}

// ScreenData is an ordered list of rows (spec.md §3 "Screen data").
type ScreenData struct {
	Rows []Row
}

// ScreenState is the Differential Renderer's persistent state across
// redraws (spec.md §3 "Screen state"): the desired frame just computed,
// the previous actual frame, and the bookkeeping needed to reproduce
// sticky-right-margin soft wrapping without re-measuring the terminal.
type ScreenState struct {
	Desired ScreenData
	Actual  ScreenData

	ActualCursorX, ActualCursorY int
	ActualLeftPrompt             string
	SoftWrapLocation             *[2]int
	ActualWidth, ActualHeight    int
	LastRightPromptWidth         int
	NeedClear                    bool
	LinesBeforeReset             int
}

// NewScreenState returns a freshly reset state for a terminal of the given
// size.
func NewScreenState(width, height int) *ScreenState {
	return &ScreenState{ActualWidth: width, ActualHeight: height, NeedClear: true}
}
