package lineedit

import (
	"io"

	"github.com/jcorbin/lineedit/terminfo"
)

// autosuggestColor is the dim-attribute escape applied to the
// autosuggestion tail, grounded on the teacher's attrDim constant
// (screen.go).
const autosuggestColor = "\x1b[2m"

// BuildFrame renders layout/core into the desired ScreenData for a
// terminal of the given width (spec.md §4.10 step "desired ScreenData"),
// generalizing the teacher's single-pass renderText (screen.go) to a
// prompt+command+autosuggestion+right-prompt composition driven by the
// Layout Planner instead of a bare text buffer.
func BuildFrame(layout Layout, core *EditCore, width int) ScreenData {
	if width <= 0 {
		width = 80
	}

	var rows []Row
	var cur []Cell

	emit := func(r rune, color string) {
		if terminfo.WidthOf(r) == 0 {
			cur = append(cur, Cell{R: r, Color: color})
			return
		}
		if len(cur) >= width {
			rows = append(rows, Row{Cells: cur, SoftWrapped: true})
			cur = nil
		}
		cur = append(cur, Cell{R: r, Color: color})
	}
	newline := func() {
		rows = append(rows, Row{Cells: cur})
		cur = nil
	}

	if layout.PromptsOnOwnLine {
		for _, r := range layout.LeftPrompt {
			emit(r, "")
		}
		pad := width - layout.LeftPromptWidth - layout.RightPromptWidth
		for i := 0; i < pad; i++ {
			emit(' ', "")
		}
		for _, r := range layout.RightPrompt {
			emit(r, "")
		}
		newline()
	} else {
		for _, r := range layout.LeftPrompt {
			emit(r, "")
		}
	}

	text := []rune(core.Text())
	colors := core.Colors()
	colorAt := func(pos int) string {
		for _, sp := range colors {
			if pos >= sp.Start && pos < sp.End {
				return sp.Value
			}
		}
		return ""
	}

	for i, r := range text {
		if r == '\n' {
			newline()
			continue
		}
		emit(r, colorAt(i))
	}

	for _, r := range core.Autosuggestion() {
		emit(r, autosuggestColor)
	}

	if suffix := core.SearchPrompt(); suffix != "" {
		for _, r := range suffix {
			if r == '\n' {
				newline()
				continue
			}
			emit(r, "")
		}
	}

	rows = append(rows, Row{Cells: cur})

	if !layout.PromptsOnOwnLine && layout.ShowRightPrompt && len(rows) > 0 {
		row := &rows[0]
		pad := width - layout.RightPromptWidth - rowWidth(row.Cells)
		if pad > 0 {
			for i := 0; i < pad; i++ {
				row.Cells = append(row.Cells, Cell{R: ' '})
			}
			for _, r := range layout.RightPrompt {
				row.Cells = append(row.Cells, Cell{R: r})
			}
		}
	}

	return ScreenData{Rows: rows}
}

func rowWidth(cells []Cell) int {
	w := 0
	for _, c := range cells {
		w += terminfo.WidthOf(c.R)
	}
	return w
}

// Renderer is the Differential Renderer (spec.md §4.10): it diffs a
// desired ScreenData against the previously emitted one and writes the
// minimal sequence of terminfo-driven control sequences needed to
// reconcile them, tracking soft-wrap/sticky-right-margin bookkeeping
// across calls. It supersedes the teacher's screen type (screen.go),
// which always rewrites from the cursor forward rather than diffing
// against what is already on screen.
type Renderer struct {
	adapter *terminfo.Adapter
	w       io.Writer
	state   *ScreenState
}

// NewRenderer returns a Renderer writing to w via adapter, for a terminal
// of the given size.
func NewRenderer(adapter *terminfo.Adapter, w io.Writer, width, height int) *Renderer {
	return &Renderer{adapter: adapter, w: w, state: NewScreenState(width, height)}
}

// Resize records a terminal size change, forcing a full repaint on the
// next Render (spec.md §4.10 step 1).
func (r *Renderer) Resize(width, height int) {
	if width != r.state.ActualWidth || height != r.state.ActualHeight {
		r.state.ActualWidth, r.state.ActualHeight = width, height
		r.state.NeedClear = true
		r.state.Actual = ScreenData{}
	}
}

// Dumb reports whether the underlying terminal lacks the capabilities the
// diff algorithm relies on.
func (r *Renderer) Dumb() bool { return r.adapter.Dumb() }

// RenderDumb implements the degraded no-diff path for terminals without
// cursor motion capabilities (spec.md §4.1 "On a dumb terminal").
func (r *Renderer) RenderDumb(leftPrompt, commandLine string) {
	io.WriteString(r.w, "\r")
	io.WriteString(r.w, leftPrompt)
	io.WriteString(r.w, commandLine)
}

// Render reconciles desired against the previously rendered frame and
// writes the result, following the step numbering of spec.md §4.10.
func (r *Renderer) Render(desired ScreenData, cursorRow, cursorCol int, leftPrompt string) {
	s := r.state

	// Step 1: width change already handled by Resize (NeedClear/reset).

	// Step 2: fewer rows than before — clear the extras.
	if len(desired.Rows) < len(s.Actual.Rows) {
		r.moveTo(0, len(desired.Rows))
		for !r.adapter.ClearToEOS(r.w) && s.ActualCursorY < len(s.Actual.Rows) {
			r.adapter.ClearToEOL(r.w)
			r.lineFeed()
		}
	}

	// Step 3: left prompt rewrite.
	if leftPrompt != s.ActualLeftPrompt {
		r.moveTo(0, 0)
		r.adapter.ClearToEOL(r.w)
		io.WriteString(r.w, leftPrompt)
		s.ActualCursorX += stringWidth(leftPrompt)
		s.ActualLeftPrompt = leftPrompt
	}

	// Step 4: per-row diff.
	for y, row := range desired.Rows {
		var actualRow Row
		if y < len(s.Actual.Rows) {
			actualRow = s.Actual.Rows[y]
		}
		r.renderRow(y, row, actualRow)
	}

	if s.NeedClear {
		r.adapter.ClearToEOS(r.w)
		s.NeedClear = false
	}

	// Step 6: move to the desired cursor location.
	r.moveTo(cursorCol, cursorRow)

	// Step 7: commit.
	s.Actual = desired
}

func (r *Renderer) renderRow(y int, desired, actual Row) {
	shared := sharedPrefix(desired.Cells, actual.Cells)
	skip := shared
	if desired.SoftWrapped && skip > r.state.ActualWidth-2 {
		skip = r.state.ActualWidth - 2
		if skip < 0 {
			skip = 0
		}
	}

	r.moveTo(cellsWidth(desired.Cells[:skip]), y)

	activeColor := ""
	for _, c := range desired.Cells[skip:] {
		if c.Color != activeColor {
			if activeColor != "" {
				r.adapter.ResetAttributes(r.w)
			}
			if c.Color != "" {
				io.WriteString(r.w, c.Color)
			}
			activeColor = c.Color
		}
		r.writeCell(c)
	}
	if activeColor != "" {
		r.adapter.ResetAttributes(r.w)
	}

	if cellsWidth(desired.Cells) < cellsWidth(actual.Cells) {
		r.adapter.ClearToEOL(r.w)
	}
}

func (r *Renderer) writeCell(c Cell) {
	r.adapter.WriteChar(c.R, r.w)
	w := terminfo.WidthOf(c.R)
	r.state.ActualCursorX += w
	if r.state.ActualCursorX >= r.state.ActualWidth {
		if r.adapter.Traits().AutoRightMargin {
			r.state.SoftWrapLocation = &[2]int{0, r.state.ActualCursorY + 1}
		}
		r.state.ActualCursorX = 0
		r.state.ActualCursorY++
	}
}

func (r *Renderer) lineFeed() {
	io.WriteString(r.w, "\r\n")
	r.state.ActualCursorX = 0
	r.state.ActualCursorY++
}

// moveTo moves the tracked cursor to (x, y) using relative motion,
// short-circuiting if the soft-wrap location already puts us there for
// free (spec.md §4.10 "Soft-wrap bookkeeping").
func (r *Renderer) moveTo(x, y int) {
	s := r.state
	if s.SoftWrapLocation != nil && s.SoftWrapLocation[0] == x && s.SoftWrapLocation[1] == y {
		s.SoftWrapLocation = nil
		s.ActualCursorX, s.ActualCursorY = x, y
		return
	}
	s.SoftWrapLocation = nil
	dx := x - s.ActualCursorX
	dy := y - s.ActualCursorY
	if dx == 0 && dy == 0 {
		return
	}
	r.adapter.MoveCursor(dx, dy, r.w)
	s.ActualCursorX, s.ActualCursorY = x, y
}

func sharedPrefix(a, b []Cell) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	// A combining mark (width 0) must never be the last shared cell: back
	// off by one so its base character is re-rendered together with it
	// (spec.md §4.10 step 4).
	if i > 0 && terminfo.WidthOf(a[i-1].R) == 0 {
		i--
	}
	return i
}

func cellsWidth(cells []Cell) int {
	w := 0
	for _, c := range cells {
		w += terminfo.WidthOf(c.R)
	}
	return w
}
