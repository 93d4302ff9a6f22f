// Package mockterm implements a fake terminal that interprets a small set
// of ANSI control sequences well enough to let renderer tests assert on
// the resulting screen contents, generalized from the teacher's
// prompt_test.go mockTerm (an unexported, single-file test helper) into a
// reusable io.Writer any package's tests can import.
package mockterm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Term is a fixed-size fake screen that can be written to with the subset
// of CSI sequences the Differential Renderer emits: cursor motion
// (A/B/C/D), cursor-home (H), erase-screen (J), erase-line (K), and
// attribute-setting (m, recorded but not rendered back).
type Term struct {
	contents []rune
	width    int
	height   int
	cursorX  int
	cursorY  int
}

var seqRE = regexp.MustCompile(`^\x1b\[(\d*)([ABCDHJKm])`)

// New returns a blank w-by-h Term.
func New(w, h int) *Term {
	return &Term{contents: make([]rune, w*h), width: w, height: h}
}

// Write implements io.Writer, interpreting recognized escape sequences and
// writing any other rune directly to the screen at the cursor.
func (t *Term) Write(p []byte) (int, error) {
	total := len(p)
	for len(p) > 0 {
		if m := seqRE.FindSubmatch(p); m != nil {
			var n int
			if len(m[1]) > 0 {
				var err error
				n, err = strconv.Atoi(string(m[1]))
				if err != nil {
					return -1, err
				}
			}
			switch m[2][0] {
			case 'A':
				t.moveUp(n)
			case 'B':
				t.moveDown(n)
			case 'C':
				t.moveRight(n)
			case 'D':
				t.moveLeft(n)
			case 'H':
				t.moveTo(0, 0)
			case 'J':
				t.eraseScreen(n)
			case 'K':
				t.eraseLine(n)
			case 'm':
				// Attribute set/reset: no visual effect in this fake.
			default:
				return -1, fmt.Errorf("mockterm: unhandled CSI command %q", m[2][0])
			}
			p = p[len(m[0]):]
			continue
		}
		if p[0] == '\x1b' {
			// An escape sequence this fake doesn't recognize (e.g. 256-color
			// SGR, OSC strings): skip just the ESC so decoding can resync,
			// rather than failing the whole write.
			p = p[1:]
			continue
		}
		r, l := utf8.DecodeRune(p)
		if r == utf8.RuneError && l <= 1 {
			p = p[1:]
			continue
		}
		t.put(r)
		p = p[l:]
	}
	return total, nil
}

// String renders the screen framed in box-drawing characters with the
// cursor marked by a combining low line, for use in test failure output
// and datadriven golden files.
func (t *Term) String() string {
	var buf strings.Builder

	buf.WriteRune('┌')
	for x := 0; x < t.width; x++ {
		buf.WriteRune('─')
	}
	buf.WriteString("┐\n")

	for y := 0; y < t.height; y++ {
		buf.WriteRune('│')
		var prevWidth int
		for x := 0; x < t.width; x++ {
			r := t.contents[t.position(x, y)]
			if r == 0 {
				r = ' '
			}
			if prevWidth != 2 {
				buf.WriteRune(r)
			}
			if x == t.cursorX && y == t.cursorY {
				buf.WriteRune('̲')
			}
			prevWidth = runewidth.RuneWidth(r)
		}
		buf.WriteString("│\n")
	}

	buf.WriteRune('└')
	for x := 0; x < t.width; x++ {
		buf.WriteRune('─')
	}
	buf.WriteRune('┘')

	return buf.String()
}

// Cursor returns the fake screen's current cursor position.
func (t *Term) Cursor() (x, y int) { return t.cursorX, t.cursorY }

func (t *Term) moveUp(n int) {
	if n == 0 {
		n = 1
	}
	t.moveTo(t.cursorX, t.cursorY-n)
}

func (t *Term) moveDown(n int) {
	if n == 0 {
		n = 1
	}
	t.moveTo(t.cursorX, t.cursorY+n)
}

func (t *Term) moveRight(n int) {
	if n == 0 {
		n = 1
	}
	t.moveTo(t.cursorX+n, t.cursorY)
}

func (t *Term) moveLeft(n int) {
	if n == 0 {
		n = 1
	}
	t.moveTo(t.cursorX-n, t.cursorY)
}

func (t *Term) moveTo(x, y int) {
	if x < 0 {
		x = 0
	} else if x > t.width {
		x = t.width
	}
	if y < 0 {
		y = 0
	} else if y > t.height {
		y = t.height
	}
	t.cursorX = x
	t.cursorY = y
}

func (t *Term) eraseScreen(n int) {
	switch n {
	case 0:
		t.fill(t.cursorX, t.cursorY, t.width-t.cursorX, 1, 0)
		t.fill(0, t.cursorY+1, t.width, t.height-(t.cursorY+1), 0)
	case 1:
		t.fill(0, 0, t.width, t.cursorY, 0)
		t.fill(0, t.cursorY, t.cursorX, 1, 0)
	case 2:
		t.moveTo(0, 0)
		t.fill(0, 0, t.width, t.height, 0)
	}
}

func (t *Term) eraseLine(n int) {
	switch n {
	case 0:
		t.fill(t.cursorX, t.cursorY, t.width-t.cursorX, 1, 0)
	case 1:
		t.fill(0, t.cursorY, t.cursorX, 1, 0)
	case 2:
		t.fill(0, t.cursorY, t.width, 1, 0)
	}
}

func (t *Term) scroll() {
	for i := 1; i < t.height; i++ {
		copy(t.line(i-1), t.line(i))
	}
	t.fill(0, t.cursorY, t.width, 1, 0)
}

func (t *Term) position(x, y int) int { return x + y*t.width }

func (t *Term) put(r rune) {
	switch r {
	case '\r':
		t.moveTo(0, t.cursorY)
	case '\n':
		if t.cursorY+1 < t.height {
			t.cursorY++
			return
		}
		t.cursorX = 0
		t.scroll()
	default:
		switch runewidth.RuneWidth(r) {
		case 0:
		case 1:
			t.contents[t.position(t.cursorX, t.cursorY)] = r
			if t.cursorX+1 < t.width {
				t.cursorX++
			}
		default:
			if t.cursorX+2 >= t.width {
				t.cursorX = 0
				t.scroll()
			}
			pos := t.position(t.cursorX, t.cursorY)
			t.contents[pos] = r
			t.contents[pos+1] = 0
			t.cursorX += 2
		}
	}
}

func (t *Term) line(y int) []rune { return t.contents[y*t.width : (y+1)*t.width] }

func (t *Term) fill(x, y, width, height int, r rune) {
	for i := 0; i < height; i++ {
		for j := 0; j < width; j++ {
			t.contents[t.position(x+j, y+i)] = r
		}
	}
}
