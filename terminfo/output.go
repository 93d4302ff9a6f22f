package terminfo

import (
	"io"

	"github.com/xo/terminfo"
)

// ClearScreen writes the capability to home the cursor and erase the whole
// screen, adapting the teacher's dead eraseScreen (output.go) onto terminfo
// output rather than a hardcoded "\x1b[H\x1b[2J".
func (a *Adapter) ClearScreen(sink io.Writer) {
	if a.dumb || a.ti == nil {
		io.WriteString(sink, "\x1b[H\x1b[2J")
		return
	}
	if s := a.ti.Printf(terminfo.ClearScreen); s != "" {
		io.WriteString(sink, s)
		return
	}
	a.MoveTo(0, 0, sink)
	io.WriteString(sink, "\x1b[2J")
}

// ResetAttributes writes the capability that turns off bold/underline/
// reverse/color and returns to the terminal's default rendition.
func (a *Adapter) ResetAttributes(sink io.Writer) {
	if a.dumb || a.ti == nil {
		io.WriteString(sink, "\x1b[0m")
		return
	}
	io.WriteString(sink, a.ti.Printf(terminfo.ExitAttributeMode))
}

// NamedColors is the fixed 16-color palette name table, generalizing the
// teacher's fgXxx/bgXxx hardcoded ANSI constants (output.go) into indices
// passed through SetColors/tparm instead of baked-in escape strings, so the
// same names work whether or not the terminal uses standard SGR ordering.
var NamedColors = map[string]int{
	"black":       0,
	"red":         1,
	"green":       2,
	"brown":       3,
	"blue":        4,
	"purple":      5,
	"cyan":        6,
	"light-gray":  7,
	"dark-gray":   8,
	"light-red":   9,
	"light-green": 10,
	"yellow":      11,
	"light-blue":  12,
	"fuchsia":     13,
	"turquoise":   14,
	"white":       15,
}
