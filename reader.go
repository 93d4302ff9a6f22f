package lineedit

import (
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/jcorbin/lineedit/history"
	"github.com/jcorbin/lineedit/terminfo"
)

// Editor reads single- or multi-line input from a terminal, composing the
// Terminfo Adapter, Binding Engine, Edit Core, History Store, Job Pool, and
// Differential Renderer into the Reader Loop described by spec.md §4.11.
// It replaces the teacher's Prompt (prompt.go), which inlined all of this
// into one type backed by a hardcoded ANSI-only screen.
type Editor struct {
	fd          int
	in          io.Reader
	out         io.Writer
	width       int
	height      int

	inputFinished func(text string) bool
	completer     Completer
	highlighter   Highlighter
	special       SpecialCommandSuggester

	histDir, histName string
	escDelay          time.Duration
	workers           int
	userBindings      []Binding

	mu struct {
		sync.Mutex
		core     *EditCore
		mode     string
		renderer *Renderer
	}

	term     *terminfo.Adapter
	mappings *InputMappingSet
	engine   *BindingEngine
	hist     *history.Store
	histFile *history.FileStore
	kill     *KillRing
	pool     *JobPool
	auto     *Autosuggester
}

// New creates an Editor using the supplied options. With no options it
// reads from os.Stdin and writes to os.Stdout, matching the teacher's
// prompt.New default (prompt.go).
func New(options ...Option) *Editor {
	e := &Editor{
		fd:      -1,
		in:      os.Stdin,
		out:     os.Stdout,
		workers: 2,
	}
	for _, opt := range options {
		opt.apply(e)
	}

	type fdGetter interface{ Fd() uintptr }
	if f, ok := e.in.(fdGetter); ok {
		e.fd = int(f.Fd())
	}

	termName := os.Getenv("TERM")
	adapter, err := terminfo.Load(termName)
	if err != nil || adapter == nil {
		adapter, _ = terminfo.Load("dumb")
	}
	e.term = adapter

	e.mappings = DefaultBindings(adapter)
	for _, b := range e.userBindings {
		e.mappings.AddUser(b)
	}
	e.engine = NewBindingEngine(e.mappings, e.escDelay)

	e.kill = NewKillRing()
	if e.histDir != "" {
		fs, ferr := history.OpenFileStore(e.histDir, e.histName)
		if ferr == nil {
			e.histFile = fs
			e.hist = fs.Store
		}
	}
	if e.hist == nil {
		e.hist = history.NewStore()
	}
	e.auto = &Autosuggester{Hist: e.hist, Special: e.special, Completer: e.completer}
	e.pool = NewJobPool(e.workers)

	e.mu.core = NewEditCore(e.hist, e.kill)
	e.mu.core.SetCompleter(e.completer)
	e.mu.mode = ModeDefault

	if e.width <= 0 {
		e.width, e.height = 80, 24
	}
	e.mu.renderer = NewRenderer(e.term, e.out, e.width, e.height)

	return e
}

// Close releases the Editor's resources, flushing history to disk if a
// history path was configured.
func (e *Editor) Close() error {
	e.pool.Close()
	if e.histFile != nil {
		return e.histFile.Save()
	}
	return nil
}

// ReadLine reads one logical line of input (which may itself contain
// embedded newlines if inputFinished requests continuation), rendering
// leftPrompt/rightPrompt around it. Cancel on an empty line returns io.EOF,
// mirroring the teacher's ReadLine (prompt.go); Cancel on a non-empty line
// clears it and reading continues.
func (e *Editor) ReadLine(leftPrompt, rightPrompt string) (string, error) {
	if err := e.updateSize(); err != nil {
		return "", err
	}

	if e.fd != -1 {
		winch := make(chan os.Signal, 1)
		signal.Notify(winch, syscall.SIGWINCH)
		go func() {
			for range winch {
				_ = e.updateSize()
			}
		}()
		defer func() {
			signal.Stop(winch)
			close(winch)
		}()

		saved, err := term.MakeRaw(e.fd)
		if err != nil {
			return "", err
		}
		defer term.Restore(e.fd, saved)
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.mu.core.Reset()

	pool := e.pool
	var sides []SideChannel
	if fd := e.poolNotifyFD(); fd >= 0 {
		sides = append(sides, SideChannel{FD: fd, Hook: pool.Drain})
	}
	queue := NewTTYQueue(e.fd, e.in, e.escDelay, sides...)
	Diag().Event("readline-start", nil)

	for {
		ev, newMode := e.engine.Next(queue, e.mu.mode)
		e.mu.mode = newMode

		if ev.Kind == EventCheckExit {
			pool.Drain()
			e.render(leftPrompt, rightPrompt)
			continue
		}

		if ev.Kind == EventEOF {
			// The input stream itself ended (not a readline eof-command):
			// surface whatever is left in the buffer, mirroring the
			// teacher's processInputLocked (prompt.go).
			if text := e.mu.core.Text(); len(text) > 0 {
				e.hist.Add(history.Item{Text: text})
				return text, nil
			}
			return "", io.EOF
		}

		done, eof := e.mu.core.Dispatch(ev)

		if eof {
			e.render(leftPrompt, rightPrompt)
			if text := e.mu.core.Text(); len(text) > 0 {
				e.hist.Add(history.Item{Text: text})
				return text, nil
			}
			return "", io.EOF
		}

		if done {
			text := e.mu.core.Text()
			if e.inputFinished == nil || e.inputFinished(text) {
				e.render(leftPrompt, rightPrompt)
				e.hist.Add(history.Item{Text: text})
				return text, nil
			}
			// Not finished: insert a newline and keep editing (spec.md
			// §4.11 "finish-or-insert-newline").
			e.mu.core.Dispatch(readlineEvent(CmdNewline, nil))
		}

		scheduleHighlight(pool, e.mu.core, e.highlighter)
		e.auto.Schedule(pool, e.mu.core)
		pool.Drain()
		e.render(leftPrompt, rightPrompt)
	}
}

// poolNotifyFD returns a file descriptor the Input Byte Queue can select()
// on to learn that a background job has finished. The Job Pool's result
// channel has no fd of its own, so ReadLine instead drains it after each
// dispatched event and on EventCheckExit; -1 disables this side channel
// without affecting correctness, only latency of picking up async results
// (documented as an Open Question resolution in DESIGN.md, "Job Pool has
// no OS-level side-channel fd").
func (e *Editor) poolNotifyFD() int { return -1 }

func (e *Editor) updateSize() error {
	if e.fd == -1 {
		return nil
	}
	width, height, err := term.GetSize(e.fd)
	if err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.width, e.height = width, height
	e.mu.renderer.Resize(width, height)
	return nil
}

func (e *Editor) render(leftPrompt, rightPrompt string) {
	core := e.mu.core
	if prompt := core.SearchPrompt(); prompt != "" {
		leftPrompt = prompt
		rightPrompt = ""
	}
	layout := PlanLayout(e.width, leftPrompt, rightPrompt, core.Text(), core.Autosuggestion())
	frame := BuildFrame(layout, core, e.width)

	if e.mu.renderer.Dumb() {
		e.mu.renderer.RenderDumb(layout.LeftPrompt, core.Text())
		return
	}

	cursorRow, cursorCol := cursorPosition(frame, []rune(leftPrompt), core, e.width)
	e.mu.renderer.Render(frame, cursorRow, cursorCol, layout.LeftPrompt)
}

// cursorPosition locates the cursor within the desired frame by replaying
// the same left-prompt + buffer-prefix composition BuildFrame used,
// counting display columns (spec.md §4.10's cursor tracking).
func cursorPosition(frame ScreenData, leftPrompt []rune, core *EditCore, width int) (row, col int) {
	row, col = 0, 0
	for _, r := range leftPrompt {
		col += terminfo.WidthOf(r)
		if col >= width {
			row++
			col = 0
		}
	}
	text := []rune(core.Text())
	limit := core.Cursor()
	if limit > len(text) {
		limit = len(text)
	}
	for _, r := range text[:limit] {
		if r == '\n' {
			row++
			col = 0
			continue
		}
		w := terminfo.WidthOf(r)
		col += w
		if col >= width {
			row++
			col = 0
		}
	}
	return row, col
}
