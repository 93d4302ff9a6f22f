package lineedit

import (
	"io"
	"os"
	"time"
)

// Option configures an Editor, generalizing the teacher's Option interface
// (options.go) to the larger set of knobs SPEC_FULL.md's ambient and
// domain stacks add (history path, completer, highlighter, escape delay).
type Option interface {
	apply(e *Editor)
}

type optionFunc func(e *Editor)

func (f optionFunc) apply(e *Editor) { f(e) }

// WithTTY configures a different TTY than stdin/stdout.
func WithTTY(tty *os.File) Option {
	return optionFunc(func(e *Editor) {
		e.fd = int(tty.Fd())
		e.in = tty
		e.out = tty
	})
}

// WithInput configures the input reader, primarily useful for tests.
func WithInput(r io.Reader) Option {
	return optionFunc(func(e *Editor) { e.in = r })
}

// WithOutput configures the output writer, primarily useful for tests.
func WithOutput(w io.Writer) Option {
	return optionFunc(func(e *Editor) { e.out = w })
}

// WithSize configures the initial terminal width/height, bypassing the
// ioctl-based auto-detection; primarily useful for tests in conjunction
// with WithInput/WithOutput.
func WithSize(width, height int) Option {
	return optionFunc(func(e *Editor) { e.width, e.height = width, height })
}

// WithInputFinished configures the multi-line continuation callback
// (spec.md §4.11's finish-or-insert-newline decision), generalizing the
// teacher's WithInputFinished (options.go) unchanged.
func WithInputFinished(fn func(text string) bool) Option {
	return optionFunc(func(e *Editor) { e.inputFinished = fn })
}

// WithCompleter configures tab completion and feeds the Autosuggester's
// completion-engine fallback stage (spec.md §4.7).
func WithCompleter(fn Completer) Option {
	return optionFunc(func(e *Editor) { e.completer = fn })
}

// WithHighlighter configures async syntax highlighting (spec.md §4.7
// "Highlighter").
func WithHighlighter(fn Highlighter) Option {
	return optionFunc(func(e *Editor) { e.highlighter = fn })
}

// WithSpecialCommandSuggester configures the Autosuggester's
// special-command stage.
func WithSpecialCommandSuggester(fn SpecialCommandSuggester) Option {
	return optionFunc(func(e *Editor) { e.special = fn })
}

// WithHistoryPath configures on-disk history persistence under dir/name,
// replacing the teacher's in-memory-only history (history.go). Pass ""
// (the default) to keep history in memory for the process lifetime only.
func WithHistoryPath(dir, name string) Option {
	return optionFunc(func(e *Editor) { e.histDir, e.histName = dir, name })
}

// WithEscapeDelay overrides fish_escape_delay_ms's default (spec.md §4.2).
func WithEscapeDelay(d time.Duration) Option {
	return optionFunc(func(e *Editor) { e.escDelay = d })
}

// WithWorkers overrides the Job Pool's worker count (default 2).
func WithWorkers(n int) Option {
	return optionFunc(func(e *Editor) { e.workers = n })
}

// WithUserBinding adds a single user key binding, shadowing any preset
// binding for the same (mode, sequence) pair (spec.md §3 "Input mapping
// set").
func WithUserBinding(b Binding) Option {
	return optionFunc(func(e *Editor) { e.userBindings = append(e.userBindings, b) })
}
