// Package lineedit implements the interactive line editor core of a Unix
// command shell: a differential terminal renderer, a readline-style command
// dispatcher, an input byte queue with terminfo-backed key decoding, history
// search, and asynchronous syntax highlighting and autosuggestion.
//
// lineedit does not implement a shell. Command evaluation, completion
// generation, and tokenization are all external collaborators supplied by
// the caller through Option values; see WithCompleter, WithHighlighter,
// WithSpecialCommandSuggester, and WithInputFinished.
package lineedit
