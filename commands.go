package lineedit

// Command names a readline operation. Commands are data, not behavior:
// dispatch lives entirely in the Edit Core (editcore.go) and its
// collaborators (killring.go, history package, autosuggest.go).
type Command string

// The set of named readline commands understood by the Edit Core. This list
// generalizes the teacher's much smaller command set (bind.go) to the 51
// operations below, grounded on fish's
// src/input.h/builtin_bind.h naming.
const (
	CmdAbort                   Command = "abort"
	CmdAcceptAutosuggestion    Command = "accept-autosuggestion"
	CmdBackwardChar            Command = "backward-char"
	CmdBackwardDeleteChar      Command = "backward-delete-char"
	CmdBackwardKillLine        Command = "backward-kill-line"
	CmdBackwardKillWord        Command = "backward-kill-word"
	CmdBackwardWord            Command = "backward-word"
	CmdBeginningOfHistory      Command = "beginning-of-history"
	CmdBeginningOfLine         Command = "beginning-of-line"
	CmdCancel                  Command = "cancel"
	CmdCapitalizeWord          Command = "capitalize-word"
	CmdClearScreen             Command = "clear-screen"
	CmdDeleteChar              Command = "delete-char"
	CmdNewline                 Command = "newline"
	CmdDeleteHorizontalSpace   Command = "delete-horizontal-space"
	CmdDowncaseWord            Command = "downcase-word"
	CmdDownLine                Command = "down-line"
	CmdEndOfHistory            Command = "end-of-history"
	CmdEndOfLine               Command = "end-of-line"
	CmdEof                     Command = "eof"
	CmdExecute                 Command = "execute"
	CmdExitOrDeleteChar        Command = "exit-or-delete-char"
	CmdForceRepaint            Command = "force-repaint"
	CmdForwardChar             Command = "forward-char"
	CmdForwardSearchHistory    Command = "forward-search-history"
	CmdForwardWord             Command = "forward-word"
	CmdHistorySearchBackward   Command = "history-search-backward"
	CmdHistorySearchForward    Command = "history-search-forward"
	CmdHistoryTokenSearchBack  Command = "history-token-search-backward"
	CmdHistoryTokenSearchFwd   Command = "history-token-search-forward"
	CmdKillLine                Command = "kill-line"
	CmdKillWholeLine           Command = "kill-whole-line"
	CmdKillWord                Command = "kill-word"
	CmdNextHistory             Command = "next-history"
	CmdPreviousHistory         Command = "previous-history"
	CmdRepaint                 Command = "repaint"
	CmdRepaintMode             Command = "repaint-mode"
	CmdReverseSearchHistory    Command = "reverse-search-history"
	CmdSelfInsert              Command = "self-insert"
	CmdSelfInsertNotFirst      Command = "self-insert-notfirst"
	CmdSetMark                 Command = "set-mark"
	CmdSuppressAutosuggestion  Command = "suppress-autosuggestion"
	CmdTabComplete             Command = "complete"
	CmdTabCompleteAndSearch    Command = "complete-and-search"
	CmdTransposeChars          Command = "transpose-chars"
	CmdTransposeWords          Command = "transpose-words"
	CmdUndo                    Command = "undo"
	CmdUpcaseWord              Command = "upcase-word"
	CmdUpLine                  Command = "up-line"
	CmdYank                    Command = "yank"
	CmdYankPop                 Command = "yank-pop"
)

// killCommands are commands whose effect is to remove text and push it onto
// the kill ring front entry; consecutive kills of the same kind accumulate
// into a single entry (spec.md §4.4).
var killCommands = map[Command]bool{
	CmdBackwardKillLine: true,
	CmdBackwardKillWord: true,
	CmdKillLine:         true,
	CmdKillWholeLine:    true,
	CmdKillWord:         true,
}

// historySearchCommands enter or continue the incremental line-search mode
// described in spec.md §4.8 "HistorySearch".
var historySearchCommands = map[Command]bool{
	CmdHistorySearchBackward: true,
	CmdHistorySearchForward:  true,
	CmdForwardSearchHistory:  true,
	CmdReverseSearchHistory:  true,
}

// historyTokenSearchCommands enter or continue token-history search
// (spec.md §4.8 "Token history search").
var historyTokenSearchCommands = map[Command]bool{
	CmdHistoryTokenSearchBack: true,
	CmdHistoryTokenSearchFwd:  true,
}
