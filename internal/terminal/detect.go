// Package terminal provides terminal detection utilities.
package terminal

import (
	"os"

	"golang.org/x/term"
)

var isTerminalFn = term.IsTerminal

// IsInteractive reports whether stdin and stderr are both interactive terminals.
// Prompts read from stdin and render on stderr.
func IsInteractive() bool {
	return IsTerminal(os.Stdin) && IsTerminal(os.Stderr)
}

// IsTerminal reports whether f refers to a terminal. A nil file is not a terminal.
func IsTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isTerminalFn(int(f.Fd()))
}
