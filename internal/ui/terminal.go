package ui

import (
	"io"
	"os"

	"golang.org/x/term"
)

// fdWriter is implemented by *os.File
type fdWriter interface {
	Fd() uintptr
}

// IsTerminal reports whether w is attached to a terminal
func IsTerminal(w io.Writer) bool {
	f, ok := w.(fdWriter)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// ShouldUseColor decides whether output to w is colored. NO_COLOR always
// wins, CLICOLOR=0 disables and CLICOLOR_FORCE enables color regardless of
// the terminal.
func ShouldUseColor(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("CLICOLOR") == "0" {
		return false
	}
	if force := os.Getenv("CLICOLOR_FORCE"); force != "" && force != "0" {
		return true
	}
	return IsTerminal(w)
}
