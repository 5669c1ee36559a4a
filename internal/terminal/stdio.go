package terminal

import (
	"io"
	"os"

	"golang.org/x/term"
)

// fder is implemented by *os.File.
type fder interface {
	Fd() uintptr
}

// OutputIsTerminal returns true if w writes to a terminal. Writers which are
// not backed by a file descriptor never are.
func OutputIsTerminal(w io.Writer) bool {
	f, ok := w.(fder)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// CanFormat returns true if w is a terminal which is able to display aligned,
// decorated output.
func CanFormat(w io.Writer) bool {
	if !OutputIsTerminal(w) {
		return false
	}
	t := os.Getenv("TERM")
	return t != "" && t != "dumb"
}
