package cli

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsInteractive reports whether stdin and stdout are attached to a terminal.
// Tests replace it.
var IsInteractive = func() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
