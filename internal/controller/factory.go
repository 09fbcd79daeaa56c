package controller

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// NewUI returns the live sweep view when interactive is set and plain
// line output otherwise, which is what pipes and CI logs want.
func NewUI(cmd *cobra.Command, interactive bool) UI {
	if !interactive {
		return NewSimpleUI(cmd)
	}

	return NewTUI(cmd.OutOrStdout())
}

// IsTTY reports whether w can host the live sweep view. Character devices
// that are not terminals (/dev/null) and TERM=dumb get plain output.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || os.Getenv("TERM") == "dumb" {
		return false
	}

	fd := f.Fd()

	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
