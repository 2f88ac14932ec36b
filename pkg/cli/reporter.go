package cli

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/sparvlang/sparv/internal/diagnostics"
)

const (
	colorRed   = "\x1b[31m"
	colorReset = "\x1b[0m"
)

// reporter prints diagnostics to stderr, colored when stderr is a
// terminal, and counts them for the exit code.
type reporter struct {
	count int
	color bool
}

func newReporter() *reporter {
	return &reporter{color: isatty.IsTerminal(os.Stderr.Fd())}
}

func (r *reporter) report(err *diagnostics.DiagnosticError) {
	r.count++
	line := err.Error()
	if r.color {
		line = colorRed + line + colorReset
	}
	fmt.Fprintln(os.Stderr, line)
}

func (r *reporter) reset() { r.count = 0 }
