package ux

import (
	"fmt"
	"io"
	"os"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

// Printer writes trace output to Out and diagnostics to Err.
type Printer struct {
	Out   io.Writer
	Err   io.Writer
	Color bool
}

// Stdio returns a Printer bound to the process's standard streams. Color is
// only used when both streams are terminals.
func Stdio(color bool) *Printer {
	return &Printer{
		Out:   os.Stdout,
		Err:   os.Stderr,
		Color: color && IsTerminal(os.Stdout) && IsTerminal(os.Stderr),
	}
}

// IsTerminal reports whether w is a character device.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}

// Discard returns a Printer that drops everything.
func Discard() *Printer {
	return &Printer{Out: io.Discard, Err: io.Discard}
}

// Paint wraps s in color when the Printer is colored.
func (p *Printer) Paint(color, s string) string {
	if !p.Color {
		return s
	}
	return color + s + Reset
}

// Trace prints a verbose progress line tied to a source position.
func (p *Printer) Trace(file string, line int, format string, args ...any) {
	fmt.Fprintf(p.Out, "%s %s\n",
		p.Paint(Dim, fmt.Sprintf("File %s, line %d:", file, line)), fmt.Sprintf(format, args...))
}

// Extracted prints a completed header.
func (p *Printer) Extracted(header, source string, line int) {
	fmt.Fprintf(p.Out, "  %s %s %s\n",
		p.Paint(Green, "✓"), header, p.Paint(Dim, fmt.Sprintf("(from %s:%d)", source, line)))
}

// Planned prints a header that a dry run would write.
func (p *Printer) Planned(header, tag, source string, line int) {
	fmt.Fprintf(p.Out, "  %s %s [%s] %s\n",
		p.Paint(Cyan, "→"), header, tag, p.Paint(Dim, fmt.Sprintf("(from %s:%d)", source, line)))
}

// Summary prints the totals of a run.
func (p *Printer) Summary(files, headers int, dryRun bool) {
	verb := "extracted"
	if dryRun {
		verb = "would extract"
	}
	fmt.Fprintf(p.Out, "%s\n", p.Paint(Bold, fmt.Sprintf("%d file(s) scanned, %s %d header(s)", files, verb, headers)))
}

// Warn prints a non-fatal diagnostic.
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintf(p.Err, "%s %s\n", p.Paint(Yellow, "warning:"), fmt.Sprintf(format, args...))
}

// Error prints a fatal diagnostic.
func (p *Printer) Error(err error) {
	fmt.Fprintf(p.Err, "%s %v\n", p.Paint(Red, "error:"), err)
}
