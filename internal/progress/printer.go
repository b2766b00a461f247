package progress

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Status line prefixes.
const (
	successPrefix = "✅ "
	warnPrefix    = "⚠️  "
	errorPrefix   = "❌ "
)

// Notifier receives progress events.
// Components that want to tell the user something (for example that the
// search client fell back to static sources) depend on this interface
// rather than on a concrete printer.
type Notifier interface {
	// Infof prints a neutral line. The caller supplies any emoji.
	Infof(format string, args ...any)

	// Successf prints a line prefixed with a check mark.
	Successf(format string, args ...any)

	// Warnf prints a line prefixed with a warning sign.
	Warnf(format string, args ...any)

	// Errorf prints a line prefixed with a cross mark.
	Errorf(format string, args ...any)
}

// Discard is a Notifier that prints nothing.
var Discard Notifier = discard{}

type discard struct{}

func (discard) Infof(string, ...any)    {}
func (discard) Successf(string, ...any) {}
func (discard) Warnf(string, ...any)    {}
func (discard) Errorf(string, ...any)   {}

// Printer writes progress lines to an io.Writer.
// Success, warning and error lines are colored when color is enabled.
type Printer struct {
	out io.Writer

	success *color.Color
	warn    *color.Color
	failure *color.Color
}

// Option configures a Printer.
type Option func(*Printer)

// WithColor forces color on or off.
// Without this option color is enabled only when out is a terminal.
func WithColor(enabled bool) Option {
	return func(p *Printer) {
		p.setColor(enabled)
	}
}

// NewPrinter creates a Printer that writes to out.
func NewPrinter(out io.Writer, opts ...Option) *Printer {
	p := &Printer{
		out:     out,
		success: color.New(color.FgGreen),
		warn:    color.New(color.FgYellow),
		failure: color.New(color.FgRed, color.Bold),
	}
	p.setColor(isTerminal(out))

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// setColor enables or disables color on every style of the printer.
func (p *Printer) setColor(enabled bool) {
	for _, c := range []*color.Color{p.success, p.warn, p.failure} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
}

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Infof implements Notifier.
func (p *Printer) Infof(format string, args ...any) {
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Successf implements Notifier.
func (p *Printer) Successf(format string, args ...any) {
	_, _ = p.success.Fprintf(p.out, successPrefix+format+"\n", args...)
}

// Warnf implements Notifier.
func (p *Printer) Warnf(format string, args ...any) {
	_, _ = p.warn.Fprintf(p.out, warnPrefix+format+"\n", args...)
}

// Errorf implements Notifier.
func (p *Printer) Errorf(format string, args ...any) {
	_, _ = p.failure.Fprintf(p.out, errorPrefix+format+"\n", args...)
}

// Rule prints a horizontal rule of width '=' characters.
func (p *Printer) Rule(width int) {
	fmt.Fprintln(p.out, strings.Repeat("=", width))
}

// Blank prints an empty line.
func (p *Printer) Blank() {
	fmt.Fprintln(p.out)
}
