// Package diagnostics is the user-facing side channel of defsub: redefinition
// warnings and front-end errors, one line each, tagged with a source line.
package diagnostics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Reporter receives advisory and error diagnostics. Reporting never stops
// processing; callers decide what an error count means at the end.
type Reporter interface {
	// Redefinition is emitted when an existing identifier is bound again.
	// value is the new value rendered as text.
	Redefinition(key, value string, line int)
	// Error reports a front-end error found at line.
	Error(line int, err error)
}

type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode accepts "auto", "always" and "never". The empty string is auto.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("unknown color mode %q (want auto, always or never)", s)
	}
}

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// Printer writes diagnostics as text lines and counts them.
type Printer struct {
	w        io.Writer
	warn     *color.Color
	fail     *color.Color
	warnings int
	errors   int
}

func NewPrinter(w io.Writer, mode ColorMode) *Printer {
	p := &Printer{
		w:    w,
		warn: color.New(color.FgYellow, color.Bold),
		fail: color.New(color.FgRed, color.Bold),
	}
	useColor := false
	switch mode {
	case ColorAlways:
		useColor = true
	case ColorAuto:
		useColor = detectColor(w)
	}
	if useColor {
		p.warn.EnableColor()
		p.fail.EnableColor()
	} else {
		p.warn.DisableColor()
		p.fail.DisableColor()
	}
	return p
}

func (p *Printer) Redefinition(key, value string, line int) {
	p.warnings++
	fmt.Fprintf(p.w, "%s redefinition of %s to %s at line %d\n", p.warn.Sprint("Warning:"), key, value, line)
}

func (p *Printer) Error(line int, err error) {
	p.errors++
	if line > 0 {
		fmt.Fprintf(p.w, "%s %v (line %d)\n", p.fail.Sprint("error:"), err, line)
		return
	}
	fmt.Fprintf(p.w, "%s %v\n", p.fail.Sprint("error:"), err)
}

// Warnings returns the number of warnings printed so far.
func (p *Printer) Warnings() int { return p.warnings }

// Errors returns the number of errors printed so far.
func (p *Printer) Errors() int { return p.errors }

type discard struct{}

func (discard) Redefinition(string, string, int) {}
func (discard) Error(int, error)                 {}

// Discard drops every diagnostic.
var Discard Reporter = discard{}

// detectColor follows the NO_COLOR convention (https://no-color.org/) and
// only colors real terminals.
func detectColor(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
