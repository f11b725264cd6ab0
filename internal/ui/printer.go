package ui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/idilsaglam/tada/internal/model"
)

const (
	symCheck = "✔"
	symCross = "✖"
)

// Printer writes styled CLI output. Color follows the out writer: a
// terminal gets color, a pipe or buffer gets plain text.
type Printer struct {
	out, err io.Writer
	styles   Styles
}

// NewPrinter binds styles for th to out and errOut.
func NewPrinter(out, errOut io.Writer, th model.Theme, noColor bool) *Printer {
	r := lipgloss.NewRenderer(out)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Printer{out: out, err: errOut, styles: NewStyles(r, th)}
}

// Styles exposes the printer's styles for callers composing lines.
func (p *Printer) Styles() Styles { return p.styles }

// Out is the stdout writer.
func (p *Printer) Out() io.Writer { return p.out }

func (p *Printer) OK(msg string) {
	fmt.Fprintln(p.out, p.styles.Success.Render(symCheck+" "+msg))
}

func (p *Printer) Fail(msg string) {
	fmt.Fprintln(p.err, p.styles.Error.Render(symCross+" "+msg))
}

// Hint prints a muted follow-up line on stderr.
func (p *Printer) Hint(msg string) {
	fmt.Fprintln(p.err, p.styles.Muted.Render(msg))
}
