// Package printer renders user-facing CLI output with consistent glyphs
// and colors. Commands fetch the printer from the context so tests can
// swap the output writer.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	sectionStyle = lipgloss.NewStyle().Bold(true)
)

type ctxKey struct{}

// WithCtx returns a context carrying p.
func WithCtx(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the printer carried by ctx, falling back to stdout.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return defaultPrinter
}

var defaultPrinter = New(os.Stdout)

// Printer writes formatted status lines to a single writer.
type Printer struct {
	out io.Writer
}

// New creates a Printer writing to out.
func New(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Printf writes a plain line.
func (p *Printer) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format+"\n", a...)
}

// Successf writes a line with a success mark.
func (p *Printer) Successf(format string, a ...any) {
	p.line(successStyle.Render("✓"), fmt.Sprintf(format, a...))
}

// Success writes a success line with a dimmed detail.
func (p *Printer) Success(msg, detail string) {
	p.line(successStyle.Render("✓"), msg+" "+detailStyle.Render(detail))
}

// Infof writes an informational line.
func (p *Printer) Infof(format string, a ...any) {
	p.line(infoStyle.Render("•"), fmt.Sprintf(format, a...))
}

// Warnf writes a warning line.
func (p *Printer) Warnf(format string, a ...any) {
	p.line(warnStyle.Render("!"), fmt.Sprintf(format, a...))
}

// Errorf writes an error line.
func (p *Printer) Errorf(format string, a ...any) {
	p.line(errorStyle.Render("✗"), fmt.Sprintf(format, a...))
}

// Section writes a bold section header.
func (p *Printer) Section(name string) {
	fmt.Fprintln(p.out, sectionStyle.Render(name))
}

// CheckItem writes an indented passing check with a dimmed detail.
func (p *Printer) CheckItem(label, detail string) {
	p.item(successStyle.Render("✓"), label, detail)
}

// WarnItem writes an indented warning check with a dimmed detail.
func (p *Printer) WarnItem(label, detail string) {
	p.item(warnStyle.Render("!"), label, detail)
}

// FailItem writes an indented failing check with a dimmed detail.
func (p *Printer) FailItem(label, detail string) {
	p.item(errorStyle.Render("✗"), label, detail)
}

func (p *Printer) line(mark, msg string) {
	fmt.Fprintf(p.out, "%s %s\n", mark, msg)
}

func (p *Printer) item(mark, label, detail string) {
	if detail == "" {
		fmt.Fprintf(p.out, "  %s %s\n", mark, label)
		return
	}
	fmt.Fprintf(p.out, "  %s %s %s\n", mark, label, detailStyle.Render(detail))
}
