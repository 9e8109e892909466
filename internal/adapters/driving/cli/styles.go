package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#06B6D4")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#F9E2AF"))
)

// printer styles command output when it goes to a terminal and prints
// plain text otherwise.
type printer struct {
	w       io.Writer
	colored bool
}

func newPrinter(w io.Writer) *printer {
	colored := false
	if f, ok := w.(*os.File); ok {
		colored = term.IsTerminal(int(f.Fd()))
	}
	return &printer{w: w, colored: colored}
}

func (p *printer) style(s lipgloss.Style, text string) string {
	if !p.colored {
		return text
	}
	return s.Render(text)
}

func (p *printer) line(s lipgloss.Style, text string) {
	io.WriteString(p.w, p.style(s, text)+"\n") //nolint:errcheck
}

func (p *printer) header(text string) { p.line(headerStyle, text) }
func (p *printer) success(text string) { p.line(successStyle, text) }
func (p *printer) dim(text string) { p.line(dimStyle, text) }
func (p *printer) warn(text string) { p.line(warnStyle, text) }
func (p *printer) plain(text string) { io.WriteString(p.w, text+"\n") } //nolint:errcheck
