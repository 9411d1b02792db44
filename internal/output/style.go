package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	tagStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	noteStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
)

// styler applies styles only when writing to a terminal
type styler struct {
	enabled bool
}

func newStyler(w io.Writer) styler {
	f, ok := w.(*os.File)
	return styler{enabled: ok && term.IsTerminal(int(f.Fd()))}
}

func (s styler) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

func (s styler) heading(text string) string { return s.render(headingStyle, text) }
func (s styler) label(text string) string   { return s.render(labelStyle, text) }
func (s styler) tag(text string) string     { return s.render(tagStyle, text) }
func (s styler) note(text string) string    { return s.render(noteStyle, text) }
