package components

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"arbor/internal/tui/styles"
)

// StatusBar shows the current path or transient status text, with a spinner
// while directory reads are in flight.
type StatusBar struct {
	text    string
	help    string
	styles  *styles.Styles
	spinner spinner.Model
	loading bool
}

// NewStatusBar creates a status bar.
func NewStatusBar(st *styles.Styles) *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = st.Help
	return &StatusBar{
		styles:  st,
		spinner: s,
		help:    "tab switch · / filter · space expand · y yank · . hidden · r refresh · q quit",
	}
}

// SetLoading toggles the spinner.
func (s *StatusBar) SetLoading(loading bool) {
	s.loading = loading
}

// Loading reports whether the spinner is shown.
func (s *StatusBar) Loading() bool {
	return s.loading
}

// SetText sets the status text.
func (s *StatusBar) SetText(text string) {
	s.text = text
}

// Tick returns the initial spinner command.
func (s *StatusBar) Tick() tea.Cmd {
	return s.spinner.Tick
}

// Update advances the spinner while loading.
func (s *StatusBar) Update(msg tea.Msg) tea.Cmd {
	if s.loading {
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return cmd
	}
	return nil
}

// View renders the bar.
func (s *StatusBar) View() string {
	line := s.text
	if s.loading {
		line = s.spinner.View() + " " + line
	}
	if line != "" {
		line += "   "
	}
	return s.styles.Help.Render(line + s.help)
}
