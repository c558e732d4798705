package styles

import (
	"github.com/charmbracelet/lipgloss"

	"arbor/internal/config"
)

// Styles holds the lipgloss styles derived from the configured theme.
type Styles struct {
	Title        lipgloss.Style
	Folder       lipgloss.Style
	File         lipgloss.Style
	Action       lipgloss.Style
	Cursor       lipgloss.Style
	Meta         lipgloss.Style
	Help         lipgloss.Style
	PaneActive   lipgloss.Style
	PaneInactive lipgloss.Style
	Overlay      lipgloss.Style
}

// New builds the style set from theme colors.
func New(theme config.Theme) *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(theme.Primary)),
		Folder: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Folder)).
			Bold(true),
		File: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.File)),
		Action: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Accent)).
			Italic(true),
		Cursor: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Selected)).
			Background(lipgloss.Color(theme.Primary)).
			Bold(true),
		Meta: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Muted)),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Muted)),
		PaneActive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Primary)),
		PaneInactive: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Muted)),
		Overlay: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Accent)).
			Padding(0, 1),
	}
}
