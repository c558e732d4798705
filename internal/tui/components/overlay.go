package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"arbor/internal/tree"
	"arbor/internal/tui/styles"
)

const maxOverlayMatches = 12

// FilterOverlay is the modal fuzzy-filter widget: a text input over a
// snapshot of the visible rows. It implements focus.Surface.
type FilterOverlay struct {
	input   textinput.Model
	styles  *styles.Styles
	rows    []tree.Row
	matches []tree.Row
	cursor  int
	width   int
}

// rowSource adapts rows for fuzzy matching on their labels.
type rowSource []tree.Row

func (r rowSource) String(i int) string { return r[i].Label }
func (r rowSource) Len() int            { return len(r) }

// NewFilterOverlay creates a hidden overlay.
func NewFilterOverlay(st *styles.Styles) *FilterOverlay {
	input := textinput.New()
	input.Placeholder = "filter rows"
	input.Prompt = "/ "
	input.CharLimit = 128
	return &FilterOverlay{
		input:  input,
		styles: st,
		width:  48,
	}
}

// Focus gives the text input the caret.
func (f *FilterOverlay) Focus() { f.input.Focus() }

// Blur removes the caret.
func (f *FilterOverlay) Blur() { f.input.Blur() }

// SetWidth constrains the overlay box.
func (f *FilterOverlay) SetWidth(width int) {
	if width > 16 {
		f.width = width
	}
}

// Open snapshots the rows to filter over and clears any previous query.
func (f *FilterOverlay) Open(rows []tree.Row) {
	f.rows = rows
	f.matches = rows
	f.cursor = 0
	f.input.SetValue("")
}

// HandleKey feeds a raw key into the text input and refilters. Up/down move
// through the matches; everything else is text entry.
func (f *FilterOverlay) HandleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyUp:
		if f.cursor > 0 {
			f.cursor--
		}
		return
	case tea.KeyDown:
		if f.cursor < len(f.matches)-1 {
			f.cursor++
		}
		return
	}
	f.input, _ = f.input.Update(msg)
	f.refilter()
}

// Selected returns the highlighted match.
func (f *FilterOverlay) Selected() (tree.Row, bool) {
	if f.cursor < 0 || f.cursor >= len(f.matches) {
		return tree.Row{}, false
	}
	return f.matches[f.cursor], true
}

func (f *FilterOverlay) refilter() {
	query := f.input.Value()
	if query == "" {
		f.matches = f.rows
		f.cursor = 0
		return
	}
	results := fuzzy.FindFrom(query, rowSource(f.rows))
	f.matches = make([]tree.Row, 0, len(results))
	for _, r := range results {
		f.matches = append(f.matches, f.rows[r.Index])
	}
	f.cursor = 0
}

// View renders the overlay box.
func (f *FilterOverlay) View() string {
	var b strings.Builder
	b.WriteString(f.input.View())
	b.WriteString("\n")

	shown := len(f.matches)
	if shown > maxOverlayMatches {
		shown = maxOverlayMatches
	}
	for i := 0; i < shown; i++ {
		row := f.matches[i]
		line := row.Label
		if i == f.cursor {
			line = f.styles.Cursor.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(f.matches) == 0 {
		b.WriteString(f.styles.Meta.Render("no matches"))
	} else if len(f.matches) > shown {
		b.WriteString(f.styles.Meta.Render(fmt.Sprintf("(%d more)", len(f.matches)-shown)))
	}
	return f.styles.Overlay.Width(f.width).Render(b.String())
}
