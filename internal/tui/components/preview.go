package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/dustin/go-humanize"

	"arbor/internal/tui/styles"
	"arbor/pkg/types"
)

// Preview shows the head of the selected file in a scrollable viewport. It
// implements focus.Surface; scroll keys only apply while focused.
type Preview struct {
	viewport viewport.Model
	styles   *styles.Styles
	focused  bool
	title    string
	meta     string
	empty    bool
}

// NewPreview creates an empty preview pane.
func NewPreview(st *styles.Styles) *Preview {
	return &Preview{
		viewport: viewport.New(40, 20),
		styles:   st,
		empty:    true,
	}
}

// Focus marks the pane focused.
func (p *Preview) Focus() { p.focused = true }

// Blur marks the pane unfocused.
func (p *Preview) Blur() { p.focused = false }

// Focused reports focus state.
func (p *Preview) Focused() bool { return p.focused }

// SetSize updates the drawable area (inside the pane border).
func (p *Preview) SetSize(width, height int) {
	p.viewport.Width = width
	if height < 2 {
		height = 2
	}
	p.viewport.Height = height - 1 // one line for the header
}

// ShowFile fills the pane with file content. Binary files get a note instead
// of their bytes.
func (p *Preview) ShowFile(name, content string, size int64, binary bool) {
	p.empty = false
	p.title = name
	p.meta = humanize.IBytes(uint64(size))
	if binary {
		p.viewport.SetContent(p.styles.Meta.Render(fmt.Sprintf("binary file (%s)", p.meta)))
	} else {
		p.viewport.SetContent(content)
	}
	p.viewport.GotoTop()
}

// ShowInfo fills the pane with a one-line description (folders, actions).
func (p *Preview) ShowInfo(name, info string) {
	p.empty = false
	p.title = name
	p.meta = ""
	p.viewport.SetContent(p.styles.Meta.Render(info))
	p.viewport.GotoTop()
}

// Clear empties the pane.
func (p *Preview) Clear() {
	p.empty = true
	p.title = ""
	p.meta = ""
	p.viewport.SetContent("")
}

// HandleKey processes scroll keys. Returns true when the key was consumed.
func (p *Preview) HandleKey(key types.KeyEvent) bool {
	switch key.Name {
	case "up":
		p.viewport.LineUp(1)
	case "down":
		p.viewport.LineDown(1)
	case "pgup":
		p.viewport.ViewUp()
	case "pgdown":
		p.viewport.ViewDown()
	case "home":
		p.viewport.GotoTop()
	case "end":
		p.viewport.GotoBottom()
	default:
		return false
	}
	return true
}

// View renders the header line plus the viewport.
func (p *Preview) View() string {
	if p.empty {
		return p.styles.Meta.Render("nothing selected")
	}
	header := p.styles.Title.Render(p.title)
	if p.meta != "" {
		header += "  " + p.styles.Meta.Render(p.meta)
	}
	return header + "\n" + p.viewport.View()
}
