package components

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"arbor/internal/tree"
	"arbor/internal/tui/styles"
)

// TreeView renders the flattened rows of a tree.Model with a cursor and a
// scroll window. It implements focus.Surface.
type TreeView struct {
	model   *tree.Model
	styles  *styles.Styles
	focused bool
	width   int
	height  int
	offset  int
}

// NewTreeView wraps a tree model for display.
func NewTreeView(model *tree.Model, st *styles.Styles) *TreeView {
	return &TreeView{
		model:  model,
		styles: st,
		width:  40,
		height: 20,
	}
}

// Focus marks the view focused.
func (t *TreeView) Focus() { t.focused = true }

// Blur marks the view unfocused.
func (t *TreeView) Blur() { t.focused = false }

// Focused reports focus state.
func (t *TreeView) Focused() bool { return t.focused }

// SetSize updates the drawable area (inside the pane border).
func (t *TreeView) SetSize(width, height int) {
	t.width = width
	t.height = height
	t.ensureCursorVisible()
}

// View renders the visible window of rows.
func (t *TreeView) View() string {
	rows := t.model.Rows()
	if len(rows) == 0 {
		return t.styles.Meta.Render("(empty)")
	}

	t.ensureCursorVisible()
	start := t.offset
	end := start + t.height
	if end > len(rows) {
		end = len(rows)
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(t.renderRow(rows[i], i == t.model.Cursor()))
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (t *TreeView) renderRow(row tree.Row, selected bool) string {
	indent := strings.Repeat("  ", row.Depth)

	var marker string
	switch {
	case row.Kind == tree.KindFolder && t.model.IsPending(row.ID):
		marker = "… "
	case row.Kind == tree.KindFolder && t.model.IsExpanded(row.ID):
		marker = "▾ "
	case row.Kind == tree.KindFolder:
		marker = "▸ "
	case row.Kind == tree.KindAction:
		marker = "» "
	default:
		marker = "  "
	}

	label := indent + marker + row.Label
	meta := row.Meta

	// Reserve room for the meta column; truncate the label if needed.
	avail := t.width - runewidth.StringWidth(meta) - 2
	if avail < 1 {
		avail = 1
	}
	label = runewidth.Truncate(label, avail, "…")
	pad := t.width - runewidth.StringWidth(label) - runewidth.StringWidth(meta)
	if pad < 1 {
		pad = 1
	}
	line := label + strings.Repeat(" ", pad) + meta

	if selected && t.focused {
		return t.styles.Cursor.Render(line)
	}
	switch row.Kind {
	case tree.KindFolder:
		return t.styles.Folder.Render(label) + strings.Repeat(" ", pad) + t.styles.Meta.Render(meta)
	case tree.KindAction:
		return t.styles.Action.Render(label) + strings.Repeat(" ", pad) + t.styles.Meta.Render(meta)
	default:
		return t.styles.File.Render(label) + strings.Repeat(" ", pad) + t.styles.Meta.Render(meta)
	}
}

func (t *TreeView) ensureCursorVisible() {
	if t.height <= 0 {
		return
	}
	cursor := t.model.Cursor()
	if cursor < t.offset {
		t.offset = cursor
	}
	if cursor >= t.offset+t.height {
		t.offset = cursor - t.height + 1
	}
	if t.offset < 0 {
		t.offset = 0
	}
	maxOffset := len(t.model.Rows()) - t.height
	if maxOffset < 0 {
		maxOffset = 0
	}
	if t.offset > maxOffset {
		t.offset = maxOffset
	}
}
