package tree

// Model owns the in-memory directory tree: lazy child loading, expansion
// state, the flattened row projection, and directional navigation. It has no
// terminal or event-loop dependency; the orchestrator wires its callbacks and
// performs the asynchronous reads it requests.
type Model struct {
	roots    []*Node
	index    map[string]*Node
	expanded map[string]bool
	pending  map[string]bool // paths with a directory read in flight
	rows     []Row
	cursor   int

	// Callbacks, wired by the owner. All optional.
	OnActivate         func(*Node) // folder right-arrow, file/action enter
	OnSelectionChanged func(*Node)
	OnGoUpDirectory    func() // left-arrow at depth 0
}

// New returns an empty model.
func New() *Model {
	return &Model{
		index:    make(map[string]*Node),
		expanded: make(map[string]bool),
		pending:  make(map[string]bool),
	}
}

// SetRoot replaces the node set wholesale. All expansion and in-flight state
// is cleared, rows are recomputed, and selection resets to the first row.
func (m *Model) SetRoot(nodes []*Node) {
	m.roots = nodes
	m.expanded = make(map[string]bool)
	m.pending = make(map[string]bool)
	m.rows = nil
	m.cursor = 0
	m.reindex()
	m.refreshRows()
	m.notifySelection()
}

// ReplaceRoots swaps in a fresh root listing without resetting view state, for
// in-place refreshes (e.g. a watcher noticed the root directory changed).
// Folders that survive by path keep their loaded subtrees; expansion and
// in-flight entries for vanished paths are pruned, and selection sticks to the
// same path where possible.
func (m *Model) ReplaceRoots(nodes []*Node) {
	merged := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		if old := m.index[n.Path]; old != nil && old.Kind == n.Kind && old.IsFolder() && old.Loaded {
			merged = append(merged, old)
			continue
		}
		merged = append(merged, n)
	}
	m.roots = merged
	m.reindex()
	for path := range m.expanded {
		if m.index[path] == nil {
			delete(m.expanded, path)
		}
	}
	for path := range m.pending {
		if m.index[path] == nil {
			delete(m.pending, path)
		}
	}
	if m.refreshRows() {
		m.notifySelection()
	}
}

// Rows returns the current flattened projection.
func (m *Model) Rows() []Row {
	return m.rows
}

// Cursor returns the selected row index.
func (m *Model) Cursor() int {
	return m.cursor
}

// SelectedNode returns the node behind the selected row, or nil when the tree
// is empty.
func (m *Model) SelectedNode() *Node {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return nil
	}
	return m.index[m.rows[m.cursor].ID]
}

// NodeByPath looks a node up by its identity key.
func (m *Model) NodeByPath(path string) *Node {
	return m.index[path]
}

// IsExpanded reports expansion-set membership.
func (m *Model) IsExpanded(path string) bool {
	return m.expanded[path]
}

// IsPending reports whether a directory read for path is in flight.
func (m *Model) IsPending(path string) bool {
	return m.pending[path]
}

// Expand marks a folder expanded. If its children are not loaded yet and no
// read is in flight, the path is marked pending and needsLoad is true: the
// caller must perform the read and hand the result to FinishLoad. A second
// expand while a read is in flight is deduplicated.
func (m *Model) Expand(path string) (needsLoad bool) {
	node := m.index[path]
	if node == nil || !node.IsFolder() {
		return false
	}
	m.expanded[path] = true
	if node.Loaded {
		if m.refreshRows() {
			m.notifySelection()
		}
		return false
	}
	if m.pending[path] {
		return false
	}
	m.pending[path] = true
	return true
}

// Collapse removes path from the expansion set. Loaded children stay in
// memory; only visibility changes. An in-flight read is not cancelled — its
// result is simply not displayed until the folder is expanded again.
func (m *Model) Collapse(path string) {
	delete(m.expanded, path)
	if m.refreshRows() {
		m.notifySelection()
	}
}

// Toggle flips expansion state for a folder.
func (m *Model) Toggle(path string) (needsLoad bool) {
	if m.expanded[path] {
		m.Collapse(path)
		return false
	}
	return m.Expand(path)
}

// FinishLoad stores the result of a directory read. Any previously stored
// children are discarded, the node is marked loaded, and rows are recomputed.
func (m *Model) FinishLoad(path string, children []*Node) {
	delete(m.pending, path)
	node := m.index[path]
	if node == nil || !node.IsFolder() {
		return
	}
	node.Children = children
	node.Loaded = true
	m.reindex()
	if m.refreshRows() {
		m.notifySelection()
	}
}

// MarkStale forces the next expand of path to re-read the filesystem.
func (m *Model) MarkStale(path string) {
	if node := m.index[path]; node != nil && node.IsFolder() {
		node.Loaded = false
	}
}

// MoveUp moves selection one row up.
func (m *Model) MoveUp() {
	if m.cursor > 0 {
		m.cursor--
		m.notifySelection()
	}
}

// MoveDown moves selection one row down.
func (m *Model) MoveDown() {
	if m.cursor < len(m.rows)-1 {
		m.cursor++
		m.notifySelection()
	}
}

// Select moves selection to the given row index.
func (m *Model) Select(idx int) {
	if idx < 0 || idx >= len(m.rows) || idx == m.cursor {
		return
	}
	m.cursor = idx
	m.notifySelection()
}

// SelectPath moves selection to the row for path, if it is visible.
func (m *Model) SelectPath(path string) {
	for i, row := range m.rows {
		if row.ID == path {
			m.Select(i)
			return
		}
	}
}

// Left implements the left-arrow rule. At depth 0 it escapes the tree via
// OnGoUpDirectory. Deeper rows walk backward to the nearest preceding row at
// exactly depth-1; hitting a row shallower than that first means the parent is
// not visible and selection stays put.
func (m *Model) Left() {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return
	}
	depth := m.rows[m.cursor].Depth
	if depth == 0 {
		if m.OnGoUpDirectory != nil {
			m.OnGoUpDirectory()
		}
		return
	}
	target := depth - 1
	for i := m.cursor - 1; i >= 0; i-- {
		if m.rows[i].Depth == target {
			m.Select(i)
			return
		}
		if m.rows[i].Depth < target {
			return
		}
	}
}

// Right signals activation for folders. Right-arrow always means "enter", it
// never expands in place.
func (m *Model) Right() {
	node := m.SelectedNode()
	if node == nil || !node.IsFolder() {
		return
	}
	if m.OnActivate != nil {
		m.OnActivate(node)
	}
}

// Space toggles expansion on folders and does nothing on files or actions.
func (m *Model) Space() (needsLoad bool) {
	node := m.SelectedNode()
	if node == nil || !node.IsFolder() {
		return false
	}
	return m.Toggle(node.Path)
}

// Enter toggles expansion on folders (same as Space) and activates files and
// actions.
func (m *Model) Enter() (needsLoad bool) {
	node := m.SelectedNode()
	if node == nil {
		return false
	}
	if node.IsFolder() {
		return m.Toggle(node.Path)
	}
	if m.OnActivate != nil {
		m.OnActivate(node)
	}
	return false
}

// refreshRows recomputes the flattened projection: pre-order depth-first over
// the node tree, descending into a folder only when it is in the expansion
// set and has at least one child. Rows are always rebuilt from scratch. The
// cursor follows the previously selected path when it is still visible;
// otherwise it is clamped and selectionChanged reports that the selection now
// sits on a different node, so the caller can notify.
func (m *Model) refreshRows() (selectionChanged bool) {
	var before string
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		before = m.rows[m.cursor].ID
	}

	// Fresh slice every time: callers may hold the previous projection (the
	// filter overlay snapshots it).
	m.rows = make([]Row, 0, len(m.rows))
	for _, n := range m.roots {
		m.appendRows(n, 0)
	}

	if before != "" {
		for i, row := range m.rows {
			if row.ID == before {
				m.cursor = i
				return false
			}
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	var after string
	if m.cursor < len(m.rows) {
		after = m.rows[m.cursor].ID
	}
	return after != before
}

func (m *Model) appendRows(n *Node, depth int) {
	m.rows = append(m.rows, Row{
		ID:    n.Path,
		Depth: depth,
		Kind:  n.Kind,
		Label: n.Name,
		Meta:  rowMeta(n),
	})
	if n.IsFolder() && m.expanded[n.Path] && len(n.Children) > 0 {
		for _, c := range n.Children {
			m.appendRows(c, depth+1)
		}
	}
}

func (m *Model) reindex() {
	m.index = make(map[string]*Node)
	var walk func(*Node)
	walk = func(n *Node) {
		m.index[n.Path] = n
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, n := range m.roots {
		walk(n)
	}
}

func (m *Model) notifySelection() {
	if m.OnSelectionChanged != nil {
		m.OnSelectionChanged(m.SelectedNode())
	}
}
