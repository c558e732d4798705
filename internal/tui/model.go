// Package tui wires the three core engines together: raw key events are
// normalized and handed to the input router, router handlers consult the
// focus coordinator's predicates, and the winning handler mutates the tree
// model, whose flattened rows are re-rendered on every update.
package tui

import (
	"fmt"
	"path/filepath"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"arbor/internal/config"
	"arbor/internal/focus"
	"arbor/internal/input"
	"arbor/internal/log"
	"arbor/internal/tree"
	"arbor/internal/tui/components"
	"arbor/internal/tui/messages"
	"arbor/internal/tui/styles"
	"arbor/internal/watch"
	"arbor/pkg/types"
)

// Context and surface wiring. The navigation context is the always-present
// base; the overlay context is pushed while the filter overlay is open and
// blocks everything below it.
const (
	ctxNavigation = "navigation"
	ctxOverlay    = "overlay"
)

// Model is the bubbletea orchestrator.
type Model struct {
	cfg    *config.Config
	styles *styles.Styles

	root   string
	tree   *tree.Model
	loader *tree.Loader

	router *input.Router
	coord  *focus.Coordinator

	treeView *components.TreeView
	preview  *components.Preview
	status   *components.StatusBar
	overlay  *components.FilterOverlay

	watcher *watch.Watcher

	// bookmark action-node path -> target directory
	bookmarkTargets map[string]string

	width, height int
	lastRawKey    tea.KeyMsg
	pendingLoads  int
	queued        []tea.Cmd
	quitting      bool
}

// NewModel builds the orchestrator: one router, one coordinator, one tree
// model, all explicitly constructed and wired here. root is the initial
// directory.
func NewModel(cfg *config.Config, root string) (*Model, error) {
	st := styles.New(cfg.Theme)
	treeModel := tree.New()

	m := &Model{
		cfg:             cfg,
		styles:          st,
		root:            root,
		tree:            treeModel,
		loader:          tree.NewLoader(cfg.Settings.ShowHidden, cfg.Settings.Ignore),
		router:          input.NewRouter(),
		coord:           focus.NewCoordinator(),
		treeView:        components.NewTreeView(treeModel, st),
		preview:         components.NewPreview(st),
		status:          components.NewStatusBar(st),
		overlay:         components.NewFilterOverlay(st),
		bookmarkTargets: make(map[string]string),
		width:           100,
		height:          30,
	}

	if w, err := watch.New(); err != nil {
		log.Warnf("filesystem watching disabled: %v", err)
	} else {
		m.watcher = w
	}

	if err := m.wireFocus(); err != nil {
		return nil, err
	}
	if err := m.wireRouting(); err != nil {
		return nil, err
	}
	m.wireTreeCallbacks()

	m.coord.SetFocus(focus.SurfaceTree)
	return m, nil
}

func (m *Model) wireFocus() error {
	if err := m.coord.Register(focus.SurfaceTree, m.treeView); err != nil {
		return err
	}
	if err := m.coord.Register(focus.SurfacePreview, m.preview); err != nil {
		return err
	}
	return m.coord.Register(focus.SurfaceOverlay, m.overlay)
}

// wireRouting registers contexts and handlers. The focus coordinator is
// coupled to the router only through the CanReceiveInput predicates handed to
// each handler here.
func (m *Model) wireRouting() error {
	m.router.RegisterContext(input.Context{ID: ctxNavigation})
	m.router.RegisterContext(input.Context{
		ID:                  ctxOverlay,
		BlocksLowerPriority: true,
		IsActive:            m.coord.OverlayVisible,
	})
	if err := m.router.Push(ctxNavigation); err != nil {
		return err
	}

	m.router.RegisterGlobalHandler(input.Handler{
		ID:       "quit",
		Priority: 100,
		Handle:   m.handleQuitKey,
	})
	m.router.RegisterGlobalHandler(input.Handler{
		ID:       "tab-cycle",
		Priority: 90,
		Handle:   m.handleTabKey,
	})

	if err := m.router.RegisterHandler(ctxNavigation, input.Handler{
		ID:              "tree-nav",
		Priority:        10,
		CanReceiveInput: m.coord.InputPredicate(focus.SurfaceTree),
		Handle:          m.handleTreeKey,
	}); err != nil {
		return err
	}
	if err := m.router.RegisterHandler(ctxNavigation, input.Handler{
		ID:              "preview-scroll",
		Priority:        10,
		CanReceiveInput: m.coord.InputPredicate(focus.SurfacePreview),
		Handle:          m.preview.HandleKey,
	}); err != nil {
		return err
	}
	// Lower priority so the focused surface gets first shot at "/".
	if err := m.router.RegisterHandler(ctxNavigation, input.Handler{
		ID:       "open-filter",
		Priority: 5,
		Handle:   m.handleOpenFilterKey,
	}); err != nil {
		return err
	}

	return m.router.RegisterHandler(ctxOverlay, input.Handler{
		ID:              "filter-overlay",
		Priority:        10,
		CanReceiveInput: m.coord.InputPredicate(focus.SurfaceOverlay),
		Handle:          m.handleOverlayKey,
	})
}

func (m *Model) wireTreeCallbacks() {
	m.tree.OnActivate = func(node *tree.Node) {
		switch node.Kind {
		case tree.KindFolder:
			m.changeRoot(node.Path)
		case tree.KindAction:
			if target, ok := m.bookmarkTargets[node.Path]; ok {
				m.changeRoot(target)
			}
		default:
			// Files activate into the preview.
			m.coord.SetFocus(focus.SurfacePreview)
		}
	}
	m.tree.OnSelectionChanged = func(node *tree.Node) {
		m.showSelection(node)
	}
	m.tree.OnGoUpDirectory = func() {
		parent := filepath.Dir(m.root)
		if parent != m.root {
			m.changeRoot(parent)
		}
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		loadRootCmd(m.loader, m.root, false),
		m.status.Tick(),
	}
	if m.watcher != nil {
		if err := m.watcher.Start(); err != nil {
			log.Warnf("watcher start: %v", err)
		} else {
			cmds = append(cmds, waitForDirChange(m.watcher))
		}
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.lastRawKey = msg
		m.router.Dispatch(types.KeyEventFrom(msg))
		return m, m.drainQueued()

	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case messages.RootChangedMsg:
		m.root = msg.Path
		m.tree.SetRoot(m.withBookmarks(msg.Nodes))
		m.status.SetText(msg.Path)
		m.watchDir(msg.Path)
		return m, m.drainQueued()

	case messages.RootRefreshedMsg:
		if msg.Path == m.root {
			m.tree.ReplaceRoots(m.withBookmarks(msg.Nodes))
		}
		return m, m.drainQueued()

	case messages.DirLoadedMsg:
		m.pendingLoads--
		if m.pendingLoads <= 0 {
			m.pendingLoads = 0
			m.status.SetLoading(false)
		}
		m.tree.FinishLoad(msg.Path, msg.Children)
		m.watchDir(msg.Path)
		return m, m.drainQueued()

	case messages.DirChangedMsg:
		cmds := []tea.Cmd{waitForDirChange(m.watcher)}
		if cmd := m.reloadChangedDir(msg.Dir); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case messages.PreviewLoadedMsg:
		if msg.Err != nil {
			m.preview.ShowInfo(filepath.Base(msg.Path), "unreadable: "+msg.Err.Error())
			return m, nil
		}
		m.preview.ShowFile(filepath.Base(msg.Path), msg.Content, msg.Size, msg.Binary)
		return m, nil

	case messages.ErrorMsg:
		log.Errorf("%v", msg.Err)
		m.status.SetText(msg.Err.Error())
		return m, nil
	}

	return m, m.status.Update(msg)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	title := m.styles.Title.Render("arbor") + "  " + m.styles.Meta.Render(m.root)

	paneHeight := m.height - 4 // title + status + pane borders
	if paneHeight < 3 {
		paneHeight = 3
	}
	treeWidth := m.width * 2 / 5
	if treeWidth < 24 {
		treeWidth = 24
	}
	previewWidth := m.width - treeWidth - 4
	if previewWidth < 20 {
		previewWidth = 20
	}

	treePane := m.paneStyle(m.treeView.Focused()).
		Width(treeWidth).Height(paneHeight).
		Render(m.treeView.View())
	previewPane := m.paneStyle(m.preview.Focused()).
		Width(previewWidth).Height(paneHeight).
		Render(m.preview.View())
	panes := lipgloss.JoinHorizontal(lipgloss.Top, treePane, previewPane)

	sections := []string{title}
	if m.coord.OverlayVisible() {
		sections = append(sections, m.overlay.View())
	}
	sections = append(sections, panes, m.status.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// --- key handlers ---

func (m *Model) handleQuitKey(key types.KeyEvent) bool {
	if key.Ctrl && key.Name == "c" {
		m.quit()
		return true
	}
	// "q" is plain text while the filter overlay is typing.
	if key.Name == "q" && !key.Ctrl && !key.Alt && !m.coord.OverlayVisible() {
		m.quit()
		return true
	}
	return false
}

func (m *Model) handleTabKey(key types.KeyEvent) bool {
	if key.Name != "tab" {
		return false
	}
	if key.Shift {
		m.coord.TabToPrevious()
	} else {
		m.coord.TabToNext()
	}
	return true
}

func (m *Model) handleTreeKey(key types.KeyEvent) bool {
	if key.Ctrl || key.Alt {
		return false
	}
	switch key.Name {
	case "up", "k":
		m.tree.MoveUp()
	case "down", "j":
		m.tree.MoveDown()
	case "left", "h":
		m.tree.Left()
	case "right", "l":
		m.tree.Right()
	case "space":
		if m.tree.Space() {
			m.startLoad(m.selectedPath())
		}
	case "enter":
		if m.tree.Enter() {
			m.startLoad(m.selectedPath())
		}
	case "y":
		m.yankSelection()
	case ".":
		m.toggleHidden()
	case "r":
		m.refreshSelection()
	default:
		return false
	}
	return true
}

func (m *Model) handleOpenFilterKey(key types.KeyEvent) bool {
	if key.Name != "/" || key.Ctrl || key.Alt {
		return false
	}
	m.overlay.Open(m.tree.Rows())
	if err := m.router.Push(ctxOverlay); err != nil {
		// Registered in wireRouting; reaching this is a bug worth surfacing.
		log.Errorf("open filter overlay: %v", err)
		return true
	}
	m.coord.SetOverlayVisible(true)
	return true
}

func (m *Model) handleOverlayKey(key types.KeyEvent) bool {
	switch key.Name {
	case "escape":
		m.closeOverlay()
	case "enter":
		if row, ok := m.overlay.Selected(); ok {
			m.closeOverlay()
			m.tree.SelectPath(row.ID)
		} else {
			m.closeOverlay()
		}
	default:
		m.overlay.HandleKey(m.lastRawKey)
	}
	// The overlay is modal: every key is consumed while it is up.
	return true
}

// --- actions ---

func (m *Model) quit() {
	m.quitting = true
	if m.watcher != nil {
		m.watcher.Stop()
	}
	m.queue(tea.Quit)
}

func (m *Model) closeOverlay() {
	m.router.Pop(ctxOverlay)
	m.coord.SetOverlayVisible(false)
}

func (m *Model) changeRoot(path string) {
	m.queue(loadRootCmd(m.loader, path, false))
}

func (m *Model) startLoad(path string) {
	if path == "" {
		return
	}
	m.pendingLoads++
	m.status.SetLoading(true)
	m.queue(loadDirCmd(m.loader, path))
	m.queue(m.status.Tick())
}

func (m *Model) selectedPath() string {
	if node := m.tree.SelectedNode(); node != nil {
		return node.Path
	}
	return ""
}

func (m *Model) showSelection(node *tree.Node) {
	if node == nil {
		m.preview.Clear()
		return
	}
	switch node.Kind {
	case tree.KindFile:
		m.queue(loadPreviewCmd(node.Path, m.cfg.Preview.MaxBytes))
	case tree.KindFolder:
		if node.Loaded {
			m.preview.ShowInfo(node.Name, fmt.Sprintf("folder · %d entries", len(node.Children)))
		} else {
			m.preview.ShowInfo(node.Name, "folder")
		}
	case tree.KindAction:
		m.preview.ShowInfo(node.Name, "bookmark → "+m.bookmarkTargets[node.Path])
	}
}

func (m *Model) yankSelection() {
	node := m.tree.SelectedNode()
	if node == nil {
		return
	}
	path := node.Path
	if target, ok := m.bookmarkTargets[path]; ok {
		path = target
	}
	if err := clipboard.WriteAll(path); err != nil {
		m.status.SetText("clipboard unavailable: " + err.Error())
		return
	}
	m.status.SetText("yanked " + path)
}

func (m *Model) toggleHidden() {
	m.loader.ShowHidden = !m.loader.ShowHidden
	if m.loader.ShowHidden {
		m.status.SetText("showing hidden files")
	} else {
		m.status.SetText("hiding hidden files")
	}
	// Re-root to re-read everything under the new setting.
	m.changeRoot(m.root)
}

// refreshSelection re-reads the selected folder (or the root if a file is
// selected).
func (m *Model) refreshSelection() {
	node := m.tree.SelectedNode()
	if node != nil && node.IsFolder() && m.tree.IsExpanded(node.Path) {
		m.tree.MarkStale(node.Path)
		if m.tree.Expand(node.Path) {
			m.startLoad(node.Path)
		}
		return
	}
	m.queue(loadRootCmd(m.loader, m.root, true))
}

// reloadChangedDir handles a watcher notification: the root listing is
// refreshed in place, an expanded folder is re-read, and a collapsed one is
// just marked stale for its next expand.
func (m *Model) reloadChangedDir(dir string) tea.Cmd {
	if dir == m.root {
		return loadRootCmd(m.loader, dir, true)
	}
	node := m.tree.NodeByPath(dir)
	if node == nil || !node.IsFolder() {
		return nil
	}
	m.tree.MarkStale(dir)
	if m.tree.IsExpanded(dir) && !m.tree.IsPending(dir) {
		m.tree.Collapse(dir)
		if m.tree.Expand(dir) {
			m.pendingLoads++
			m.status.SetLoading(true)
			return loadDirCmd(m.loader, dir)
		}
	}
	return nil
}

func (m *Model) watchDir(dir string) {
	if m.watcher == nil {
		return
	}
	if err := m.watcher.AddDirectory(dir); err != nil {
		log.Debugf("watch %s: %v", dir, err)
	}
}

// withBookmarks prepends configured bookmarks as synthetic action nodes. The
// node paths are namespaced so they can never collide with real entries.
func (m *Model) withBookmarks(nodes []*tree.Node) []*tree.Node {
	if len(m.cfg.Bookmarks) == 0 {
		return nodes
	}
	out := make([]*tree.Node, 0, len(m.cfg.Bookmarks)+len(nodes))
	for _, b := range m.cfg.Bookmarks {
		path := "bookmark://" + b.Name
		m.bookmarkTargets[path] = b.Path
		out = append(out, &tree.Node{Name: b.Name, Kind: tree.KindAction, Path: path})
	}
	return append(out, nodes...)
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height

	paneHeight := height - 4
	if paneHeight < 3 {
		paneHeight = 3
	}
	treeWidth := width * 2 / 5
	if treeWidth < 24 {
		treeWidth = 24
	}
	previewWidth := width - treeWidth - 4
	if previewWidth < 20 {
		previewWidth = 20
	}

	m.treeView.SetSize(treeWidth-2, paneHeight-2)
	m.preview.SetSize(previewWidth-2, paneHeight-2)
	m.overlay.SetWidth(width / 2)
}

func (m *Model) paneStyle(focused bool) lipgloss.Style {
	if focused {
		return m.styles.PaneActive
	}
	return m.styles.PaneInactive
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.queued = append(m.queued, cmd)
	}
}

func (m *Model) drainQueued() tea.Cmd {
	if len(m.queued) == 0 {
		return nil
	}
	cmds := m.queued
	m.queued = nil
	return tea.Batch(cmds...)
}
