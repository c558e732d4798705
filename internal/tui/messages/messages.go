package messages

import "arbor/internal/tree"

type ErrorMsg struct {
	Err error
}

// RootChangedMsg replaces the whole tree after navigating to a new directory.
type RootChangedMsg struct {
	Path  string
	Nodes []*tree.Node
}

// RootRefreshedMsg re-reads the root listing in place (hidden-files toggle,
// watcher change) without resetting expansion state.
type RootRefreshedMsg struct {
	Path  string
	Nodes []*tree.Node
}

// DirLoadedMsg completes a lazy child load for one folder.
type DirLoadedMsg struct {
	Path     string
	Children []*tree.Node
}

// DirChangedMsg reports a watched directory whose contents changed.
type DirChangedMsg struct {
	Dir string
}

// PreviewLoadedMsg carries the head of a file for the preview pane.
type PreviewLoadedMsg struct {
	Path    string
	Content string
	Size    int64
	Binary  bool
	Err     error
}
