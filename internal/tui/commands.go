package tui

import (
	"bytes"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"arbor/internal/errors"
	"arbor/internal/tree"
	"arbor/internal/tui/messages"
	"arbor/internal/watch"
)

// loadRootCmd reads a directory listing for use as the tree root. refresh
// selects the in-place variant that preserves expansion state.
func loadRootCmd(loader *tree.Loader, path string, refresh bool) tea.Cmd {
	return func() tea.Msg {
		info, err := os.Stat(path)
		if err != nil {
			return messages.ErrorMsg{Err: errors.NewFileError("cannot open directory", path, errors.FileNotFound, err)}
		}
		if !info.IsDir() {
			return messages.ErrorMsg{Err: errors.NewFileError("not a directory", path, errors.InvalidPath, nil)}
		}
		nodes := loader.ReadChildren(path)
		if refresh {
			return messages.RootRefreshedMsg{Path: path, Nodes: nodes}
		}
		return messages.RootChangedMsg{Path: path, Nodes: nodes}
	}
}

// loadDirCmd performs the asynchronous child read behind a lazy expand.
func loadDirCmd(loader *tree.Loader, path string) tea.Cmd {
	return func() tea.Msg {
		return messages.DirLoadedMsg{Path: path, Children: loader.ReadChildren(path)}
	}
}

// loadPreviewCmd reads up to maxBytes of a file for the preview pane.
func loadPreviewCmd(path string, maxBytes int64) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return messages.PreviewLoadedMsg{Path: path, Err: err}
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return messages.PreviewLoadedMsg{Path: path, Err: err}
		}

		data, err := io.ReadAll(io.LimitReader(f, maxBytes))
		if err != nil {
			return messages.PreviewLoadedMsg{Path: path, Err: err}
		}

		probe := data
		if len(probe) > 8192 {
			probe = probe[:8192]
		}
		binary := bytes.IndexByte(probe, 0) >= 0

		return messages.PreviewLoadedMsg{
			Path:    path,
			Content: string(data),
			Size:    info.Size(),
			Binary:  binary,
		}
	}
}

// waitForDirChange blocks on the watcher channel and re-arms after each
// message.
func waitForDirChange(w *watch.Watcher) tea.Cmd {
	return func() tea.Msg {
		change, ok := <-w.Changes()
		if !ok {
			return nil
		}
		return messages.DirChangedMsg{Dir: change.Dir}
	}
}
