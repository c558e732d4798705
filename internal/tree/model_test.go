package tree_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbor/internal/tree"
)

func folder(name, path string, children ...*tree.Node) *tree.Node {
	return &tree.Node{Name: name, Kind: tree.KindFolder, Path: path, Children: children, Loaded: len(children) > 0}
}

func file(name, path string, size int64) *tree.Node {
	return &tree.Node{Name: name, Kind: tree.KindFile, Path: path, Size: size}
}

// sampleRoots builds the canonical three-entry root: folders alpha and beta,
// then file c.txt. alpha already holds a1.txt.
func sampleRoots() []*tree.Node {
	return []*tree.Node{
		folder("alpha", "/root/alpha", file("a1.txt", "/root/alpha/a1.txt", 10)),
		folder("beta", "/root/beta"),
		file("c.txt", "/root/c.txt", 5),
	}
}

func rowIDs(rows []tree.Row) []string {
	ids := make([]string, len(rows))
	for i, r := range rows {
		ids[i] = r.ID
	}
	return ids
}

func TestFlatten(t *testing.T) {
	t.Run("collapsed folders hide children", func(t *testing.T) {
		m := tree.New()
		m.SetRoot(sampleRoots())

		assert.Equal(t, []string{"/root/alpha", "/root/beta", "/root/c.txt"}, rowIDs(m.Rows()))
	})

	t.Run("expanded folder emits children in pre-order with depths", func(t *testing.T) {
		m := tree.New()
		m.SetRoot(sampleRoots())

		require.False(t, m.Expand("/root/alpha"), "already-loaded folder must expand synchronously")

		rows := m.Rows()
		require.Equal(t, []string{"/root/alpha", "/root/alpha/a1.txt", "/root/beta", "/root/c.txt"}, rowIDs(rows))
		assert.Equal(t, 0, rows[0].Depth)
		assert.Equal(t, 1, rows[1].Depth)
		assert.Equal(t, 0, rows[2].Depth)
		assert.Equal(t, 0, rows[3].Depth)
	})

	t.Run("three levels restricted to expanded ancestors", func(t *testing.T) {
		inner := folder("deep", "/r/a/deep", file("x", "/r/a/deep/x", 1))
		roots := []*tree.Node{
			folder("a", "/r/a", inner, file("a2", "/r/a/a2", 1)),
			folder("b", "/r/b", file("b1", "/r/b/b1", 1)),
		}
		m := tree.New()
		m.SetRoot(roots)
		m.Expand("/r/a")
		m.Expand("/r/a/deep")

		// b is collapsed, so b1 stays hidden even though it is loaded.
		require.Equal(t, []string{"/r/a", "/r/a/deep", "/r/a/deep/x", "/r/a/a2", "/r/b"}, rowIDs(m.Rows()))
		assert.Equal(t, []int{0, 1, 2, 1, 0}, func() []int {
			depths := make([]int, 0, len(m.Rows()))
			for _, r := range m.Rows() {
				depths = append(depths, r.Depth)
			}
			return depths
		}())
	})

	t.Run("row meta", func(t *testing.T) {
		m := tree.New()
		m.SetRoot(sampleRoots())

		rows := m.Rows()
		assert.Equal(t, "folder", rows[0].Meta)
		assert.Equal(t, "5 B", rows[2].Meta)
	})
}

func TestSetRootResetsState(t *testing.T) {
	m := tree.New()
	m.SetRoot(sampleRoots())
	m.Expand("/root/alpha")
	m.MoveDown()

	m.SetRoot([]*tree.Node{file("solo", "/other/solo", 1)})

	assert.False(t, m.IsExpanded("/root/alpha"), "expansion set must be cleared on root change")
	assert.Equal(t, 0, m.Cursor())
	assert.Equal(t, []string{"/other/solo"}, rowIDs(m.Rows()))
}

func TestLazyLoad(t *testing.T) {
	t.Run("unloaded folder requests a load once", func(t *testing.T) {
		m := tree.New()
		m.SetRoot(sampleRoots())

		require.True(t, m.Expand("/root/beta"))
		assert.True(t, m.IsPending("/root/beta"))

		// A second expand while the read is in flight is deduplicated.
		assert.False(t, m.Expand("/root/beta"))

		m.FinishLoad("/root/beta", []*tree.Node{file("b1.txt", "/root/beta/b1.txt", 2)})
		assert.False(t, m.IsPending("/root/beta"))
		assert.True(t, m.NodeByPath("/root/beta").Loaded)
		assert.Equal(t, []string{"/root/alpha", "/root/beta", "/root/beta/b1.txt", "/root/c.txt"}, rowIDs(m.Rows()))
	})

	t.Run("collapse and re-expand does not re-read", func(t *testing.T) {
		m := tree.New()
		m.SetRoot(sampleRoots())

		require.True(t, m.Expand("/root/beta"))
		m.FinishLoad("/root/beta", []*tree.Node{file("b1.txt", "/root/beta/b1.txt", 2)})

		m.Collapse("/root/beta")
		assert.Equal(t, []string{"/root/alpha", "/root/beta", "/root/c.txt"}, rowIDs(m.Rows()),
			"collapse hides children but keeps them loaded")

		assert.False(t, m.Expand("/root/beta"), "re-expand of a loaded folder must not hit the filesystem")
		assert.Equal(t, []string{"/root/alpha", "/root/beta", "/root/beta/b1.txt", "/root/c.txt"}, rowIDs(m.Rows()))
	})

	t.Run("collapse while load in flight wins", func(t *testing.T) {
		m := tree.New()
		m.SetRoot(sampleRoots())

		require.True(t, m.Expand("/root/beta"))
		m.Collapse("/root/beta")

		// The read still completes and stores children, but they stay hidden.
		m.FinishLoad("/root/beta", []*tree.Node{file("b1.txt", "/root/beta/b1.txt", 2)})
		assert.True(t, m.NodeByPath("/root/beta").Loaded)
		assert.Equal(t, []string{"/root/alpha", "/root/beta", "/root/c.txt"}, rowIDs(m.Rows()))
	})

	t.Run("load replaces stale children", func(t *testing.T) {
		m := tree.New()
		m.SetRoot(sampleRoots())
		m.Expand("/root/alpha")

		m.FinishLoad("/root/alpha", []*tree.Node{file("fresh.txt", "/root/alpha/fresh.txt", 1)})
		assert.Equal(t, []string{"/root/alpha", "/root/alpha/fresh.txt", "/root/beta", "/root/c.txt"}, rowIDs(m.Rows()))
		assert.Nil(t, m.NodeByPath("/root/alpha/a1.txt"), "stale entries must be discarded on load")
	})

	t.Run("shrinking reload under the cursor notifies the new selection", func(t *testing.T) {
		m := tree.New()
		m.SetRoot(sampleRoots())
		m.Expand("/root/alpha")
		m.SelectPath("/root/alpha/a1.txt")

		var seen []string
		m.OnSelectionChanged = func(n *tree.Node) {
			if n != nil {
				seen = append(seen, n.Path)
			}
		}

		m.FinishLoad("/root/alpha", nil)

		require.NotNil(t, m.SelectedNode())
		assert.Equal(t, "/root/beta", m.SelectedNode().Path)
		assert.Equal(t, []string{"/root/beta"}, seen,
			"selection moved off a vanished row must fire the callback")
	})

	t.Run("collapsing above the selection notifies", func(t *testing.T) {
		m := tree.New()
		m.SetRoot(sampleRoots())
		m.Expand("/root/alpha")
		m.SelectPath("/root/alpha/a1.txt")

		var seen []string
		m.OnSelectionChanged = func(n *tree.Node) {
			if n != nil {
				seen = append(seen, n.Path)
			}
		}

		m.Collapse("/root/alpha")

		assert.Equal(t, "/root/beta", m.SelectedNode().Path)
		assert.Equal(t, []string{"/root/beta"}, seen)
	})

	t.Run("growing reload above the cursor keeps the selected node", func(t *testing.T) {
		m := tree.New()
		m.SetRoot(sampleRoots())
		m.SelectPath("/root/c.txt")

		var seen []string
		m.OnSelectionChanged = func(n *tree.Node) {
			if n != nil {
				seen = append(seen, n.Path)
			}
		}

		m.Expand("/root/alpha")

		assert.Equal(t, "/root/c.txt", m.SelectedNode().Path,
			"new rows above must not shift the selection to another node")
		assert.Empty(t, seen, "selection did not change, no event")
	})
}

func TestNavigation(t *testing.T) {
	t.Run("left at depth zero goes up a directory", func(t *testing.T) {
		m := tree.New()
		m.SetRoot(sampleRoots())

		var wentUp bool
		m.OnGoUpDirectory = func() { wentUp = true }

		before := m.Cursor()
		m.Left()
		assert.True(t, wentUp)
		assert.Equal(t, before, m.Cursor(), "depth-0 left must not move selection")
	})

	t.Run("left walks to the nearest preceding parent row", func(t *testing.T) {
		m := tree.New()
		m.SetRoot(sampleRoots())
		m.Expand("/root/alpha")

		m.SelectPath("/root/alpha/a1.txt")
		m.Left()
		assert.Equal(t, "/root/alpha", m.Rows()[m.Cursor()].ID)
	})

	t.Run("left from depth two skips deeper siblings to the parent", func(t *testing.T) {
		deep := folder("x", "/r/a/x",
			file("y", "/r/a/x/y", 1),
			file("z", "/r/a/x/z", 1),
		)
		m := tree.New()
		m.SetRoot([]*tree.Node{folder("a", "/r/a", deep)})
		m.Expand("/r/a")
		m.Expand("/r/a/x")

		m.SelectPath("/r/a/x/z")
		m.Left()
		assert.Equal(t, "/r/a/x", m.Rows()[m.Cursor()].ID,
			"nearest preceding depth-1 row is the parent, not the sibling above")
	})

	t.Run("left on an empty tree is a no-op", func(t *testing.T) {
		m := tree.New()
		m.SetRoot(nil)
		m.Left()
	})

	t.Run("right activates folders only", func(t *testing.T) {
		m := tree.New()
		m.SetRoot(sampleRoots())

		var activated []string
		m.OnActivate = func(n *tree.Node) { activated = append(activated, n.Path) }

		m.Right()
		require.Equal(t, []string{"/root/alpha"}, activated)
		assert.False(t, m.IsExpanded("/root/alpha"), "right never expands in place")

		m.SelectPath("/root/c.txt")
		m.Right()
		assert.Equal(t, []string{"/root/alpha"}, activated, "right on a file is a no-op")
	})

	t.Run("space toggles folders and ignores files", func(t *testing.T) {
		m := tree.New()
		m.SetRoot(sampleRoots())

		assert.False(t, m.Space()) // alpha is loaded: pure toggle
		assert.True(t, m.IsExpanded("/root/alpha"))
		m.SelectPath("/root/alpha")
		assert.False(t, m.Space())
		assert.False(t, m.IsExpanded("/root/alpha"))

		m.SelectPath("/root/c.txt")
		assert.False(t, m.Space())
		assert.False(t, m.IsExpanded("/root/c.txt"))
	})

	t.Run("enter toggles folders and activates files", func(t *testing.T) {
		m := tree.New()
		m.SetRoot(sampleRoots())

		var activated []string
		m.OnActivate = func(n *tree.Node) { activated = append(activated, n.Path) }

		m.Enter()
		assert.True(t, m.IsExpanded("/root/alpha"))
		assert.Empty(t, activated, "enter on a folder never activates")

		m.SelectPath("/root/c.txt")
		m.Enter()
		assert.Equal(t, []string{"/root/c.txt"}, activated)
	})

	t.Run("selection changes fire the callback", func(t *testing.T) {
		m := tree.New()
		m.SetRoot(sampleRoots())

		var seen []string
		m.OnSelectionChanged = func(n *tree.Node) {
			if n != nil {
				seen = append(seen, n.Path)
			}
		}

		m.MoveDown()
		m.MoveDown()
		m.MoveUp()
		assert.Equal(t, []string{"/root/beta", "/root/c.txt", "/root/beta"}, seen)

		m.MoveUp()
		m.MoveUp() // already at the top: no event
		assert.Equal(t, []string{"/root/beta", "/root/c.txt", "/root/beta", "/root/alpha"}, seen)
	})
}

func TestEndToEndScenario(t *testing.T) {
	// Root has folders alpha, beta and file c.txt; alpha contains a1.txt.
	m := tree.New()
	m.SetRoot(sampleRoots())

	var wentUp bool
	m.OnGoUpDirectory = func() { wentUp = true }

	m.Expand("/root/alpha")
	rows := m.Rows()
	require.Equal(t, []string{"/root/alpha", "/root/alpha/a1.txt", "/root/beta", "/root/c.txt"}, rowIDs(rows))
	require.Equal(t, []int{0, 1, 0, 0}, []int{rows[0].Depth, rows[1].Depth, rows[2].Depth, rows[3].Depth})

	m.SelectPath("/root/alpha/a1.txt")
	m.Left()
	assert.Equal(t, "/root/alpha", rows[m.Cursor()].ID)
	assert.False(t, wentUp)

	m.Left()
	assert.True(t, wentUp, "left at depth 0 must escape to the parent directory")
	assert.Equal(t, "/root/alpha", rows[m.Cursor()].ID, "selection stays put when escaping")
}

func TestReplaceRoots(t *testing.T) {
	m := tree.New()
	m.SetRoot(sampleRoots())
	m.Expand("/root/alpha")
	m.SelectPath("/root/alpha/a1.txt")

	// Fresh listing drops beta and adds delta; alpha survives with its
	// loaded subtree intact.
	m.ReplaceRoots([]*tree.Node{
		folder("alpha", "/root/alpha"),
		folder("delta", "/root/delta"),
		file("c.txt", "/root/c.txt", 5),
	})

	assert.Equal(t, []string{"/root/alpha", "/root/alpha/a1.txt", "/root/delta", "/root/c.txt"}, rowIDs(m.Rows()))
	assert.True(t, m.IsExpanded("/root/alpha"))
	assert.Equal(t, "/root/alpha/a1.txt", m.Rows()[m.Cursor()].ID, "selection follows the surviving path")
	assert.Nil(t, m.NodeByPath("/root/beta"))
}
