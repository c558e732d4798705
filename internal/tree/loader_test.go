package tree_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbor/internal/tree"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func names(nodes []*tree.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func TestReadChildren(t *testing.T) {
	t.Run("folders first then case-insensitive alphabetical", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "zeta"), 0o755))
		require.NoError(t, os.Mkdir(filepath.Join(dir, "Alpha"), 0o755))
		writeFile(t, dir, "Beta.txt", "b")
		writeFile(t, dir, "apple.txt", "a")

		l := tree.NewLoader(false, nil)
		nodes := l.ReadChildren(dir)

		assert.Equal(t, []string{"Alpha", "zeta", "apple.txt", "Beta.txt"}, names(nodes))
		assert.Equal(t, tree.KindFolder, nodes[0].Kind)
		assert.Equal(t, tree.KindFile, nodes[2].Kind)
	})

	t.Run("node fields", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "data.bin", "12345")

		l := tree.NewLoader(false, nil)
		nodes := l.ReadChildren(dir)

		require.Len(t, nodes, 1)
		assert.Equal(t, filepath.Join(dir, "data.bin"), nodes[0].Path)
		assert.Equal(t, int64(5), nodes[0].Size)
		assert.False(t, nodes[0].Loaded)
	})

	t.Run("hidden files filtered unless enabled", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, ".secret", "s")
		writeFile(t, dir, "visible.txt", "v")

		hidden := tree.NewLoader(false, nil)
		assert.Equal(t, []string{"visible.txt"}, names(hidden.ReadChildren(dir)))

		shown := tree.NewLoader(true, nil)
		assert.Equal(t, []string{".secret", "visible.txt"}, names(shown.ReadChildren(dir)))
	})

	t.Run("ignore globs filter entries", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "node_modules"), 0o755))
		writeFile(t, dir, "main.go", "package main")
		writeFile(t, dir, "main.log", "noise")

		l := tree.NewLoader(false, []string{"node_modules", "*.log"})
		assert.Equal(t, []string{"main.go"}, names(l.ReadChildren(dir)))
	})

	t.Run("invalid ignore pattern is skipped", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "kept.txt", "k")

		l := tree.NewLoader(false, []string{"[unclosed"})
		assert.Equal(t, []string{"kept.txt"}, names(l.ReadChildren(dir)))
	})

	t.Run("unreadable directory yields an empty list", func(t *testing.T) {
		l := tree.NewLoader(false, nil)
		nodes := l.ReadChildren(filepath.Join(t.TempDir(), "does-not-exist"))
		assert.NotNil(t, nodes)
		assert.Empty(t, nodes)
	})
}
