package watch_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arbor/internal/watch"
)

func newStartedWatcher(t *testing.T) *watch.Watcher {
	t.Helper()
	w, err := watch.New()
	require.NoError(t, err)
	require.NoError(t, w.Start())
	t.Cleanup(w.Stop)
	return w
}

func waitForChange(t *testing.T, w *watch.Watcher, wantDir string) {
	t.Helper()
	deadline := time.After(3 * time.Second)
	for {
		select {
		case change := <-w.Changes():
			// Events for other directories can be interleaved; keep draining.
			if change.Dir == wantDir {
				assert.False(t, change.Timestamp.IsZero())
				return
			}
		case <-deadline:
			t.Fatalf("no change notification for %s", wantDir)
		}
	}
}

func TestWatcherDeliversDirectoryChanges(t *testing.T) {
	dir := t.TempDir()
	w := newStartedWatcher(t)
	require.NoError(t, w.AddDirectory(dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("hello"), 0o644))

	waitForChange(t, w, dir)
}

func TestWatcherIgnoresUnwatchedDirectories(t *testing.T) {
	watched := t.TempDir()
	unwatched := t.TempDir()
	w := newStartedWatcher(t)
	require.NoError(t, w.AddDirectory(watched))

	require.NoError(t, os.WriteFile(filepath.Join(unwatched, "noise.txt"), nil, 0o644))

	select {
	case change := <-w.Changes():
		t.Fatalf("unexpected notification for %s", change.Dir)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherRemoveDirectory(t *testing.T) {
	dir := t.TempDir()
	w := newStartedWatcher(t)
	require.NoError(t, w.AddDirectory(dir))

	w.RemoveDirectory(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "late.txt"), nil, 0o644))

	select {
	case change := <-w.Changes():
		t.Fatalf("unexpected notification for %s after removal", change.Dir)
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatcherAddDirectory(t *testing.T) {
	t.Run("duplicate add is a no-op", func(t *testing.T) {
		dir := t.TempDir()
		w := newStartedWatcher(t)

		require.NoError(t, w.AddDirectory(dir))
		require.NoError(t, w.AddDirectory(dir))
	})

	t.Run("missing directory is an error", func(t *testing.T) {
		w := newStartedWatcher(t)

		err := w.AddDirectory(filepath.Join(t.TempDir(), "gone"))
		assert.Error(t, err)
	})
}

func TestWatcherStop(t *testing.T) {
	w, err := watch.New()
	require.NoError(t, err)
	require.NoError(t, w.Start())

	w.Stop()
	w.Stop() // second stop must not panic

	select {
	case change := <-w.Changes():
		t.Fatalf("unexpected notification after stop: %s", change.Dir)
	case <-time.After(100 * time.Millisecond):
	}
}
