// Package watch monitors expanded directories with fsnotify so the tree can
// re-read a directory whose contents changed behind the UI.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"arbor/internal/errors"
	"arbor/internal/log"
)

// DirChange reports that the contents of Dir changed.
type DirChange struct {
	Dir       string
	Timestamp time.Time
}

// Watcher monitors directories and coalesces fsnotify events into per-
// directory change notifications.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	changes   chan DirChange
	stopChan  chan struct{}

	mutex   sync.RWMutex
	watched map[string]bool
	running bool
}

// New creates a watcher. Call Start to begin delivery and Stop to tear down.
func New() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}
	return &Watcher{
		fsWatcher: fsWatcher,
		changes:   make(chan DirChange, 16),
		stopChan:  make(chan struct{}),
		watched:   make(map[string]bool),
	}, nil
}

// AddDirectory starts watching dir. Adding a directory twice is a no-op.
func (w *Watcher) AddDirectory(dir string) error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.watched[dir] {
		return nil
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return errors.Wrapf(err, "failed to watch directory %s", dir)
	}
	w.watched[dir] = true
	log.WithField("directory", dir).Debug("watching directory")
	return nil
}

// RemoveDirectory stops watching dir.
func (w *Watcher) RemoveDirectory(dir string) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.watched[dir] {
		return
	}
	delete(w.watched, dir)
	// fsnotify drops the watch automatically when the dir disappears; an
	// error here only means it was already gone.
	if err := w.fsWatcher.Remove(dir); err != nil {
		log.Debugf("remove watch %s: %v", dir, err)
	}
}

// Changes returns the channel delivering directory-change notifications.
func (w *Watcher) Changes() <-chan DirChange {
	return w.changes
}

// Start begins the event loop.
func (w *Watcher) Start() error {
	w.mutex.Lock()
	if w.running {
		w.mutex.Unlock()
		return errors.New("watcher already running")
	}
	w.running = true
	w.mutex.Unlock()

	go w.loop()
	return nil
}

// Stop shuts the watcher down. Safe to call more than once.
func (w *Watcher) Stop() {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if !w.running {
		return
	}
	w.running = false
	close(w.stopChan)
	if err := w.fsWatcher.Close(); err != nil {
		log.Debugf("close fsnotify watcher: %v", err)
	}
}

func (w *Watcher) loop() {
	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			// Any create/remove/rename/write inside a watched directory
			// means that directory's listing may be stale.
			dir := filepath.Dir(event.Name)
			w.mutex.RLock()
			tracked := w.watched[dir]
			w.mutex.RUnlock()
			if !tracked {
				continue
			}
			select {
			case w.changes <- DirChange{Dir: dir, Timestamp: time.Now()}:
			default:
				// Drop when the consumer is behind; the UI re-reads the
				// whole directory on the next notification anyway.
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			log.Warnf("watcher error: %v", err)
		case <-w.stopChan:
			return
		}
	}
}
