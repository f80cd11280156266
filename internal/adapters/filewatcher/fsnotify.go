// Package filewatcher provides file system monitoring adapters.
// Clean Architecture: Adapter implementing ports.FileWatcher.
package filewatcher

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/techgear/supportbot/internal/domain/ports"
)

// FSNotifyWatcher implements ports.FileWatcher using fsnotify. The vector
// index is immutable for the process lifetime, so the watcher is used to
// tell the operator a restart is needed, not to rebuild live.
type FSNotifyWatcher struct {
	watcher *fsnotify.Watcher
	target  string
}

// NewFSNotifyWatcher creates a new file watcher.
func NewFSNotifyWatcher() (*FSNotifyWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &FSNotifyWatcher{watcher: w}, nil
}

// Watch starts monitoring the file at path and emits an event per
// change. The parent directory is watched so editors that replace the
// file (write-to-temp then rename) are still seen.
func (w *FSNotifyWatcher) Watch(ctx context.Context, path string) (<-chan ports.FileEvent, error) {
	w.target = filepath.Clean(path)
	if err := w.watcher.Add(filepath.Dir(w.target)); err != nil {
		return nil, err
	}

	events := make(chan ports.FileEvent, 16)

	go func() {
		defer close(events)
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != w.target {
					continue
				}

				var op ports.FileOperation
				switch {
				case event.Op&fsnotify.Create == fsnotify.Create:
					op = ports.FileCreated
				case event.Op&fsnotify.Write == fsnotify.Write:
					op = ports.FileModified
				case event.Op&fsnotify.Remove == fsnotify.Remove,
					event.Op&fsnotify.Rename == fsnotify.Rename:
					op = ports.FileDeleted
				default:
					continue
				}

				select {
				case events <- ports.FileEvent{Path: event.Name, Operation: op}:
				case <-ctx.Done():
					return
				}
			case _, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()

	return events, nil
}

// Stop stops the watcher.
func (w *FSNotifyWatcher) Stop() error {
	return w.watcher.Close()
}
