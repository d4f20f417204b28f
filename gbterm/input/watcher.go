package input

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"
)

// reloadDelay coalesces the burst of events editors generate on save.
const reloadDelay = 100 * time.Millisecond

// KeyMapWatcher reloads a key map file whenever it changes on disk.
type KeyMapWatcher struct {
	path     string
	watcher  *fsnotify.Watcher
	onChange func(KeyMap)
	done     chan struct{}
	stopped  chan struct{}
}

// WatchKeyMap starts watching path. onChange is called from the watcher
// goroutine with every successfully parsed map; callers are expected to
// hand it over to whichever goroutine owns the active key map. Parse
// errors are logged and the previous map stays active.
func WatchKeyMap(path string, onChange func(KeyMap)) (*KeyMapWatcher, error) {
	path = filepath.Clean(path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create key map watcher: %w", err)
	}
	// Watch the directory: editors often replace the file instead of writing it.
	if err := watcher.Watch(filepath.Dir(path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", path, err)
	}

	w := &KeyMapWatcher{
		path:     path,
		watcher:  watcher,
		onChange: onChange,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

func (w *KeyMapWatcher) loop() {
	defer close(w.stopped)

	var reload <-chan time.Time
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Event:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) == w.path && !ev.IsAttrib() && !ev.IsDelete() {
				reload = time.After(reloadDelay)
			}
		case err, ok := <-w.watcher.Error:
			if !ok {
				return
			}
			slog.Warn("Key map watcher error", "error", err)
		case <-reload:
			reload = nil
			km, err := LoadKeyMap(w.path)
			if err != nil {
				slog.Error("Key map reload failed, keeping previous bindings", "error", err)
				continue
			}
			slog.Info("Key map reloaded", "path", w.path, "bindings", len(km))
			w.onChange(km)
		}
	}
}

// Close stops watching and waits for the watcher goroutine to exit.
func (w *KeyMapWatcher) Close() error {
	close(w.done)
	err := w.watcher.Close()
	<-w.stopped
	return err
}
