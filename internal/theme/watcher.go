package theme

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// Watcher watches the user themes directory and reloads the active theme
// when its file changes.
type Watcher struct {
	watcher  *fsnotify.Watcher
	loader   *Loader
	dir      string
	onChange func()
	done     chan struct{}
	mu       sync.Mutex
	running  bool
}

// NewWatcher creates a watcher for the loader's themes directory. onChange is
// called from the watcher goroutine after a reload that changed the palette.
func NewWatcher(loader *Loader, onChange func()) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	loader.mu.RLock()
	dir := loader.themesDir
	loader.mu.RUnlock()

	return &Watcher{
		watcher:  watcher,
		loader:   loader,
		dir:      dir,
		onChange: onChange,
		done:     make(chan struct{}),
	}, nil
}

// Start begins watching. A missing themes directory is not an error; the
// watcher simply has nothing to observe.
func (w *Watcher) Start() error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.mu.Unlock()

	if w.dir == "" {
		return nil
	}
	if err := w.watcher.Add(w.dir); err != nil {
		w.loader.logger.Debug("themes directory not watchable", "dir", w.dir, "error", err)
		return nil
	}

	go w.watch()
	return nil
}

func (w *Watcher) watch() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Ext(event.Name) != ".toml" {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			w.handle(event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.loader.logger.Warn("theme watcher error", "error", err)

		case <-w.done:
			return
		}
	}
}

// handle reloads the active theme if the changed file backs it.
func (w *Watcher) handle(path string) {
	active := w.loader.Theme()
	if active == nil || active.Path == "" || filepath.Clean(active.Path) != filepath.Clean(path) {
		return
	}

	changed, err := w.loader.Reload()
	if err != nil {
		w.loader.logger.Warn("failed to reload theme", "theme", active.Name, "error", err)
		return
	}
	if !changed {
		return
	}

	w.loader.logger.Debug("theme reloaded", "theme", active.Name)
	if w.onChange != nil {
		w.onChange()
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}

	w.running = false
	close(w.done)
	return w.watcher.Close()
}
