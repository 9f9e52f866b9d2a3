package prefs

import (
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/acolita/hdfs-connect/internal/connform"
)

// Watcher watches the preferences file and reloads it when another process
// saves new last-used values.
type Watcher struct {
	store    *Store
	base     connform.Fields
	current  connform.Fields
	mu       sync.RWMutex
	watcher  *fsnotify.Watcher
	onChange func(connform.Fields)
	done     chan struct{}
	once     sync.Once
}

// NewWatcher creates a watcher for store's file. base supplies the values
// missing from the file on every reload.
func NewWatcher(store *Store, base connform.Fields, onChange func(connform.Fields)) (*Watcher, error) {
	current, _, err := store.Load(base)
	if err != nil {
		return nil, err
	}

	// The directory must exist before it can be watched.
	dir := filepath.Dir(store.Path())
	if err := store.fs.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		store:    store,
		base:     base,
		current:  current,
		watcher:  fsWatcher,
		onChange: onChange,
		done:     make(chan struct{}),
	}

	// Watch the directory: Save replaces the file by renaming over it.
	if err := fsWatcher.Add(dir); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	go w.watch()

	return w, nil
}

// Fields returns the most recently loaded values.
func (w *Watcher) Fields() connform.Fields {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

func (w *Watcher) watch() {
	filename := filepath.Base(w.store.Path())

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Base(event.Name) != filename {
				continue
			}

			if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
				w.reload()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("preferences watcher error", slog.String("error", err.Error()))
		}
	}
}

func (w *Watcher) reload() {
	f, found, err := w.store.Load(w.base)
	if err != nil {
		slog.Error("failed to reload preferences",
			slog.String("path", w.store.Path()),
			slog.String("error", err.Error()),
		)
		return
	}
	if !found {
		return
	}

	w.mu.Lock()
	changed := f != w.current
	w.current = f
	w.mu.Unlock()

	if !changed {
		return
	}

	slog.Info("preferences reloaded", slog.String("path", w.store.Path()))

	if w.onChange != nil {
		w.onChange(f)
	}
}

// Close stops watching and cleans up.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}
