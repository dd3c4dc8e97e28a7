package config

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
)

// Watcher hot-swaps Params behind an atomic pointer whenever the backing
// YAML file changes; Current returns the latest validated value.
// driver.New copies its Params at construction, so a reload does not
// change a Driver that is already running.
type Watcher struct {
	path    string
	watcher *fsnotify.Watcher
	current atomic.Pointer[Params]
}

// NewWatcher opens an fsnotify watch on path, seeded with initial.
func NewWatcher(path string, initial Params) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: create watcher: %w", err)
	}
	if err := fw.Add(path); err != nil {
		fw.Close()
		return nil, fmt.Errorf("config: watch %s: %w", path, err)
	}
	w := &Watcher{path: path, watcher: fw}
	w.current.Store(&initial)
	return w, nil
}

// Current returns the most recently loaded, validated Params.
func (w *Watcher) Current() Params {
	return *w.current.Load()
}

// Start consumes fsnotify events until ctx is done, reloading and
// swapping in Params on every write/create and invoking onReload (if
// non-nil) with the new value. A reload that fails validation or YAML
// parsing is logged by the caller via the returned error and otherwise
// ignored — the previous Params stays live.
func (w *Watcher) Start(ctx context.Context, onReload func(Params, error)) {
	go func() {
		defer w.watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				p, err := Load(w.path)
				if err == nil {
					w.current.Store(&p)
				}
				if onReload != nil {
					onReload(p, err)
				}
			case _, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
			}
		}
	}()
}
