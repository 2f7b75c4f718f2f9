// Package watcher reports settled changes to a fixed set of files.
//
// Individual files are watched through their parent directories so that
// editors and exporters that replace a file by rename are still seen.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors a set of files for changes.
type Watcher struct {
	logger *slog.Logger
	opts   Options
	fsw    *fsnotify.Watcher

	mu      sync.Mutex
	targets map[string]bool // path -> existed when last seen
	dirs    map[string]struct{}
	pending map[string]*pendingEvent

	events   chan Event
	errors   chan error
	done     chan struct{}
	stopOnce sync.Once
}

// pendingEvent tracks a file that may still be changing.
type pendingEvent struct {
	size    int64
	modTime time.Time
	timer   *time.Timer
}

// New creates a watcher. Call WatchFile for each file, then Start.
func New(logger *slog.Logger, opts Options) (*Watcher, error) {
	opts.setDefaults()
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	return &Watcher{
		logger:  logger,
		opts:    opts,
		fsw:     fsw,
		targets: make(map[string]bool),
		dirs:    make(map[string]struct{}),
		pending: make(map[string]*pendingEvent),
		events:  make(chan Event, opts.BufferSize),
		errors:  make(chan error, 4),
		done:    make(chan struct{}),
	}, nil
}

// WatchFile registers a file. The file itself may not exist yet, but its
// parent directory must.
func (w *Watcher) WatchFile(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", path, err)
	}
	dir := filepath.Dir(abs)

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("failed to stat directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.dirs[dir]; !ok {
		if err := w.fsw.Add(dir); err != nil {
			return fmt.Errorf("failed to add watch: %w", err)
		}
		w.dirs[dir] = struct{}{}
		w.logger.Debug("added watch", "dir", dir)
	}

	_, statErr := os.Stat(abs)
	w.targets[abs] = statErr == nil
	return nil
}

// Start processes file system events until ctx is cancelled or Stop is called.
func (w *Watcher) Start(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.done:
			return nil
		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			select {
			case w.errors <- err:
			default:
				w.logger.Warn("dropping watcher error", "error", err)
			}
		}
	}
}

// Events returns the channel of settled events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Errors returns the channel of backend errors.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Stop releases resources. It is safe to call more than once.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)

		w.mu.Lock()
		for _, p := range w.pending {
			p.timer.Stop()
		}
		clear(w.pending)
		w.mu.Unlock()

		err = w.fsw.Close()
	})
	return err
}

func (w *Watcher) handle(event fsnotify.Event) {
	path := filepath.Clean(event.Name)

	w.mu.Lock()
	defer w.mu.Unlock()

	existed, watched := w.targets[path]
	if !watched {
		return
	}

	switch {
	case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
		w.cancelLocked(path)
		if existed {
			w.targets[path] = false
			w.emit(Event{Type: EventRemoved, Path: path})
		}
	case event.Has(fsnotify.Write) || event.Has(fsnotify.Create):
		w.settleLocked(path)
	}
}

// settleLocked (re)starts the settle timer for path. Caller holds mu.
func (w *Watcher) settleLocked(path string) {
	info, err := os.Stat(path)
	if err != nil {
		w.cancelLocked(path)
		return
	}

	p, ok := w.pending[path]
	if ok {
		p.timer.Stop()
	} else {
		p = &pendingEvent{}
		w.pending[path] = p
	}
	p.size, p.modTime = info.Size(), info.ModTime()
	p.timer = time.AfterFunc(w.opts.SettleDelay, func() { w.checkSettled(path) })
}

func (w *Watcher) checkSettled(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	p, ok := w.pending[path]
	if !ok {
		return
	}

	info, err := os.Stat(path)
	if err != nil {
		delete(w.pending, path)
		if errors.Is(err, os.ErrNotExist) && w.targets[path] {
			w.targets[path] = false
			w.emit(Event{Type: EventRemoved, Path: path})
		}
		return
	}

	if info.Size() != p.size || !info.ModTime().Equal(p.modTime) {
		p.size, p.modTime = info.Size(), info.ModTime()
		p.timer = time.AfterFunc(w.opts.SettleDelay, func() { w.checkSettled(path) })
		return
	}

	delete(w.pending, path)

	typ := EventModified
	if !w.targets[path] {
		typ = EventAdded
	}
	w.targets[path] = true
	w.emit(Event{Type: typ, Path: path, Size: info.Size(), ModTime: info.ModTime()})
}

func (w *Watcher) cancelLocked(path string) {
	if p, ok := w.pending[path]; ok {
		p.timer.Stop()
		delete(w.pending, path)
	}
}

// emit never blocks while mu is held; a full buffer drops the event
// since consumers only need to know that something changed.
func (w *Watcher) emit(event Event) {
	select {
	case <-w.done:
		return
	default:
	}
	select {
	case w.events <- event:
	default:
		w.logger.Warn("watcher event buffer full, dropping event", "path", event.Path, "type", event.Type.String())
	}
}
