// Package watcher keeps a translation index in step with the files on disk.
//
// Events are consumed by a single goroutine (Run) and applied one at a time,
// so index mutations triggered by the filesystem never interleave. There is
// no debouncing: every write triggers a full reload of that file.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// EventKind is what happened to a watched file.
type EventKind int

const (
	Changed EventKind = iota
	Created
	Deleted
)

func (k EventKind) String() string {
	switch k {
	case Changed:
		return "changed"
	case Created:
		return "created"
	case Deleted:
		return "deleted"
	}
	return fmt.Sprintf("event(%d)", int(k))
}

// Event is a change to one watched file.
type Event struct {
	Kind EventKind
	Path string
}

// Target receives the updates. *index.Index satisfies it.
type Target interface {
	Reload(path string) error
	Remove(path string) int
}

// Watcher subscribes to change, create and delete events of a set of files.
type Watcher struct {
	target Target
	fs     *fsnotify.Watcher

	mu    sync.Mutex
	files map[string]struct{}
	dirs  map[string]struct{}
}

// New creates a watcher feeding target. Call Watch to choose the files and
// Run to start delivering events.
func New(target Target) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}
	return &Watcher{
		target: target,
		fs:     fsw,
		files:  make(map[string]struct{}),
		dirs:   make(map[string]struct{}),
	}, nil
}

// Watch replaces the watched set with files. The parent directory of each
// file is subscribed so that saves done by rename are still observed.
// Directories that cannot be watched are reported; the others stay active.
func (w *Watcher) Watch(files []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	wantFiles := make(map[string]struct{}, len(files))
	wantDirs := make(map[string]struct{})
	for _, f := range files {
		abs, err := filepath.Abs(f)
		if err != nil {
			abs = filepath.Clean(f)
		}
		wantFiles[abs] = struct{}{}
		wantDirs[filepath.Dir(abs)] = struct{}{}
	}

	for dir := range w.dirs {
		if _, keep := wantDirs[dir]; keep {
			continue
		}
		if err := w.fs.Remove(dir); err != nil {
			log.Debug().Err(err).Str("dir", dir).Msg("Unwatch directory")
		}
		delete(w.dirs, dir)
	}

	var errs []error
	for dir := range wantDirs {
		if _, ok := w.dirs[dir]; ok {
			continue
		}
		if err := w.fs.Add(dir); err != nil {
			errs = append(errs, fmt.Errorf("watch %s: %w", dir, err))
			continue
		}
		w.dirs[dir] = struct{}{}
	}

	w.files = wantFiles
	log.Debug().Int("files", len(wantFiles)).Int("dirs", len(w.dirs)).Msg("Watching translation files")
	return errors.Join(errs...)
}

// Files returns the watched file set, sorted.
func (w *Watcher) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]string, 0, len(w.files))
	for f := range w.files {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Run delivers events until ctx is done or the watcher is closed. It must
// have a single caller.
func (w *Watcher) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			if e, ok := w.translate(ev); ok {
				_ = w.Handle(e)
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			log.Warn().Err(err).Msg("File watcher error")
		}
	}
}

// Handle applies one event to the target and logs its outcome.
func (w *Watcher) Handle(e Event) error {
	switch e.Kind {
	case Changed, Created:
		if err := w.target.Reload(e.Path); err != nil {
			log.Error().Err(err).Str("file", e.Path).Stringer("event", e.Kind).Msg("Failed to reload translation file")
			return err
		}
		log.Info().Str("file", e.Path).Stringer("event", e.Kind).Msg("Reloaded translation file")
	case Deleted:
		n := w.target.Remove(e.Path)
		log.Info().Str("file", e.Path).Int("keys", n).Msg("Removed translations of deleted file")
	}
	return nil
}

// Close ends the subscription.
func (w *Watcher) Close() error {
	return w.fs.Close()
}

func (w *Watcher) translate(ev fsnotify.Event) (Event, bool) {
	path := filepath.Clean(ev.Name)

	w.mu.Lock()
	_, watched := w.files[path]
	w.mu.Unlock()
	if !watched {
		return Event{}, false
	}

	switch {
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return Event{Kind: Deleted, Path: path}, true
	case ev.Has(fsnotify.Create):
		return Event{Kind: Created, Path: path}, true
	case ev.Has(fsnotify.Write):
		return Event{Kind: Changed, Path: path}, true
	}
	return Event{}, false
}
