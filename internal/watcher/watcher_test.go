package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTarget struct {
	mu        sync.Mutex
	reloaded  []string
	removed   []string
	reloadErr error
}

func (f *fakeTarget) Reload(path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reloaded = append(f.reloaded, path)
	return f.reloadErr
}

func (f *fakeTarget) Remove(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.removed = append(f.removed, path)
	return 1
}

func (f *fakeTarget) snapshot() (reloaded, removed []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.reloaded), slices.Clone(f.removed)
}

func newWatcher(t *testing.T, target Target) *Watcher {
	t.Helper()
	w, err := New(target)
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w
}

func TestHandle_DispatchesByKind(t *testing.T) {
	t.Parallel()

	target := &fakeTarget{}
	w := newWatcher(t, target)

	require.NoError(t, w.Handle(Event{Kind: Changed, Path: "/ws/en.json"}))
	require.NoError(t, w.Handle(Event{Kind: Created, Path: "/ws/ko.json"}))
	require.NoError(t, w.Handle(Event{Kind: Deleted, Path: "/ws/en.json"}))

	reloaded, removed := target.snapshot()
	assert.Equal(t, []string{"/ws/en.json", "/ws/ko.json"}, reloaded)
	assert.Equal(t, []string{"/ws/en.json"}, removed)
}

func TestHandle_ReloadErrorIsReturned(t *testing.T) {
	t.Parallel()

	target := &fakeTarget{reloadErr: errors.New("bad json")}
	w := newWatcher(t, target)

	err := w.Handle(Event{Kind: Changed, Path: "/ws/en.json"})
	assert.EqualError(t, err, "bad json")
}

func TestTranslate(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "en.json")
	other := filepath.Join(dir, "other.json")

	w := newWatcher(t, &fakeTarget{})
	require.NoError(t, w.Watch([]string{file}))

	tests := []struct {
		op   fsnotify.Op
		name string
		want Event
		ok   bool
	}{
		{fsnotify.Write, file, Event{Kind: Changed, Path: file}, true},
		{fsnotify.Create, file, Event{Kind: Created, Path: file}, true},
		{fsnotify.Remove, file, Event{Kind: Deleted, Path: file}, true},
		{fsnotify.Rename, file, Event{Kind: Deleted, Path: file}, true},
		{fsnotify.Chmod, file, Event{}, false},
		{fsnotify.Write, other, Event{}, false},
	}
	for _, tt := range tests {
		got, ok := w.translate(fsnotify.Event{Name: tt.name, Op: tt.op})
		assert.Equal(t, tt.ok, ok, "%s %s", tt.op, tt.name)
		assert.Equal(t, tt.want, got)
	}
}

func TestWatch_ReplacesWatchedSet(t *testing.T) {
	t.Parallel()

	a := filepath.Join(t.TempDir(), "a.json")
	b := filepath.Join(t.TempDir(), "b.json")

	w := newWatcher(t, &fakeTarget{})
	require.NoError(t, w.Watch([]string{a}))
	assert.Equal(t, []string{a}, w.Files())

	require.NoError(t, w.Watch([]string{b}))
	assert.Equal(t, []string{b}, w.Files())
	assert.Len(t, w.dirs, 1)
}

func TestWatch_MissingDirectoryIsReported(t *testing.T) {
	t.Parallel()

	good := filepath.Join(t.TempDir(), "en.json")
	bad := filepath.Join(t.TempDir(), "gone", "ko.json")

	w := newWatcher(t, &fakeTarget{})
	err := w.Watch([]string{good, bad})
	require.Error(t, err)
	assert.Len(t, w.dirs, 1)
}

func TestRun_DeliversFileEvents(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "en.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"a":"1"}`), 0o644))

	target := &fakeTarget{}
	w := newWatcher(t, target)
	require.NoError(t, w.Watch([]string{file}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(file, []byte(`{"a":"2"}`), 0o644))
	require.Eventually(t, func() bool {
		reloaded, _ := target.snapshot()
		return slices.Contains(reloaded, file)
	}, 5*time.Second, 20*time.Millisecond)

	// Unwatched siblings are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte(`{}`), 0o644))

	require.NoError(t, os.Remove(file))
	require.Eventually(t, func() bool {
		_, removed := target.snapshot()
		return slices.Contains(removed, file)
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	reloaded, _ := target.snapshot()
	assert.NotContains(t, reloaded, filepath.Join(dir, "other.json"))
}

func TestEventKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "changed", Changed.String())
	assert.Equal(t, "deleted", Deleted.String())
	assert.Equal(t, "event(9)", EventKind(9).String())
}
