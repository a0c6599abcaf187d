// Package index holds the merged in-memory translation map.
//
// Files are merged by top-level key: when two loaded files define the same
// top-level key, the later file replaces the earlier file's entire subtree
// for that key. Leaves are never deep-merged across files.
package index

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"i18n-helper/internal/errs"
	"i18n-helper/internal/worker"

	"github.com/rs/zerolog/log"
)

// Entry is the value of one top-level key, tagged with the file that wrote it.
// Value is either a primitive leaf or a nested map[string]any.
type Entry struct {
	Value  any
	Source string
}

// Translation is a resolved leaf and the file it came from. Source is empty
// when no tagged entry was crossed on the way down.
type Translation struct {
	Value  any
	Source string
}

// Record is one flattened dotted key.
type Record struct {
	Key    string
	Value  any
	Source string
}

// LoadResult reports a bulk load. Files lists every file that was requested,
// Loaded those that were merged. Errors holds one error per file that could
// not be loaded; missing and malformed files carry an *errs.Error.
type LoadResult struct {
	Files  []string
	Loaded []string
	Errors []error
}

// Index is the merged translation map. The zero value is not usable; call New.
type Index struct {
	mu      sync.RWMutex
	entries map[string]*Entry
	sources []string
	workers int
}

// Option configures an Index.
type Option func(*Index)

// WithWorkers sets how many files LoadAll parses concurrently.
func WithWorkers(n int) Option {
	return func(x *Index) { x.workers = n }
}

// New returns an empty index.
func New(opts ...Option) *Index {
	x := &Index{
		entries: make(map[string]*Entry),
		workers: 4,
	}
	for _, opt := range opts {
		opt(x)
	}
	return x
}

// LoadAll replaces the index with the merge of files, in list order. A file
// that is missing or malformed is reported in the result and skipped; the
// remaining files still load. A started load runs to completion even if ctx
// is cancelled, and readers never observe a half-built map.
func (x *Index) LoadAll(ctx context.Context, files []string) LoadResult {
	pool := worker.NewPool(x.workers, func(_ context.Context, path string) (map[string]any, error) {
		return parseFile(path)
	})
	tasks := pool.Execute(context.WithoutCancel(ctx), files)

	result := LoadResult{Files: slices.Clone(files)}
	fresh := make(map[string]*Entry)

	for _, task := range tasks {
		if task.Err != nil {
			result.Errors = append(result.Errors, task.Err)
			continue
		}
		for key, value := range task.Result {
			fresh[key] = &Entry{Value: value, Source: task.Input}
		}
		result.Loaded = append(result.Loaded, task.Input)
	}

	x.mu.Lock()
	x.entries = fresh
	x.sources = slices.Clone(result.Loaded)
	x.mu.Unlock()

	log.Debug().
		Int("files", len(files)).
		Int("loaded", len(result.Loaded)).
		Int("keys", len(fresh)).
		Msg("Loaded translations")

	return result
}

// LoadSelected loads only files[selector-1]. An out-of-range selector fails
// with InvalidSelector and leaves the index untouched.
func (x *Index) LoadSelected(ctx context.Context, files []string, selector int) (LoadResult, error) {
	if selector < 1 || selector > len(files) {
		return LoadResult{}, &errs.Error{
			Kind: errs.InvalidSelector,
			Err:  fmt.Errorf("flag %d does not match any of %d translation files", selector, len(files)),
		}
	}
	return x.LoadAll(ctx, files[selector-1:selector]), nil
}

// Reload re-reads one file and merges its top-level keys over the current
// map. Keys the file no longer defines are dropped if they are still
// attributed to it; entries from other files are only affected where the
// file now claims their top-level key. On failure nothing changes.
func (x *Index) Reload(path string) error {
	doc, err := parseFile(path)
	if err != nil {
		return err
	}

	x.mu.Lock()
	defer x.mu.Unlock()

	for key, entry := range x.entries {
		if _, still := doc[key]; !still && entry.Source == path {
			delete(x.entries, key)
		}
	}
	for key, value := range doc {
		x.entries[key] = &Entry{Value: value, Source: path}
	}
	if !slices.Contains(x.sources, path) {
		x.sources = append(x.sources, path)
	}

	log.Debug().Str("file", path).Int("keys", len(doc)).Msg("Reloaded translation file")
	return nil
}

// Remove deletes every entry attributed to path and returns how many went.
func (x *Index) Remove(path string) int {
	x.mu.Lock()
	defer x.mu.Unlock()

	removed := 0
	for key, entry := range x.entries {
		if entry.Source == path {
			delete(x.entries, key)
			removed++
		}
	}
	x.sources = slices.DeleteFunc(x.sources, func(s string) bool { return s == path })
	return removed
}

// Clear empties the index.
func (x *Index) Clear() {
	x.mu.Lock()
	x.entries = make(map[string]*Entry)
	x.sources = nil
	x.mu.Unlock()
}

// Len returns the number of top-level keys.
func (x *Index) Len() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.entries)
}

// Sources returns the files currently merged into the index, in load order.
func (x *Index) Sources() []string {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return slices.Clone(x.sources)
}

// Records flattens the index into dotted keys sorted by key. Arrays and
// nulls are not addressable by dotted keys and are left out.
func (x *Index) Records() []Record {
	x.mu.RLock()
	defer x.mu.RUnlock()

	var out []Record
	for key, entry := range x.entries {
		out = flatten(out, key, entry.Value, entry.Source)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func flatten(out []Record, prefix string, value any, source string) []Record {
	switch v := value.(type) {
	case map[string]any:
		for key, nested := range v {
			out = flatten(out, prefix+"."+key, nested, source)
		}
	default:
		if isLeaf(v) {
			out = append(out, Record{Key: prefix, Value: v, Source: source})
		}
	}
	return out
}
