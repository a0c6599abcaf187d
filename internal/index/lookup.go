package index

import (
	"encoding/json"
	"strings"
)

// Lookup resolves a dotted key to its leaf. It misses when any segment is
// absent or when the key stops at an object, an array or null.
func (x *Index) Lookup(key string) (any, bool) {
	t, ok := x.LookupWithSource(key)
	return t.Value, ok
}

// LookupWithSource resolves a dotted key and reports the source of the
// deepest tagged entry crossed on the way down.
//
// Two node shapes are accepted at every step: a tagged *Entry, whose Value
// is descended into, and a bare value. Both resolve identically.
func (x *Index) LookupWithSource(key string) (Translation, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	var (
		node   any = x.entries
		source string
	)
	for _, segment := range strings.Split(key, ".") {
		next, ok := child(node, segment)
		if !ok {
			return Translation{}, false
		}
		if entry, tagged := next.(*Entry); tagged {
			source = entry.Source
			next = entry.Value
		}
		node = next
	}

	if !isLeaf(node) {
		return Translation{}, false
	}
	return Translation{Value: node, Source: source}, true
}

func child(node any, segment string) (any, bool) {
	switch n := node.(type) {
	case map[string]*Entry:
		entry, ok := n[segment]
		if !ok {
			return nil, false
		}
		return entry, true
	case map[string]any:
		v, ok := n[segment]
		return v, ok
	}
	return nil, false
}

func isLeaf(v any) bool {
	switch v.(type) {
	case string, float64, bool, json.Number:
		return true
	}
	return false
}
