package session

import (
	"fmt"

	"i18n-helper/internal/cursor"
	"i18n-helper/internal/errs"
	"i18n-helper/internal/locator"
	"i18n-helper/internal/textutil"
)

// Hover is the tooltip content for a key.
type Hover struct {
	Key   string
	Value any
	Found bool
}

// Markdown renders the hover the way editors display it.
func (h Hover) Markdown() string {
	if !h.Found {
		return fmt.Sprintf("**Translation key not found**: %s", h.Key)
	}
	return fmt.Sprintf("**Translation**: %s", textutil.Display(h.Value))
}

// Definition is where a key is declared.
type Definition struct {
	Key      string
	Value    any
	File     string
	Position locator.Position
}

// HoverOf looks a key up for tooltip rendering.
func (s *Session) HoverOf(key string) Hover {
	v, ok := s.index.Lookup(key)
	return Hover{Key: key, Value: v, Found: ok}
}

// HoverAt looks up the key of the translation call under the cursor. ok is
// false when the cursor is not on a translation call.
func (s *Session) HoverAt(text string, offset int) (h Hover, ok bool) {
	key, ok := cursor.KeyAtCursor(text, offset)
	if !ok {
		return Hover{}, false
	}
	return s.HoverOf(key), true
}

// DefinitionOf finds the file and position declaring key. A key missing from
// the index fails with NotFound; locator failures are returned alongside the
// file that was searched.
func (s *Session) DefinitionOf(key string) (Definition, error) {
	t, ok := s.index.LookupWithSource(key)
	if !ok || t.Source == "" {
		return Definition{Key: key}, errs.ForKey(errs.NotFound, key, "")
	}

	def := Definition{Key: key, Value: t.Value, File: t.Source}
	pos, err := s.locator.Locate(t.Source, key)
	if err != nil {
		return def, err
	}
	def.Position = pos
	return def, nil
}

// DefinitionAt resolves the translation call under the cursor. ok is false
// when the cursor is not on a translation call.
func (s *Session) DefinitionAt(text string, offset int) (def Definition, ok bool, err error) {
	key, ok := cursor.KeyAtCursor(text, offset)
	if !ok {
		return Definition{}, false, nil
	}
	def, err = s.DefinitionOf(key)
	return def, true, err
}
