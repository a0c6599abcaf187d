// Package session wires one workspace's config, index, locator and watcher
// together. Every consumer receives the Session (or its Index) explicitly;
// nothing here is package-level state.
package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"i18n-helper/internal/errs"
	"i18n-helper/internal/index"
	"i18n-helper/internal/locator"
	"i18n-helper/internal/workspace"

	"github.com/rs/zerolog/log"
)

var errNoFiles = errors.New("no translation files configured")

// Session serves translation lookups for one workspace root.
type Session struct {
	root    string
	index   *index.Index
	locator locator.Locator

	mu    sync.Mutex
	files []string
}

// New creates a session for root. The index and locator are owned by the
// caller and may be shared with other readers.
func New(root string, idx *index.Index, loc locator.Locator) (*Session, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace root: %w", err)
	}
	return &Session{root: abs, index: idx, locator: loc}, nil
}

// Root returns the absolute workspace root.
func (s *Session) Root() string { return s.root }

// Index returns the session's translation index.
func (s *Session) Index() *index.Index { return s.index }

// ConfigPath returns the workspace config file location.
func (s *Session) ConfigPath() string { return workspace.ConfigPath(s.root) }

// Load reads the workspace config fresh and reloads the index from it: the
// flagged file alone when a flag is set, every file otherwise. Config errors
// abort before the index is touched. Per-file failures are logged and
// returned in the result.
func (s *Session) Load(ctx context.Context) (index.LoadResult, error) {
	cfg, err := workspace.Load(s.root)
	if err != nil {
		return index.LoadResult{}, err
	}
	if len(cfg.TranslationFiles) == 0 {
		return index.LoadResult{}, errs.New(errs.ConfigInvalid, s.ConfigPath(), errNoFiles)
	}

	files := workspace.ResolveAll(s.root, cfg.TranslationFiles)

	selector, selected, err := cfg.Selector()
	if err != nil {
		return index.LoadResult{}, err
	}

	var result index.LoadResult
	if selected {
		result, err = s.index.LoadSelected(ctx, files, selector)
		if err != nil {
			return index.LoadResult{}, err
		}
	} else {
		result = s.index.LoadAll(ctx, files)
	}

	for _, e := range result.Errors {
		log.Warn().Err(e).Msg("Skipped translation file")
	}

	s.mu.Lock()
	s.files = slices.Clone(result.Files)
	s.mu.Unlock()

	log.Info().
		Int("files", len(result.Loaded)).
		Int("keys", s.index.Len()).
		Bool("selected", selected).
		Msg("Loaded translations")
	return result, nil
}

// Files returns the translation files requested by the last Load.
func (s *Session) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.files)
}
