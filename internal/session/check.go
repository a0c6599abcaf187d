package session

import (
	"context"
	"fmt"

	"i18n-helper/internal/filewalker"
	"i18n-helper/internal/parser"
	"i18n-helper/internal/worker"

	"github.com/rs/zerolog/log"
)

// Usage is a translation call in a source file and whether its key resolves.
type Usage struct {
	parser.KeyUsage
	Found bool
}

// Usages scans the source files under dir for translation calls and checks
// each key against the index. Files that fail to parse are logged and
// skipped.
func (s *Session) Usages(ctx context.Context, dir string, workers int) ([]Usage, error) {
	w := filewalker.NewWalker()
	entries, err := w.Walk(dir)
	if err != nil {
		return nil, fmt.Errorf("walk source directory: %w", err)
	}

	pool := worker.NewPool(workers, func(_ context.Context, entry filewalker.FileEntry) (*parser.ParseResult, error) {
		return w.ParseFile(entry)
	})

	var usages []Usage
	for _, task := range pool.Execute(ctx, entries) {
		if task.Err != nil {
			log.Warn().Err(task.Err).Str("file", task.Input.Path).Msg("Parse failed")
			continue
		}
		for _, u := range task.Result.Usages {
			_, found := s.index.Lookup(u.Key)
			usages = append(usages, Usage{KeyUsage: u, Found: found})
		}
	}
	if err := ctx.Err(); err != nil {
		return usages, err
	}
	return usages, nil
}
