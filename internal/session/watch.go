package session

import (
	"context"

	"i18n-helper/internal/watcher"

	"github.com/rs/zerolog/log"
)

// liveTarget routes watcher events: translation files go to the index, an
// edit of the config file reloads the session and re-subscribes.
type liveTarget struct {
	ctx context.Context
	s   *Session
	w   *watcher.Watcher
}

func (t *liveTarget) Reload(path string) error {
	if path != t.s.ConfigPath() {
		return t.s.index.Reload(path)
	}
	if _, err := t.s.Load(t.ctx); err != nil {
		return err
	}
	return t.w.Watch(t.s.watchList())
}

func (t *liveTarget) Remove(path string) int {
	if path == t.s.ConfigPath() {
		return 0
	}
	return t.s.index.Remove(path)
}

// Watch keeps the index in step with the translation files of the last Load
// and with the config file until ctx is done.
func (s *Session) Watch(ctx context.Context) error {
	target := &liveTarget{ctx: ctx, s: s}
	w, err := watcher.New(target)
	if err != nil {
		return err
	}
	defer w.Close()
	target.w = w

	if len(s.Files()) == 0 {
		log.Warn().Msg("No translation files loaded; watching the config file only")
	}
	if err := w.Watch(s.watchList()); err != nil {
		log.Warn().Err(err).Msg("Some translation files cannot be watched")
	}

	log.Info().Int("files", len(s.Files())).Strs("watched", w.Files()).Msg("Watching translation files")
	return w.Run(ctx)
}

func (s *Session) watchList() []string {
	return append(s.Files(), s.ConfigPath())
}
