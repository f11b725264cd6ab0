// Package session binds the in-memory task list to its store. Every
// mutation goes through the list and is then persisted in full.
package session

import (
	"errors"
	"fmt"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/logging"
	"github.com/idilsaglam/tada/internal/model"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/tasklist"
)

// Session is the loaded state of one run.
type Session struct {
	Cfg   *config.Config
	List  *tasklist.List
	Theme model.Theme
	Log   *logging.Logger

	store *store.Store
}

// Open loads tasks and theme from kv. Corrupt task data is logged and
// replaced by an empty list; it is not an error.
func Open(cfg *config.Config, kv store.KV, logger *logging.Logger, opts tasklist.Options) (*Session, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	st := store.New(kv)

	tasks, err := st.Load()
	if err != nil {
		if !errors.Is(err, store.ErrCorrupt) {
			return nil, fmt.Errorf("load: %w", err)
		}
		logger.Warn("stored tasks are unreadable, starting empty", "err", err)
	}

	th, err := st.LoadTheme()
	if err != nil {
		logger.Warn("stored theme is unreadable, using default", "err", err, "theme", th)
	}

	opts.AllowEmptyText = opts.AllowEmptyText || cfg.AllowEmptyText
	s := &Session{
		Cfg:   cfg,
		List:  tasklist.New(tasks, opts),
		Theme: th,
		Log:   logger,
		store: st,
	}
	if s.List.Migrated() {
		logger.Info("assigned ids to stored tasks", "count", s.List.Len())
		if err := s.Save(); err != nil {
			return nil, err
		}
	}
	logger.Debug("session opened", "tasks", s.List.Len(), "theme", th)
	return s, nil
}

// Save writes the full list.
func (s *Session) Save() error {
	if err := s.store.Save(s.List.Tasks()); err != nil {
		s.Log.Error("save failed", "err", err)
		return fmt.Errorf("save: %w", err)
	}
	s.Log.Debug("saved", "tasks", s.List.Len())
	return nil
}

// Apply persists after a successful mutation. A failed mutation is logged
// and returned unchanged; the list is untouched in that case.
func (s *Session) Apply(action string, err error) error {
	if err != nil {
		if errors.Is(err, tasklist.ErrNotFound) {
			s.Log.Warn("stale task reference", "action", action, "err", err)
		} else {
			s.Log.Info("rejected", "action", action, "err", err)
		}
		return err
	}
	s.Log.Debug("applied", "action", action)
	return s.Save()
}

// SetTheme switches and persists the theme.
func (s *Session) SetTheme(th model.Theme) error {
	if err := s.store.SaveTheme(th); err != nil {
		s.Log.Error("save theme failed", "err", err)
		return fmt.Errorf("save theme: %w", err)
	}
	s.Theme = th
	s.Log.Debug("theme changed", "theme", th)
	return nil
}

// ToggleTheme flips light/dark and persists the result.
func (s *Session) ToggleTheme() (model.Theme, error) {
	next := s.Theme.Toggle()
	if err := s.SetTheme(next); err != nil {
		return s.Theme, err
	}
	return next, nil
}

// Categories returns the configured categories followed by any extra
// category found in stored tasks.
func (s *Session) Categories() []string {
	out := append([]string(nil), s.Cfg.Categories...)
	seen := map[string]bool{}
	for _, c := range out {
		seen[c] = true
	}
	for _, c := range s.List.Categories() {
		if !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}
	return out
}

// Filters returns All followed by Categories.
func (s *Session) Filters() []model.Filter {
	cats := s.Categories()
	out := make([]model.Filter, 0, len(cats)+1)
	out = append(out, model.All)
	for _, c := range cats {
		out = append(out, model.Filter(c))
	}
	return out
}
