// Package app wires the Hold core together: storage, dedup gate, pollers,
// and the view projection, driven by lifecycle transitions. The display
// layer and the platform lifecycle source are external; they call into the
// service boundary defined here.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/holdapp/hold/internal/capture"
	"github.com/holdapp/hold/internal/clipboard"
	"github.com/holdapp/hold/internal/config"
	"github.com/holdapp/hold/internal/logging"
	"github.com/holdapp/hold/internal/notify"
	"github.com/holdapp/hold/internal/storage"
	"github.com/holdapp/hold/internal/viewstate"
)

// Service owns the clipboard-history core. The store is the single source
// of truth; everything else is rebuildable from it.
type Service struct {
	cfg *config.Config
	log *logging.Logger

	db    *sql.DB
	store storage.Store
	views *viewstate.Aggregator
	gate  *capture.Gate

	clip     clipboard.Clipboard
	notifier notify.Notifier

	foreground *capture.Poller
	background *capture.Poller
	refresher  *viewstate.Refresher
}

// New opens (and migrates) the configured database and assembles the
// service. A migration failure is fatal to startup.
func New(cfg *config.Config, log *logging.Logger, clip clipboard.Clipboard, notifier notify.Notifier) (*Service, error) {
	dbPath, err := cfg.DatabasePath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	svc, err := NewWithDB(cfg, log, clip, notifier, db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return svc, nil
}

// NewWithDB assembles the service on an already-opened database. Migrations
// are still applied; callers (and tests) only need to open the connection.
func NewWithDB(cfg *config.Config, log *logging.Logger, clip clipboard.Clipboard, notifier notify.Notifier, db *sql.DB) (*Service, error) {
	if err := storage.NewMigrationRunner(db).Run(); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	store, err := storage.NewSQLiteStore(db)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	views := viewstate.New()
	gate := capture.NewGate(store, views, notifier, log)

	fgInterval := time.Duration(cfg.Capture.ForegroundIntervalSeconds) * time.Second
	bgInterval := time.Duration(cfg.Capture.BackgroundIntervalMinutes) * time.Minute
	maxBytes := cfg.Capture.MaxContentBytes

	return &Service{
		cfg:        cfg,
		log:        log,
		db:         db,
		store:      store,
		views:      views,
		gate:       gate,
		clip:       clip,
		notifier:   notifier,
		foreground: capture.NewPoller("foreground", clip, gate, notifier, log, fgInterval, maxBytes),
		background: capture.NewPoller("background", clip, gate, notifier, log, bgInterval, maxBytes),
		refresher:  viewstate.NewRefresher(views, store, time.Duration(cfg.Capture.ViewRefreshSeconds)*time.Second, log),
	}, nil
}

// Run loads the view projection, starts both poll paths and the periodic
// refresher, and blocks until ctx is cancelled. The background slot keeps
// its own long cadence and runs regardless of foreground state, mirroring
// an OS-scheduled background fetch.
func (s *Service) Run(ctx context.Context) error {
	if err := s.views.ReloadFrom(ctx, s.store); err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	if err := s.background.Start(ctx); err != nil {
		return err
	}
	s.OnForeground(ctx)

	refresherDone := make(chan struct{})
	go func() {
		defer close(refresherDone)
		s.refresher.Run(ctx)
	}()

	<-ctx.Done()

	s.foreground.Stop()
	s.background.Stop()
	<-refresherDone

	return nil
}

// OnForeground starts the fast poll loop. Called when the app gains focus;
// calling it while already in the foreground is a no-op.
func (s *Service) OnForeground(ctx context.Context) {
	if s.foreground.Running() {
		return
	}
	if err := s.foreground.Start(ctx); err != nil {
		s.log.Warnf("start foreground poller: %v", err)
	}
}

// OnBackground stops the fast poll loop. The background slot keeps running.
func (s *Service) OnBackground() {
	s.foreground.Stop()
}

// Sections returns the canonical day-bucketed history.
func (s *Service) Sections() []viewstate.Section {
	return s.views.Sections()
}

// Search applies a case-insensitive substring filter and returns the
// filtered projection.
func (s *Service) Search(query string) []viewstate.Section {
	s.views.ApplySearch(query)
	return s.views.Visible()
}

// CopyEntry writes a stored entry back to the OS clipboard. The content is
// latched on both pollers so the write is not re-captured as a new entry.
func (s *Service) CopyEntry(ctx context.Context, id int64) error {
	entry, err := s.store.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.clip.Write(entry.Content); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	s.foreground.Latch(entry.Content)
	s.background.Latch(entry.Content)
	return nil
}

// DeleteEntry removes an entry from the store and both projections, and
// clears the pollers' latches so identical content is immediately
// re-persistable. Returns the number of rows deleted (0 for a missing id).
func (s *Service) DeleteEntry(ctx context.Context, id int64) (int64, error) {
	entry, err := s.store.GetByID(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		// Missing id: idempotent delete, nothing to do.
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	n, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.views.RemoveByID(id)
		s.foreground.Forget(entry.Content)
		s.background.Forget(entry.Content)
	}
	return n, nil
}

// ClearHistory deletes every entry and empties both projections.
func (s *Service) ClearHistory(ctx context.Context) (int64, error) {
	n, err := s.store.DeleteAll(ctx)
	if err != nil {
		return 0, err
	}
	s.views.Clear()
	s.foreground.ForgetAll()
	s.background.ForgetAll()
	return n, nil
}

// Close releases the store and the underlying database.
func (s *Service) Close() error {
	s.store.Close()
	return s.db.Close()
}
