package capture

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/holdapp/hold/internal/logging"
	"github.com/holdapp/hold/internal/notify"
	"github.com/holdapp/hold/internal/storage"
	"github.com/holdapp/hold/internal/viewstate"
)

// Notification texts for persistence outcomes.
const (
	savedTitle = "Clipboard Content Saved"
	savedBody  = "Saved successfully"
)

// Outcome is the result of a TryPersist call. Exactly one of the three
// shapes occurs: accepted (ID set), rejected as duplicate (all zero), or
// rejected with a storage error (Err set).
type Outcome struct {
	Accepted bool
	ID       int64
	Err      error
}

// Gate serializes check-and-insert so concurrent pollers (the foreground
// loop and the background slot) cannot both persist the same content. The
// store's unique content index is the authoritative check; the mutex keeps
// the insert and the follow-up view merge from interleaving.
type Gate struct {
	mu       sync.Mutex
	store    storage.Store
	views    *viewstate.Aggregator
	notifier notify.Notifier
	log      *logging.Logger
}

func NewGate(store storage.Store, views *viewstate.Aggregator, notifier notify.Notifier, log *logging.Logger) *Gate {
	return &Gate{store: store, views: views, notifier: notifier, log: log}
}

// TryPersist attempts to persist content. Duplicates are a normal rejection
// with no side effects. On acceptance the entry is pushed into the view
// projection and a saved notification fires. Storage errors are logged and
// reported in the outcome; they never panic the poll loop.
func (g *Gate) TryPersist(ctx context.Context, content, contentType, metadata string) Outcome {
	entry := storage.Entry{
		Content:     content,
		ContentType: contentType,
		Metadata:    metadata,
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := g.store.Insert(ctx, &entry)
	if errors.Is(err, storage.ErrDuplicate) {
		return Outcome{}
	}
	if err != nil {
		g.log.Warnf("persist clipboard content: %v", err)
		return Outcome{Err: err}
	}

	// Normalize to what a reload from the store would produce, so the
	// incremental merge and the periodic refresh converge exactly.
	entry.CopiedAt = entry.CopiedAt.UTC().Truncate(time.Second)

	g.views.Merge([]storage.Entry{entry})

	if nerr := g.notifier.Notify(savedTitle, savedBody); nerr != nil {
		g.log.Debugf("saved notification failed: %v", nerr)
	}

	return Outcome{Accepted: true, ID: id}
}
