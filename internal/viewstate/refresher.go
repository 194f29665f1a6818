package viewstate

import (
	"context"
	"time"

	"github.com/holdapp/hold/internal/logging"
	"github.com/holdapp/hold/internal/storage"
)

// Refresher periodically rebuilds the aggregator from the store, so the
// projection converges even if an event-driven merge was missed. Safe to
// run alongside poll-triggered merges: Merge is idempotent and ReloadFrom
// replaces wholesale.
type Refresher struct {
	agg      *Aggregator
	store    storage.Store
	interval time.Duration
	log      *logging.Logger
}

func NewRefresher(agg *Aggregator, store storage.Store, interval time.Duration, log *logging.Logger) *Refresher {
	return &Refresher{agg: agg, store: store, interval: interval, log: log}
}

// Run blocks until ctx is cancelled, reloading the projection on each tick.
// A failed reload is logged and retried on the next tick; the stale
// projection stays visible in the meantime.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			if err := r.agg.ReloadFrom(ctx, r.store); err != nil {
				r.log.Warnf("view refresh failed: %v", err)
			}
		}
	}
}
