package capture

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holdapp/hold/internal/logging"
	"github.com/holdapp/hold/internal/storage"
	"github.com/holdapp/hold/internal/viewstate"
)

// recordingNotifier captures notifications for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	titles []string
}

func (r *recordingNotifier) Notify(title, body string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.titles = append(r.titles, title)
	return nil
}

func (r *recordingNotifier) sent() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.titles...)
}

func openTestStore(t *testing.T) storage.Store {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// A second pooled connection would see its own empty :memory: database.
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, storage.NewMigrationRunner(db).Run())

	store, err := storage.NewSQLiteStore(db)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestGate(t *testing.T) (*Gate, storage.Store, *viewstate.Aggregator, *recordingNotifier) {
	t.Helper()
	store := openTestStore(t)
	views := viewstate.New()
	notifier := &recordingNotifier{}
	gate := NewGate(store, views, notifier, logging.Default())
	return gate, store, views, notifier
}

func TestTryPersist_AcceptsThenRejectsDuplicate(t *testing.T) {
	gate, store, _, _ := newTestGate(t)
	ctx := context.Background()

	first := gate.TryPersist(ctx, "some copied text", storage.ContentTypeText, "")
	assert.True(t, first.Accepted)
	assert.Greater(t, first.ID, int64(0))
	assert.NoError(t, first.Err)

	second := gate.TryPersist(ctx, "some copied text", storage.ContentTypeText, "")
	assert.False(t, second.Accepted)
	assert.NoError(t, second.Err, "duplicate is a rejection, not an error")

	entries, err := store.Query(ctx, storage.Filter{})
	require.NoError(t, err)
	assert.Len(t, entries, 1, "exactly one row for the content")
}

func TestTryPersist_ConcurrentCallersInsertOnce(t *testing.T) {
	gate, store, _, _ := newTestGate(t)
	ctx := context.Background()

	const callers = 8
	var wg sync.WaitGroup
	accepted := make(chan Outcome, callers)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out := gate.TryPersist(ctx, "raced content", storage.ContentTypeText, "")
			if out.Accepted {
				accepted <- out
			}
		}()
	}
	wg.Wait()
	close(accepted)

	assert.Len(t, accepted, 1, "exactly one caller wins")

	entries, err := store.Query(ctx, storage.Filter{})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestTryPersist_AcceptUpdatesViewAndNotifies(t *testing.T) {
	gate, _, views, notifier := newTestGate(t)

	out := gate.TryPersist(context.Background(), "fresh content", storage.ContentTypeText, "")
	require.True(t, out.Accepted)

	sections := views.Sections()
	require.Len(t, sections, 1)
	assert.Equal(t, "fresh content", sections[0].Items[0].Content)
	assert.Equal(t, out.ID, sections[0].Items[0].ID)

	assert.Equal(t, []string{savedTitle}, notifier.sent())
}

func TestTryPersist_RejectHasNoSideEffects(t *testing.T) {
	gate, _, views, notifier := newTestGate(t)
	ctx := context.Background()

	gate.TryPersist(ctx, "once", storage.ContentTypeText, "")
	gate.TryPersist(ctx, "once", storage.ContentTypeText, "")

	require.Len(t, views.Sections(), 1)
	assert.Len(t, views.Sections()[0].Items, 1)
	assert.Len(t, notifier.sent(), 1, "no second notification for the duplicate")
}

// failingStore simulates an unavailable database.
type failingStore struct {
	storage.Store
}

var errDown = errors.New("database is locked")

func (failingStore) Insert(ctx context.Context, e *storage.Entry) (int64, error) {
	return 0, errDown
}

func TestTryPersist_StorageErrorIsRejectedWithDetail(t *testing.T) {
	views := viewstate.New()
	notifier := &recordingNotifier{}
	gate := NewGate(failingStore{}, views, notifier, logging.Default())

	out := gate.TryPersist(context.Background(), "doomed", storage.ContentTypeText, "")

	assert.False(t, out.Accepted)
	assert.ErrorIs(t, out.Err, errDown)
	assert.Empty(t, views.Sections(), "no view update on failure")
	assert.Empty(t, notifier.sent())
}
