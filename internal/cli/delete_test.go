package cli

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holdapp/hold/internal/storage"
)

func TestDelete_ExistingEntry(t *testing.T) {
	store := openTestStore(t)
	e := seedEntry(t, store, "delete me", time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC))

	cmd := &DeleteCommand{ID: e.ID, globals: &GlobalFlags{}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store))
	})

	assert.Contains(t, output, "Deleted entry")

	_, err := store.GetByID(context.Background(), e.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestDelete_MissingEntryReported(t *testing.T) {
	store := openTestStore(t)

	cmd := &DeleteCommand{ID: 999, globals: &GlobalFlags{}}

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store))
	})

	assert.Contains(t, output, "No entry with id 999.")
}

func TestDelete_OnlyTargetRemoved(t *testing.T) {
	store := openTestStore(t)
	now := time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)
	victim := seedEntry(t, store, "victim", now)
	keeper := seedEntry(t, store, "keeper", now.Add(time.Minute))

	cmd := &DeleteCommand{ID: victim.ID, globals: &GlobalFlags{}}
	captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store))
	})

	kept, err := store.GetByID(context.Background(), keeper.ID)
	require.NoError(t, err)
	assert.Equal(t, "keeper", kept.Content)
}
