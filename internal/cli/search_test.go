package cli

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch_NoMatches(t *testing.T) {
	store := openTestStore(t)
	seedEntry(t, store, "hello world", time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC))

	cmd := &SearchCommand{Limit: 20, globals: &GlobalFlags{}}
	cmd.Args.Query = "nonexistent"

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store))
	})

	assert.Contains(t, output, `No entries matching "nonexistent".`)
}

func TestSearch_CaseInsensitive(t *testing.T) {
	store := openTestStore(t)
	seedEntry(t, store, "Hello World", time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC))

	cmd := &SearchCommand{Limit: 20, globals: &GlobalFlags{}}
	cmd.Args.Query = "hello"

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store))
	})

	assert.Contains(t, output, "Hello World")
}

func TestSearch_NewestFirst(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)

	seedEntry(t, store, "match one", base)
	seedEntry(t, store, "match two", base.Add(time.Hour))

	cmd := &SearchCommand{Limit: 20, globals: &GlobalFlags{JSON: true}}
	cmd.Args.Query = "match"

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store))
	})

	var results []entryJSON
	require.NoError(t, json.Unmarshal([]byte(output), &results))
	require.Len(t, results, 2)
	assert.Equal(t, "match two", results[0].Content)
	assert.Equal(t, "match one", results[1].Content)
}

func TestSearch_LimitApplied(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC)

	seedEntry(t, store, "item a", base)
	seedEntry(t, store, "item b", base.Add(time.Minute))
	seedEntry(t, store, "item c", base.Add(2*time.Minute))

	cmd := &SearchCommand{Limit: 2, globals: &GlobalFlags{JSON: true}}
	cmd.Args.Query = "item"

	output := captureOutput(t, func() {
		require.NoError(t, cmd.executeWithStore(store))
	})

	var results []entryJSON
	require.NoError(t, json.Unmarshal([]byte(output), &results))
	assert.Len(t, results, 2)
}

func TestSearch_EmptyQueryErrors(t *testing.T) {
	cmd := &SearchCommand{Limit: 20, globals: &GlobalFlags{}}
	err := cmd.Execute(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query")
}
