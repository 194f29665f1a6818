// Package viewstate maintains the in-memory, display-ready projection of
// clipboard history: entries grouped into calendar-day sections, plus a
// separately tracked filtered view for search. Both projections are caches;
// the store remains the source of truth and either projection can be rebuilt
// from it at any time.
package viewstate

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/holdapp/hold/internal/storage"
)

// sectionTitleFormat renders "Monday, January 5, 2025".
const sectionTitleFormat = "Monday, January 2, 2006"

// Section groups entries copied on the same calendar day (local time).
type Section struct {
	Title string
	Items []storage.Entry
}

// Aggregator holds the canonical projection (all entries) and the filtered
// projection (search result, or identical to canonical when no query is
// active). Mutations update canonical first, then re-derive filtered.
type Aggregator struct {
	mu      sync.Mutex
	entries []storage.Entry
	byID    map[int64]struct{}
	query   string

	canonical []Section
	filtered  []Section
}

func New() *Aggregator {
	return &Aggregator{byID: map[int64]struct{}{}}
}

// Merge incorporates entries into the canonical projection without touching
// unrelated buckets. It is idempotent: an entry already present (same id, or
// same content ignoring case within its day bucket) is skipped, so repeated
// delivery from an overlapping poll and periodic refresh converges.
func (a *Aggregator) Merge(entries []storage.Entry) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, e := range entries {
		if _, ok := a.byID[e.ID]; ok {
			continue
		}
		if a.bucketHasContent(dayOf(e.CopiedAt), e.Content) {
			continue
		}
		a.entries = append(a.entries, e)
		a.byID[e.ID] = struct{}{}
	}

	a.rebuild()
}

// ApplySearch replaces the filtered projection with buckets whose items
// match query as a case-insensitive substring. Buckets left empty are
// dropped. An empty query restores filtered to equal canonical.
func (a *Aggregator) ApplySearch(query string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.query = query
	a.filtered = filterSections(a.canonical, a.query)
}

// RemoveByID deletes the entry from both projections, dropping any bucket
// left empty.
func (a *Aggregator) RemoveByID(id int64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.byID[id]; !ok {
		return
	}
	delete(a.byID, id)
	for i, e := range a.entries {
		if e.ID == id {
			a.entries = append(a.entries[:i], a.entries[i+1:]...)
			break
		}
	}

	a.rebuild()
}

// Clear empties both projections. The active search query survives so a
// subsequent reload is filtered consistently.
func (a *Aggregator) Clear() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries = nil
	a.byID = map[int64]struct{}{}
	a.rebuild()
}

// ReloadFrom rebuilds both projections from the store. Incremental merges
// and a full reload converge to the same bucket set.
func (a *Aggregator) ReloadFrom(ctx context.Context, store storage.Store) error {
	entries, err := store.Query(ctx, storage.Filter{})
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.entries = entries
	a.byID = make(map[int64]struct{}, len(entries))
	for _, e := range entries {
		a.byID[e.ID] = struct{}{}
	}
	a.rebuild()
	return nil
}

// Sections returns a copy of the canonical projection.
func (a *Aggregator) Sections() []Section {
	a.mu.Lock()
	defer a.mu.Unlock()
	return copySections(a.canonical)
}

// Visible returns a copy of the filtered projection (equal to Sections when
// no search is active).
func (a *Aggregator) Visible() []Section {
	a.mu.Lock()
	defer a.mu.Unlock()
	return copySections(a.filtered)
}

// Query returns the active search query.
func (a *Aggregator) Query() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.query
}

// rebuild re-derives both projections from the flat entry list. Order is
// always recomputed from (copied_at desc, id desc) rather than trusting
// insertion order, so merge and reload produce identical results.
// Callers must hold the lock.
func (a *Aggregator) rebuild() {
	sorted := make([]storage.Entry, len(a.entries))
	copy(sorted, a.entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].CopiedAt.Equal(sorted[j].CopiedAt) {
			return sorted[i].CopiedAt.After(sorted[j].CopiedAt)
		}
		return sorted[i].ID > sorted[j].ID
	})

	var sections []Section
	for _, e := range sorted {
		title := dayOf(e.CopiedAt).Format(sectionTitleFormat)
		if len(sections) == 0 || sections[len(sections)-1].Title != title {
			sections = append(sections, Section{Title: title})
		}
		last := &sections[len(sections)-1]
		last.Items = append(last.Items, e)
	}

	a.canonical = sections
	a.filtered = filterSections(a.canonical, a.query)
}

func (a *Aggregator) bucketHasContent(day time.Time, content string) bool {
	title := day.Format(sectionTitleFormat)
	for _, s := range a.canonical {
		if s.Title != title {
			continue
		}
		for _, item := range s.Items {
			if strings.EqualFold(item.Content, content) {
				return true
			}
		}
	}
	return false
}

func filterSections(sections []Section, query string) []Section {
	if query == "" {
		return copySections(sections)
	}

	needle := strings.ToLower(query)
	var out []Section
	for _, s := range sections {
		var items []storage.Entry
		for _, e := range s.Items {
			if strings.Contains(strings.ToLower(e.Content), needle) {
				items = append(items, e)
			}
		}
		if len(items) > 0 {
			out = append(out, Section{Title: s.Title, Items: items})
		}
	}
	return out
}

func copySections(sections []Section) []Section {
	out := make([]Section, len(sections))
	for i, s := range sections {
		items := make([]storage.Entry, len(s.Items))
		copy(items, s.Items)
		out[i] = Section{Title: s.Title, Items: items}
	}
	return out
}

// dayOf truncates a timestamp to its local calendar day.
func dayOf(t time.Time) time.Time {
	local := t.Local()
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
}
