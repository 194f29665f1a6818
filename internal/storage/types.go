package storage

import "time"

// ContentTypeText is the only content type captured today. The column is
// kept so richer payloads (images, files) can land without a schema change.
const ContentTypeText = "text"

// Entry is a single captured clipboard record.
type Entry struct {
	ID          int64
	Content     string
	ContentType string
	CopiedAt    time.Time
	Metadata    string // optional JSON blob, opaque to the store
}

// Filter narrows Query results. Zero values mean "no filter".
type Filter struct {
	ContentType string // exact match on content_type
	Contains    string // case-insensitive substring match on content
	Limit       int    // 0 = unlimited
	Offset      int
}

// Stats holds aggregate statistics about the Hold database.
type Stats struct {
	TotalEntries int64
	OldestEntry  time.Time
	NewestEntry  time.Time
	PerDay       []DayCount
}

// DayCount pairs a calendar day (YYYY-MM-DD, UTC) with its entry count.
type DayCount struct {
	Day   string
	Count int64
}
