package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	sqlite3 "github.com/mattn/go-sqlite3"
)

// ErrDuplicate is returned by Insert when an entry with the same content
// already exists. Callers treat this as a normal rejection, not a failure.
var ErrDuplicate = errors.New("storage: duplicate content")

// ErrNotFound is returned by GetByID for an id with no entry.
var ErrNotFound = errors.New("storage: entry not found")

// Store defines the interface for Hold data operations. The store is the
// single owner of durable state; in-memory projections are rebuilt from it.
type Store interface {
	Insert(ctx context.Context, entry *Entry) (int64, error)
	GetByID(ctx context.Context, id int64) (*Entry, error)
	Query(ctx context.Context, f Filter) ([]Entry, error)
	DeleteByID(ctx context.Context, id int64) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	Stats(ctx context.Context) (*Stats, error)
	Close() error
}

// SQLiteStore implements Store backed by a SQLite database.
type SQLiteStore struct {
	db *sql.DB

	// Prepared statements
	insertEntry *sql.Stmt
	getEntry    *sql.Stmt
	deleteEntry *sql.Stmt
}

// NewSQLiteStore creates a SQLiteStore from an already-opened and migrated
// database.
func NewSQLiteStore(db *sql.DB) (*SQLiteStore, error) {
	s := &SQLiteStore{db: db}

	if err := s.prepareStatements(); err != nil {
		return nil, fmt.Errorf("prepare statements: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.insertEntry, err = s.db.Prepare(`
		INSERT INTO clipboard_entries (content, content_type, copied_at, metadata)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}

	s.getEntry, err = s.db.Prepare(`
		SELECT id, content, content_type, copied_at, metadata
		FROM clipboard_entries WHERE id = ?
	`)
	if err != nil {
		return err
	}

	s.deleteEntry, err = s.db.Prepare(`DELETE FROM clipboard_entries WHERE id = ?`)
	if err != nil {
		return err
	}

	return nil
}

// parseTimestamp tries the timestamp formats SQLite may hand back.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse timestamp: %s", s)
}

// isUniqueViolation reports whether err is the sqlite unique-constraint
// error raised by idx_entries_content.
func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}

// Insert adds a new entry and returns its assigned id. The entry's ID and
// CopiedAt fields are populated on success. If content already exists,
// ErrDuplicate is returned and nothing is written.
func (s *SQLiteStore) Insert(ctx context.Context, entry *Entry) (int64, error) {
	if entry.ContentType == "" {
		entry.ContentType = ContentTypeText
	}
	if entry.CopiedAt.IsZero() {
		entry.CopiedAt = time.Now()
	}

	tsFormatted := entry.CopiedAt.UTC().Format(time.RFC3339)

	var metadata interface{}
	if entry.Metadata != "" {
		metadata = entry.Metadata
	}

	res, err := s.insertEntry.ExecContext(ctx,
		entry.Content, entry.ContentType, tsFormatted, metadata,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrDuplicate
		}
		return 0, fmt.Errorf("insert entry: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	entry.ID = id

	return id, nil
}

// GetByID retrieves a single entry.
func (s *SQLiteStore) GetByID(ctx context.Context, id int64) (*Entry, error) {
	var e Entry
	var tsStr string
	var metadata sql.NullString

	err := s.getEntry.QueryRowContext(ctx, id).Scan(
		&e.ID, &e.Content, &e.ContentType, &tsStr, &metadata,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("entry %d not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}

	e.CopiedAt, _ = parseTimestamp(tsStr)
	if metadata.Valid {
		e.Metadata = metadata.String
	}

	return &e, nil
}

// Query returns entries matching the filter, newest first. Ordering is
// copied_at descending with id descending as tie-break, so results are
// deterministic even when two entries land in the same second.
func (s *SQLiteStore) Query(ctx context.Context, f Filter) ([]Entry, error) {
	var clauses []string
	var args []interface{}

	baseQuery := `
		SELECT id, content, content_type, copied_at, metadata
		FROM clipboard_entries
	`

	if f.ContentType != "" {
		clauses = append(clauses, "content_type = ?")
		args = append(args, f.ContentType)
	}
	if f.Contains != "" {
		clauses = append(clauses, "instr(lower(content), lower(?)) > 0")
		args = append(args, f.Contains)
	}

	where := ""
	if len(clauses) > 0 {
		where = " WHERE " + strings.Join(clauses, " AND ")
	}

	fullQuery := baseQuery + where + " ORDER BY copied_at DESC, id DESC"
	if f.Limit > 0 {
		fullQuery += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	return s.scanEntries(ctx, fullQuery, args...)
}

// scanEntries executes a query and scans results into Entry slices.
func (s *SQLiteStore) scanEntries(ctx context.Context, query string, args ...interface{}) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var tsStr string
		var metadata sql.NullString
		if err := rows.Scan(&e.ID, &e.Content, &e.ContentType, &tsStr, &metadata); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		e.CopiedAt, _ = parseTimestamp(tsStr)
		if metadata.Valid {
			e.Metadata = metadata.String
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Return empty slice rather than nil
	if entries == nil {
		entries = []Entry{}
	}

	return entries, nil
}

// DeleteByID removes an entry. Deleting a missing id is not an error; the
// returned count is 0.
func (s *SQLiteStore) DeleteByID(ctx context.Context, id int64) (int64, error) {
	res, err := s.deleteEntry.ExecContext(ctx, id)
	if err != nil {
		return 0, fmt.Errorf("delete entry: %w", err)
	}
	return res.RowsAffected()
}

// DeleteAll removes every entry and returns the number deleted.
func (s *SQLiteStore) DeleteAll(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM clipboard_entries")
	if err != nil {
		return 0, fmt.Errorf("delete all entries: %w", err)
	}
	return res.RowsAffected()
}

// Stats returns aggregate statistics about the database.
func (s *SQLiteStore) Stats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM clipboard_entries").Scan(&stats.TotalEntries)
	if err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}

	if stats.TotalEntries > 0 {
		var oldestStr, newestStr string
		err = s.db.QueryRowContext(ctx,
			"SELECT MIN(copied_at), MAX(copied_at) FROM clipboard_entries",
		).Scan(&oldestStr, &newestStr)
		if err != nil {
			return nil, fmt.Errorf("entry time range: %w", err)
		}
		stats.OldestEntry, _ = parseTimestamp(oldestStr)
		stats.NewestEntry, _ = parseTimestamp(newestStr)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT substr(copied_at, 1, 10) AS day, COUNT(*) AS cnt
		FROM clipboard_entries
		GROUP BY day ORDER BY day DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("per-day counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var dc DayCount
		if err := rows.Scan(&dc.Day, &dc.Count); err != nil {
			return nil, err
		}
		stats.PerDay = append(stats.PerDay, dc)
	}

	return stats, rows.Err()
}

// Close releases all prepared statements. The underlying *sql.DB is NOT
// closed; that is the caller's responsibility.
func (s *SQLiteStore) Close() error {
	stmts := []*sql.Stmt{s.insertEntry, s.getEntry, s.deleteEntry}
	for _, stmt := range stmts {
		if stmt != nil {
			stmt.Close()
		}
	}
	return nil
}
