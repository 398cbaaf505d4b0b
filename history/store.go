package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/domonda/go-textable"
	"github.com/domonda/go-textable/sqltable"
)

// ErrNotFound is returned by Store.Get for an unknown ID.
var ErrNotFound = errors.New("history entry not found")

const schema = `
CREATE TABLE IF NOT EXISTS entries (
    seq INTEGER PRIMARY KEY AUTOINCREMENT, -- insertion order for equal timestamps
    id TEXT NOT NULL UNIQUE,
    timestamp INTEGER NOT NULL,            -- UnixNano
    original_text TEXT NOT NULL,
    parsed_data TEXT NOT NULL,             -- JSON array of rows
    success INTEGER NOT NULL DEFAULT 0,
    error TEXT NOT NULL DEFAULT '',
    sheet_name TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_entries_timestamp ON entries(timestamp);
`

// Store persists history entries in a SQLite database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database at path.
// Missing parent directories are created.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=busy_timeout(5000)"
	return open(dsn)
}

// OpenMemory opens a private in-memory database,
// used for tests and when history is disabled.
func OpenMemory() (*Store, error) {
	return open(":memory:")
}

func open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps an in-memory database alive
	// and serializes writes
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		return nil, errors.Join(fmt.Errorf("failed to create schema: %w", err), db.Close())
	}
	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Add stores entry and returns it with a new UUID
// if ID was empty and the current time if Timestamp was zero.
func (s *Store) Add(ctx context.Context, entry Entry) (Entry, error) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	entry.Timestamp = entry.Timestamp.UTC()

	rows := entry.ParsedData
	if rows == nil {
		rows = textable.Table{}
	}
	parsedData, err := json.Marshal(rows)
	if err != nil {
		return entry, fmt.Errorf("failed to marshal parsed data: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO entries (id, timestamp, original_text, parsed_data, success, error, sheet_name)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		entry.Timestamp.UnixNano(),
		entry.OriginalText,
		string(parsedData),
		entry.Success,
		entry.Error,
		entry.SheetName,
	)
	if err != nil {
		return entry, fmt.Errorf("failed to insert history entry: %w", err)
	}
	return entry, nil
}

const selectColumns = `id, timestamp, original_text, parsed_data, success, error, sheet_name`

// List returns up to limit entries, newest first.
// A limit <= 0 returns all entries.
func (s *Store) List(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+selectColumns+` FROM entries ORDER BY timestamp DESC, seq DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

// Get returns the entry with id or ErrNotFound.
func (s *Store) Get(ctx context.Context, id string) (Entry, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM entries WHERE id = ?`, id)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return entry, err
}

// Count returns the number of stored entries.
func (s *Store) Count(ctx context.Context) (n int, err error) {
	err = s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM entries`).Scan(&n)
	return n, err
}

// Clear deletes all entries.
func (s *Store) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM entries`)
	return err
}

// ListView returns up to limit entries, newest first,
// as a view with one column per stored attribute
// except the parsed data which is summarized as row count.
func (s *Store) ListView(ctx context.Context, limit int) (*textable.StringsView, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT
			id AS "ID",
			strftime('%Y-%m-%dT%H:%M:%SZ', timestamp / 1000000000, 'unixepoch') AS "Time",
			CASE success WHEN 1 THEN 'success' ELSE 'failed' END AS "Status",
			sheet_name AS "Sheet",
			json_array_length(parsed_data) AS "Rows",
			error AS "Error"
		FROM entries
		ORDER BY timestamp DESC, seq DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	view, err := sqltable.ScanRowsAsView(ctx, rows)
	if err != nil {
		return nil, err
	}
	view.Tit = "History"
	return view, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (Entry, error) {
	var (
		entry      Entry
		timestamp  int64
		parsedData string
	)
	err := row.Scan(
		&entry.ID,
		&timestamp,
		&entry.OriginalText,
		&parsedData,
		&entry.Success,
		&entry.Error,
		&entry.SheetName,
	)
	if err != nil {
		return Entry{}, err
	}
	entry.Timestamp = time.Unix(0, timestamp).UTC()
	if err := json.Unmarshal([]byte(parsedData), &entry.ParsedData); err != nil {
		return Entry{}, fmt.Errorf("invalid parsed data of history entry %s: %w", entry.ID, err)
	}
	if len(entry.ParsedData) == 0 {
		entry.ParsedData = nil
	}
	return entry, nil
}
