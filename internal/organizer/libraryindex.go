package organizer

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pavelvrba/bookorganizer/internal/textnorm"
)

var indexNormalizer = textnorm.New()

// libraryIndexSchema creates the single table LibraryIndex reads and
// writes: one row per organized book, keyed by its normalized
// author+title so reorganize can look up "have we already placed this
// book, and where" without re-walking the library on every run.
const libraryIndexSchema = `
CREATE TABLE IF NOT EXISTS library_entries (
	key         TEXT PRIMARY KEY,
	author      TEXT NOT NULL,
	title       TEXT NOT NULL,
	target_path TEXT NOT NULL,
	updated_at  TEXT NOT NULL
);
`

// LibraryIndex is an optional SQLite read-through cache of where each
// book in the library currently lives. It is entirely advisory: every
// caller must keep working correctly with a nil *LibraryIndex, since the
// feature is off by default (config.LibraryIndexPath == "").
type LibraryIndex struct {
	db *sql.DB
}

// OpenLibraryIndex opens (creating if absent) the SQLite database at
// path, following the teacher corpus's pragma set for a small
// single-writer cache.
func OpenLibraryIndex(path string) (*LibraryIndex, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open library index: %w", err)
	}
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("exec pragma %q: %w", p, err)
		}
	}
	if _, err := db.Exec(libraryIndexSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("exec schema: %w", err)
	}
	return &LibraryIndex{db: db}, nil
}

// Close releases the underlying database handle.
func (li *LibraryIndex) Close() error {
	if li == nil || li.db == nil {
		return nil
	}
	return li.db.Close()
}

// Lookup returns the last recorded target path for (author, title). A nil
// receiver always misses, so callers never need a separate "index
// enabled" check.
func (li *LibraryIndex) Lookup(author, title string) (string, bool) {
	if li == nil || li.db == nil {
		return "", false
	}
	var target string
	err := li.db.QueryRow(
		"SELECT target_path FROM library_entries WHERE key = ?", indexKey(author, title),
	).Scan(&target)
	if err != nil {
		return "", false
	}
	return target, true
}

// Record upserts (author, title) → targetPath. A nil receiver is a no-op.
func (li *LibraryIndex) Record(author, title, targetPath string) error {
	if li == nil || li.db == nil {
		return nil
	}
	_, err := li.db.Exec(
		`INSERT INTO library_entries (key, author, title, target_path, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET target_path = excluded.target_path, updated_at = excluded.updated_at`,
		indexKey(author, title), author, title, targetPath, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

func indexKey(author, title string) string {
	return indexNormalizer.ComparisonKey(author) + "\x00" + indexNormalizer.ComparisonKey(title)
}
