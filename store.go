package polysite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/polything/polysite/content"
)

// Store wraps a SQLite database holding the content snapshot written by the
// ingestion step. Entries are stored per kind and keep their snapshot order.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the SQLite database at path, ensures the data
// directory exists, and runs schema migrations.
func NewStore(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets the server keep reading while an import rewrites a kind.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
		PRAGMA cache_size=-8000;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(4)
	db.SetMaxIdleConns(4)
	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS entries (
    kind TEXT NOT NULL,
    slug TEXT NOT NULL,
    position INTEGER NOT NULL,
    title TEXT NOT NULL,
    date TEXT NOT NULL DEFAULT '',
    data TEXT NOT NULL,
    PRIMARY KEY (kind, slug)
);
CREATE INDEX IF NOT EXISTS entries_kind_position ON entries(kind, position);
`)
	return err
}

// ReplaceKind swaps every stored entry of kind for entries, in one transaction.
func (s *Store) ReplaceKind(kind content.Kind, entries []content.Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	if err := replaceKind(tx, kind, entries); err != nil {
		return err
	}
	return tx.Commit()
}

// SaveSnapshot replaces all three kinds with the contents of snap.
func (s *Store) SaveSnapshot(snap content.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()
	for _, k := range []content.Kind{content.KindPage, content.KindPost, content.KindProject} {
		if err := replaceKind(tx, k, snap.ByKind(k)); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func replaceKind(tx *sql.Tx, kind content.Kind, entries []content.Entry) error {
	if _, err := tx.Exec(`DELETE FROM entries WHERE kind = ?`, string(kind)); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO entries (kind, slug, position, title, date, data) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()
	for i, e := range entries {
		e.Kind = kind
		data, err := json.Marshal(e)
		if err != nil {
			return fmt.Errorf("encode %s %q: %w", kind, e.Slug, err)
		}
		if _, err := stmt.Exec(string(kind), e.Slug, i, e.Title, e.Date, string(data)); err != nil {
			return fmt.Errorf("insert %s %q: %w", kind, e.Slug, err)
		}
	}
	return nil
}

// ListEntries returns every entry of kind in snapshot order.
func (s *Store) ListEntries(kind content.Kind) ([]content.Entry, error) {
	rows, err := s.db.Query(`SELECT data FROM entries WHERE kind = ? ORDER BY position`, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []content.Entry{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var e content.Entry
		if err := json.Unmarshal([]byte(data), &e); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// GetEntry returns a single entry by kind and slug, or sql.ErrNoRows.
func (s *Store) GetEntry(kind content.Kind, slug string) (content.Entry, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM entries WHERE kind = ? AND slug = ?`, string(kind), slug).Scan(&data)
	if err != nil {
		return content.Entry{}, err
	}
	var e content.Entry
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		return content.Entry{}, err
	}
	return e, nil
}

// Snapshot loads every stored kind.
func (s *Store) Snapshot() (content.Snapshot, error) {
	var snap content.Snapshot
	var err error
	if snap.Pages, err = s.ListEntries(content.KindPage); err != nil {
		return content.Snapshot{}, err
	}
	if snap.Posts, err = s.ListEntries(content.KindPost); err != nil {
		return content.Snapshot{}, err
	}
	if snap.Projects, err = s.ListEntries(content.KindProject); err != nil {
		return content.Snapshot{}, err
	}
	return snap, nil
}

// Counts returns the number of stored entries per kind.
func (s *Store) Counts() (map[content.Kind]int, error) {
	rows, err := s.db.Query(`SELECT kind, COUNT(*) FROM entries GROUP BY kind`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[content.Kind]int)
	for rows.Next() {
		var kind string
		var n int
		if err := rows.Scan(&kind, &n); err != nil {
			return nil, err
		}
		counts[content.Kind(kind)] = n
	}
	return counts, rows.Err()
}

// DeleteEntry removes an entry by kind and slug.
func (s *Store) DeleteEntry(kind content.Kind, slug string) error {
	_, err := s.db.Exec(`DELETE FROM entries WHERE kind = ? AND slug = ?`, string(kind), slug)
	return err
}
