package prefs

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"a2dp-bridge/internal/a2dp"
)

// SQLiteStore persists preferences to SQLite, keyed by the textual address.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteStore opens (and if needed creates) the preference database at
// path. Use ":memory:" for testing.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("prefs: open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("prefs: enable WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS codec_prefs (
			address TEXT PRIMARY KEY,
			pref INTEGER NOT NULL,
			updated_at TEXT NOT NULL
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("prefs: create table: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, addr a2dp.Address) (a2dp.OptionalCodecsPref, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return a2dp.OptionalCodecsPrefUnknown, ErrClosed
	}

	var pref int
	err := s.db.QueryRowContext(ctx,
		`SELECT pref FROM codec_prefs WHERE address = ?`, addr.String()).Scan(&pref)
	if errors.Is(err, sql.ErrNoRows) {
		return a2dp.OptionalCodecsPrefUnknown, nil
	}
	if err != nil {
		return a2dp.OptionalCodecsPrefUnknown, fmt.Errorf("prefs: get %s: %w", addr, err)
	}
	return a2dp.OptionalCodecsPref(pref), nil
}

// Set implements Store.
func (s *SQLiteStore) Set(ctx context.Context, addr a2dp.Address, pref a2dp.OptionalCodecsPref) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO codec_prefs (address, pref, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(address) DO UPDATE SET
			pref = excluded.pref,
			updated_at = excluded.updated_at
	`, addr.String(), int(pref), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("prefs: set %s: %w", addr, err)
	}
	return nil
}

// Close implements Store. Redundant calls are allowed.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
