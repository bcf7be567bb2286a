// ============================================================================
// cliparse - Argument Value Tokenizer
// ============================================================================
//
// Package:     history
// Description: Persistent history of tokenized inputs
// Author:      Mike Stoffels
// Created:     2025-02-19
// License:     MIT
// ============================================================================

package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	mdwerror "github.com/msto63/cliparse/foundation/core/error"
)

// Entry is one tokenized input
type Entry struct {
	ID         string    `json:"id"`
	Input      string    `json:"input"`
	OK         bool      `json:"ok"`
	Error      string    `json:"error,omitempty"`
	TokenCount int       `json:"token_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// Store defines the interface for history persistence
type Store interface {
	Add(ctx context.Context, entry *Entry) error
	Get(ctx context.Context, id string) (*Entry, error)
	Recent(ctx context.Context, limit int) ([]*Entry, error)
	Count(ctx context.Context) (int, error)
	Prune(ctx context.Context, keep int) (int64, error)
	Clear(ctx context.Context) (int64, error)
	Close() error
}

// Config holds configuration for the SQLite store
type Config struct {
	Path        string
	BusyTimeout time.Duration
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Path:        "./data/history.db",
		BusyTimeout: 5 * time.Second,
	}
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates or opens the history database
func Open(ctx context.Context, cfg Config) (*SQLiteStore, error) {
	// Ensure directory exists
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, storageError(err, "failed to create directory", "history.Open")
	}

	// Open database with WAL mode
	dsn := cfg.Path + "?_journal_mode=WAL&_synchronous=NORMAL"
	if cfg.BusyTimeout > 0 {
		dsn += fmt.Sprintf("&_busy_timeout=%d", cfg.BusyTimeout.Milliseconds())
	}
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, storageError(err, "failed to open database", "history.Open")
	}

	store := &SQLiteStore{db: db}

	if err := store.initSchema(ctx); err != nil {
		db.Close()
		return nil, storageError(err, "failed to initialize schema", "history.Open")
	}

	return store, nil
}

// initSchema creates the necessary tables
func (s *SQLiteStore) initSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		input TEXT NOT NULL,
		ok INTEGER NOT NULL,
		error TEXT,
		token_count INTEGER NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_history_created_at ON history(created_at DESC);
	`

	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Add records a new entry, assigning ID and timestamp when missing
func (s *SQLiteStore) Add(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prepare(entry)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (id, input, ok, error, token_count, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Input, entry.OK, nullString(entry.Error), entry.TokenCount, entry.CreatedAt)
	if err != nil {
		return storageError(err, "failed to insert history entry", "history.Add")
	}
	return nil
}

// Get retrieves a single entry by ID
func (s *SQLiteStore) Get(ctx context.Context, id string) (*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `
		SELECT id, input, ok, error, token_count, created_at FROM history WHERE id = ?
	`, id)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, mdwerror.Newf("history entry not found: %s", id).
			WithCode(mdwerror.CodeNotFound).
			WithOperation("history.Get")
	}
	if err != nil {
		return nil, storageError(err, "failed to read history entry", "history.Get")
	}
	return entry, nil
}

// Recent returns up to limit entries, most recent first. limit <= 0 returns all.
func (s *SQLiteStore) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, input, ok, error, token_count, created_at FROM history ORDER BY rowid DESC`
	var args []interface{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storageError(err, "failed to query history", "history.Recent")
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, storageError(err, "failed to scan history entry", "history.Recent")
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, storageError(err, "failed to iterate history", "history.Recent")
	}
	return entries, nil
}

// Count returns the number of stored entries
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM history`).Scan(&n); err != nil {
		return 0, storageError(err, "failed to count history", "history.Count")
	}
	return n, nil
}

// Prune keeps the keep most recent entries and removes the rest
func (s *SQLiteStore) Prune(ctx context.Context, keep int) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if keep < 0 {
		keep = 0
	}
	result, err := s.db.ExecContext(ctx, `
		DELETE FROM history WHERE rowid NOT IN (
			SELECT rowid FROM history ORDER BY rowid DESC LIMIT ?
		)
	`, keep)
	if err != nil {
		return 0, storageError(err, "failed to prune history", "history.Prune")
	}
	deleted, _ := result.RowsAffected()
	return deleted, nil
}

// Clear removes all entries
func (s *SQLiteStore) Clear(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.db.ExecContext(ctx, `DELETE FROM history`)
	if err != nil {
		return 0, storageError(err, "failed to clear history", "history.Clear")
	}
	deleted, _ := result.RowsAffected()
	return deleted, nil
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(row scanner) (*Entry, error) {
	var entry Entry
	var errText sql.NullString
	if err := row.Scan(&entry.ID, &entry.Input, &entry.OK, &errText, &entry.TokenCount, &entry.CreatedAt); err != nil {
		return nil, err
	}
	entry.Error = errText.String
	return &entry, nil
}

func prepare(entry *Entry) {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func storageError(err error, message, operation string) error {
	return mdwerror.Wrap(err, message).
		WithCode(mdwerror.CodeStorage).
		WithOperation(operation)
}

// MemoryStore is an in-memory implementation for testing
type MemoryStore struct {
	mu      sync.RWMutex
	entries []*Entry
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make([]*Entry, 0)}
}

// Add records a new entry
func (m *MemoryStore) Add(ctx context.Context, entry *Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prepare(entry)
	stored := *entry
	m.entries = append(m.entries, &stored)
	return nil
}

// Get retrieves a single entry by ID
func (m *MemoryStore) Get(ctx context.Context, id string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, e := range m.entries {
		if e.ID == id {
			found := *e
			return &found, nil
		}
	}
	return nil, mdwerror.Newf("history entry not found: %s", id).
		WithCode(mdwerror.CodeNotFound).
		WithOperation("history.Get")
}

// Recent returns up to limit entries, most recent first
func (m *MemoryStore) Recent(ctx context.Context, limit int) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*Entry
	for i := len(m.entries) - 1; i >= 0; i-- {
		if limit > 0 && len(out) == limit {
			break
		}
		e := *m.entries[i]
		out = append(out, &e)
	}
	return out, nil
}

// Count returns the number of stored entries
func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries), nil
}

// Prune keeps the keep most recent entries
func (m *MemoryStore) Prune(ctx context.Context, keep int) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if keep < 0 {
		keep = 0
	}
	if len(m.entries) <= keep {
		return 0, nil
	}
	deleted := len(m.entries) - keep
	m.entries = m.entries[deleted:]
	return int64(deleted), nil
}

// Clear removes all entries
func (m *MemoryStore) Clear(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.entries)
	m.entries = m.entries[:0]
	return int64(n), nil
}

// Close is a no-op
func (m *MemoryStore) Close() error {
	return nil
}
