// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package settings persists the Notion export destination and the log of
// saved papers in a local SQLite database.
package settings

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/paper2notion/pkg/types"
)

const dbFile = "paper2notion.db"

// Persisted setting keys.
const (
	KeyAPIToken    = "notionApiToken"
	KeyDatabaseID  = "databaseId"
	KeyDatabaseURL = "notionUrl"
)

// Store manages the settings SQLite database.
type Store struct {
	db      *sql.DB
	dataDir string
}

// Open opens or creates dataDir/paper2notion.db and its schema.
func Open(cfg types.StoreConfig) (*Store, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("data directory not configured")
	}
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, dataDir: cfg.DataDir}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return filepath.Join(s.dataDir, dbFile)
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS exports (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			paper_id TEXT NOT NULL,
			title TEXT,
			page_url TEXT NOT NULL,
			database_id TEXT,
			saved_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_exports_paper_id ON exports(paper_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Load reads the persisted export settings. Missing keys load as empty.
func (s *Store) Load(ctx context.Context) (types.ExportSettings, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, value FROM settings WHERE key IN (?, ?, ?)`,
		KeyAPIToken, KeyDatabaseID, KeyDatabaseURL,
	)
	if err != nil {
		return types.ExportSettings{}, fmt.Errorf("reading settings: %w", err)
	}
	defer rows.Close()

	var es types.ExportSettings
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return types.ExportSettings{}, fmt.Errorf("scanning setting: %w", err)
		}
		switch key {
		case KeyAPIToken:
			es.APIToken = value
		case KeyDatabaseID:
			es.DatabaseID = value
		case KeyDatabaseURL:
			es.DatabaseURL = value
		}
	}
	return es, rows.Err()
}

// Save validates databaseURL and persists token, extracted database id and
// URL together. The URL is stored trimmed. An invalid URL returns
// ErrInvalidDatabaseURL and nothing is written, the token included.
func (s *Store) Save(ctx context.Context, token, databaseURL string) (types.ExportSettings, error) {
	databaseURL = strings.TrimSpace(databaseURL)
	id, ok := ExtractDatabaseID(databaseURL)
	if !ok {
		return types.ExportSettings{}, fmt.Errorf("%w: %q", ErrInvalidDatabaseURL, databaseURL)
	}

	es := types.ExportSettings{APIToken: token, DatabaseID: id, DatabaseURL: databaseURL}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return types.ExportSettings{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value=excluded.value`)
	if err != nil {
		return types.ExportSettings{}, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	for _, kv := range [][2]string{
		{KeyAPIToken, es.APIToken},
		{KeyDatabaseID, es.DatabaseID},
		{KeyDatabaseURL, es.DatabaseURL},
	} {
		if _, err := stmt.ExecContext(ctx, kv[0], kv[1]); err != nil {
			return types.ExportSettings{}, fmt.Errorf("writing %s: %w", kv[0], err)
		}
	}

	if err := tx.Commit(); err != nil {
		return types.ExportSettings{}, fmt.Errorf("committing settings: %w", err)
	}
	return es, nil
}

// Clear removes every persisted setting. Export history is kept.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM settings`); err != nil {
		return fmt.Errorf("clearing settings: %w", err)
	}
	return nil
}
