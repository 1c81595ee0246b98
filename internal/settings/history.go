// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper2notion/pkg/types"
)

const defaultHistoryLimit = 20

// savedAtLayout is fixed-width so saved_at sorts chronologically as text.
const savedAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// RecordExport appends a successful export to the history log.
// A zero SavedAt is stamped with the current time.
func (s *Store) RecordExport(ctx context.Context, rec types.ExportRecord) error {
	if rec.PaperID == "" || rec.PageURL == "" {
		return fmt.Errorf("export record needs paper id and page URL")
	}
	if rec.SavedAt.IsZero() {
		rec.SavedAt = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO exports (paper_id, title, page_url, database_id, saved_at) VALUES (?, ?, ?, ?, ?)`,
		rec.PaperID, rec.Title, rec.PageURL, rec.DatabaseID, rec.SavedAt.UTC().Format(savedAtLayout),
	)
	if err != nil {
		return fmt.Errorf("recording export: %w", err)
	}
	return nil
}

// History returns saved exports, newest first. A zero limit uses the
// default of 20; a negative limit returns everything.
func (s *Store) History(ctx context.Context, limit int) ([]types.ExportRecord, error) {
	if limit == 0 {
		limit = defaultHistoryLimit
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT paper_id, title, page_url, database_id, saved_at
		 FROM exports ORDER BY saved_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var records []types.ExportRecord
	for rows.Next() {
		var (
			rec               types.ExportRecord
			title, databaseID sql.NullString
			savedAt           string
		)
		if err := rows.Scan(&rec.PaperID, &title, &rec.PageURL, &databaseID, &savedAt); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		rec.Title = title.String
		rec.DatabaseID = databaseID.String
		if t, err := time.Parse(savedAtLayout, savedAt); err == nil {
			rec.SavedAt = t
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ExportYAML writes the full history to path as YAML.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	records, err := s.History(ctx, -1)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the full history to path as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, path string) error {
	records, err := s.History(ctx, -1)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}
