// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps an optional SQLite ledger of conversions: which
// article was converted to which file, when, and with what outcome.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/mdword/pkg/types"
)

// DefaultPath is the ledger location used when HistoryConfig.Path is empty.
const DefaultPath = ".mdword/history.db"

const defaultLimit = 20

// Store manages the ledger database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// NewStore opens or creates the ledger at cfg.Path and creates the schema
// if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = DefaultPath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db, now: time.Now}
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

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			input_path TEXT NOT NULL,
			output_path TEXT NOT NULL,
			format TEXT NOT NULL,
			status TEXT NOT NULL,
			digest TEXT,
			counts TEXT,
			error TEXT,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_input ON conversions(input_path)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_converted_at ON conversions(converted_at)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends rec to the ledger. A missing ID is generated and a zero
// ConvertedAt is set to the current time.
func (s *Store) Record(ctx context.Context, rec types.ConversionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.ConvertedAt.IsZero() {
		rec.ConvertedAt = s.now()
	}

	counts, err := json.Marshal(rec.Counts)
	if err != nil {
		return fmt.Errorf("encoding counts: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO conversions (id, input_path, output_path, format, status, digest, counts, error, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.InputPath, rec.OutputPath, string(rec.Format), string(rec.Status),
		rec.Digest, string(counts), rec.Error, rec.ConvertedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting conversion %s: %w", rec.ID, err)
	}
	return nil
}

// List returns up to limit records, newest first. A limit of zero or less
// uses the default of 20.
func (s *Store) List(ctx context.Context, limit int) ([]types.ConversionRecord, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, input_path, output_path, format, status, digest, counts, error, converted_at
		 FROM conversions ORDER BY converted_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var records []types.ConversionRecord
	for rows.Next() {
		var (
			rec                    types.ConversionRecord
			format, status         string
			digest, counts, errMsg sql.NullString
			convertedAt            string
		)
		if err := rows.Scan(&rec.ID, &rec.InputPath, &rec.OutputPath, &format, &status,
			&digest, &counts, &errMsg, &convertedAt); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}

		rec.Format = types.OutputFormat(format)
		rec.Status = types.ConversionStatus(status)
		rec.Digest = digest.String
		rec.Error = errMsg.String
		if counts.Valid && counts.String != "" {
			if err := json.Unmarshal([]byte(counts.String), &rec.Counts); err != nil {
				return nil, fmt.Errorf("decoding counts for %s: %w", rec.ID, err)
			}
		}
		if rec.ConvertedAt, err = time.Parse(time.RFC3339Nano, convertedAt); err != nil {
			return nil, fmt.Errorf("parsing time for %s: %w", rec.ID, err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
