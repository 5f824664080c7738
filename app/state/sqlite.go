package state

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite"
)

var (
	_ Store       = (*SQLiteStore)(nil)
	_ RunRecorder = (*SQLiteStore)(nil)
)

// SQLiteStore keeps the watermark in a single-row table and appends one
// history row per run.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Load() (time.Time, bool) {
	var stored string
	err := s.db.QueryRow(`SELECT bulletin_date FROM watermark WHERE id = 1`).Scan(&stored)
	if err == sql.ErrNoRows {
		return time.Time{}, false
	}
	if err != nil {
		slog.Warn("Watermark row unreadable, treating as absent", "error", err)
		return time.Time{}, false
	}

	date, err := time.Parse(DateFormat, stored)
	if err != nil {
		slog.Warn("Watermark row malformed, treating as absent", "content", stored)
		return time.Time{}, false
	}

	return date, true
}

func (s *SQLiteStore) Save(date time.Time) error {
	_, err := s.db.Exec(`
		INSERT INTO watermark (id, bulletin_date, updated_at)
		VALUES (1, ?, ?)
		ON CONFLICT (id) DO UPDATE SET bulletin_date = excluded.bulletin_date, updated_at = excluded.updated_at
	`, date.Format(DateFormat), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save watermark: %w", err)
	}

	return nil
}

func (s *SQLiteStore) RecordRun(record RunRecord) error {
	var bulletinDate *string
	if record.BulletinDate != nil {
		formatted := record.BulletinDate.Format(DateFormat)
		bulletinDate = &formatted
	}

	_, err := s.db.Exec(`
		INSERT INTO runs (ran_at, outcome, bulletin_date, bulletin_title, failed_pages, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`, record.RanAt.UTC().Format(time.RFC3339), record.Outcome, bulletinDate,
		record.BulletinTitle, record.FailedPages, record.Error)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	return nil
}

// RecentRuns returns the most recent run records, newest first.
func (s *SQLiteStore) RecentRuns(limit int) ([]RunRecord, error) {
	rows, err := s.db.Query(`
		SELECT ran_at, outcome, bulletin_date, bulletin_title, failed_pages, error
		FROM runs ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var record RunRecord
		var ranAt string
		var bulletinDate sql.NullString
		var bulletinTitle sql.NullString
		var errText sql.NullString

		if err := rows.Scan(&ranAt, &record.Outcome, &bulletinDate, &bulletinTitle, &record.FailedPages, &errText); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		if parsed, err := time.Parse(time.RFC3339, ranAt); err == nil {
			record.RanAt = parsed
		}
		if bulletinDate.Valid {
			if parsed, err := time.Parse(DateFormat, bulletinDate.String); err == nil {
				record.BulletinDate = &parsed
			}
		}
		record.BulletinTitle = bulletinTitle.String
		record.Error = errText.String

		records = append(records, record)
	}

	return records, rows.Err()
}
