package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"biblefetch/internal/classify"
)

// Store manages the classification ledger backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Classification is one persisted (language, translation, canon) decision.
type Classification struct {
	ISO             string
	Translation     string
	Canon           string
	Category        classify.Category
	AudioFileset    string
	TextFileset     string
	TimingAvailable bool
	RunID           string
	UpdatedAt       time.Time
}

// Open initializes or connects to the ledger database at the given path.
func Open(dbPath string) (*Store, error) {
	if dir := filepath.Dir(dbPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// BeginRun records the start of a sort run and returns its identifier.
func (s *Store) BeginRun(ctx context.Context) (string, error) {
	runID := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO runs (id, started_at) VALUES (?, ?)", runID, now)
	if err != nil {
		return "", fmt.Errorf("begin run: %w", err)
	}
	return runID, nil
}

// FinishRun stamps a run's completion time and totals.
func (s *Store) FinishRun(ctx context.Context, runID string, languages, filesets int) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		"UPDATE runs SET finished_at = ?, languages = ?, filesets = ? WHERE id = ?",
		now, languages, filesets, runID)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("finish run: unknown run %s", runID)
	}
	return nil
}

// Record writes one classification, replacing any earlier decision for the
// same (iso, translation, canon). Reclassification overwrites, never merges.
func (s *Store) Record(ctx context.Context, c Classification) error {
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO classifications (
            iso, translation, canon, category,
            audio_fileset, text_fileset, timing_available, run_id, updated_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (iso, translation, canon) DO UPDATE SET
            category = excluded.category,
            audio_fileset = excluded.audio_fileset,
            text_fileset = excluded.text_fileset,
            timing_available = excluded.timing_available,
            run_id = excluded.run_id,
            updated_at = excluded.updated_at`,
		c.ISO, c.Translation, c.Canon, string(c.Category),
		c.AudioFileset, c.TextFileset, boolToInt(c.TimingAvailable), c.RunID, now)
	if err != nil {
		return fmt.Errorf("record classification: %w", err)
	}
	return nil
}

// ByLanguage returns all persisted classifications for one language,
// ordered by translation then canon.
func (s *Store) ByLanguage(ctx context.Context, iso string) ([]Classification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT iso, translation, canon, category,
                audio_fileset, text_fileset, timing_available, run_id, updated_at
         FROM classifications WHERE iso = ?
         ORDER BY translation, canon`, iso)
	if err != nil {
		return nil, fmt.Errorf("query classifications: %w", err)
	}
	defer rows.Close()
	return scanClassifications(rows)
}

// ByCategory returns all classifications carrying the given category.
func (s *Store) ByCategory(ctx context.Context, category classify.Category) ([]Classification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT iso, translation, canon, category,
                audio_fileset, text_fileset, timing_available, run_id, updated_at
         FROM classifications WHERE category = ?
         ORDER BY iso, translation, canon`, string(category))
	if err != nil {
		return nil, fmt.Errorf("query classifications: %w", err)
	}
	defer rows.Close()
	return scanClassifications(rows)
}

// CategoryCounts reports how many classification rows carry each category.
func (s *Store) CategoryCounts(ctx context.Context) (map[classify.Category]int, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT category, COUNT(1) FROM classifications GROUP BY category")
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	defer rows.Close()

	counts := make(map[classify.Category]int)
	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		counts[classify.Category(category)] = count
	}
	return counts, rows.Err()
}

func scanClassifications(rows *sql.Rows) ([]Classification, error) {
	var out []Classification
	for rows.Next() {
		var c Classification
		var category string
		var timing int
		var updated string
		if err := rows.Scan(&c.ISO, &c.Translation, &c.Canon, &category,
			&c.AudioFileset, &c.TextFileset, &timing, &c.RunID, &updated); err != nil {
			return nil, fmt.Errorf("scan classification: %w", err)
		}
		c.Category = classify.Category(category)
		c.TimingAvailable = timing != 0
		if parsed, err := time.Parse(time.RFC3339Nano, updated); err == nil {
			c.UpdatedAt = parsed
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
