// Package store handles SQLite persistence of run history.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/mmfreq/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for recorded runs.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			input_path TEXT NOT NULL,
			output_path TEXT NOT NULL,
			total INTEGER NOT NULL,
			designated_total INTEGER NOT NULL,
			other_total INTEGER NOT NULL,
			distinct_designated INTEGER NOT NULL,
			distinct_other INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_chars (
			run_id INTEGER NOT NULL,
			bucket TEXT NOT NULL,
			char INTEGER NOT NULL,
			count INTEGER NOT NULL,
			position INTEGER NOT NULL,
			PRIMARY KEY (run_id, char)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a run and its per-character counts in one transaction.
func (s *Store) InsertRun(ctx context.Context, run model.RunRecord, chars []model.CharCount) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, input_path, output_path, total, designated_total, other_total, distinct_designated, distinct_other, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.Format(time.RFC3339Nano),
		run.InputPath,
		run.OutputPath,
		run.Total,
		run.DesignatedTotal,
		run.OtherTotal,
		run.DistinctDesignated,
		run.DistinctOther,
		run.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(chars) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO run_chars (run_id, bucket, char, count, position) VALUES (?, ?, ?, ?, ?)`)
		if perr != nil {
			err = perr
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, cc := range chars {
			if _, err = stmt.ExecContext(ctx, id, cc.Bucket.String(), int64(cc.Char), cc.Count, cc.Position); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListRuns returns recorded runs oldest first, limited to the last N when last > 0.
func (s *Store) ListRuns(ctx context.Context, last int) ([]model.RunRecord, error) {
	query := `SELECT id, started_at, input_path, output_path, total, designated_total, other_total,
		distinct_designated, distinct_other, duration_ms
		FROM runs
		ORDER BY started_at ASC, id ASC`
	args := []any{}
	if last > 0 {
		query = fmt.Sprintf(`SELECT * FROM (%s) ORDER BY started_at DESC, id DESC LIMIT ?`, query)
		args = append(args, last)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunRecord
	for rows.Next() {
		var run model.RunRecord
		var startedAt string
		if err := rows.Scan(&run.ID, &startedAt, &run.InputPath, &run.OutputPath, &run.Total,
			&run.DesignatedTotal, &run.OtherTotal, &run.DistinctDesignated, &run.DistinctOther, &run.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, startedAt)
		if err != nil {
			return nil, err
		}
		run.StartedAt = parsed
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if last > 0 {
		for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
			runs[i], runs[j] = runs[j], runs[i]
		}
	}
	return runs, nil
}

// GetRun returns a single run by id.
func (s *Store) GetRun(ctx context.Context, id int64) (model.RunRecord, bool, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, input_path, output_path, total, designated_total, other_total,
		distinct_designated, distinct_other, duration_ms
		FROM runs WHERE id = ?`, id)
	var run model.RunRecord
	var startedAt string
	err := row.Scan(&run.ID, &startedAt, &run.InputPath, &run.OutputPath, &run.Total,
		&run.DesignatedTotal, &run.OtherTotal, &run.DistinctDesignated, &run.DistinctOther, &run.DurationMs)
	if err == sql.ErrNoRows {
		return model.RunRecord{}, false, nil
	}
	if err != nil {
		return model.RunRecord{}, false, err
	}
	parsed, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return model.RunRecord{}, false, err
	}
	run.StartedAt = parsed
	return run, true, nil
}

// ListRunChars returns the stored counts of a run in first-seen order per bucket.
func (s *Store) ListRunChars(ctx context.Context, runID int64) ([]model.CharCount, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT bucket, char, count, position FROM run_chars
		WHERE run_id = ?
		ORDER BY bucket ASC, position ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.CharCount
	for rows.Next() {
		var bucket string
		var char int64
		var cc model.CharCount
		if err := rows.Scan(&bucket, &char, &cc.Count, &cc.Position); err != nil {
			return nil, err
		}
		b, ok := model.ParseBucket(bucket)
		if !ok {
			return nil, fmt.Errorf("unknown bucket %q for run %d", bucket, runID)
		}
		cc.Bucket = b
		cc.Char = rune(char)
		result = append(result, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
