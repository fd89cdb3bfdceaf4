package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/anthonyjmartinez/connchk/internal/probe"
)

// Store keeps past runs in a single-file sqlite database so a machine's
// reachability over time can be inspected after the fact.
type Store struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	started_at TIMESTAMP NOT NULL,
	total      INTEGER NOT NULL,
	failed     INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS run_results (
	run_id      INTEGER NOT NULL REFERENCES runs(id),
	seq         INTEGER NOT NULL,
	descr       TEXT NOT NULL,
	success     INTEGER NOT NULL,
	status_code INTEGER,
	latency_ms  REAL,
	message     TEXT,
	PRIMARY KEY (run_id, seq)
);`

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun persists one completed run and returns its id.
func (s *Store) SaveRun(ctx context.Context, startedAt time.Time, results []probe.CheckResult) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, total, failed) VALUES (?, ?, ?)`,
		startedAt.UTC(), len(results), failed,
	)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	for _, r := range results {
		var status *int
		if r.StatusCode != 0 {
			v := r.StatusCode
			status = &v
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO run_results (run_id, seq, descr, success, status_code, latency_ms, message)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, r.Index, r.Desc, r.Success, status, r.LatencyMS, r.Message,
		); err != nil {
			return 0, fmt.Errorf("insert result: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return runID, nil
}

// RunSummary is one row of Recent output.
type RunSummary struct {
	ID        int64     `json:"id"`
	StartedAt time.Time `json:"started_at"`
	Total     int       `json:"total"`
	Failed    int       `json:"failed"`
}

// Recent lists the newest runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, total, failed FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var r RunSummary
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Total, &r.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Results returns the per-target rows of one run in input order.
func (s *Store) Results(ctx context.Context, runID int64) ([]probe.CheckResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, descr, success, status_code, latency_ms, message
		   FROM run_results WHERE run_id = ? ORDER BY seq ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("list results: %w", err)
	}
	defer rows.Close()

	var out []probe.CheckResult
	for rows.Next() {
		var (
			r      probe.CheckResult
			status sql.NullInt64
			lat    sql.NullFloat64
			msg    sql.NullString
		)
		if err := rows.Scan(&r.Index, &r.Desc, &r.Success, &status, &lat, &msg); err != nil {
			return nil, fmt.Errorf("scan result: %w", err)
		}
		if status.Valid {
			r.StatusCode = int(status.Int64)
		}
		if lat.Valid {
			r.LatencyMS = lat.Float64
		}
		r.Message = msg.String
		out = append(out, r)
	}
	return out, rows.Err()
}
