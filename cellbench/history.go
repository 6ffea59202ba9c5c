package cellbench

import (
	"context"
	"database/sql"
	"time"

	"github.com/reusee/celltape/storages"
)

var historySchema = []string{
	`CREATE TABLE IF NOT EXISTS reports (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		time INTEGER NOT NULL,
		repeat INTEGER NOT NULL,
		instructions INTEGER NOT NULL,
		optimized_instructions INTEGER NOT NULL,
		steps INTEGER NOT NULL,
		optimized_steps INTEGER NOT NULL,
		duration INTEGER NOT NULL,
		optimized_duration INTEGER NOT NULL,
		output_match INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS reports_name_time ON reports (name, time)`,
}

// History stores benchmark reports in a sqlite file
type History struct {
	db *sql.DB
}

func OpenHistory(ctx context.Context, path string) (*History, error) {
	db, err := storages.OpenSQLite(ctx, path, historySchema...)
	if err != nil {
		return nil, err
	}
	return &History{
		db: db,
	}, nil
}

func (h *History) Close() error {
	return h.db.Close()
}

func (h *History) Record(ctx context.Context, report *Report) error {
	return storages.WithTx(ctx, h.db, func(tx storages.Tx) error {
		_, err := tx.ExecContext(ctx, `INSERT INTO reports (
			name, time, repeat,
			instructions, optimized_instructions,
			steps, optimized_steps,
			duration, optimized_duration,
			output_match
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			report.Name, report.Time.UnixNano(), report.Repeat,
			report.Instructions, report.OptimizedInstructions,
			report.Steps, report.OptimizedSteps,
			int64(report.Duration), int64(report.OptimizedDuration),
			report.OutputMatch,
		)
		return err
	})
}

// Recent returns at most n reports of name, newest first
func (h *History) Recent(ctx context.Context, name string, n int) ([]Report, error) {
	rows, err := h.db.QueryContext(ctx, `SELECT
		name, time, repeat,
		instructions, optimized_instructions,
		steps, optimized_steps,
		duration, optimized_duration,
		output_match
		FROM reports WHERE name = ? ORDER BY time DESC, id DESC LIMIT ?`,
		name, n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ret []Report
	for rows.Next() {
		var r Report
		var t, d, od int64
		if err := rows.Scan(
			&r.Name, &t, &r.Repeat,
			&r.Instructions, &r.OptimizedInstructions,
			&r.Steps, &r.OptimizedSteps,
			&d, &od,
			&r.OutputMatch,
		); err != nil {
			return nil, err
		}
		r.Time = time.Unix(0, t)
		r.Duration = time.Duration(d)
		r.OptimizedDuration = time.Duration(od)
		ret = append(ret, r)
	}
	return ret, rows.Err()
}
