package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"houseduty/internal/model"
)

type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{db: db}
}

// Run is one archived scheduling pass.
type Run struct {
	ID          string
	GeneratedAt time.Time
	StartSunday string
	Weeks       int
	RosterSize  int
	Seed        int64
	ItemCount   int
}

type RunInsert struct {
	StartSunday string
	Weeks       int
	RosterSize  int
	Seed        int64
	Items       []model.ScheduleItem
}

// InsertRun archives a run and its items in one transaction and returns the
// new run ID.
func (r *Repo) InsertRun(ctx context.Context, in RunInsert) (string, error) {
	runID := uuid.NewString()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin archive tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, generated_at, start_sunday, weeks, roster_size, seed, item_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, runID, time.Now().UTC(), in.StartSunday, in.Weeks, in.RosterSize, in.Seed, len(in.Items))
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, it := range in.Items {
		assigned, err := json.Marshal(it.Assigned)
		if err != nil {
			return "", fmt.Errorf("marshal assignees: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_items (run_id, due, deck, task_key, task, category, people_needed, assigned, weight_total)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, runID, it.Due, it.Deck, it.TaskKey, it.TaskLabel, string(it.Category), it.PeopleNeeded, string(assigned), it.WeightTotal)
		if err != nil {
			return "", fmt.Errorf("insert run item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit archive tx: %w", err)
	}
	return runID, nil
}

// ListRuns returns the most recent runs first, capped at limit (or all runs
// when limit <= 0).
func (r *Repo) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	q := `SELECT id, generated_at, start_sunday, weeks, roster_size, seed, item_count
		FROM runs ORDER BY generated_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.GeneratedAt, &run.StartSunday, &run.Weeks, &run.RosterSize, &run.Seed, &run.ItemCount); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunItems returns the archived schedule for one run in its stored order.
func (r *Repo) RunItems(ctx context.Context, runID string) ([]model.ScheduleItem, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT due, deck, task_key, task, category, people_needed, assigned, weight_total
		FROM run_items WHERE run_id = ? ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("run items: %w", err)
	}
	defer rows.Close()

	var items []model.ScheduleItem
	for rows.Next() {
		var it model.ScheduleItem
		var category, assigned string
		if err := rows.Scan(&it.Due, &it.Deck, &it.TaskKey, &it.TaskLabel, &category, &it.PeopleNeeded, &assigned, &it.WeightTotal); err != nil {
			return nil, fmt.Errorf("scan run item: %w", err)
		}
		it.Category = model.Category(category)
		if err := json.Unmarshal([]byte(assigned), &it.Assigned); err != nil {
			return nil, fmt.Errorf("unmarshal assignees: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// PersonTaskTotals sums archived assignments per task for one person, a
// second opinion on the fairness counters kept in the state file.
func (r *Repo) PersonTaskTotals(ctx context.Context, person string) (map[string]int, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT task_key, assigned FROM run_items
	`)
	if err != nil {
		return nil, fmt.Errorf("person totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int)
	for rows.Next() {
		var key, assigned string
		if err := rows.Scan(&key, &assigned); err != nil {
			return nil, fmt.Errorf("scan person totals: %w", err)
		}
		var names []string
		if err := json.Unmarshal([]byte(assigned), &names); err != nil {
			continue
		}
		for _, n := range names {
			if n == person {
				totals[key]++
			}
		}
	}
	return totals, rows.Err()
}
