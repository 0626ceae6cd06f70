package maze

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ResultsStore persists finished runs to a local SQLite database so
// benchmark sessions can be compared across invocations.
type ResultsStore struct {
	*sql.DB
}

// RunRecord is one persisted run.
type RunRecord struct {
	ID               string        `json:"id"`
	Mode             string        `json:"mode"`
	Explorer         string        `json:"explorer,omitempty"`
	Pathfinder       string        `json:"pathfinder"`
	Steps            int           `json:"steps"`
	ExplorationSteps int           `json:"explorationSteps,omitempty"`
	PlanningTime     time.Duration `json:"planningTime"`
	ExecutionTime    time.Duration `json:"executionTime"`
	TotalTime        time.Duration `json:"totalTime"`
	CreatedAt        time.Time     `json:"createdAt"`
}

// OpenResultsStore opens (and if needed creates) the results database.
func OpenResultsStore(path string) (*ResultsStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening results db: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			mode TEXT NOT NULL,
			explorer TEXT,
			pathfinder TEXT NOT NULL,
			steps INTEGER NOT NULL,
			exploration_steps INTEGER NOT NULL DEFAULT 0,
			planning_ns BIGINT NOT NULL,
			execution_ns BIGINT NOT NULL,
			total_ns BIGINT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		);
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating runs table: %w", err)
	}

	return &ResultsStore{db}, nil
}

// RecordRun stores one run and returns its generated ID.
func (s *ResultsStore) RecordRun(run *Run) (string, error) {
	id := uuid.NewString()
	_, err := s.Exec(
		`INSERT INTO runs (id, mode, explorer, pathfinder, steps, exploration_steps, planning_ns, execution_ns, total_ns)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, run.Mode, run.Explorer, run.Pathfinder, run.Result.Steps, run.ExplorationSteps,
		int64(run.Result.PlanningTime), int64(run.Result.ExecutionTime), int64(run.Result.TotalTime),
	)
	if err != nil {
		return "", fmt.Errorf("recording run: %w", err)
	}
	return id, nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *ResultsStore) RecentRuns(limit int) ([]RunRecord, error) {
	if limit < 1 {
		limit = 50
	}
	rows, err := s.Query(
		`SELECT id, mode, explorer, pathfinder, steps, exploration_steps, planning_ns, execution_ns, total_ns, created_at
		 FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var records []RunRecord
	for rows.Next() {
		var r RunRecord
		var explorer sql.NullString
		var planning, execution, total int64
		if err := rows.Scan(&r.ID, &r.Mode, &explorer, &r.Pathfinder, &r.Steps, &r.ExplorationSteps,
			&planning, &execution, &total, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.Explorer = explorer.String
		r.PlanningTime = time.Duration(planning)
		r.ExecutionTime = time.Duration(execution)
		r.TotalTime = time.Duration(total)
		records = append(records, r)
	}
	return records, rows.Err()
}
