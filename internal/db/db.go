// Package db provides PostgreSQL persistence for match runs and their
// intermediate artifacts. Persistence is optional: the pipeline runs fully
// in-memory when no database is configured.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Run represents a match run record
type Run struct {
	ID            uuid.UUID  `json:"id"`
	CandidateName string     `json:"candidate_name"`
	Company       string     `json:"company"`
	RoleTitle     string     `json:"role_title"`
	Status        string     `json:"status"`
	FinalScore    *float64   `json:"final_score,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

// CreateRun creates a new match run record and returns its ID
func (db *DB) CreateRun(ctx context.Context, candidateName, company, roleTitle string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO match_runs (candidate_name, company, role_title, status)
		 VALUES ($1, $2, $3, 'running')
		 RETURNING id`,
		candidateName, company, roleTitle,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create run: %w", err)
	}
	return id, nil
}

// CompleteRun marks a match run as finished with its final score.
// Pass a nil score for failed runs.
func (db *DB) CompleteRun(ctx context.Context, runID uuid.UUID, status string, finalScore *float64) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE match_runs SET status = $1, final_score = $2, completed_at = NOW() WHERE id = $3`,
		status, finalScore, runID,
	)
	if err != nil {
		return fmt.Errorf("failed to complete run: %w", err)
	}
	return nil
}

// GetRun retrieves a match run by ID. Returns nil when no run exists.
func (db *DB) GetRun(ctx context.Context, runID uuid.UUID) (*Run, error) {
	var run Run
	err := db.pool.QueryRow(ctx,
		`SELECT id, candidate_name, company, role_title, status, final_score, created_at, completed_at
		 FROM match_runs WHERE id = $1`,
		runID,
	).Scan(&run.ID, &run.CandidateName, &run.Company, &run.RoleTitle, &run.Status, &run.FinalScore, &run.CreatedAt, &run.CompletedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return &run, nil
}

// RunFilters holds optional filters for listing runs
type RunFilters struct {
	Company string
	Status  string
	Limit   int
}

// ListRuns retrieves recent match runs with optional filters
func (db *DB) ListRuns(ctx context.Context, filters RunFilters) ([]Run, error) {
	if filters.Limit == 0 {
		filters.Limit = 50
	}

	query := `SELECT id, candidate_name, company, role_title, status, final_score, created_at, completed_at
		FROM match_runs WHERE 1=1`
	args := []any{}
	argNum := 1

	if filters.Company != "" {
		query += fmt.Sprintf(" AND company ILIKE $%d", argNum)
		args = append(args, "%"+filters.Company+"%")
		argNum++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, filters.Status)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, filters.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.CandidateName, &run.Company, &run.RoleTitle, &run.Status, &run.FinalScore, &run.CreatedAt, &run.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
