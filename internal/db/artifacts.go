package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ArtifactStep constants for known artifact types
const (
	StepResumeDocument      = "resume_document"
	StepCandidateProfile    = "candidate_profile"
	StepJobPosting          = "job_posting"
	StepJobProfile          = "job_profile"
	StepSkillGrade          = "skill_grade"
	StepExperienceBreakdown = "experience_breakdown"
	StepScoreBreakdown      = "score_breakdown"
)

// ArtifactCategory constants group steps by pipeline phase
const (
	CategoryExtraction  = "extraction"
	CategoryStructuring = "structuring"
	CategoryScoring     = "scoring"
)

// Artifact represents an artifact record
type Artifact struct {
	ID          uuid.UUID `json:"id"`
	RunID       uuid.UUID `json:"run_id"`
	Step        string    `json:"step"`
	Category    string    `json:"category"`
	Content     any       `json:"content,omitempty"`
	TextContent string    `json:"text_content,omitempty"`
}

// SaveArtifact stores a JSON artifact for a match run. Saving the same step
// twice overwrites the previous value.
func (db *DB) SaveArtifact(ctx context.Context, runID uuid.UUID, step, category string, content any) error {
	jsonBytes, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("failed to marshal artifact: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO artifacts (run_id, step, category, content)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (run_id, step) DO UPDATE SET category = $3, content = $4, created_at = NOW()`,
		runID, step, category, jsonBytes,
	)
	if err != nil {
		return fmt.Errorf("failed to save artifact %s: %w", step, err)
	}
	return nil
}

// SaveTextArtifact stores a text artifact (extracted resume text, raw job
// description) for a match run.
func (db *DB) SaveTextArtifact(ctx context.Context, runID uuid.UUID, step, category, text string) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO artifacts (run_id, step, category, text_content)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (run_id, step) DO UPDATE SET category = $3, text_content = $4, created_at = NOW()`,
		runID, step, category, text,
	)
	if err != nil {
		return fmt.Errorf("failed to save text artifact %s: %w", step, err)
	}
	return nil
}

// GetArtifact retrieves a JSON artifact by run ID and step. Returns nil when
// no artifact exists.
func (db *DB) GetArtifact(ctx context.Context, runID uuid.UUID, step string) ([]byte, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT content FROM artifacts WHERE run_id = $1 AND step = $2`,
		runID, step,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get artifact %s: %w", step, err)
	}
	return content, nil
}

// GetTextArtifact retrieves a text artifact by run ID and step. Returns the
// empty string when no artifact exists.
func (db *DB) GetTextArtifact(ctx context.Context, runID uuid.UUID, step string) (string, error) {
	var text string
	err := db.pool.QueryRow(ctx,
		`SELECT text_content FROM artifacts WHERE run_id = $1 AND step = $2`,
		runID, step,
	).Scan(&text)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", nil
		}
		return "", fmt.Errorf("failed to get text artifact %s: %w", step, err)
	}
	return text, nil
}

// ListArtifacts retrieves all artifacts for a run, ordered by step.
func (db *DB) ListArtifacts(ctx context.Context, runID uuid.UUID) ([]Artifact, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, run_id, step, category, content, text_content
		 FROM artifacts WHERE run_id = $1 ORDER BY step`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list artifacts: %w", err)
	}
	defer rows.Close()

	var artifacts []Artifact
	for rows.Next() {
		var artifact Artifact
		var contentBytes []byte
		var category, textContent *string
		if err := rows.Scan(&artifact.ID, &artifact.RunID, &artifact.Step, &category, &contentBytes, &textContent); err != nil {
			return nil, fmt.Errorf("failed to scan artifact: %w", err)
		}
		if category != nil {
			artifact.Category = *category
		}
		if textContent != nil {
			artifact.TextContent = *textContent
		}
		if len(contentBytes) > 0 {
			var content any
			if err := json.Unmarshal(contentBytes, &content); err == nil {
				artifact.Content = content
			}
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts, rows.Err()
}
