// Package grading asks an LLM to grade how well a candidate's demonstrated
// skills cover a job's requirements. The grade is evidence-based: projects,
// experience, and certifications count alongside the listed skills.
package grading

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

// maxAttempts bounds LLM calls per grading operation: one try, one retry.
const maxAttempts = 2

// GradingError is returned when the grader could not produce a valid grade
// after the retry budget was spent.
type GradingError struct {
	Attempts int
	Cause    error
}

func (e *GradingError) Error() string {
	return fmt.Sprintf("skill grading failed after %d attempts: %v", e.Attempts, e.Cause)
}

func (e *GradingError) Unwrap() error {
	return e.Cause
}

// Payload is the JSON document sent to the grading model. It pairs the job's
// demands with everything the candidate can show as evidence.
type Payload struct {
	JDRequiredSkills   []string               `json:"jd_required_skills"`
	JDOptionalSkills   []string               `json:"jd_optional_skills"`
	JDTools            []string               `json:"jd_tools"`
	JDResponsibilities []string               `json:"jd_responsibilities"`
	CandidateSkills    []string               `json:"candidate_skills"`
	CandidateTools     []string               `json:"candidate_tools"`
	CandidateProjects  []types.Project        `json:"candidate_projects"`
	CandidateExp       []types.WorkExperience `json:"candidate_experience"`
	CandidateCerts     []string               `json:"candidate_certifications"`
}

// BuildPayload assembles the grading payload from the structured profiles.
func BuildPayload(candidate *types.CandidateProfile, job *types.JobProfile) Payload {
	return Payload{
		JDRequiredSkills:   job.SkillsRequired,
		JDOptionalSkills:   job.SkillsOptional,
		JDTools:            job.ToolsAndTechnologies,
		JDResponsibilities: job.Responsibilities,
		CandidateSkills:    candidate.Skills.All(),
		CandidateTools:     candidate.Skills.Tools,
		CandidateProjects:  candidate.Projects,
		CandidateExp:       candidate.Experience,
		CandidateCerts:     candidate.Certifications,
	}
}

// Grader grades candidate skills against a job using an LLM.
type Grader struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewGrader returns a grader using the advanced model tier.
func NewGrader(client llm.Client) *Grader {
	return &Grader{client: client, tier: llm.TierAdvanced}
}

// Grade returns the model's skill grade for the candidate against the job.
// A malformed or schema-invalid response is retried exactly once. The returned
// grade is the raw collaborator output; range enforcement happens in scoring.
func (g *Grader) Grade(ctx context.Context, candidate *types.CandidateProfile, job *types.JobProfile) (*types.SkillGrade, error) {
	payloadJSON, err := json.Marshal(BuildPayload(candidate, job))
	if err != nil {
		return nil, &GradingError{Attempts: 0, Cause: err}
	}

	template := prompts.MustGet("grading.json", "grade-skills")
	prompt := prompts.Format(template, map[string]string{
		"Payload": string(payloadJSON),
	})

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, err := g.client.GenerateJSON(ctx, prompt, g.tier)
		if err != nil {
			return nil, fmt.Errorf("grading call failed: %w", err)
		}

		raw = llm.CleanJSONBlock(raw)
		raw = llm.UnwrapJSONArray(raw)

		if err := schemas.Validate(schemas.SkillGradeSchema, raw); err != nil {
			lastErr = err
			continue
		}

		var grade types.SkillGrade
		if err := json.Unmarshal([]byte(raw), &grade); err != nil {
			lastErr = err
			continue
		}
		return &grade, nil
	}

	return nil, &GradingError{Attempts: maxAttempts, Cause: lastErr}
}
