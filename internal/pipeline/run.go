package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
)

// TextExtractor turns a resume document into cleaned text plus links.
type TextExtractor interface {
	Extract(input extraction.Input) (*types.ResumeDocument, error)
}

// ExtractorFunc adapts a plain function to the TextExtractor interface.
type ExtractorFunc func(input extraction.Input) (*types.ResumeDocument, error)

// Extract implements TextExtractor.
func (f ExtractorFunc) Extract(input extraction.Input) (*types.ResumeDocument, error) {
	return f(input)
}

// CandidateStructurer produces a structured candidate from extracted text.
type CandidateStructurer interface {
	Structure(ctx context.Context, doc *types.ResumeDocument) (*types.CandidateProfile, error)
}

// JobStructurer produces a structured job profile from raw description text.
type JobStructurer interface {
	Structure(ctx context.Context, jobText string) (*types.JobProfile, error)
}

// SkillGrader grades candidate skills against a job.
type SkillGrader interface {
	Grade(ctx context.Context, candidate *types.CandidateProfile, job *types.JobProfile) (*types.SkillGrade, error)
}

// ProgressEvent represents a progress update during a match run
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	RunID    string `json:"run_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds the inputs for a single match run
type RunOptions struct {
	Resume     extraction.Input
	JobText    string
	Verbose    bool
	OnProgress ProgressCallback
}

// Result holds every artifact a completed match run produced.
type Result struct {
	RunID      uuid.UUID                   `json:"run_id,omitempty"`
	Document   *types.ResumeDocument       `json:"document,omitempty"`
	Candidate  *types.CandidateProfile     `json:"candidate"`
	Job        *types.JobProfile           `json:"job"`
	Grade      *types.SkillGrade           `json:"skill_grade"`
	Experience scoring.ExperienceBreakdown `json:"experience_breakdown"`
	Breakdown  types.ScoreBreakdown        `json:"score_breakdown"`
	Stages     []Stage                     `json:"stages"`
}

// defaultStepTimeout bounds each LLM-backed step.
const defaultStepTimeout = 2 * time.Minute

// Runner executes match runs. The LLM collaborators sit behind interfaces so
// the pipeline itself stays deterministic and testable.
type Runner struct {
	Extractor  TextExtractor
	Candidates CandidateStructurer
	Jobs       JobStructurer
	Grader     SkillGrader

	// DB is optional; when nil, nothing is persisted.
	DB *db.DB
	// Printer handles verbose output; unused when nil.
	Printer *observability.Printer
	// StepTimeout bounds each LLM-backed step. Zero means defaultStepTimeout.
	StepTimeout time.Duration
	// Now supplies the evaluation date for experience computation.
	Now func() time.Time
}

// NewRunner wires a runner from its four collaborators.
func NewRunner(extractor TextExtractor, candidates CandidateStructurer, jobs JobStructurer, grader SkillGrader) *Runner {
	return &Runner{
		Extractor:  extractor,
		Candidates: candidates,
		Jobs:       jobs,
		Grader:     grader,
		Now:        time.Now,
	}
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, runID uuid.UUID, step, category, message string, content any) {
	if opts.OnProgress == nil {
		return
	}
	event := ProgressEvent{
		Step:     step,
		Category: category,
		Message:  message,
		Content:  content,
	}
	if runID != uuid.Nil {
		event.RunID = runID.String()
	}
	opts.OnProgress(event)
}

func (r *Runner) stepCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := r.StepTimeout
	if timeout <= 0 {
		timeout = defaultStepTimeout
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

// Run executes the full match pipeline for one resume/job pair. The run
// advances through the stage machine strictly in order; any stage failure
// aborts the run and the partially-built result is discarded.
func (r *Runner) Run(ctx context.Context, opts RunOptions) (*Result, error) {
	state := NewState()
	verbose := opts.Verbose && r.Printer != nil

	// Stage 1: text extraction
	if opts.Verbose {
		fmt.Printf("Step 1/5: Extracting resume text...\n")
	}
	doc, err := r.Extractor.Extract(opts.Resume)
	if err != nil {
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}
	if err := state.Advance(StageTextExtracted); err != nil {
		return nil, err
	}
	emitProgress(&opts, uuid.Nil, db.StepResumeDocument, db.CategoryExtraction,
		fmt.Sprintf("Extracted %d characters of resume text", len(doc.RawText)), nil)

	// Stage 2: candidate structuring
	if opts.Verbose {
		fmt.Printf("Step 2/5: Structuring candidate profile...\n")
	}
	candCtx, cancel := r.stepCtx(ctx)
	candidate, err := r.Candidates.Structure(candCtx, doc)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("candidate structuring failed: %w", err)
	}
	if err := state.Advance(StageCandidateStructured); err != nil {
		return nil, err
	}
	if verbose {
		r.Printer.PrintCandidateProfile(candidate)
	}

	// Stage 3: job structuring
	if opts.Verbose {
		fmt.Printf("Step 3/5: Structuring job profile...\n")
	}
	jobCtx, cancel := r.stepCtx(ctx)
	job, err := r.Jobs.Structure(jobCtx, opts.JobText)
	cancel()
	if err != nil {
		return nil, fmt.Errorf("job structuring failed: %w", err)
	}
	if err := state.Advance(StageJobStructured); err != nil {
		return nil, err
	}
	if verbose {
		r.Printer.PrintJobProfile(job)
	}

	// Persistence starts once we know who and what the run is about.
	var runID uuid.UUID
	if r.DB != nil {
		runID, err = r.DB.CreateRun(ctx, candidate.Name, job.Company, job.RoleTitle)
		if err != nil {
			fmt.Printf("Warning: failed to create database run: %v\n", err)
			runID = uuid.Nil
		} else {
			_ = r.DB.SaveTextArtifact(ctx, runID, db.StepJobPosting, db.CategoryExtraction, opts.JobText)
			_ = r.DB.SaveArtifact(ctx, runID, db.StepResumeDocument, db.CategoryExtraction, doc)
			_ = r.DB.SaveArtifact(ctx, runID, db.StepCandidateProfile, db.CategoryStructuring, candidate)
			_ = r.DB.SaveArtifact(ctx, runID, db.StepJobProfile, db.CategoryStructuring, job)
		}
	}
	emitProgress(&opts, runID, db.StepJobProfile, db.CategoryStructuring,
		fmt.Sprintf("Structured job profile: %s at %s", job.RoleTitle, job.Company), job)

	// Stage 4: scoring
	if opts.Verbose {
		fmt.Printf("Step 4/5: Grading skills and computing scores...\n")
	}
	gradeCtx, cancel := r.stepCtx(ctx)
	grade, err := r.Grader.Grade(gradeCtx, candidate, job)
	cancel()
	if err != nil {
		r.failRun(ctx, runID)
		return nil, fmt.Errorf("skill grading failed: %w", err)
	}
	if verbose {
		r.Printer.PrintSkillGrade(grade)
	}

	skillScore, err := scoring.SkillScore(grade.Score)
	if err != nil {
		r.failRun(ctx, runID)
		return nil, err
	}

	var requiredYears float64
	if job.ExperienceRequired != nil {
		requiredYears = job.ExperienceRequired.Years
	}
	experience := scoring.ComputeExperienceBreakdown(candidate.Experience, r.now())
	experienceScore := scoring.ExperienceMatch(experience, requiredYears)

	var minDegree string
	var preferredFields []string
	if job.EducationRequired != nil {
		minDegree = job.EducationRequired.MinDegree
		preferredFields = job.EducationRequired.PreferredFields
	}
	educationScore := scoring.DegreeMatch(candidate.Education, minDegree, preferredFields)

	breakdown := scoring.NewScoreBreakdown(experienceScore, educationScore, skillScore)
	if err := state.Advance(StageScored); err != nil {
		r.failRun(ctx, runID)
		return nil, err
	}
	if verbose {
		r.Printer.PrintExperienceBreakdown(&experience)
		r.Printer.PrintScoreBreakdown(&breakdown)
	}
	emitProgress(&opts, runID, db.StepScoreBreakdown, db.CategoryScoring,
		fmt.Sprintf("Final match score: %.2f", breakdown.FinalScore), breakdown)

	// Stage 5: finalize
	if r.DB != nil && runID != uuid.Nil {
		_ = r.DB.SaveArtifact(ctx, runID, db.StepSkillGrade, db.CategoryScoring, grade)
		_ = r.DB.SaveArtifact(ctx, runID, db.StepExperienceBreakdown, db.CategoryScoring, experience)
		_ = r.DB.SaveArtifact(ctx, runID, db.StepScoreBreakdown, db.CategoryScoring, breakdown)
		_ = r.DB.CompleteRun(ctx, runID, "completed", &breakdown.FinalScore)
	}
	if err := state.Advance(StageDone); err != nil {
		return nil, err
	}
	if opts.Verbose {
		fmt.Printf("Step 5/5: Done. Final score: %.2f\n", breakdown.FinalScore)
	}

	return &Result{
		RunID:      runID,
		Document:   doc,
		Candidate:  candidate,
		Job:        job,
		Grade:      grade,
		Experience: experience,
		Breakdown:  breakdown,
		Stages:     state.History(),
	}, nil
}

// failRun marks a persisted run as failed; best effort.
func (r *Runner) failRun(ctx context.Context, runID uuid.UUID) {
	if r.DB != nil && runID != uuid.Nil {
		_ = r.DB.CompleteRun(ctx, runID, "failed", nil)
	}
}
