// Package pipeline provides the high-level orchestration for a resume/job
// match run. A run moves through a fixed linear sequence of stages; each
// stage's output is computed once and never revisited.
package pipeline

import "fmt"

// Stage identifies a point in the match pipeline.
type Stage string

// Pipeline stages, in execution order.
const (
	StageInit                Stage = "init"
	StageTextExtracted       Stage = "text_extracted"
	StageCandidateStructured Stage = "candidate_structured"
	StageJobStructured       Stage = "job_structured"
	StageScored              Stage = "scored"
	StageDone                Stage = "done"
)

// nextStage holds the single legal successor of each stage.
var nextStage = map[Stage]Stage{
	StageInit:                StageTextExtracted,
	StageTextExtracted:       StageCandidateStructured,
	StageCandidateStructured: StageJobStructured,
	StageJobStructured:       StageScored,
	StageScored:              StageDone,
}

// InvalidTransitionError reports an attempt to move a run out of order.
type InvalidTransitionError struct {
	From Stage
	To   Stage
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid pipeline transition %s -> %s", e.From, e.To)
}

// State tracks the current stage of a single match run. A State is single-use:
// once it reaches StageDone or fails, it is discarded with its run.
type State struct {
	stage   Stage
	history []Stage
}

// NewState returns a run state positioned at StageInit.
func NewState() *State {
	return &State{stage: StageInit, history: []Stage{StageInit}}
}

// Stage returns the current stage.
func (s *State) Stage() Stage {
	return s.stage
}

// History returns the stages visited so far, in order.
func (s *State) History() []Stage {
	out := make([]Stage, len(s.history))
	copy(out, s.history)
	return out
}

// Advance moves the run to the given stage. Only the single legal successor
// of the current stage is accepted; anything else is an InvalidTransitionError.
func (s *State) Advance(to Stage) error {
	next, ok := nextStage[s.stage]
	if !ok || next != to {
		return &InvalidTransitionError{From: s.stage, To: to}
	}
	s.stage = to
	s.history = append(s.history, to)
	return nil
}

// Done reports whether the run has reached its terminal stage.
func (s *State) Done() bool {
	return s.stage == StageDone
}
