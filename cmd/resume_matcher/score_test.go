package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
)

// resetScoreFlags clears the score command's flag globals so tests are
// order-independent.
func resetScoreFlags() {
	scoreCandidateFile = ""
	scoreJobFile = ""
	scoreGradeFile = ""
	scoreSkillScore = -1
	scoreOutputFile = ""
	scoreEvaluationDate = ""
}

func writeJSONFixture(t *testing.T, dir, name string, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func scoreFixtures(t *testing.T) (candidatePath, jobPath string) {
	t.Helper()
	dir := t.TempDir()

	candidate := types.CandidateProfile{
		Name: "Dana Smith",
		Experience: []types.WorkExperience{
			{Title: "Engineer", Company: "Acme", StartDate: "2018", EndDate: "2020"},
			{Title: "Engineer", Company: "Beta", StartDate: "2019", EndDate: "2021"},
		},
		Education: []types.Education{{Degree: "bachelor", Field: "computer science"}},
		Skills:    types.Skills{Technical: []string{"Go"}},
	}
	job := types.JobProfile{
		RoleTitle:          "Backend Engineer",
		ExperienceRequired: &types.ExperienceRequirement{Years: 5},
		EducationRequired:  &types.EducationRequirement{MinDegree: "bachelor"},
		SkillsRequired:     []string{"Go"},
	}

	return writeJSONFixture(t, dir, "candidate.json", candidate),
		writeJSONFixture(t, dir, "job.json", job)
}

func TestScoreCommand_WithSkillScore(t *testing.T) {
	resetScoreFlags()
	candidatePath, jobPath := scoreFixtures(t)
	outPath := filepath.Join(t.TempDir(), "result.json")

	scoreCandidateFile = candidatePath
	scoreJobFile = jobPath
	scoreSkillScore = 85
	scoreOutputFile = outPath
	scoreEvaluationDate = "2025-06-01"

	require.NoError(t, runScore(scoreCmd, nil))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)

	var result struct {
		Experience scoring.ExperienceBreakdown `json:"experience_breakdown"`
		Breakdown  types.ScoreBreakdown        `json:"score_breakdown"`
	}
	require.NoError(t, json.Unmarshal(data, &result))

	// Overlapping 2018-2020 and 2019-2021 merge to 3 years against the
	// required 5, so experience scores 60.
	assert.InDelta(t, 3.0, result.Experience.TotalYears, 0.01)
	assert.True(t, result.Experience.HasOverlap)
	assert.InDelta(t, 60.0, result.Breakdown.ExperienceScore, 0.01)
	assert.InDelta(t, 100.0, result.Breakdown.EducationScore, 0.01)
	assert.InDelta(t, 85.0, result.Breakdown.SkillScore, 0.01)
	// 0.20*60 + 0.10*100 + 0.70*85
	assert.InDelta(t, 81.5, result.Breakdown.FinalScore, 0.01)
}

func TestScoreCommand_WithSkillGradeFile(t *testing.T) {
	resetScoreFlags()
	candidatePath, jobPath := scoreFixtures(t)
	dir := t.TempDir()
	score := 70.0
	gradePath := writeJSONFixture(t, dir, "grade.json", types.SkillGrade{Score: &score})
	outPath := filepath.Join(dir, "result.json")

	scoreCandidateFile = candidatePath
	scoreJobFile = jobPath
	scoreGradeFile = gradePath
	scoreOutputFile = outPath
	scoreEvaluationDate = "2025-06-01"

	require.NoError(t, runScore(scoreCmd, nil))

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var result struct {
		Breakdown types.ScoreBreakdown `json:"score_breakdown"`
	}
	require.NoError(t, json.Unmarshal(data, &result))
	assert.InDelta(t, 70.0, result.Breakdown.SkillScore, 0.01)
}

func TestScoreCommand_MissingSkillInput(t *testing.T) {
	resetScoreFlags()
	candidatePath, jobPath := scoreFixtures(t)

	scoreCandidateFile = candidatePath
	scoreJobFile = jobPath

	err := runScore(scoreCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "either --skill-grade or --skill-score")
}

func TestScoreCommand_MutuallyExclusiveSkillInputs(t *testing.T) {
	resetScoreFlags()
	candidatePath, jobPath := scoreFixtures(t)

	scoreCandidateFile = candidatePath
	scoreJobFile = jobPath
	scoreGradeFile = "grade.json"
	scoreSkillScore = 50

	err := runScore(scoreCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestScoreCommand_MissingGradeScore(t *testing.T) {
	resetScoreFlags()
	candidatePath, jobPath := scoreFixtures(t)
	gradePath := writeJSONFixture(t, t.TempDir(), "grade.json", types.SkillGrade{})

	scoreCandidateFile = candidatePath
	scoreJobFile = jobPath
	scoreGradeFile = gradePath

	err := runScore(scoreCmd, nil)
	require.Error(t, err)

	var invalid *scoring.InvalidScoreError
	assert.ErrorAs(t, err, &invalid)
}

func TestScoreCommand_InvalidDate(t *testing.T) {
	resetScoreFlags()
	candidatePath, jobPath := scoreFixtures(t)

	scoreCandidateFile = candidatePath
	scoreJobFile = jobPath
	scoreSkillScore = 50
	scoreEvaluationDate = "June 2025"

	err := runScore(scoreCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--as-of")
}
