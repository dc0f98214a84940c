package grading

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/types"
)

type fakeClient struct {
	responses []string
	calls     int
	prompts   []string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	return f.next(prompt)
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	return f.next(prompt)
}

func (f *fakeClient) next(prompt string) (string, error) {
	idx := f.calls
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if idx >= len(f.responses) {
		return "", fmt.Errorf("unexpected call %d", idx)
	}
	return f.responses[idx], nil
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

func sampleCandidate() *types.CandidateProfile {
	return &types.CandidateProfile{
		Name:   "Jane Doe",
		Skills: types.Skills{Technical: []string{"Go", "PostgreSQL"}, Tools: []string{"Docker"}},
		Experience: []types.WorkExperience{
			{Title: "Engineer", Company: "Acme", StartDate: "2020-01", EndDate: "present"},
		},
		Projects:       []types.Project{{Name: "matcher", Skills: []string{"Go"}}},
		Certifications: []string{"CKA"},
	}
}

func sampleJob() *types.JobProfile {
	return &types.JobProfile{
		RoleTitle:            "Backend Engineer",
		SkillsRequired:       []string{"Go", "PostgreSQL"},
		SkillsOptional:       []string{"Kubernetes"},
		ToolsAndTechnologies: []string{"Docker"},
		Responsibilities:     []string{"Design APIs"},
	}
}

func TestBuildPayload(t *testing.T) {
	payload := BuildPayload(sampleCandidate(), sampleJob())

	assert.Equal(t, []string{"Go", "PostgreSQL"}, payload.JDRequiredSkills)
	assert.Equal(t, []string{"Kubernetes"}, payload.JDOptionalSkills)
	// Candidate skills are the flattened technical + tools list
	assert.Equal(t, []string{"Go", "PostgreSQL", "Docker"}, payload.CandidateSkills)
	assert.Equal(t, []string{"Docker"}, payload.CandidateTools)
	assert.Equal(t, []string{"CKA"}, payload.CandidateCerts)
	require.Len(t, payload.CandidateProjects, 1)
}

func TestGrade_Success(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"final_skill_match_score": 85, "matched_skills": ["Go"], "missing_skills": ["Kubernetes"], "reasoning": "solid"}`,
	}}
	g := NewGrader(client)

	grade, err := g.Grade(context.Background(), sampleCandidate(), sampleJob())
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	require.NotNil(t, grade.Score)
	assert.Equal(t, 85.0, *grade.Score)
	assert.Equal(t, []string{"Go"}, grade.Matched)
}

func TestGrade_ArrayWrappedResponse(t *testing.T) {
	client := &fakeClient{responses: []string{
		`[{"final_skill_match_score": 70}]`,
	}}
	g := NewGrader(client)

	grade, err := g.Grade(context.Background(), sampleCandidate(), sampleJob())
	require.NoError(t, err)
	require.NotNil(t, grade.Score)
	assert.Equal(t, 70.0, *grade.Score)
}

func TestGrade_RetriesOnceThenFails(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"matched_skills": ["Go"]}`, // missing required score field
		`not json`,
	}}
	g := NewGrader(client)

	_, err := g.Grade(context.Background(), sampleCandidate(), sampleJob())
	require.Error(t, err)
	assert.Equal(t, 2, client.calls)

	var gradingErr *GradingError
	require.ErrorAs(t, err, &gradingErr)
	assert.Equal(t, 2, gradingErr.Attempts)
}

func TestGrade_PromptCarriesPayload(t *testing.T) {
	client := &fakeClient{responses: []string{`{"final_skill_match_score": 50}`}}
	g := NewGrader(client)

	_, err := g.Grade(context.Background(), sampleCandidate(), sampleJob())
	require.NoError(t, err)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "jd_required_skills")
	assert.Contains(t, client.prompts[0], "PostgreSQL")
}
