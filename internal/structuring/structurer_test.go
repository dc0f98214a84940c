package structuring

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/types"
)

// fakeClient returns scripted responses in order and records call counts.
type fakeClient struct {
	responses []string
	errs      []error
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
	if idx < len(f.errs) && f.errs[idx] != nil {
		return "", f.errs[idx]
	}
	if idx >= len(f.responses) {
		return "", fmt.Errorf("unexpected call %d", idx)
	}
	return f.responses[idx], nil
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }
func (f *fakeClient) Close() error                  { return nil }

const validCandidateJSON = `{
	"name": "Jane Doe",
	"contact": {"email": "llm-guess@example.com"},
	"experience": [
		{"title": "Engineer", "company": "Acme", "start_date": "2020-01", "end_date": "present"}
	],
	"education": [{"degree": "B.Tech", "field": "Computer Science"}],
	"skills": {"technical": ["golang", "Go"], "tools": ["k8s"]}
}`

const validJobJSON = `{
	"role_title": "Backend Engineer",
	"company": "Acme",
	"experience_required": {"years": 3},
	"education_required": {"min_degree": "bachelor", "preferred_fields": ["Computer Science"]},
	"skills_required": ["golang", "postgres"],
	"skills_optional": ["k8s"]
}`

func sampleDoc() *types.ResumeDocument {
	return &types.ResumeDocument{
		RawText: "Jane Doe\nEngineer at Acme",
		Links: types.LinkSet{
			Email:    "jane@gmail.com",
			LinkedIn: "https://linkedin.com/in/janedoe",
			GitHub:   "https://github.com/janedoe",
			Projects: []string{"https://janedoe.dev"},
		},
		Phones: []string{"9876543210"},
	}
}

func TestCandidateStructurer_Success(t *testing.T) {
	client := &fakeClient{responses: []string{validCandidateJSON}}
	s := NewCandidateStructurer(client)

	profile, err := s.Structure(context.Background(), sampleDoc())
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)

	assert.Equal(t, "Jane Doe", profile.Name)
	// Skill lists are normalized and deduplicated
	assert.Equal(t, []string{"Go"}, profile.Skills.Technical)
	assert.Equal(t, []string{"Kubernetes"}, profile.Skills.Tools)
}

func TestCandidateStructurer_ContactBackfill(t *testing.T) {
	client := &fakeClient{responses: []string{validCandidateJSON}}
	s := NewCandidateStructurer(client)

	profile, err := s.Structure(context.Background(), sampleDoc())
	require.NoError(t, err)

	// Document links win over the model's guess
	assert.Equal(t, "jane@gmail.com", profile.Contact.Email)
	assert.Equal(t, "https://linkedin.com/in/janedoe", profile.Contact.LinkedIn)
	assert.Equal(t, "https://github.com/janedoe", profile.Contact.GitHub)
	assert.Equal(t, "9876543210", profile.Contact.Phone)
	assert.Equal(t, "https://janedoe.dev", profile.Contact.Portfolio)
}

func TestCandidateStructurer_RetriesOnceOnMalformedJSON(t *testing.T) {
	client := &fakeClient{responses: []string{"{ not json", validCandidateJSON}}
	s := NewCandidateStructurer(client)

	profile, err := s.Structure(context.Background(), sampleDoc())
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
	assert.Equal(t, "Jane Doe", profile.Name)
}

func TestCandidateStructurer_FailsAfterRetry(t *testing.T) {
	client := &fakeClient{responses: []string{"{ not json", "still not json"}}
	s := NewCandidateStructurer(client)

	_, err := s.Structure(context.Background(), sampleDoc())
	require.Error(t, err)
	assert.Equal(t, 2, client.calls)

	var structErr *StructuringError
	require.ErrorAs(t, err, &structErr)
	assert.Equal(t, "candidate", structErr.Target)
	assert.Equal(t, 2, structErr.Attempts)
}

func TestCandidateStructurer_SchemaViolationConsumesAttempt(t *testing.T) {
	// Valid JSON that fails schema validation (missing required fields)
	client := &fakeClient{responses: []string{`{"summary": "no name"}`, validCandidateJSON}}
	s := NewCandidateStructurer(client)

	profile, err := s.Structure(context.Background(), sampleDoc())
	require.NoError(t, err)
	assert.Equal(t, 2, client.calls)
	assert.Equal(t, "Jane Doe", profile.Name)
}

func TestCandidateStructurer_TransportErrorNotRetried(t *testing.T) {
	client := &fakeClient{errs: []error{errors.New("connection refused")}}
	s := NewCandidateStructurer(client)

	_, err := s.Structure(context.Background(), sampleDoc())
	require.Error(t, err)
	assert.Equal(t, 1, client.calls)

	var apiErr *APICallError
	assert.ErrorAs(t, err, &apiErr)
}

func TestCandidateStructurer_PromptIncludesDocument(t *testing.T) {
	client := &fakeClient{responses: []string{validCandidateJSON}}
	s := NewCandidateStructurer(client)

	_, err := s.Structure(context.Background(), sampleDoc())
	require.NoError(t, err)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Jane Doe\nEngineer at Acme")
	assert.Contains(t, client.prompts[0], "linkedin.com/in/janedoe")
}

func TestJobStructurer_Success(t *testing.T) {
	client := &fakeClient{responses: []string{validJobJSON}}
	s := NewJobStructurer(client)

	profile, err := s.Structure(context.Background(), "We need a backend engineer...")
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", profile.RoleTitle)
	require.NotNil(t, profile.ExperienceRequired)
	assert.Equal(t, 3.0, profile.ExperienceRequired.Years)
	require.NotNil(t, profile.EducationRequired)
	assert.Equal(t, "bachelor", profile.EducationRequired.MinDegree)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, profile.SkillsRequired)
}

func TestJobStructurer_ArrayWrappedResponse(t *testing.T) {
	client := &fakeClient{responses: []string{"[" + validJobJSON + "]"}}
	s := NewJobStructurer(client)

	profile, err := s.Structure(context.Background(), "job text")
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls)
	assert.Equal(t, "Backend Engineer", profile.RoleTitle)
}

func TestJobStructurer_FailsAfterRetry(t *testing.T) {
	client := &fakeClient{responses: []string{"nope", "nope"}}
	s := NewJobStructurer(client)

	_, err := s.Structure(context.Background(), "job text")
	require.Error(t, err)

	var structErr *StructuringError
	require.ErrorAs(t, err, &structErr)
	assert.Equal(t, "job", structErr.Target)
}
