package structuring

import (
	"context"
	"strings"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

// JobStructurer extracts a JobProfile from job description text.
type JobStructurer struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewJobStructurer returns a structurer using the standard model tier.
func NewJobStructurer(client llm.Client) *JobStructurer {
	return &JobStructurer{client: client, tier: llm.TierStandard}
}

// Structure extracts a structured job profile from a job description.
func (s *JobStructurer) Structure(ctx context.Context, jobText string) (*types.JobProfile, error) {
	template := prompts.MustGet("structuring.json", "structure-job")
	prompt := prompts.Format(template, map[string]string{
		"JobText": jobText,
	})

	var profile types.JobProfile
	if err := generateStructured(ctx, s.client, s.tier, prompt, schemas.JobProfileSchema, "job", &profile); err != nil {
		return nil, err
	}

	postProcessJob(&profile)
	return &profile, nil
}

// postProcessJob normalizes skill lists and the degree level so downstream
// scoring sees canonical values regardless of how the posting phrased them.
func postProcessJob(profile *types.JobProfile) {
	profile.SkillsRequired = NormalizeSkills(profile.SkillsRequired)
	profile.SkillsOptional = NormalizeSkills(profile.SkillsOptional)
	profile.ToolsAndTechnologies = NormalizeSkills(profile.ToolsAndTechnologies)

	if profile.EducationRequired != nil {
		profile.EducationRequired.MinDegree = strings.ToLower(strings.TrimSpace(profile.EducationRequired.MinDegree))
	}
}
