package structuring

import (
	"context"
	"encoding/json"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/prompts"
	"github.com/jonathan/resume-matcher/internal/schemas"
	"github.com/jonathan/resume-matcher/internal/types"
)

// CandidateStructurer extracts a CandidateProfile from resume text.
type CandidateStructurer struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewCandidateStructurer returns a structurer using the standard model tier.
func NewCandidateStructurer(client llm.Client) *CandidateStructurer {
	return &CandidateStructurer{client: client, tier: llm.TierStandard}
}

// Structure extracts a structured profile from the document and backfills
// contact details from the links found during text extraction. Links take
// precedence over whatever the model put in the contact block.
func (s *CandidateStructurer) Structure(ctx context.Context, doc *types.ResumeDocument) (*types.CandidateProfile, error) {
	linksJSON, err := json.Marshal(doc.Links)
	if err != nil {
		return nil, &APICallError{Message: "failed to encode links", Cause: err}
	}

	template := prompts.MustGet("structuring.json", "structure-candidate")
	prompt := prompts.Format(template, map[string]string{
		"ResumeText": doc.RawText,
		"Links":      string(linksJSON),
	})

	var profile types.CandidateProfile
	if err := generateStructured(ctx, s.client, s.tier, prompt, schemas.CandidateProfileSchema, "candidate", &profile); err != nil {
		return nil, err
	}

	backfillContact(&profile, doc)
	profile.Skills.Technical = NormalizeSkills(profile.Skills.Technical)
	profile.Skills.Tools = NormalizeSkills(profile.Skills.Tools)

	return &profile, nil
}

// backfillContact overwrites contact fields with values recovered directly
// from the document. Extracted links are more reliable than LLM output since
// the model only sees the anchor text, not the URL targets.
func backfillContact(profile *types.CandidateProfile, doc *types.ResumeDocument) {
	links := doc.Links
	if links.Email != "" {
		profile.Contact.Email = links.Email
	}
	if links.LinkedIn != "" {
		profile.Contact.LinkedIn = links.LinkedIn
	}
	if links.GitHub != "" {
		profile.Contact.GitHub = links.GitHub
	}
	if profile.Contact.Phone == "" && len(doc.Phones) > 0 {
		profile.Contact.Phone = doc.Phones[0]
	}
	if profile.Contact.Portfolio == "" && len(links.Projects) > 0 {
		profile.Contact.Portfolio = links.Projects[0]
	}
	if len(links.Projects) > 0 {
		profile.Contact.OtherLinks = links.Projects
	}
}
