// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// JobProfile represents a structured job posting extracted from raw text.
// Immutable once produced by the structuring stage.
type JobProfile struct {
	Company              string                 `json:"company,omitempty"`
	RoleTitle            string                 `json:"role_title"`
	ExperienceRequired   *ExperienceRequirement `json:"experience_required,omitempty"`
	EducationRequired    *EducationRequirement  `json:"education_required,omitempty"`
	SkillsRequired       []string               `json:"skills_required"`
	SkillsOptional       []string               `json:"skills_optional,omitempty"`
	ToolsAndTechnologies []string               `json:"tools_and_technologies,omitempty"`
	Responsibilities     []string               `json:"responsibilities,omitempty"`
}

// ExperienceRequirement captures how much prior experience the posting asks for.
type ExperienceRequirement struct {
	Years  float64 `json:"years"`
	Domain string  `json:"domain,omitempty"`
}

// EducationRequirement captures the degree expectations of a posting.
// MinDegree uses the normalized scale: associate, bachelor, master, doctorate.
type EducationRequirement struct {
	MinDegree       string   `json:"min_degree,omitempty"`
	PreferredFields []string `json:"preferred_fields,omitempty"`
}
