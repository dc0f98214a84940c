// Package types provides type definitions for structured data used throughout the resume-matcher system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CandidateProfile represents a structured candidate extracted from resume text.
// It is produced once by the structuring stage and treated as immutable afterwards.
type CandidateProfile struct {
	Name           string           `json:"name"`
	Summary        string           `json:"summary,omitempty"`
	Contact        Contact          `json:"contact"`
	Experience     []WorkExperience `json:"experience"`
	Education      []Education      `json:"education"`
	Skills         Skills           `json:"skills"`
	Projects       []Project        `json:"projects,omitempty"`
	Certifications []string         `json:"certifications,omitempty"`
	Links          []string         `json:"links,omitempty"`
}

// Contact holds candidate contact details. The structuring stage fills what the
// LLM found in the text; the pipeline then backfills from extracted document links.
type Contact struct {
	Email      string   `json:"email,omitempty"`
	Phone      string   `json:"phone,omitempty"`
	LinkedIn   string   `json:"linkedin,omitempty"`
	GitHub     string   `json:"github,omitempty"`
	Portfolio  string   `json:"portfolio,omitempty"`
	OtherLinks []string `json:"other_links,omitempty"`
}

// WorkExperience represents a single employment entry.
// Dates may be partial ("2021") or month-level ("2021-03"); EndDate may be
// "present" for a current position.
type WorkExperience struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	Description string `json:"description,omitempty"`
}

// Education represents a single education entry.
type Education struct {
	Degree string `json:"degree"`
	Field  string `json:"field,omitempty"`
	School string `json:"school,omitempty"`
}

// Skills separates technical skills from tools/technologies, mirroring how
// resumes typically group them.
type Skills struct {
	Technical []string `json:"technical,omitempty"`
	Tools     []string `json:"tools,omitempty"`
}

// All returns technical skills and tools as a single flat list.
func (s Skills) All() []string {
	all := make([]string, 0, len(s.Technical)+len(s.Tools))
	all = append(all, s.Technical...)
	all = append(all, s.Tools...)
	return all
}

// Project represents a candidate project with an optional link.
type Project struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	Skills      []string `json:"skills,omitempty"`
}

// ResumeDocument holds the raw output of the text-extraction stage: cleaned
// plain text plus links classified from the document.
type ResumeDocument struct {
	RawText string   `json:"raw_text"`
	Links   LinkSet  `json:"links"`
	Phones  []string `json:"phones,omitempty"`
}

// LinkSet classifies links found in a resume document.
type LinkSet struct {
	Email    string   `json:"email,omitempty"`
	LinkedIn string   `json:"linkedin,omitempty"`
	GitHub   string   `json:"github,omitempty"`
	Medium   string   `json:"medium,omitempty"`
	Projects []string `json:"projects,omitempty"`
}
