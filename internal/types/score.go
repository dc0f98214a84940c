// Package types provides type definitions for structured data used throughout the resume-matcher system.
package types

// ScoreBreakdown is the final output of a match run. All component scores and
// the final score are in [0,100]. The final score is the fixed weighted
// combination computed by the scoring package; it is never recomputed here.
type ScoreBreakdown struct {
	ExperienceScore float64 `json:"experience_score"`
	EducationScore  float64 `json:"education_score"`
	SkillScore      float64 `json:"skill_score"`
	FinalScore      float64 `json:"final_score"`
}

// SkillGrade is the raw response contract of the external skill-grading
// collaborator. Score is a pointer so that a missing field is distinguishable
// from a literal zero; the scoring adapter rejects missing values.
type SkillGrade struct {
	Score     *float64 `json:"final_skill_match_score"`
	Matched   []string `json:"matched_skills,omitempty"`
	Missing   []string `json:"missing_skills,omitempty"`
	Reasoning string   `json:"reasoning,omitempty"`
}
