package scoring

import "github.com/jonathan/resume-matcher/internal/types"

// Scoring policy weights. These three constants are the single source of truth
// for how component scores combine into the final match score; changing the
// product's scoring policy means changing them and nothing else.
const (
	ExperienceWeight = 0.20
	EducationWeight  = 0.10
	SkillWeight      = 0.70
)

// Combine applies the fixed weighted formula to the three component scores.
// Each component is clamped to [0,100] before weighting, so the result is
// always in [0,100]. Pure function: re-running it on a previously produced
// breakdown's components reproduces the same final score exactly.
func Combine(experienceScore, educationScore, skillScore float64) float64 {
	return ExperienceWeight*clampScore(experienceScore) +
		EducationWeight*clampScore(educationScore) +
		SkillWeight*clampScore(skillScore)
}

// NewScoreBreakdown clamps the components and assembles the final breakdown.
func NewScoreBreakdown(experienceScore, educationScore, skillScore float64) types.ScoreBreakdown {
	return types.ScoreBreakdown{
		ExperienceScore: clampScore(experienceScore),
		EducationScore:  clampScore(educationScore),
		SkillScore:      clampScore(skillScore),
		FinalScore:      Combine(experienceScore, educationScore, skillScore),
	}
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
