package scoring

import "math"

// SkillScore validates the externally graded skill score and clamps it to
// [0,100]. A nil (missing) or non-finite value is rejected with an
// InvalidScoreError rather than defaulted, because skill carries 70% of the
// final weight.
func SkillScore(raw *float64) (float64, error) {
	if raw == nil {
		return 0, &InvalidScoreError{Reason: "final_skill_match_score is missing"}
	}
	value := *raw
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, &InvalidScoreError{Reason: "final_skill_match_score is not a finite number"}
	}
	return clampScore(value), nil
}
