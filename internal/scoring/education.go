package scoring

import (
	"strings"

	"github.com/jonathan/resume-matcher/internal/types"
)

// degreeRank maps normalized degree levels to their place on the ordinal scale.
// Unknown or empty degrees rank as 0 ("none").
var degreeRank = map[string]int{
	"none":      0,
	"associate": 1,
	"bachelor":  2,
	"master":    3,
	"doctorate": 4,
}

// Policy constants for partial credit. Level satisfaction matters more than
// field specificity, so a field mismatch with a satisfied level still scores
// well, while a level shortfall is penalized harder.
const (
	// levelShortfallScore is awarded when the candidate's highest degree is
	// exactly one level below the requirement.
	levelShortfallScore = 50.0
	// fieldMismatchCeiling caps the score when no education field matches the
	// job's preferred fields.
	fieldMismatchCeiling = 70.0
)

// relatedFields maps a field to fields considered equivalent for matching.
// Keys and values are lowercase.
var relatedFields = map[string][]string{
	"computer science":       {"software engineering", "computer engineering", "information technology", "cs", "cse"},
	"software engineering":   {"computer science", "computer engineering", "cs"},
	"information technology": {"computer science", "cs", "it"},
	"data science":           {"statistics", "mathematics", "computer science", "machine learning", "ds"},
	"statistics":             {"mathematics", "data science", "economics"},
	"mathematics":            {"statistics", "physics", "computer science"},
	"electrical engineering": {"computer engineering", "electronics", "eee", "ece"},
	"machine learning":       {"data science", "artificial intelligence", "ai", "ml"},
}

// DegreeMatch scores the candidate's education against the job's degree and
// field requirements, returning a value in [0,100].
//
// Level scoring over the ordinal scale none < associate < bachelor < master <
// doctorate: meeting or exceeding the required level scores 100; one level
// below scores 50; two or more below scores 0. An empty required level is
// treated as satisfied. When preferred fields are given and no education entry
// matches any of them, the result is capped at 70. No education at all scores 0.
func DegreeMatch(education []types.Education, requiredLevel string, requiredFields []string) float64 {
	if len(education) == 0 {
		return 0
	}

	highest := 0
	for _, edu := range education {
		if rank := degreeRank[NormalizeDegreeLevel(edu.Degree)]; rank > highest {
			highest = rank
		}
	}

	score := 100.0
	if required, ok := degreeRank[NormalizeDegreeLevel(requiredLevel)]; ok && required > 0 {
		switch {
		case highest >= required:
			score = 100
		case highest == required-1:
			score = levelShortfallScore
		default:
			score = 0
		}
	}

	if len(requiredFields) > 0 && !anyFieldMatches(education, requiredFields) && score > fieldMismatchCeiling {
		score = fieldMismatchCeiling
	}

	return score
}

// NormalizeDegreeLevel maps free-form degree strings onto the ordinal scale.
// It recognizes common abbreviations (B.Tech, MSc, PhD) in addition to the
// canonical names. Unrecognized input normalizes to "none".
func NormalizeDegreeLevel(degree string) string {
	d := strings.ToLower(strings.TrimSpace(degree))
	if d == "" {
		return "none"
	}

	switch {
	case strings.Contains(d, "phd"), strings.Contains(d, "ph.d"), strings.Contains(d, "doctor"):
		return "doctorate"
	case strings.Contains(d, "master"), strings.Contains(d, "m.tech"), strings.Contains(d, "mtech"),
		strings.Contains(d, "msc"), strings.Contains(d, "m.s"), d == "ms", strings.Contains(d, "mba"),
		strings.Contains(d, "m.e"):
		return "master"
	case strings.Contains(d, "bachelor"), strings.Contains(d, "b.tech"), strings.Contains(d, "btech"),
		strings.Contains(d, "bsc"), strings.Contains(d, "b.s"), d == "bs", d == "be",
		strings.Contains(d, "b.e"):
		return "bachelor"
	case strings.Contains(d, "associate"), strings.Contains(d, "diploma"):
		return "associate"
	}
	return "none"
}

// anyFieldMatches reports whether any education entry's field matches any
// required field, by exact/substring comparison or via the related-fields map.
func anyFieldMatches(education []types.Education, requiredFields []string) bool {
	for _, edu := range education {
		field := strings.ToLower(strings.TrimSpace(edu.Field))
		if field == "" {
			continue
		}
		for _, required := range requiredFields {
			if fieldMatches(field, strings.ToLower(strings.TrimSpace(required))) {
				return true
			}
		}
	}
	return false
}

func fieldMatches(field, required string) bool {
	if required == "" {
		return false
	}
	if field == required || strings.Contains(field, required) || strings.Contains(required, field) {
		return true
	}
	for _, related := range relatedFields[required] {
		if field == related || strings.Contains(field, related) {
			return true
		}
	}
	return false
}
