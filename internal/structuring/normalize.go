package structuring

import "strings"

// skillNormalizations maps common skill name variants to canonical names
var skillNormalizations = map[string]string{
	"golang":     "Go",
	"go lang":    "Go",
	"javascript": "JavaScript",
	"js":         "JavaScript",
	"typescript": "TypeScript",
	"ts":         "TypeScript",
	"k8s":        "Kubernetes",
	"kubernetes": "Kubernetes",
	"react.js":   "React",
	"reactjs":    "React",
	"vue.js":     "Vue",
	"vuejs":      "Vue",
	"node.js":    "Node.js",
	"nodejs":     "Node.js",
	"postgres":   "PostgreSQL",
	"postgresql": "PostgreSQL",
}

// NormalizeSkillName normalizes a skill name to its canonical form.
func NormalizeSkillName(skillName string) string {
	normalized := strings.TrimSpace(skillName)
	if normalized == "" {
		return ""
	}

	lower := strings.ToLower(normalized)
	if canonical, ok := skillNormalizations[lower]; ok {
		return canonical
	}

	// Single all-lowercase or all-uppercase words get title casing;
	// everything else (mixed case, multi-word) is kept as written.
	if !strings.Contains(normalized, " ") &&
		(normalized == lower || normalized == strings.ToUpper(normalized)) &&
		len(normalized) > 1 {
		return strings.ToUpper(normalized[:1]) + strings.ToLower(normalized[1:])
	}

	return normalized
}

// NormalizeSkills normalizes and deduplicates a skill list, preserving order.
func NormalizeSkills(skills []string) []string {
	if len(skills) == 0 {
		return skills
	}

	normalized := make([]string, 0, len(skills))
	seen := make(map[string]bool)
	for _, skill := range skills {
		name := NormalizeSkillName(skill)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		normalized = append(normalized, name)
	}
	return normalized
}
