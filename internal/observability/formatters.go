// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// listPreview writes up to maxItemsToShow items as bullets with a "more" line.
func listPreview(sb *strings.Builder, items []string, limit int) {
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
}

// PrintCandidateProfile outputs a human-readable summary of the structured candidate.
func (p *Printer) PrintCandidateProfile(profile *types.CandidateProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.Name))
	if profile.Contact.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", profile.Contact.Email))
	}
	sb.WriteString(fmt.Sprintf("History:  %d positions, %d education entries\n", len(profile.Experience), len(profile.Education)))

	if skills := profile.Skills.All(); len(skills) > 0 {
		sb.WriteString("\nSkills:\n")
		listPreview(&sb, skills, maxItemsToShow)
	}
	if len(profile.Certifications) > 0 {
		sb.WriteString("\nCertifications:\n")
		listPreview(&sb, profile.Certifications, 3)
	}

	p.printBox("STRUCTURED CANDIDATE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobProfile outputs a human-readable summary of the structured job.
func (p *Printer) PrintJobProfile(profile *types.JobProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Company:  %s\n", profile.Company))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", profile.RoleTitle))
	if profile.ExperienceRequired != nil {
		sb.WriteString(fmt.Sprintf("Requires: %.1f years", profile.ExperienceRequired.Years))
		if profile.ExperienceRequired.Domain != "" {
			sb.WriteString(fmt.Sprintf(" in %s", profile.ExperienceRequired.Domain))
		}
		sb.WriteString("\n")
	}
	if profile.EducationRequired != nil && profile.EducationRequired.MinDegree != "" {
		sb.WriteString(fmt.Sprintf("Degree:   %s\n", profile.EducationRequired.MinDegree))
	}

	if len(profile.SkillsRequired) > 0 {
		sb.WriteString("\nRequired Skills:\n")
		listPreview(&sb, profile.SkillsRequired, maxItemsToShow)
	}
	if len(profile.SkillsOptional) > 0 {
		sb.WriteString("\nNice-to-haves:\n")
		listPreview(&sb, profile.SkillsOptional, 3)
	}

	p.printBox("STRUCTURED JOB", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintExperienceBreakdown outputs the per-entry experience computation.
func (p *Printer) PrintExperienceBreakdown(breakdown *scoring.ExperienceBreakdown) {
	if breakdown == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total:    %.2f years", breakdown.TotalYears))
	if breakdown.HasOverlap {
		sb.WriteString(" (overlaps merged)")
	}
	sb.WriteString("\n\n")

	count := min(len(breakdown.Entries), maxItemsToShow)
	for i := 0; i < count; i++ {
		entry := breakdown.Entries[i]
		if entry.Parsed {
			sb.WriteString(fmt.Sprintf("  • %s: %.2f years\n", entry.Title, entry.Years))
		} else {
			sb.WriteString(fmt.Sprintf("  • %s: skipped (%s)\n", entry.Title, entry.Reason))
		}
	}
	if len(breakdown.Entries) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more entries\n", len(breakdown.Entries)-maxItemsToShow))
	}

	p.printBox("EXPERIENCE BREAKDOWN", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScoreBreakdown outputs the component scores and the final weighted score.
func (p *Printer) PrintScoreBreakdown(breakdown *types.ScoreBreakdown) {
	if breakdown == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Experience: %6.2f  (weight %.0f%%)\n", breakdown.ExperienceScore, scoring.ExperienceWeight*100))
	sb.WriteString(fmt.Sprintf("Education:  %6.2f  (weight %.0f%%)\n", breakdown.EducationScore, scoring.EducationWeight*100))
	sb.WriteString(fmt.Sprintf("Skills:     %6.2f  (weight %.0f%%)\n", breakdown.SkillScore, scoring.SkillWeight*100))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("Final:      %6.2f", breakdown.FinalScore))

	p.printBox("MATCH SCORE", sb.String())
}

// PrintSkillGrade outputs the grading collaborator's reasoning.
func (p *Printer) PrintSkillGrade(grade *types.SkillGrade) {
	if grade == nil {
		return
	}

	var sb strings.Builder
	if grade.Score != nil {
		sb.WriteString(fmt.Sprintf("Score:    %.2f\n", *grade.Score))
	}
	if len(grade.Matched) > 0 {
		sb.WriteString("\nMatched:\n")
		listPreview(&sb, grade.Matched, maxItemsToShow)
	}
	if len(grade.Missing) > 0 {
		sb.WriteString("\nMissing:\n")
		listPreview(&sb, grade.Missing, maxItemsToShow)
	}
	if grade.Reasoning != "" {
		sb.WriteString("\n" + grade.Reasoning + "\n")
	}

	p.printBox("SKILL GRADE", strings.TrimSuffix(sb.String(), "\n"))
}
