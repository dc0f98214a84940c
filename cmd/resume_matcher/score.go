package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a structured candidate against a structured job",
	Long:  "Compute experience, education and final match scores from already-structured CandidateProfile and JobProfile JSON files. The skill score comes from a SkillGrade JSON file or the --skill-score flag. Fully deterministic; no LLM calls.",
	RunE:  runScore,
}

var (
	scoreCandidateFile  string
	scoreJobFile        string
	scoreGradeFile      string
	scoreSkillScore     float64
	scoreOutputFile     string
	scoreEvaluationDate string
)

func init() {
	scoreCmd.Flags().StringVar(&scoreCandidateFile, "candidate", "", "Path to CandidateProfile JSON (required)")
	scoreCmd.Flags().StringVar(&scoreJobFile, "job", "", "Path to JobProfile JSON (required)")
	scoreCmd.Flags().StringVar(&scoreGradeFile, "skill-grade", "", "Path to SkillGrade JSON (mutually exclusive with --skill-score)")
	scoreCmd.Flags().Float64Var(&scoreSkillScore, "skill-score", -1, "Skill score in [0,100] (mutually exclusive with --skill-grade)")
	scoreCmd.Flags().StringVarP(&scoreOutputFile, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	scoreCmd.Flags().StringVar(&scoreEvaluationDate, "as-of", "", "Evaluation date for open-ended experience entries (YYYY-MM-DD, defaults to today)")
	_ = scoreCmd.MarkFlagRequired("candidate")
	_ = scoreCmd.MarkFlagRequired("job")

	rootCmd.AddCommand(scoreCmd)
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func runScore(_ *cobra.Command, _ []string) error {
	// -1 is the unset sentinel; valid skill scores are in [0,100].
	gradeProvided := scoreGradeFile != ""
	scoreProvided := scoreSkillScore >= 0
	if gradeProvided && scoreProvided {
		return fmt.Errorf("--skill-grade and --skill-score are mutually exclusive; provide only one")
	}
	if !gradeProvided && !scoreProvided {
		return fmt.Errorf("either --skill-grade or --skill-score must be provided")
	}

	var candidate types.CandidateProfile
	if err := readJSONFile(scoreCandidateFile, &candidate); err != nil {
		return err
	}
	var job types.JobProfile
	if err := readJSONFile(scoreJobFile, &job); err != nil {
		return err
	}

	var rawSkill *float64
	if gradeProvided {
		var grade types.SkillGrade
		if err := readJSONFile(scoreGradeFile, &grade); err != nil {
			return err
		}
		rawSkill = grade.Score
	} else {
		rawSkill = &scoreSkillScore
	}

	skillScore, err := scoring.SkillScore(rawSkill)
	if err != nil {
		return err
	}

	now := time.Now()
	if scoreEvaluationDate != "" {
		now, err = time.Parse("2006-01-02", scoreEvaluationDate)
		if err != nil {
			return fmt.Errorf("invalid --as-of date %q: %w", scoreEvaluationDate, err)
		}
	}

	experience := scoring.ComputeExperienceBreakdown(candidate.Experience, now)

	var requiredYears float64
	if job.ExperienceRequired != nil {
		requiredYears = job.ExperienceRequired.Years
	}
	experienceScore := scoring.ExperienceMatch(experience, requiredYears)

	var minDegree string
	var preferredFields []string
	if job.EducationRequired != nil {
		minDegree = job.EducationRequired.MinDegree
		preferredFields = job.EducationRequired.PreferredFields
	}
	educationScore := scoring.DegreeMatch(candidate.Education, minDegree, preferredFields)

	breakdown := scoring.NewScoreBreakdown(experienceScore, educationScore, skillScore)

	printer := observability.NewPrinter(os.Stdout)
	printer.PrintExperienceBreakdown(&experience)
	printer.PrintScoreBreakdown(&breakdown)

	if scoreOutputFile != "" {
		return writeJSONOutput(scoreOutputFile, map[string]any{
			"experience_breakdown": experience,
			"score_breakdown":      breakdown,
		})
	}
	return nil
}
