package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/structuring"
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume",
	Short: "Structure a resume into CandidateProfile JSON",
	Long:  "Extract text from a resume file and structure it into a CandidateProfile JSON that validates against the candidate_profile schema.",
	RunE:  runParseResume,
}

var (
	parseResumeInput  string
	parseResumeOutput string
	parseResumeAPIKey string
)

func init() {
	parseResumeCmd.Flags().StringVarP(&parseResumeInput, "in", "i", "", "Path to resume file (required)")
	parseResumeCmd.Flags().StringVarP(&parseResumeOutput, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	parseResumeCmd.Flags().StringVar(&parseResumeAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	_ = parseResumeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseResumeCmd)
}

func runParseResume(_ *cobra.Command, _ []string) error {
	apiKey, err := resolveAPIKey(parseResumeAPIKey)
	if err != nil {
		return err
	}

	doc, err := extraction.Extract(extraction.Input{Path: parseResumeInput})
	if err != nil {
		return err
	}

	ctx := context.Background()
	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), apiKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	candidate, err := structuring.NewCandidateStructurer(client).Structure(ctx, doc)
	if err != nil {
		return err
	}

	return writeJSONOutput(parseResumeOutput, candidate)
}
