package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/structuring"
)

var parseJobCmd = &cobra.Command{
	Use:   "parse-job",
	Short: "Structure a job description into JobProfile JSON",
	Long:  "Parse a job description from a text file or URL into a structured JobProfile JSON that validates against the job_profile schema.",
	RunE:  runParseJob,
}

var (
	parseJobInput      string
	parseJobURL        string
	parseJobOutput     string
	parseJobAPIKey     string
	parseJobUseBrowser bool
)

func init() {
	parseJobCmd.Flags().StringVarP(&parseJobInput, "in", "i", "", "Path to job description text file (mutually exclusive with --job-url)")
	parseJobCmd.Flags().StringVar(&parseJobURL, "job-url", "", "URL to fetch the job description from (mutually exclusive with --in)")
	parseJobCmd.Flags().StringVarP(&parseJobOutput, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	parseJobCmd.Flags().StringVar(&parseJobAPIKey, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	parseJobCmd.Flags().BoolVar(&parseJobUseBrowser, "use-browser", false, "Use headless browser for SPA job pages (requires Chrome)")

	rootCmd.AddCommand(parseJobCmd)
}

func runParseJob(_ *cobra.Command, _ []string) error {
	if parseJobInput == "" && parseJobURL == "" {
		return fmt.Errorf("either --in or --job-url must be provided")
	}
	if parseJobInput != "" && parseJobURL != "" {
		return fmt.Errorf("--in and --job-url are mutually exclusive; provide only one")
	}

	apiKey, err := resolveAPIKey(parseJobAPIKey)
	if err != nil {
		return err
	}

	ctx := context.Background()
	jobText, err := loadJobText(ctx, parseJobInput, parseJobURL, parseJobUseBrowser)
	if err != nil {
		return err
	}

	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), apiKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	job, err := structuring.NewJobStructurer(client).Structure(ctx, jobText)
	if err != nil {
		return err
	}

	return writeJSONOutput(parseJobOutput, job)
}
