package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/grading"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/structuring"
)

// resolveAPIKey returns the flag value or falls back to GEMINI_API_KEY.
func resolveAPIKey(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key, nil
	}
	return "", fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
}

// loadJobText reads the job description from a file or fetches it from a URL.
func loadJobText(ctx context.Context, jobPath, jobURL string, useBrowser bool) (string, error) {
	if jobPath != "" {
		content, err := os.ReadFile(jobPath)
		if err != nil {
			return "", fmt.Errorf("failed to read job file: %w", err)
		}
		return string(content), nil
	}

	result, err := fetch.JobPosting(ctx, jobURL, useBrowser, nil)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// newRunner builds a Gemini-backed pipeline runner. The caller owns the
// returned client and must close it.
func newRunner(ctx context.Context, apiKey string) (*pipeline.Runner, llm.Client, error) {
	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), apiKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	runner := pipeline.NewRunner(
		pipeline.ExtractorFunc(extraction.Extract),
		structuring.NewCandidateStructurer(client),
		structuring.NewJobStructurer(client),
		grading.NewGrader(client),
	)
	return runner, client, nil
}

// writeJSONOutput writes v as indented JSON to path, or stdout when path
// is empty.
func writeJSONOutput(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if path == "" {
		_, _ = fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	_, _ = fmt.Fprintf(os.Stdout, "Output: %s\n", path)
	return nil
}
