package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/extraction"
)

var extractTextCmd = &cobra.Command{
	Use:   "extract-text",
	Short: "Extract plain text, links and phone numbers from a resume file",
	Long:  "Extract cleaned plain text from a .pdf, .docx or .txt resume, along with classified links and phone numbers. No LLM calls are made.",
	RunE:  runExtractText,
}

var (
	extractInputFile  string
	extractOutputFile string
)

func init() {
	extractTextCmd.Flags().StringVarP(&extractInputFile, "in", "i", "", "Path to resume file (required)")
	extractTextCmd.Flags().StringVarP(&extractOutputFile, "out", "o", "", "Path to output JSON file (defaults to stdout)")
	_ = extractTextCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(extractTextCmd)
}

func runExtractText(_ *cobra.Command, _ []string) error {
	doc, err := extraction.Extract(extraction.Input{Path: extractInputFile})
	if err != nil {
		return fmt.Errorf("failed to extract resume text: %w", err)
	}

	return writeJSONOutput(extractOutputFile, doc)
}
