package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/observability"
	"github.com/jonathan/resume-matcher/internal/pipeline"
)

var matchCommand = &cobra.Command{
	Use:   "match",
	Short: "Match a resume against a job description end-to-end",
	Long: `Runs the full match pipeline: text extraction -> candidate structuring -> job structuring -> skill grading -> scoring.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runMatchCmd,
}

var (
	matchConfigPath  string
	matchResume      string
	matchJob         string
	matchJobURL      string
	matchAPIKey      string
	matchUseBrowser  bool
	matchVerbose     bool
	matchDatabaseURL string
	matchOutputFile  string
)

func init() {
	matchCommand.Flags().StringVar(&matchConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	matchCommand.Flags().StringVarP(&matchResume, "resume", "r", "", "Path to resume file (.pdf, .docx, .txt)")
	matchCommand.Flags().StringVarP(&matchJob, "job", "j", "", "Path to job description text file (mutually exclusive with --job-url)")
	matchCommand.Flags().StringVar(&matchJobURL, "job-url", "", "URL to fetch the job description from (mutually exclusive with --job)")
	matchCommand.Flags().BoolVar(&matchUseBrowser, "use-browser", false, "Use headless browser for SPA job pages (requires Chrome)")
	matchCommand.Flags().BoolVarP(&matchVerbose, "verbose", "v", false, "Print detailed debug information")
	matchCommand.Flags().StringVarP(&matchOutputFile, "out", "o", "", "Path to write the full match result JSON")

	matchCommand.Flags().StringVar(&matchAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	matchCommand.Flags().StringVar(&matchDatabaseURL, "db-url", "", "PostgreSQL connection URL for run persistence (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(matchCommand)
}

func runMatchCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	var fileCfg config.Config
	if matchConfigPath != "" {
		loaded, err := config.LoadConfig(matchConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		fileCfg = *loaded
		if matchVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", matchConfigPath)
		}
	}

	// Explicitly set flags win; everything left empty inherits the config file.
	var cfg config.Config
	if cmd.Flags().Changed("resume") {
		cfg.Resume = matchResume
	}
	if cmd.Flags().Changed("job") {
		cfg.Job = matchJob
	}
	if cmd.Flags().Changed("job-url") {
		cfg.JobURL = matchJobURL
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = matchAPIKey
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = matchDatabaseURL
	}
	cfg = cfg.MergeWithDefaults(fileCfg)

	// Bool fields are never merged; an explicit flag wins over the file value.
	cfg.UseBrowser = fileCfg.UseBrowser
	if cmd.Flags().Changed("use-browser") {
		cfg.UseBrowser = matchUseBrowser
	}
	cfg.Verbose = fileCfg.Verbose
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = matchVerbose
	}

	if cfg.Resume == "" {
		return fmt.Errorf("--resume must be provided (via flag or config)")
	}
	if cfg.Job == "" && cfg.JobURL == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag or config)")
	}
	if cfg.Job != "" && cfg.JobURL != "" {
		return fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	apiKey, err := resolveAPIKey(cfg.APIKey)
	if err != nil {
		return err
	}

	jobText, err := loadJobText(ctx, cfg.Job, cfg.JobURL, cfg.UseBrowser)
	if err != nil {
		return err
	}

	runner, client, err := newRunner(ctx, apiKey)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	// Persistence is optional; a match run works without a database.
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			fmt.Printf("Warning: failed to connect to database: %v\n", err)
		} else {
			defer database.Close()
			runner.DB = database
		}
	}

	printer := observability.NewPrinter(os.Stdout)
	if cfg.Verbose {
		runner.Printer = printer
	}

	result, err := runner.Run(ctx, pipeline.RunOptions{
		Resume:  extraction.Input{Path: cfg.Resume},
		JobText: jobText,
		Verbose: cfg.Verbose,
	})
	if err != nil {
		return err
	}

	printer.PrintExperienceBreakdown(&result.Experience)
	printer.PrintScoreBreakdown(&result.Breakdown)

	if matchOutputFile != "" {
		return writeJSONOutput(matchOutputFile, result)
	}
	return nil
}
