package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-matcher/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes REST endpoints for matching resumes against job descriptions.

Set AUTH_USERNAME plus AUTH_PASSWORD or AUTH_PASSWORD_HASH (and JWT_SECRET) to require bearer tokens on all endpoints except /health and /auth/login. DATABASE_URL enables run history persistence.`,
	RunE: runServe,
}

var (
	servePort       int
	serveUseBrowser bool
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveUseBrowser, "use-browser", false, "Use headless browser for SPA job pages (requires Chrome)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	cfg := server.Config{
		Port:             servePort,
		APIKey:           apiKey,
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		UseBrowser:       serveUseBrowser,
		AuthUsername:     os.Getenv("AUTH_USERNAME"),
		AuthPassword:     os.Getenv("AUTH_PASSWORD"),
		AuthPasswordHash: os.Getenv("AUTH_PASSWORD_HASH"),
	}

	srv, err := server.New(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
