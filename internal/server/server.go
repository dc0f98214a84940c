// Package server provides the HTTP REST API for the resume matcher.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/resume-matcher/internal/config"
	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/grading"
	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/pipeline"
	"github.com/jonathan/resume-matcher/internal/server/middleware"
	"github.com/jonathan/resume-matcher/internal/server/ratelimit"
	"github.com/jonathan/resume-matcher/internal/structuring"
)

// Config holds server configuration.
type Config struct {
	Port        int
	APIKey      string
	DatabaseURL string
	UseBrowser  bool

	// Auth is enabled when AuthUsername is set. Exactly one of
	// AuthPassword and AuthPasswordHash carries the credential.
	AuthUsername     string
	AuthPassword     string
	AuthPasswordHash string
}

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	runner      *pipeline.Runner
	db          *db.DB
	useBrowser  bool
	rateLimiter *ratelimit.Limiter
	authHandler *AuthHandler
	jwtService  *JWTService
	llmClient   llm.Client
}

// New creates a server with a live Gemini-backed pipeline.
func New(ctx context.Context, cfg Config) (*Server, error) {
	client, err := llm.NewClient(ctx, llm.DefaultGeminiConfig(), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	runner := pipeline.NewRunner(
		pipeline.ExtractorFunc(extraction.Extract),
		structuring.NewCandidateStructurer(client),
		structuring.NewJobStructurer(client),
		grading.NewGrader(client),
	)

	var database *db.DB
	if cfg.DatabaseURL != "" {
		database, err = db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		runner.DB = database
	}

	s, err := newServer(runner, database, cfg)
	if err != nil {
		return nil, err
	}
	s.llmClient = client
	return s, nil
}

// newServer wires routing and middleware around an existing runner.
// Split from New so tests can inject stub collaborators.
func newServer(runner *pipeline.Runner, database *db.DB, cfg Config) (*Server, error) {
	s := &Server{
		runner:      runner,
		db:          database,
		useBrowser:  cfg.UseBrowser,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	api := http.NewServeMux()
	api.HandleFunc("POST /match", s.handleMatch)
	api.HandleFunc("POST /match/stream", s.handleMatchStream)
	api.HandleFunc("POST /match/batch", s.handleMatchBatch)
	api.HandleFunc("POST /extract-resume-text", s.handleExtractResumeText)
	api.HandleFunc("POST /parse-job-description", s.handleParseJobDescription)
	api.HandleFunc("GET /runs", s.handleListRuns)
	api.HandleFunc("GET /runs/{id}", s.handleGetRun)
	api.HandleFunc("GET /runs/{id}/artifacts", s.handleRunArtifacts)
	api.HandleFunc("GET /runs/{id}/artifacts/{step}", s.handleGetRunArtifact)

	if cfg.AuthUsername != "" {
		jwtConfig, err := config.NewJWTConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create JWT config: %w", err)
		}
		s.jwtService = NewJWTService(jwtConfig)

		passwordConfig, err := config.NewPasswordConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to create password config: %w", err)
		}

		passwordHash := cfg.AuthPasswordHash
		if passwordHash == "" {
			passwordHash, err = passwordConfig.HashPassword(cfg.AuthPassword)
			if err != nil {
				return nil, fmt.Errorf("failed to hash auth password: %w", err)
			}
		}

		s.authHandler = NewAuthHandler(cfg.AuthUsername, passwordHash, passwordConfig, s.jwtService)
		mux.HandleFunc("POST /auth/login", s.authHandler.Login)
		mux.Handle("/", middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(api))
	} else {
		mux.Handle("/", api)
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // match runs hold the connection open
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Start begins listening and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llmClient != nil {
		_ = s.llmClient.Close()
	}
	if s.db != nil {
		s.db.Close()
	}

	log.Println("Server stopped")
	return nil
}

// Handler exposes the configured handler chain for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID returns the caller's IP for rate limit bucketing.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
