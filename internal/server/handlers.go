package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-matcher/internal/db"
	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/pipeline"
)

// maxUploadSize bounds multipart resume uploads.
const maxUploadSize = 32 << 20

// batchConcurrency is how many jobs a batch request matches in parallel.
const batchConcurrency = 3

// MatchResponse wraps a completed match run.
type MatchResponse struct {
	RunID  string           `json:"run_id,omitempty"`
	Result *pipeline.Result `json:"result"`
}

// BatchItem is one entry in a batch match response, in request order.
type BatchItem struct {
	Index  int              `json:"index"`
	JobURL string           `json:"job_url,omitempty"`
	Error  string           `json:"error,omitempty"`
	Result *pipeline.Result `json:"result,omitempty"`
}

// ParseJobRequest is the request body for /parse-job-description.
type ParseJobRequest struct {
	JobText string `json:"job_text,omitempty"`
	JobURL  string `json:"job_url,omitempty"`
}

// readResumeUpload pulls the resume file out of a multipart request.
func readResumeUpload(r *http.Request) (extraction.Input, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return extraction.Input{}, fmt.Errorf("invalid multipart form: %w", err)
	}

	file, header, err := r.FormFile("resume")
	if err != nil {
		return extraction.Input{}, fmt.Errorf("resume file is required: %w", err)
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		return extraction.Input{}, fmt.Errorf("failed to read resume upload: %w", err)
	}

	return extraction.Input{Data: data, Filename: header.Filename}, nil
}

// resolveJobText returns the job description text, fetching it when only
// a URL was supplied.
func (s *Server) resolveJobText(r *http.Request, jobText, jobURL string) (string, error) {
	if jobText != "" {
		return jobText, nil
	}
	if jobURL == "" {
		return "", &ErrValidation{Message: "either job or job_url is required"}
	}

	result, err := fetch.JobPosting(r.Context(), jobURL, s.useBrowser, nil)
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

// handleMatch runs the full match pipeline for one resume and one job.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	resume, err := readResumeUpload(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	jobText, err := s.resolveJobText(r, r.FormValue("job"), r.FormValue("job_url"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	result, err := s.runner.Run(r.Context(), pipeline.RunOptions{
		Resume:  resume,
		JobText: jobText,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	resp := MatchResponse{Result: result}
	if result.RunID != uuid.Nil {
		resp.RunID = result.RunID.String()
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

// handleMatchStream runs a match and streams stage progress via SSE.
func (s *Server) handleMatchStream(w http.ResponseWriter, r *http.Request) {
	resume, err := readResumeUpload(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	jobText, err := s.resolveJobText(r, r.FormValue("job"), r.FormValue("job_url"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	result, err := s.runner.Run(r.Context(), pipeline.RunOptions{
		Resume:  resume,
		JobText: jobText,
		OnProgress: func(event pipeline.ProgressEvent) {
			if err := sse.WriteEvent("step", event); err != nil {
				log.Printf("Error writing SSE event: %v", err)
			}
		},
	})
	if err != nil {
		sse.WriteError(err.Error())
		return
	}

	if err := sse.WriteEvent("result", result); err != nil {
		log.Printf("Error writing SSE result: %v", err)
	}
	sse.WriteComplete(result.RunID.String(), "completed")
}

// handleMatchBatch matches one resume against several jobs concurrently.
// Jobs are given as repeated "job" text fields and "job_url" fields; the
// response preserves request order, texts first.
func (s *Server) handleMatchBatch(w http.ResponseWriter, r *http.Request) {
	resume, err := readResumeUpload(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	jobTexts := r.MultipartForm.Value["job"]
	jobURLs := r.MultipartForm.Value["job_url"]
	total := len(jobTexts) + len(jobURLs)
	if total == 0 {
		s.errorResponse(w, http.StatusBadRequest, "at least one job or job_url is required")
		return
	}

	items := make([]BatchItem, total)
	g, ctx := errgroup.WithContext(r.Context())
	g.SetLimit(batchConcurrency)

	runOne := func(index int, text, url string) {
		g.Go(func() error {
			items[index] = BatchItem{Index: index, JobURL: url}

			if text == "" {
				fetched, err := fetch.JobPosting(ctx, url, s.useBrowser, nil)
				if err != nil {
					items[index].Error = err.Error()
					return nil
				}
				text = fetched.Text
			}

			result, err := s.runner.Run(ctx, pipeline.RunOptions{Resume: resume, JobText: text})
			if err != nil {
				items[index].Error = err.Error()
				return nil
			}
			items[index].Result = result
			return nil
		})
	}

	for i, text := range jobTexts {
		runOne(i, text, "")
	}
	for i, url := range jobURLs {
		runOne(len(jobTexts)+i, "", url)
	}

	// Per-job failures are reported inline, so the group never errors.
	_ = g.Wait()

	s.jsonResponse(w, http.StatusOK, map[string]any{"matches": items})
}

// handleExtractResumeText extracts text, links and phone numbers from an
// uploaded resume without calling the LLM.
func (s *Server) handleExtractResumeText(w http.ResponseWriter, r *http.Request) {
	resume, err := readResumeUpload(r)
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	doc, err := extraction.Extract(resume)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, doc)
}

// handleParseJobDescription structures a job description without a resume.
func (s *Server) handleParseJobDescription(w http.ResponseWriter, r *http.Request) {
	var req ParseJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	jobText, err := s.resolveJobText(r, req.JobText, req.JobURL)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	job, err := s.runner.Jobs.Structure(r.Context(), jobText)
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleListRuns lists persisted match runs, optionally filtered.
func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "run history requires a configured database")
		return
	}

	filters := db.RunFilters{
		Company: r.URL.Query().Get("company"),
		Status:  r.URL.Query().Get("status"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 {
			s.errorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		filters.Limit = limit
	}

	runs, err := s.db.ListRuns(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": runs})
}

// handleGetRun returns one persisted match run.
func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "run history requires a configured database")
		return
	}

	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID format")
		return
	}

	run, err := s.db.GetRun(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if run == nil {
		s.errorResponse(w, http.StatusNotFound, "Run not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, run)
}

// handleRunArtifacts returns every artifact a run produced.
func (s *Server) handleRunArtifacts(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "run history requires a configured database")
		return
	}

	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID format")
		return
	}

	artifacts, err := s.db.ListArtifacts(r.Context(), runID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{"artifacts": artifacts})
}

// handleGetRunArtifact returns a single artifact by step name. JSON artifacts
// are returned as stored; text artifacts (extracted resume text, raw job
// description) are wrapped in a small envelope.
func (s *Server) handleGetRunArtifact(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "run history requires a configured database")
		return
	}

	runID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid run ID format")
		return
	}
	step := r.PathValue("step")

	content, err := s.db.GetArtifact(r.Context(), runID, step)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if len(content) > 0 {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content)
		return
	}

	text, err := s.db.GetTextArtifact(r.Context(), runID, step)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if text == "" {
		s.errorResponse(w, http.StatusNotFound, "Artifact not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"step": step, "text_content": text})
}
