package server

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/grading"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/structuring"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"unsupported format", &extraction.UnsupportedFormatError{Format: ".png"}, http.StatusUnsupportedMediaType},
		{"extraction failure", &extraction.ExtractionError{Source: "resume.pdf"}, http.StatusUnprocessableEntity},
		{"fetch failure", &fetch.Error{URL: "https://example.com", Message: "HTTP status 500"}, http.StatusBadGateway},
		{"structuring failure", &structuring.StructuringError{Target: "candidate profile", Attempts: 2}, http.StatusBadGateway},
		{"api call failure", &structuring.APICallError{Message: "timeout"}, http.StatusBadGateway},
		{"grading failure", &grading.GradingError{Attempts: 2}, http.StatusBadGateway},
		{"invalid score", &scoring.InvalidScoreError{Reason: "missing"}, http.StatusBadGateway},
		{"bad credentials", &ErrInvalidCredentials{}, http.StatusUnauthorized},
		{"validation", &ErrValidation{Message: "job is required"}, http.StatusBadRequest},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestHTTPStatus_Wrapped(t *testing.T) {
	err := fmt.Errorf("text extraction failed: %w", &extraction.UnsupportedFormatError{Format: ".gif"})
	assert.Equal(t, http.StatusUnsupportedMediaType, HTTPStatus(err))
}
