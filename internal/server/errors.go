package server

import (
	"errors"
	"net/http"

	"github.com/jonathan/resume-matcher/internal/extraction"
	"github.com/jonathan/resume-matcher/internal/fetch"
	"github.com/jonathan/resume-matcher/internal/grading"
	"github.com/jonathan/resume-matcher/internal/scoring"
	"github.com/jonathan/resume-matcher/internal/structuring"
)

// ErrInvalidCredentials indicates a failed login attempt.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid username or password"
}

// ErrValidation indicates a request validation failure.
type ErrValidation struct {
	Message string
}

func (e *ErrValidation) Error() string {
	return "validation error: " + e.Message
}

// HTTPStatus maps domain errors to HTTP status codes. Client-side input
// problems map to 4xx; upstream LLM and fetch failures map to 502.
func HTTPStatus(err error) int {
	var (
		unsupported *extraction.UnsupportedFormatError
		extractErr  *extraction.ExtractionError
		fetchErr    *fetch.Error
		structErr   *structuring.StructuringError
		apiErr      *structuring.APICallError
		gradeErr    *grading.GradingError
		scoreErr    *scoring.InvalidScoreError
		credsErr    *ErrInvalidCredentials
		validation  *ErrValidation
	)

	switch {
	case errors.As(err, &unsupported):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &extractErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &fetchErr):
		return http.StatusBadGateway
	case errors.As(err, &structErr), errors.As(err, &apiErr), errors.As(err, &gradeErr), errors.As(err, &scoreErr):
		return http.StatusBadGateway
	case errors.As(err, &credsErr):
		return http.StatusUnauthorized
	case errors.As(err, &validation):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
