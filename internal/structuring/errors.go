package structuring

import "fmt"

// StructuringError is returned when the LLM could not produce a valid
// structured document after the retry budget was spent.
type StructuringError struct {
	Target   string // "candidate" or "job"
	Attempts int
	Cause    error
}

func (e *StructuringError) Error() string {
	return fmt.Sprintf("failed to structure %s after %d attempts: %v", e.Target, e.Attempts, e.Cause)
}

func (e *StructuringError) Unwrap() error {
	return e.Cause
}

// APICallError represents a transport-level failure talking to the LLM.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}
