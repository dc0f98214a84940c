package scoring

import "fmt"

// InvalidScoreError indicates the externally graded skill score was missing or
// non-numeric. It is fatal for a run: skill carries 70% of the final weight, so
// substituting a default would silently dominate the result.
type InvalidScoreError struct {
	Reason string
}

func (e *InvalidScoreError) Error() string {
	return fmt.Sprintf("invalid skill score: %s", e.Reason)
}

// AmbiguousDateError indicates a work-experience entry whose dates could not be
// parsed. It is recovered locally: the entry is excluded from the breakdown and
// flagged, and the run continues.
type AmbiguousDateError struct {
	Entry string
	Value string
	Cause error
}

func (e *AmbiguousDateError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("ambiguous date %q in entry %q: %v", e.Value, e.Entry, e.Cause)
	}
	return fmt.Sprintf("ambiguous date %q in entry %q", e.Value, e.Entry)
}

func (e *AmbiguousDateError) Unwrap() error {
	return e.Cause
}
