// Package scoring implements the deterministic match-scoring engine: experience
// breakdown over date-range unions, degree/field matching, skill score
// validation, and the fixed weighted combination.
package scoring

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jonathan/resume-matcher/internal/types"
)

// hoursPerYear converts durations to fractional years using the mean calendar year.
const hoursPerYear = 24 * 365.25

// EntryContribution records how a single work entry contributed to the breakdown.
type EntryContribution struct {
	Title   string  `json:"title"`
	Company string  `json:"company,omitempty"`
	Years   float64 `json:"years"`
	Parsed  bool    `json:"parsed"`
	Reason  string  `json:"reason,omitempty"`
}

// ExperienceBreakdown is the derived experience summary for a candidate.
// TotalYears is the length of the union of all parsed date ranges, so
// overlapping entries never double-count time.
type ExperienceBreakdown struct {
	TotalYears  float64             `json:"total_years"`
	Entries     []EntryContribution `json:"entries"`
	HasOverlap  bool                `json:"has_overlap"`
	HasSkipped  bool                `json:"has_skipped"`
	EvaluatedAt time.Time           `json:"evaluated_at"`
}

// interval is a half-open [Start, End) time range.
type interval struct {
	Start time.Time
	End   time.Time
}

// ComputeExperienceBreakdown converts each entry's dates into a range (treating
// "present" as now), merges overlapping ranges, and sums the union in years.
// Entries with unparseable dates are excluded and flagged, never fatal.
func ComputeExperienceBreakdown(entries []types.WorkExperience, now time.Time) ExperienceBreakdown {
	breakdown := ExperienceBreakdown{
		Entries:     make([]EntryContribution, 0, len(entries)),
		EvaluatedAt: now,
	}

	var intervals []interval
	for _, entry := range entries {
		contribution := EntryContribution{
			Title:   entry.Title,
			Company: entry.Company,
		}

		iv, err := entryInterval(entry, now)
		if err != nil {
			contribution.Reason = err.Error()
			breakdown.HasSkipped = true
			breakdown.Entries = append(breakdown.Entries, contribution)
			continue
		}

		contribution.Parsed = true
		contribution.Years = iv.End.Sub(iv.Start).Hours() / hoursPerYear
		breakdown.Entries = append(breakdown.Entries, contribution)
		intervals = append(intervals, iv)
	}

	merged, overlapped := mergeIntervals(intervals)
	breakdown.HasOverlap = overlapped

	total := 0.0
	for _, iv := range merged {
		total += iv.End.Sub(iv.Start).Hours() / hoursPerYear
	}
	breakdown.TotalYears = total

	return breakdown
}

// ExperienceMatch normalizes total experience against the required years and
// returns a score in [0,100]. A non-positive requirement is fully satisfied.
func ExperienceMatch(breakdown ExperienceBreakdown, requiredYears float64) float64 {
	if requiredYears <= 0 {
		return 100
	}

	ratio := breakdown.TotalYears / requiredYears
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}
	return ratio * 100
}

// entryInterval builds the date range for one entry. Returns an
// AmbiguousDateError when either endpoint cannot be parsed or the range is
// inverted.
func entryInterval(entry types.WorkExperience, now time.Time) (interval, error) {
	start, err := parseResumeDate(entry.StartDate, now)
	if err != nil {
		return interval{}, &AmbiguousDateError{Entry: entry.Title, Value: entry.StartDate, Cause: err}
	}

	var end time.Time
	if isPresent(entry.EndDate) {
		end = now
	} else {
		end, err = parseResumeDate(entry.EndDate, now)
		if err != nil {
			return interval{}, &AmbiguousDateError{Entry: entry.Title, Value: entry.EndDate, Cause: err}
		}
	}

	if end.Before(start) {
		return interval{}, &AmbiguousDateError{
			Entry: entry.Title,
			Value: fmt.Sprintf("%s..%s", entry.StartDate, entry.EndDate),
			Cause: fmt.Errorf("end date precedes start date"),
		}
	}
	if end.After(now) {
		end = now
	}

	return interval{Start: start, End: end}, nil
}

// resumeDateLayouts lists accepted date formats, most specific first.
var resumeDateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006/01",
	"01/2006",
	"Jan 2006",
	"January 2006",
	"2006",
}

// parseResumeDate parses a partial resume date. Year-only and month-only values
// resolve to the first instant of that period.
func parseResumeDate(value string, now time.Time) (time.Time, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	if isPresent(trimmed) {
		return now, nil
	}

	for _, layout := range resumeDateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format %q", trimmed)
}

// isPresent reports whether the value marks an ongoing position.
func isPresent(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "present", "current", "now", "ongoing":
		return true
	}
	return false
}

// mergeIntervals unions overlapping or touching intervals. The second return
// value reports whether any overlap was found.
func mergeIntervals(intervals []interval) ([]interval, bool) {
	if len(intervals) == 0 {
		return nil, false
	}

	sorted := make([]interval, len(intervals))
	copy(sorted, intervals)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Start.Before(sorted[j].Start)
	})

	merged := []interval{sorted[0]}
	overlapped := false
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if !iv.Start.After(last.End) {
			if iv.Start.Before(last.End) {
				overlapped = true
			}
			if iv.End.After(last.End) {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}

	return merged, overlapped
}
