// Package structuring turns raw resume and job-description text into the
// structured profiles the scoring engine consumes, using LLM extraction
// validated against embedded JSON Schemas. A malformed response is retried
// exactly once before the operation fails.
package structuring

import (
	"context"
	"encoding/json"

	"github.com/jonathan/resume-matcher/internal/llm"
	"github.com/jonathan/resume-matcher/internal/schemas"
)

// maxAttempts bounds LLM calls per structuring operation: one try, one retry.
const maxAttempts = 2

// generateStructured prompts the LLM for JSON, validates it against the named
// embedded schema, and unmarshals it into out. Malformed or schema-invalid
// responses consume an attempt; transport errors fail immediately.
func generateStructured(ctx context.Context, client llm.Client, tier llm.ModelTier, prompt, schemaName, target string, out any) error {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		raw, err := client.GenerateJSON(ctx, prompt, tier)
		if err != nil {
			return &APICallError{Message: "failed to generate content from LLM", Cause: err}
		}

		raw = llm.CleanJSONBlock(raw)
		raw = llm.UnwrapJSONArray(raw)

		if err := schemas.Validate(schemaName, raw); err != nil {
			lastErr = err
			continue
		}
		if err := json.Unmarshal([]byte(raw), out); err != nil {
			lastErr = err
			continue
		}
		return nil
	}

	return &StructuringError{Target: target, Attempts: maxAttempts, Cause: lastErr}
}
