// Package llm provides centralized LLM configuration and client abstractions.
// Model tiers map pipeline stages to models of matching capability so each
// stage can run on the cheapest model that handles it reliably.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: link classification, text cleanup
	TierLite ModelTier = "lite"
	// TierStandard is for structured extraction: resume and job parsing
	TierStandard ModelTier = "standard"
	// TierAdvanced is for reasoning-heavy tasks: skill grading
	TierAdvanced ModelTier = "advanced"
)

// Provider identifies an LLM provider. Gemini is the only one implemented;
// NewClient rejects anything else.
type Provider string

// ProviderGemini is the Google Gemini provider.
const ProviderGemini Provider = "gemini"

// Config maps model tiers to provider model names.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// geminiModels is the default tier assignment for Gemini.
var geminiModels = map[ModelTier]string{
	TierLite:     "gemini-2.5-flash-lite",
	TierStandard: "gemini-2.5-flash",
	TierAdvanced: "gemini-2.5-pro",
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	models := make(map[ModelTier]string, len(geminiModels))
	for tier, model := range geminiModels {
		models[tier] = model
	}
	return &Config{Provider: ProviderGemini, Models: models}
}

// GetModel returns the model name for a tier. Unassigned tiers fall back to
// TierStandard, then TierLite.
func (c *Config) GetModel(tier ModelTier) string {
	for _, t := range []ModelTier{tier, TierStandard, TierLite} {
		if model, ok := c.Models[t]; ok {
			return model
		}
	}
	return ""
}

// WithModel returns a copy of the config with one tier reassigned.
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	models := make(map[ModelTier]string, len(c.Models)+1)
	for t, m := range c.Models {
		models[t] = m
	}
	models[tier] = model
	return &Config{Provider: c.Provider, Models: models}
}
