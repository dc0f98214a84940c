package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// generationTemperature keeps structuring and grading output stable across runs.
const generationTemperature = 0.1

// Client is the provider abstraction the structuring and grading stages
// depend on. Implementations must be safe for concurrent use.
type Client interface {
	// GenerateContent returns free-form text for the prompt.
	GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GenerateJSON returns a JSON body for the prompt, with any markdown
	// fencing already stripped.
	GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error)
	// GetModel reports the provider model name backing a tier.
	GetModel(tier ModelTier) string
	// Close releases provider resources.
	Close() error
}

// NewClient builds a client for the configured provider.
func NewClient(ctx context.Context, cfg *Config, apiKey string) (Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	switch cfg.Provider {
	case ProviderGemini, "":
		return NewGeminiClient(ctx, cfg, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", cfg.Provider)
	}
}

// GeminiClient implements Client on the Google Gemini API.
type GeminiClient struct {
	api *genai.Client
	cfg *Config
}

// NewGeminiClient opens a Gemini API connection with the given key.
func NewGeminiClient(ctx context.Context, cfg *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, errors.New("API key is required")
	}
	api, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &GeminiClient{api: api, cfg: cfg}, nil
}

func (c *GeminiClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	return c.generate(ctx, prompt, tier, false)
}

func (c *GeminiClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	text, err := c.generate(ctx, prompt, tier, true)
	if err != nil {
		return "", err
	}
	// The MIME type pin does not stop every model from fencing its output.
	return CleanJSONBlock(text), nil
}

func (c *GeminiClient) generate(ctx context.Context, prompt string, tier ModelTier, jsonMode bool) (string, error) {
	name := c.cfg.GetModel(tier)
	if name == "" {
		return "", fmt.Errorf("no model configured for tier %s", tier)
	}

	model := c.api.GenerativeModel(name)
	model.SetTemperature(generationTemperature)
	if jsonMode {
		model.ResponseMIMEType = "application/json"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("model %s: %w", name, err)
	}
	return responseText(resp)
}

// GetModel reports the model name backing a tier.
func (c *GeminiClient) GetModel(tier ModelTier) string {
	return c.cfg.GetModel(tier)
}

// Close shuts down the underlying API client.
func (c *GeminiClient) Close() error {
	if c.api == nil {
		return nil
	}
	return c.api.Close()
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", errors.New("response has no candidates")
	}
	content := resp.Candidates[0].Content
	if content == nil {
		return "", errors.New("response candidate has no content")
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("response has no text parts")
	}
	return sb.String(), nil
}
