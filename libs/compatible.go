package libs

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	lcopenai "github.com/tmc/langchaingo/llms/openai"
)

const defaultCompatibleModel = "deepseek-chat"

// CompatibleGenerator talks to any OpenAI-compatible endpoint (DeepSeek,
// OpenRouter, a local server) through langchaingo.
type CompatibleGenerator struct {
	llm llms.Model
}

func NewCompatibleGenerator(apiKey, model, baseURL string) (*CompatibleGenerator, error) {
	if model == "" {
		model = defaultCompatibleModel
	}
	if apiKey == "" {
		// local servers ignore the key but the client refuses an empty one
		apiKey = "none"
	}
	llm, err := lcopenai.New(
		lcopenai.WithToken(apiKey),
		lcopenai.WithBaseURL(baseURL),
		lcopenai.WithModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create compatible client: %w", err)
	}
	return &CompatibleGenerator{llm: llm}, nil
}

func (g *CompatibleGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(0.7))
}

// GenerateJSON only switches on JSON mode; compatible endpoints vary in how
// much of a schema they honor, so the prompt carries the shape.
func (g *CompatibleGenerator) GenerateJSON(ctx context.Context, prompt, name string, schema map[string]any) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, g.llm, prompt, llms.WithTemperature(0.2), llms.WithJSONMode())
}
