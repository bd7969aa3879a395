package libs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"
)

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIGenerator uses the Responses API.
type OpenAIGenerator struct {
	client *openai.Client
	model  string

	// waits between attempts; tests shorten these
	rateLimitWaits   []time.Duration
	serverErrorWaits []time.Duration
}

func NewOpenAIGenerator(apiKey, model, baseURL string) *OpenAIGenerator {
	if model == "" {
		model = defaultOpenAIModel
	}
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	client := openai.NewClient(opts...)
	return &OpenAIGenerator{
		client:           &client,
		model:            model,
		rateLimitWaits:   []time.Duration{2 * time.Second, 5 * time.Second},
		serverErrorWaits: []time.Duration{1 * time.Second, 3 * time.Second},
	}
}

func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	params := responses.ResponseNewParams{
		Model: g.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(prompt),
		},
	}
	return g.call(ctx, params)
}

func (g *OpenAIGenerator) GenerateJSON(ctx context.Context, prompt, name string, schema map[string]any) (string, error) {
	params := responses.ResponseNewParams{
		Model: g.model,
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Name:   name,
					Schema: schema,
					Strict: openai.Bool(true),
					Type:   "json_schema",
				},
			},
		},
	}
	return g.call(ctx, params)
}

func (g *OpenAIGenerator) call(ctx context.Context, params responses.ResponseNewParams) (string, error) {
	resp, err := callWithRetry(ctx, g.rateLimitWaits, g.serverErrorWaits, func(ctx context.Context) (*responses.Response, error) {
		return g.client.Responses.New(ctx, params)
	})
	if err != nil {
		return "", err
	}
	return resp.OutputText(), nil
}

// callWithRetry retries rate limit and server errors once per configured
// wait. The waits respect ctx so a request deadline still cuts them short.
func callWithRetry[T any](ctx context.Context, rateLimitWaits, serverErrorWaits []time.Duration, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	attempts := max(len(rateLimitWaits), len(serverErrorWaits)) + 1

	for attempt := 0; attempt < attempts; attempt++ {
		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}

		var wait time.Duration
		switch {
		case isRateLimitError(err) && attempt < len(rateLimitWaits):
			wait = rateLimitWaits[attempt]
		case isServerError(err) && attempt < len(serverErrorWaits):
			wait = serverErrorWaits[attempt]
		default:
			return zero, err
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(wait):
		}
	}
	return zero, fmt.Errorf("failed after %d attempts due to model API issues", attempts)
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "429") ||
		strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests")
}

func isServerError(err error) bool {
	if err == nil {
		return false
	}
	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "500") ||
		strings.Contains(errStr, "502") ||
		strings.Contains(errStr, "503") ||
		strings.Contains(errStr, "internal server error") ||
		strings.Contains(errStr, "server_error")
}
