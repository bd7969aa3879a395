package libs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrNoGenerator     = errors.New("no language model configured")
	ErrEmptyCompletion = errors.New("model returned no text")
)

// Generator is the prompt-in, text-out view of a hosted language model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// JSONGenerator is implemented by providers that can constrain output to a
// JSON schema.
type JSONGenerator interface {
	Generator
	GenerateJSON(ctx context.Context, prompt, name string, schema map[string]any) (string, error)
}

// Completion is the outcome of one model call. Exactly one of Text or Err is
// meaningful: Err != nil means the call failed and Text must be ignored.
type Completion struct {
	Text string
	Err  error
}

func (c Completion) OK() bool {
	return c.Err == nil
}

// Complete runs one prompt with a deadline and folds every failure mode,
// panics included, into the returned Completion.
func Complete(ctx context.Context, gen Generator, timeout time.Duration, prompt string) Completion {
	return complete(ctx, gen, timeout, func(ctx context.Context) (string, error) {
		return gen.Generate(ctx, prompt)
	})
}

// CompleteJSON asks for schema-constrained output when the provider supports
// it and otherwise behaves like Complete.
func CompleteJSON(ctx context.Context, gen Generator, timeout time.Duration, prompt, name string, schema map[string]any) Completion {
	jg, ok := gen.(JSONGenerator)
	if !ok || schema == nil {
		return Complete(ctx, gen, timeout, prompt)
	}
	return complete(ctx, gen, timeout, func(ctx context.Context) (string, error) {
		return jg.GenerateJSON(ctx, prompt, name, schema)
	})
}

func complete(ctx context.Context, gen Generator, timeout time.Duration, call func(context.Context) (string, error)) (out Completion) {
	if gen == nil {
		return Completion{Err: ErrNoGenerator}
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	defer func() {
		if r := recover(); r != nil {
			out = Completion{Err: fmt.Errorf("model call panicked: %v", r)}
		}
	}()

	text, err := call(ctx)
	if err != nil {
		return Completion{Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Completion{Err: ErrEmptyCompletion}
	}
	return Completion{Text: text}
}

// NewGenerator builds the provider named by provider. An empty apiKey yields a
// nil Generator so every call takes the fallback path.
func NewGenerator(ctx context.Context, provider, apiKey, model, baseURL string) (Generator, error) {
	if apiKey == "" && provider != "compatible" {
		return nil, nil
	}
	switch provider {
	case "gemini":
		g, err := NewGeminiGenerator(ctx, apiKey, model)
		if err != nil {
			return nil, err
		}
		return g, nil
	case "openai":
		return NewOpenAIGenerator(apiKey, model, baseURL), nil
	case "compatible":
		g, err := NewCompatibleGenerator(apiKey, model, baseURL)
		if err != nil {
			return nil, err
		}
		return g, nil
	default:
		return nil, fmt.Errorf("unknown model provider %q", provider)
	}
}
