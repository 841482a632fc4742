package engine

import (
	"context"
	"net/http"

	"github.com/anatolykoptev/go-kit/llm"
)

// CompleterFunc adapts a plain function to Completer.
type CompleterFunc func(ctx context.Context, req ChatRequest) (string, error)

func (f CompleterFunc) Complete(ctx context.Context, req ChatRequest) (string, error) {
	return f(ctx, req)
}

// NewKitCompleter backs Completer with the go-kit LLM client, which rotates
// through fallback keys on failure. Only temperature and max tokens are
// forwarded per call.
func NewKitCompleter(c Config) Completer {
	httpClient := c.LLMHTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	client := llm.NewClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMModel,
		llm.WithFallbackKeys(c.LLMAPIKeyFallbacks),
		llm.WithMaxTokens(c.GenerationMaxTokens),
		llm.WithTemperature(c.LLMTemperature),
		llm.WithHTTPClient(httpClient),
	)
	return CompleterFunc(func(ctx context.Context, req ChatRequest) (string, error) {
		text, err := client.Complete(ctx, req.System(), req.User(),
			llm.WithChatTemperature(req.Temperature),
			llm.WithChatMaxTokens(req.MaxCompletionTokens),
		)
		if err != nil {
			return "", err
		}
		if text == "" {
			return "", ErrNoChoices
		}
		return text, nil
	})
}
