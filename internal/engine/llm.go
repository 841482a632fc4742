package engine

import (
	"context"
	"errors"
	"log/slog"
)

// newChatRequest builds a fresh single-turn request with the configured sampling.
func newChatRequest(system, user string, maxTokens int) ChatRequest {
	return ChatRequest{
		Model: cfg.LLMModel,
		Messages: []ChatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxCompletionTokens: maxTokens,
		Temperature:         cfg.LLMTemperature,
		TopP:                cfg.LLMTopP,
		N:                   1,
	}
}

// callLLM sends req through the configured Completer, counting the call
// and logging remote failures. No retries.
func callLLM(ctx context.Context, op string, req ChatRequest) (string, error) {
	metrics.LLMCalls.Add(1)
	var text string
	err := TrackOperation(ctx, op, func(ctx context.Context) error {
		var err error
		text, err = completer().Complete(ctx, req)
		return err
	})
	if err != nil {
		metrics.LLMErrors.Add(1)
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			slog.Warn("llm: remote error", slog.String("op", op),
				slog.Int("status", apiErr.StatusCode), slog.String("body", apiErr.Body))
		} else {
			slog.Warn("llm: call failed", slog.String("op", op), slog.Any("error", err))
		}
		return "", err
	}
	return text, nil
}
