package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// BuildAnalysisRequest returns the completion request for one transcript.
// The transcript is embedded as given; truncation is the caller's choice.
func BuildAnalysisRequest(transcript string) ChatRequest {
	return newChatRequest(analysisSystemPrompt,
		fmt.Sprintf(analysisPrompt, transcript), cfg.AnalysisMaxTokens)
}

// AnalyzeStyle asks the model for the transcript's style profile.
// Failures of the call itself are ErrAnalysisRequest; an answer with no
// usable content is ErrInsightsExtraction.
func AnalyzeStyle(ctx context.Context, transcript string) (StyleProfile, error) {
	parsed, err := AnalyzeStyleParsed(ctx, transcript)
	if err != nil {
		return nil, err
	}
	return parsed.Profile, nil
}

// AnalyzeStyleParsed is AnalyzeStyle that also reports which parser succeeded.
func AnalyzeStyleParsed(ctx context.Context, transcript string) (ParsedProfile, error) {
	metrics.Analyses.Add(1)
	raw, err := callLLM(ctx, "style_analyze", BuildAnalysisRequest(transcript))
	if err != nil {
		if errors.Is(err, ErrNoChoices) {
			return ParsedProfile{}, fmt.Errorf("%w: %v", ErrInsightsExtraction, err)
		}
		return ParsedProfile{}, fmt.Errorf("%w: %v", ErrAnalysisRequest, err)
	}

	parsed, err := ParseProfile(stripFences(StripReasoning(raw)))
	if err != nil {
		slog.Warn("analysis: no insights", slog.Int("raw_len", len(raw)), slog.Any("error", err))
		return ParsedProfile{}, err
	}
	slog.Debug("analysis: profile parsed",
		slog.String("format", string(parsed.Format)), slog.Any("keys", parsed.Profile.Keys()))
	return parsed, nil
}
