package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// TranscriptSource fetches the plain-text transcript of a video.
type TranscriptSource interface {
	Fetch(ctx context.Context, videoID string) (string, error)
}

// TranscriptFunc adapts a plain function to TranscriptSource.
type TranscriptFunc func(ctx context.Context, videoID string) (string, error)

func (f TranscriptFunc) Fetch(ctx context.Context, videoID string) (string, error) {
	return f(ctx, videoID)
}

// Pipeline chains identify, fetch, analyze and generate for the front ends.
// A Pipeline holds no profile; callers own it between steps.
type Pipeline struct {
	Source TranscriptSource
	// MaxTranscriptChars caps the transcript sent for analysis, in runes.
	// 0 sends the full text.
	MaxTranscriptChars int
}

// Analysis is the outcome of AnalyzeLink.
type Analysis struct {
	VideoID string
	Profile StyleProfile
	Format  ParseFormat
}

// Identify extracts the video ID or returns ErrInvalidReference.
func (p *Pipeline) Identify(link string) (string, error) {
	id, ok := ExtractVideoID(link)
	if !ok {
		return "", ErrInvalidReference
	}
	return id, nil
}

// Fetch downloads the transcript. Any source failure, or an empty
// transcript, is ErrTranscriptUnavailable.
func (p *Pipeline) Fetch(ctx context.Context, videoID string) (string, error) {
	if p.Source == nil {
		return "", fmt.Errorf("%w: no transcript source", ErrTranscriptUnavailable)
	}
	text, err := p.Source.Fetch(ctx, videoID)
	if err != nil {
		slog.Warn("transcript fetch failed", slog.String("video_id", videoID), slog.Any("error", err))
		return "", fmt.Errorf("%w: %v", ErrTranscriptUnavailable, err)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty transcript", ErrTranscriptUnavailable)
	}
	return text, nil
}

// Analyze truncates transcript to MaxTranscriptChars and infers its profile.
func (p *Pipeline) Analyze(ctx context.Context, transcript string) (ParsedProfile, error) {
	return AnalyzeStyleParsed(ctx, TruncateRunes(transcript, p.MaxTranscriptChars, ""))
}

// Generate writes a script on topic in the style of profile.
func (p *Pipeline) Generate(ctx context.Context, profile StyleProfile, topic string) (string, error) {
	return GenerateScript(ctx, profile, topic)
}

// AnalyzeLink runs identify, fetch, truncate and analyze, stopping at the
// first failure.
func (p *Pipeline) AnalyzeLink(ctx context.Context, link string) (*Analysis, error) {
	id, err := p.Identify(link)
	if err != nil {
		return nil, err
	}
	transcript, err := p.Fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	parsed, err := p.Analyze(ctx, transcript)
	if err != nil {
		return nil, err
	}
	return &Analysis{VideoID: id, Profile: parsed.Profile, Format: parsed.Format}, nil
}

// Restyle runs AnalyzeLink and then generates one script on topic.
// The topic is checked before any network call.
func (p *Pipeline) Restyle(ctx context.Context, link, topic string) (*Analysis, string, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, "", ErrInvalidTopic
	}
	a, err := p.AnalyzeLink(ctx, link)
	if err != nil {
		return nil, "", err
	}
	script, err := p.Generate(ctx, a.Profile, topic)
	if err != nil {
		return a, "", err
	}
	return a, script, nil
}
