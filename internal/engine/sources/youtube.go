package sources

// YouTube transcript fetching is split across three files by responsibility:
//   youtube.go            - the YouTube source and its strategy chain
//   youtube_innertube.go  - Innertube API types, constants, and low-level HTTP primitives
//   youtube_transcript.go - the individual strategies and caption parsing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/anatolykoptev/go_scriptstyle/internal/engine"
)

const defaultYouTubeBase = "https://www.youtube.com"

// YouTube fetches caption transcripts. The zero value uses engine.Cfg.
type YouTube struct {
	Langs      []string     // caption language preference; nil = engine.Cfg.TranscriptLangs
	HTTPClient *http.Client // nil = engine.Cfg.HTTPClient
	BaseURL    string       // watch page and Innertube host; "" = www.youtube.com
}

// NewYouTube returns a source preferring the given caption languages.
func NewYouTube(langs []string) *YouTube {
	return &YouTube{Langs: langs}
}

// ErrNoTranscript is returned when every strategy failed.
var ErrNoTranscript = errors.New("youtube: no transcript available")

func (y *YouTube) langs() []string {
	if len(y.Langs) > 0 {
		return y.Langs
	}
	if len(engine.Cfg.TranscriptLangs) > 0 {
		return engine.Cfg.TranscriptLangs
	}
	return []string{"en"}
}

func (y *YouTube) client() *http.Client {
	if y.HTTPClient != nil {
		return y.HTTPClient
	}
	if engine.Cfg.HTTPClient != nil {
		return engine.Cfg.HTTPClient
	}
	return http.DefaultClient
}

func (y *YouTube) base() string {
	if y.BaseURL != "" {
		return strings.TrimRight(y.BaseURL, "/")
	}
	return defaultYouTubeBase
}

// Fetch returns the transcript for videoID as space-joined caption text.
// Strategies, each tried once:
//  1. watch page ytInitialPlayerResponse -> caption XML (works from any IP)
//  2. engagement panel /next -> /get_transcript (works from datacenter IPs)
//  3. ANDROID Innertube /player -> caption XML
func (y *YouTube) Fetch(ctx context.Context, videoID string) (string, error) {
	engine.IncrYouTubeTranscript()

	strategies := []struct {
		name string
		fn   func(context.Context, string) (string, error)
	}{
		{"page_scrape", y.fetchViaPageScrape},
		{"engagement_panel", y.fetchViaEngagementPanel},
		{"android_player", y.fetchViaPlayer},
	}

	var errs []error
	for _, s := range strategies {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		text, err := s.fn(ctx, videoID)
		if err == nil && strings.TrimSpace(text) != "" {
			return text, nil
		}
		if err == nil {
			err = errors.New("empty transcript")
		}
		slog.Debug("youtube: transcript strategy failed",
			slog.String("id", videoID), slog.String("strategy", s.name), slog.Any("error", err))
		errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
	}

	engine.IncrYouTubeTranscriptError()
	return "", fmt.Errorf("%w: %w", ErrNoTranscript, errors.Join(errs...))
}
