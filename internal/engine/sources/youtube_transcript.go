package sources

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/anatolykoptev/go_scriptstyle/internal/engine"
)

var errNoCaptions = errors.New("no caption tracks")

// --- caption text ---

type timedText struct {
	Lines []struct {
		Text string `xml:",chardata"`
	} `xml:"text"`
}

// cleanCaption decodes entities (YouTube double-escapes them), drops markup
// and collapses whitespace.
func cleanCaption(s string) string {
	return engine.CollapseSpaces(engine.CleanHTML(html.UnescapeString(s)))
}

// transcriptBuilder joins non-empty caption lines with single spaces.
type transcriptBuilder struct {
	sb strings.Builder
}

func (b *transcriptBuilder) add(raw string) {
	text := cleanCaption(raw)
	if text == "" {
		return
	}
	if b.sb.Len() > 0 {
		b.sb.WriteByte(' ')
	}
	b.sb.WriteString(text)
}

func (b *transcriptBuilder) String() string { return b.sb.String() }

// parseTimedText extracts plain text from a timedtext XML document.
func parseTimedText(body []byte) (string, error) {
	var tt timedText
	if err := xml.Unmarshal(body, &tt); err != nil {
		return "", fmt.Errorf("parse timedtext XML: %w", err)
	}
	var b transcriptBuilder
	for _, line := range tt.Lines {
		b.add(line.Text)
	}
	return b.String(), nil
}

// parseTranscriptSegments extracts plain text from a /get_transcript JSON response.
func parseTranscriptSegments(resp getTranscriptResp) string {
	var b transcriptBuilder
	for _, action := range resp.Actions {
		if action.UpdateEngagementPanelAction == nil {
			continue
		}
		segs := action.UpdateEngagementPanelAction.Content.
			TranscriptRenderer.Content.
			TranscriptSearchPanelRenderer.Body.
			TranscriptSegmentListRenderer.InitialSegments
		for _, seg := range segs {
			if seg.TranscriptSegmentRenderer == nil {
				continue
			}
			for _, run := range seg.TranscriptSegmentRenderer.Snippet.Runs {
				b.add(run.Text)
			}
		}
	}
	return b.String()
}

// --- track selection ---

// needsPoToken reports whether a caption track URL requires a PoToken (browser-only).
// Tracks with &exp=xpe cannot be fetched server-side.
func needsPoToken(baseURL string) bool {
	return strings.Contains(baseURL, "&exp=xpe")
}

// pickBestTrack selects the best usable caption track for the given language preferences:
// manual in a preferred language, then auto-generated, then any English, then the first.
func pickBestTrack(tracks []captionTrack, langs []string) (captionTrack, bool) {
	usable := make([]captionTrack, 0, len(tracks))
	for _, t := range tracks {
		if t.BaseURL != "" && !needsPoToken(t.BaseURL) {
			usable = append(usable, t)
		}
	}
	if len(usable) == 0 {
		return captionTrack{}, false
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t, true
			}
		}
	}
	for _, lang := range langs {
		for _, t := range usable {
			if t.LanguageCode == lang {
				return t, true
			}
		}
	}
	for _, t := range usable {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t, true
		}
	}
	return usable[0], true
}

// fetchTimedText downloads and parses a caption track XML URL.
func (y *YouTube) fetchTimedText(ctx context.Context, baseURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", engine.RandomUserAgent())

	resp, err := y.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch timedtext: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch timedtext: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512*1024))
	if err != nil {
		return "", err
	}
	return parseTimedText(body)
}

func (y *YouTube) fetchTracks(ctx context.Context, tracks []captionTrack) (string, error) {
	track, ok := pickBestTrack(tracks, y.langs())
	if !ok {
		return "", errors.New("all caption tracks require PoToken")
	}
	return y.fetchTimedText(ctx, track.BaseURL)
}

// --- strategy 1: watch page ---

// playerResponseMarker marks the start of the player response JSON in a watch page script.
const playerResponseMarker = "ytInitialPlayerResponse = "

// extractPlayerResponse finds the inline script holding ytInitialPlayerResponse
// and returns its JSON object.
func extractPlayerResponse(page io.Reader) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}
	var found []byte
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		src := s.Text()
		idx := strings.Index(src, playerResponseMarker)
		if idx < 0 {
			return true
		}
		found = extractJSON([]byte(src[idx+len(playerResponseMarker):]))
		return found == nil
	})
	if found == nil {
		return nil, errors.New("ytInitialPlayerResponse not found in watch page")
	}
	return found, nil
}

// extractJSON returns the balanced JSON object at the start of b, or nil.
func extractJSON(b []byte) []byte {
	if len(b) == 0 || b[0] != '{' {
		return nil
	}
	depth := 0
	inStr := false
	escaped := false
	for i, c := range b {
		if inStr {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inStr = false
			}
			continue
		}
		switch c {
		case '"':
			inStr = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return b[:i+1]
			}
		}
	}
	return nil
}

func (y *YouTube) fetchViaPageScrape(ctx context.Context, videoID string) (string, error) {
	watchURL := y.base() + "/watch?v=" + url.QueryEscape(videoID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, watchURL, nil)
	if err != nil {
		return "", err
	}
	for k, v := range engine.ChromeHeaders() {
		// Transport only decompresses when it set Accept-Encoding itself.
		if strings.EqualFold(k, "Accept-Encoding") {
			continue
		}
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", engine.RandomUserAgent())
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := y.client().Do(req)
	if err != nil {
		return "", fmt.Errorf("watch page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("watch page: HTTP %d", resp.StatusCode)
	}

	data, err := extractPlayerResponse(io.LimitReader(resp.Body, 6*1024*1024))
	if err != nil {
		return "", err
	}
	var player playerResponse
	if err := json.Unmarshal(data, &player); err != nil {
		return "", fmt.Errorf("decode ytInitialPlayerResponse: %w", err)
	}
	tracks, err := player.tracks()
	if err != nil {
		return "", err
	}
	return y.fetchTracks(ctx, tracks)
}

// --- strategy 2: engagement panel ---

// getTranscriptRE extracts the continuation token from a raw /next JSON response.
var getTranscriptRE = regexp.MustCompile(`"getTranscriptEndpoint":\{"params":"([^"]+)"`)

func extractTranscriptToken(data []byte) (string, error) {
	m := getTranscriptRE.FindSubmatch(data)
	if len(m) < 2 {
		return "", errors.New("getTranscriptEndpoint not found in engagement panels")
	}
	// /next returns the params URL-encoded; /get_transcript wants raw base64.
	decoded, err := url.QueryUnescape(string(m[1]))
	if err != nil {
		return string(m[1]), nil
	}
	return decoded, nil
}

func (y *YouTube) fetchViaEngagementPanel(ctx context.Context, videoID string) (string, error) {
	visitorData := generateVisitorData()
	hl := y.langs()[0]
	headers := y.webHeaders(visitorData)

	nextData, err := y.postInnertube(ctx, ytNextPath, map[string]any{
		"videoId": videoID,
		"context": map[string]any{
			"client":  webClient(visitorData, hl),
			"user":    map[string]bool{"enableSafetyMode": false},
			"request": map[string]bool{"useSsl": true},
		},
	}, headers)
	if err != nil {
		return "", fmt.Errorf("/next: %w", err)
	}

	token, err := extractTranscriptToken(nextData)
	if err != nil {
		return "", err
	}

	data, err := y.postInnertube(ctx, ytGetTranscriptPath, map[string]any{
		"params":  token,
		"context": map[string]any{"client": webClient(visitorData, hl)},
	}, headers)
	if err != nil {
		return "", fmt.Errorf("/get_transcript: %w", err)
	}

	var resp getTranscriptResp
	if err := json.Unmarshal(data, &resp); err != nil {
		return "", fmt.Errorf("decode transcript: %w", err)
	}
	text := parseTranscriptSegments(resp)
	if text == "" {
		return "", errors.New("empty transcript segments")
	}
	return text, nil
}

// --- strategy 3: ANDROID player ---

func (y *YouTube) fetchViaPlayer(ctx context.Context, videoID string) (string, error) {
	data, err := y.postInnertube(ctx, ytPlayerPath, innertubeReq{
		VideoID: videoID,
		Context: innertubeCtx{
			Client: innertubeClient{
				ClientName:        "ANDROID",
				ClientVersion:     ytAndroidVersion,
				AndroidSdkVersion: 30,
				Hl:                y.langs()[0],
				Gl:                "US",
			},
		},
		RacyCheckOk:    true,
		ContentCheckOk: true,
	}, androidHeaders)
	if err != nil {
		return "", err
	}

	var player playerResponse
	if err := json.Unmarshal(data, &player); err != nil {
		return "", fmt.Errorf("decode player: %w", err)
	}
	tracks, err := player.tracks()
	if err != nil {
		return "", err
	}
	return y.fetchTracks(ctx, tracks)
}
