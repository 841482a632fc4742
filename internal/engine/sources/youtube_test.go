package sources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const sampleTimedText = `<?xml version="1.0" encoding="utf-8" ?><transcript>
<text start="0.5" dur="2.1">Hey everyone, it&amp;#39;s me</text>
<text start="2.6" dur="1.9">and today
we&amp;#39;re   talking</text>
<text start="4.5" dur="1.0"></text>
<text start="5.5" dur="2.0">&lt;font color="#E5E5E5"&gt;coffee&lt;/font&gt; &amp;amp; tea</text>
</transcript>`

func TestParseTimedText(t *testing.T) {
	got, err := parseTimedText([]byte(sampleTimedText))
	if err != nil {
		t.Fatalf("parseTimedText: %v", err)
	}
	want := "Hey everyone, it's me and today we're talking coffee & tea"
	if got != want {
		t.Errorf("parseTimedText() = %q, want %q", got, want)
	}
}

func TestParseTimedText_Invalid(t *testing.T) {
	if _, err := parseTimedText([]byte("<transcript><text>unclosed")); err == nil {
		t.Error("expected error for malformed XML")
	}
}

func TestPickBestTrack(t *testing.T) {
	manualEN := captionTrack{BaseURL: "https://x/en", LanguageCode: "en"}
	asrEN := captionTrack{BaseURL: "https://x/en-asr", LanguageCode: "en", Kind: "asr"}
	manualDE := captionTrack{BaseURL: "https://x/de", LanguageCode: "de"}
	enGB := captionTrack{BaseURL: "https://x/en-gb", LanguageCode: "en-GB"}
	poOnly := captionTrack{BaseURL: "https://x/fr?a=1&exp=xpe", LanguageCode: "fr"}

	tests := []struct {
		name   string
		tracks []captionTrack
		langs  []string
		want   captionTrack
		wantOK bool
	}{
		{"manual preferred over asr", []captionTrack{asrEN, manualEN}, []string{"en"}, manualEN, true},
		{"asr when no manual", []captionTrack{manualDE, asrEN}, []string{"en"}, asrEN, true},
		{"language order", []captionTrack{manualEN, manualDE}, []string{"de", "en"}, manualDE, true},
		{"english fallback", []captionTrack{manualDE, enGB}, []string{"ja"}, enGB, true},
		{"first usable fallback", []captionTrack{poOnly, manualDE}, []string{"ja"}, manualDE, true},
		{"all need potoken", []captionTrack{poOnly}, []string{"fr"}, captionTrack{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pickBestTrack(tt.tracks, tt.langs)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("pickBestTrack() = %+v, %v; want %+v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestExtractTranscriptToken(t *testing.T) {
	data := []byte(`{"engagementPanels":[{"x":{"getTranscriptEndpoint":{"params":"CgtkUXc0dzlXZ1hjUQ%3D%3D"}}}]}`)
	got, err := extractTranscriptToken(data)
	if err != nil {
		t.Fatalf("extractTranscriptToken: %v", err)
	}
	if got != "CgtkUXc0dzlXZ1hjUQ==" {
		t.Errorf("token = %q", got)
	}
	if _, err := extractTranscriptToken([]byte(`{}`)); err == nil {
		t.Error("expected error when endpoint is missing")
	}
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1};var x = 2;`, `{"a":1}`},
		{`{"a":{"b":"}"}} trailing`, `{"a":{"b":"}"}}`},
		{`{"a":"quote \" and slash \\"} rest`, `{"a":"quote \" and slash \\"}`},
		{`not json`, ``},
		{`{"open":`, ``},
	}
	for _, tt := range tests {
		if got := string(extractJSON([]byte(tt.in))); got != tt.want {
			t.Errorf("extractJSON(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestExtractPlayerResponse(t *testing.T) {
	page := `<html><head><script>var other = {};</script>
<script nonce="x">var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"baseUrl":"https://x/t","languageCode":"en"}]}}};var meta = 1;</script>
</head><body></body></html>`
	got, err := extractPlayerResponse(strings.NewReader(page))
	if err != nil {
		t.Fatalf("extractPlayerResponse: %v", err)
	}
	if !strings.HasPrefix(string(got), `{"captions"`) || !strings.HasSuffix(string(got), "}}") {
		t.Errorf("unexpected JSON %q", got)
	}
	if _, err := extractPlayerResponse(strings.NewReader("<html></html>")); err == nil {
		t.Error("expected error when marker is missing")
	}
}

// fakeYouTube serves the watch page, Innertube and timedtext endpoints.
func fakeYouTube(t *testing.T, watchOK, panelOK, playerOK bool) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		if !watchOK {
			http.Error(w, "blocked", http.StatusTooManyRequests)
			return
		}
		fmt.Fprintf(w, `<html><script>var ytInitialPlayerResponse = {"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"baseUrl":"%s/api/timedtext?v=%s","languageCode":"en"}]}}};</script></html>`,
			srv.URL, r.URL.Query().Get("v"))
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `<transcript><text>from captions</text></transcript>`)
	})
	mux.HandleFunc("/youtubei/v1/next", func(w http.ResponseWriter, _ *http.Request) {
		if !panelOK {
			fmt.Fprint(w, `{"contents":{}}`)
			return
		}
		fmt.Fprint(w, `{"engagementPanels":[{"getTranscriptEndpoint":{"params":"tok"}}]}`)
	})
	mux.HandleFunc("/youtubei/v1/get_transcript", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"actions":[{"updateEngagementPanelAction":{"content":{"transcriptRenderer":{"content":{"transcriptSearchPanelRenderer":{"body":{"transcriptSegmentListRenderer":{"initialSegments":[
{"transcriptSegmentRenderer":{"snippet":{"runs":[{"text":"from"}]}}},
{"transcriptSegmentRenderer":{"snippet":{"runs":[{"text":"panel"}]}}}]}}}}}}}}]}`)
	})
	mux.HandleFunc("/youtubei/v1/player", func(w http.ResponseWriter, _ *http.Request) {
		if !playerOK {
			fmt.Fprint(w, `{"playabilityStatus":{"status":"LOGIN_REQUIRED","reason":"Sign in to confirm you're not a bot"}}`)
			return
		}
		fmt.Fprintf(w, `{"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[{"baseUrl":"%s/api/timedtext?c=android","languageCode":"en"}]}}}`, srv.URL)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestYouTubeFetch_Strategies(t *testing.T) {
	tests := []struct {
		name                       string
		watchOK, panelOK, playerOK bool
		want                       string
	}{
		{"watch page", true, true, true, "from captions"},
		{"engagement panel fallback", false, true, true, "from panel"},
		{"player fallback", false, false, true, "from captions"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := fakeYouTube(t, tt.watchOK, tt.panelOK, tt.playerOK)
			yt := &YouTube{Langs: []string{"en"}, HTTPClient: srv.Client(), BaseURL: srv.URL}
			got, err := yt.Fetch(context.Background(), "dQw4w9WgXcQ")
			if err != nil {
				t.Fatalf("Fetch: %v", err)
			}
			if got != tt.want {
				t.Errorf("Fetch() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestYouTubeFetch_AllFail(t *testing.T) {
	srv := fakeYouTube(t, false, false, false)
	yt := &YouTube{HTTPClient: srv.Client(), BaseURL: srv.URL}
	_, err := yt.Fetch(context.Background(), "dQw4w9WgXcQ")
	if !errors.Is(err, ErrNoTranscript) {
		t.Fatalf("err = %v, want ErrNoTranscript", err)
	}
	if !strings.Contains(err.Error(), "not a bot") {
		t.Errorf("error should carry the player reason: %v", err)
	}
}

func TestYouTubeFetch_Canceled(t *testing.T) {
	srv := fakeYouTube(t, true, true, true)
	yt := &YouTube{HTTPClient: srv.Client(), BaseURL: srv.URL}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := yt.Fetch(ctx, "dQw4w9WgXcQ"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
