package engine

import (
	"errors"
	"net/http"
	"time"
)

// Completion backends.
const (
	BackendNative = "native"
	BackendKit    = "kit"
)

// Config holds all engine configuration, injected from main.
type Config struct {
	LLMAPIKey           string
	LLMAPIKeyFallbacks  []string // kit backend only
	LLMAPIBase          string
	LLMModel            string
	LLMBackend          string // "native" (default) or "kit"
	LLMTemperature      float64
	LLMTopP             float64
	LLMTimeout          time.Duration
	AnalysisMaxTokens   int
	GenerationMaxTokens int
	VerbatimScripts     bool     // keep reasoning blocks in generated scripts
	TranscriptMaxChars  int      // request-driven surfaces; 0 = untruncated
	TranscriptLangs     []string // caption language preference
	FetchTimeout        time.Duration
	HTTPClient          *http.Client // transcript fetches
	LLMHTTPClient       *http.Client // completion calls
	Completer           Completer    // nil = built from the fields above
}

// ErrMissingAPIKey is returned by Validate when no completion credential is configured.
var ErrMissingAPIKey = errors.New("LLM_API_KEY is required")

// Validate checks the settings that cannot fall back to a default.
func (c Config) Validate() error {
	if c.Completer == nil && c.LLMAPIKey == "" {
		return ErrMissingAPIKey
	}
	if c.LLMBackend != "" && c.LLMBackend != BackendNative && c.LLMBackend != BackendKit {
		return errors.New("LLM_BACKEND must be native or kit")
	}
	return nil
}

var cfg = defaultConfig()

// Cfg exposes the engine configuration for sub-packages (sources).
// Always points to the current cfg value.
var Cfg = &cfg

func defaultConfig() Config {
	return Config{
		LLMAPIBase:          "https://api.groq.com/openai/v1",
		LLMModel:            "deepseek-r1-distill-llama-70b",
		LLMBackend:          BackendNative,
		LLMTemperature:      0.7,
		LLMTopP:             1.0,
		LLMTimeout:          60 * time.Second,
		AnalysisMaxTokens:   500,
		GenerationMaxTokens: 1000,
		TranscriptMaxChars:  5000,
		TranscriptLangs:     []string{"en"},
		FetchTimeout:        15 * time.Second,
		HTTPClient:          &http.Client{Timeout: 15 * time.Second},
	}
}

// Init initializes the engine with the given configuration.
// Zero-valued numeric fields keep their defaults, except temperature where
// 0 is a valid setting and only a negative value is replaced.
func Init(c Config) {
	d := defaultConfig()
	if c.LLMAPIBase == "" {
		c.LLMAPIBase = d.LLMAPIBase
	}
	if c.LLMModel == "" {
		c.LLMModel = d.LLMModel
	}
	if c.LLMBackend == "" {
		c.LLMBackend = d.LLMBackend
	}
	if c.LLMTemperature < 0 {
		c.LLMTemperature = d.LLMTemperature
	}
	if c.LLMTopP <= 0 {
		c.LLMTopP = d.LLMTopP
	}
	if c.LLMTimeout <= 0 {
		c.LLMTimeout = d.LLMTimeout
	}
	if c.AnalysisMaxTokens <= 0 {
		c.AnalysisMaxTokens = d.AnalysisMaxTokens
	}
	if c.GenerationMaxTokens <= 0 {
		c.GenerationMaxTokens = d.GenerationMaxTokens
	}
	if len(c.TranscriptLangs) == 0 {
		c.TranscriptLangs = d.TranscriptLangs
	}
	if c.FetchTimeout <= 0 {
		c.FetchTimeout = d.FetchTimeout
	}
	if c.HTTPClient == nil {
		c.HTTPClient = &http.Client{Timeout: c.FetchTimeout}
	}
	if c.LLMHTTPClient == nil {
		c.LLMHTTPClient = &http.Client{Timeout: c.LLMTimeout}
	}
	if c.Completer == nil {
		c.Completer = newCompleter(c)
	}
	cfg = c
	Cfg = &cfg
}

func newCompleter(c Config) Completer {
	if c.LLMBackend == BackendKit {
		return NewKitCompleter(c)
	}
	return NewChatClient(c.LLMAPIBase, c.LLMAPIKey, c.LLMHTTPClient)
}

// completer returns the configured Completer, building one lazily when
// the engine is used before Init.
func completer() Completer {
	if cfg.Completer == nil {
		cfg.Completer = newCompleter(cfg)
	}
	return cfg.Completer
}
