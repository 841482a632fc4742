// go_scriptstyle: learn a YouTube video's writing style and write new scripts in it.
//
// Runs an MCP server (video_id_extract, style_analyze, script_generate,
// script_restyle) next to a small web front end, or works from the terminal.
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/anatolykoptev/go-kit/env"

	"github.com/anatolykoptev/go_scriptstyle/internal/engine"
	"github.com/anatolykoptev/go_scriptstyle/internal/engine/sources"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// initEngine reads the environment into engine.Config and fails fast on
// settings that have no default.
func initEngine() error {
	c := engine.Config{
		LLMAPIKey:           env.Str("LLM_API_KEY", ""),
		LLMAPIKeyFallbacks:  env.List("LLM_API_KEY_FALLBACKS", ""),
		LLMAPIBase:          env.Str("LLM_API_BASE", "https://api.groq.com/openai/v1"),
		LLMModel:            env.Str("LLM_MODEL", "deepseek-r1-distill-llama-70b"),
		LLMBackend:          env.Str("LLM_BACKEND", engine.BackendNative),
		LLMTemperature:      env.Float("LLM_TEMPERATURE", 0.7),
		LLMTopP:             env.Float("LLM_TOP_P", 1.0),
		LLMTimeout:          env.Duration("LLM_TIMEOUT", 60*time.Second),
		AnalysisMaxTokens:   env.Int("LLM_ANALYSIS_MAX_TOKENS", 500),
		GenerationMaxTokens: env.Int("LLM_GENERATION_MAX_TOKENS", 1000),
		VerbatimScripts:     envBool("LLM_VERBATIM_SCRIPTS"),
		TranscriptMaxChars:  env.Int("TRANSCRIPT_MAX_CHARS", 5000),
		TranscriptLangs:     env.List("TRANSCRIPT_LANGS", "en"),
		FetchTimeout:        env.Duration("FETCH_TIMEOUT", 15*time.Second),
	}
	c.HTTPClient = &http.Client{
		Timeout: c.FetchTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        20,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     60 * time.Second,
		},
	}
	if err := c.Validate(); err != nil {
		return err
	}
	engine.Init(c)
	slog.Debug("engine initialized",
		slog.String("backend", engine.Cfg.LLMBackend),
		slog.String("model", engine.Cfg.LLMModel),
		slog.String("api_base", engine.Cfg.LLMAPIBase))
	return nil
}

// newPipeline returns a pipeline over the YouTube source capped at maxChars.
func newPipeline(maxChars int) *engine.Pipeline {
	return &engine.Pipeline{
		Source:             sources.NewYouTube(engine.Cfg.TranscriptLangs),
		MaxTranscriptChars: maxChars,
	}
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(env.Str(key, "false")))
	if err != nil {
		slog.Warn("ignoring invalid boolean", slog.String("key", key), slog.String("value", env.Str(key, "")))
		return false
	}
	return v
}

func addr(port string) string {
	if strings.Contains(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}
