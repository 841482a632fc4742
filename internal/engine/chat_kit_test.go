package engine

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// withKitBackend routes completions through the go-kit client to stub.
func withKitBackend(t *testing.T, stub *stubLLM) {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	withConfig(t, Config{
		LLMAPIKey:      "kit-key",
		LLMAPIBase:     srv.URL,
		LLMBackend:     BackendKit,
		LLMTemperature: 0.7,
	})
}

// maxTokens reads the token cap under either OpenAI field name.
func maxTokens(body map[string]any) any {
	if v, ok := body["max_completion_tokens"]; ok {
		return v
	}
	return body["max_tokens"]
}

func TestKitCompleter_Analysis(t *testing.T) {
	stub := &stubLLM{reply: `{"tone":"Casual","hooks":["questions"]}`}
	withKitBackend(t, stub)

	p, err := AnalyzeStyle(context.Background(), "kit transcript")
	require.NoError(t, err)
	assert.Equal(t, "Casual", p.Attr(AttrTone))
	require.Equal(t, 1, stub.calls())

	body := stub.last()
	assert.Equal(t, analysisSystemPrompt, systemMessage(body))
	assert.Contains(t, userMessage(body), "kit transcript")
	assert.EqualValues(t, 500, maxTokens(body))
	assert.EqualValues(t, 0.7, body["temperature"])
}

func TestKitCompleter_GenerationTokens(t *testing.T) {
	stub := &stubLLM{reply: "Kit script."}
	withKitBackend(t, stub)

	script, err := GenerateScript(context.Background(), fullProfile(), "space travel")
	require.NoError(t, err)
	assert.Equal(t, "Kit script.", script)

	body := stub.last()
	assert.Equal(t, generationSystemPrompt, systemMessage(body))
	assert.Contains(t, userMessage(body), `topic: "space travel"`)
	assert.EqualValues(t, 1000, maxTokens(body))
}

func TestKitCompleter_Failures(t *testing.T) {
	t.Run("empty reply", func(t *testing.T) {
		withKitBackend(t, &stubLLM{reply: ""})
		_, err := AnalyzeStyle(context.Background(), "transcript")
		assert.ErrorIs(t, err, ErrInsightsExtraction)
	})
	t.Run("remote error", func(t *testing.T) {
		withKitBackend(t, &stubLLM{status: http.StatusUnauthorized})
		_, err := AnalyzeStyle(context.Background(), "transcript")
		assert.ErrorIs(t, err, ErrAnalysisRequest)
		assert.Equal(t, "Failed to analyze the transcript. Please try again later.", UserMessage(err))
	})
}
