package engine

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// stubLLM is a fake completion endpoint that records every request body.
type stubLLM struct {
	mu       sync.Mutex
	requests []map[string]any
	status   int
	reply    string
	raw      string // sent as-is when set
}

func (s *stubLLM) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)
	s.mu.Lock()
	s.requests = append(s.requests, body)
	s.mu.Unlock()

	if s.status != 0 && s.status != http.StatusOK {
		w.WriteHeader(s.status)
		_, _ = w.Write([]byte(`{"error":{"message":"upstream failure"}}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if s.raw != "" {
		_, _ = w.Write([]byte(s.raw))
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": s.reply}},
		},
	})
}

func (s *stubLLM) calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.requests)
}

func (s *stubLLM) last() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return nil
	}
	return s.requests[len(s.requests)-1]
}

// withStubLLM points the engine at a test server for the duration of t.
func withStubLLM(t *testing.T, stub *stubLLM) {
	t.Helper()
	srv := httptest.NewServer(stub)
	t.Cleanup(srv.Close)
	withConfig(t, Config{LLMAPIKey: "test-key", LLMAPIBase: srv.URL, LLMTemperature: 0.7})
}

func withConfig(t *testing.T, c Config) {
	t.Helper()
	saved := cfg
	Init(c)
	t.Cleanup(func() { cfg = saved; Cfg = &cfg })
}

// systemMessage returns the content of the system message in a recorded body.
func systemMessage(body map[string]any) string {
	return messageContent(body, "system")
}

// userMessage returns the content of the user message in a recorded body.
func userMessage(body map[string]any) string {
	return messageContent(body, "user")
}

func messageContent(body map[string]any, role string) string {
	msgs, _ := body["messages"].([]any)
	for _, m := range msgs {
		mm, _ := m.(map[string]any)
		if mm["role"] == role {
			s, _ := mm["content"].(string)
			return s
		}
	}
	return ""
}

// newHeaderServer answers every request with a single "ok" choice after
// passing it to inspect. It returns the server URL.
func newHeaderServer(t *testing.T, inspect func(*http.Request)) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inspect(r)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}
