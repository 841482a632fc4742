package main

import (
	"bytes"
	"errors"
	"net"
	"strings"
	"testing"

	"github.com/anatolykoptev/go_scriptstyle/internal/engine"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestExtractIDCommand(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	out, err := run(t, "extract-id", "https://youtu.be/dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("extract-id: %v", err)
	}
	if strings.TrimSpace(out) != "dQw4w9WgXcQ" {
		t.Errorf("output = %q", out)
	}

	_, err = run(t, "extract-id", "not a link")
	if err == nil || err.Error() != "Invalid YouTube video link." {
		t.Errorf("err = %v", err)
	}
}

func TestMissingAPIKeyFailsFast(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	_, err := run(t, "restyle", "dQw4w9WgXcQ", "topic")
	if !errors.Is(err, engine.ErrMissingAPIKey) {
		t.Errorf("err = %v, want ErrMissingAPIKey", err)
	}
}

func TestInvalidBackendRejected(t *testing.T) {
	t.Setenv("LLM_API_KEY", "k")
	t.Setenv("LLM_BACKEND", "grpc")
	if _, err := run(t, "interactive"); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestAddr(t *testing.T) {
	if got := addr("8080"); got != ":8080" {
		t.Errorf("addr(8080) = %q", got)
	}
	if got := addr("127.0.0.1:9000"); got != "127.0.0.1:9000" {
		t.Errorf("addr(host:port) = %q", got)
	}
}

func TestEnvBool(t *testing.T) {
	t.Setenv("X_FLAG", "true")
	if !envBool("X_FLAG") {
		t.Error("true not parsed")
	}
	t.Setenv("X_FLAG", "maybe")
	if envBool("X_FLAG") {
		t.Error("invalid value should be false")
	}
}

func TestOfflineCommandsSkipEngine(t *testing.T) {
	t.Setenv("LLM_API_KEY", "")
	for _, args := range [][]string{
		{"help"},
		{"help", "restyle"},
		{"completion", "bash"},
		{"extract-id", "dQw4w9WgXcQ"},
	} {
		if _, err := run(t, args...); err != nil {
			t.Errorf("%v: %v", args, err)
		}
	}
}

func TestTerminalFlowsSendFullTranscript(t *testing.T) {
	t.Setenv("TRANSCRIPT_MAX_CHARS", "5000")
	for _, cmd := range []string{"interactive", "restyle"} {
		c, _, err := newRootCmd().Find([]string{cmd})
		if err != nil {
			t.Fatalf("find %s: %v", cmd, err)
		}
		flag := c.Flags().Lookup("max-chars")
		if flag == nil {
			t.Fatalf("%s has no --max-chars flag", cmd)
		}
		if flag.DefValue != "0" {
			t.Errorf("%s --max-chars default = %s, want 0", cmd, flag.DefValue)
		}
	}

	t.Setenv("CLI_TRANSCRIPT_MAX_CHARS", "1200")
	c, _, _ := newRootCmd().Find([]string{"interactive"})
	if got := c.Flags().Lookup("max-chars").DefValue; got != "1200" {
		t.Errorf("interactive --max-chars default = %s, want 1200", got)
	}
}

func TestServeReturnsWebBindError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	t.Setenv("WEB_PORT", ln.Addr().String())
	t.Setenv("GIN_MODE", "test")

	err = serve()
	if err == nil || !strings.Contains(err.Error(), "web server") {
		t.Errorf("serve() = %v, want web server bind error", err)
	}
}
