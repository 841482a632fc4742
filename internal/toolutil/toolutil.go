// Package toolutil provides shared helper functions for the MCP tools.
package toolutil

import (
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/anatolykoptev/go_scriptstyle/internal/engine"
)

// ToolError logs err with its detail and returns the stable caller-facing
// message as the tool error.
func ToolError(tool string, err error) error {
	slog.Warn("mcp: tool failed", slog.String("tool", tool), slog.Any("error", err))
	return errors.New(engine.UserMessage(err))
}

// ProfileArg resolves a tool's profile argument: the object form wins,
// then the text form. Neither present is engine.ErrNoPendingProfile.
func ProfileArg(obj map[string]any, text string) (engine.StyleProfile, error) {
	if len(obj) > 0 {
		return engine.StyleProfile(obj).Clone(), nil
	}
	if text == "" {
		return nil, engine.ErrNoPendingProfile
	}
	quoted, err := json.Marshal(text)
	if err != nil {
		return nil, err
	}
	return engine.DecodeProfile(quoted)
}
