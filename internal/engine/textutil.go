package engine

import (
	"regexp"
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
)

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)

// reasoningRe matches one closed <think> block, across newlines, shortest first.
// An unclosed <think> is left untouched.
var reasoningRe = regexp.MustCompile(`(?s)<think>.*?</think>`)

var spaceRunRe = regexp.MustCompile(`\s+`)

// CleanHTML strips HTML tags and trims whitespace.
func CleanHTML(s string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(s, ""))
}

// CollapseSpaces replaces every whitespace run with a single space.
func CollapseSpaces(s string) string {
	return strings.TrimSpace(spaceRunRe.ReplaceAllString(s, " "))
}

// StripReasoning removes paired <think>...</think> blocks and trims the result.
// Text without a closed block is returned unchanged, byte for byte.
func StripReasoning(s string) string {
	if !reasoningRe.MatchString(s) {
		return s
	}
	return strings.TrimSpace(reasoningRe.ReplaceAllString(s, ""))
}

// stripFences removes markdown code fences from LLM output.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// A limit of 0 or less disables truncation. Safe for UTF-8.
func TruncateRunes(s string, limit int, suffix string) string {
	if limit <= 0 {
		return s
	}
	return strutil.TruncateWith(s, limit, suffix)
}
