package engine

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Unknown is substituted for any style attribute the profile lacks.
const Unknown = "Unknown"

// Style attribute keys requested by the analysis prompt.
const (
	AttrTone           = "tone"
	AttrSentenceLength = "sentence_length"
	AttrVocabulary     = "vocabulary"
	AttrHooks          = "hooks"
	AttrSentiment      = "sentiment"
	AttrStructure      = "structure"
	AttrRepetition     = "repetition"
)

// StyleAttributes lists the profile keys in prompt order.
var StyleAttributes = []string{
	AttrTone, AttrSentenceLength, AttrVocabulary, AttrHooks,
	AttrSentiment, AttrStructure, AttrRepetition,
}

// ParseFormat records which parser produced a profile.
type ParseFormat string

const (
	FormatJSON     ParseFormat = "json"
	FormatFreeform ParseFormat = "freeform"
)

// StyleProfile is the model's description of a transcript's style.
// Keys are whatever the model produced; values are JSON values.
type StyleProfile map[string]any

// ParsedProfile is a StyleProfile plus how it was obtained.
type ParsedProfile struct {
	Profile StyleProfile `json:"profile"`
	Format  ParseFormat  `json:"format"`
}

// Attr returns the display string for key, or Unknown when absent.
// A key with underscores also matches its spaced form ("sentence length").
func (p StyleProfile) Attr(key string) string {
	v, ok := p.lookup(key)
	if !ok {
		return Unknown
	}
	return displayValue(v)
}

// Hooks renders the hooks attribute: a list is joined with ", ",
// a string is used as-is, anything else is Unknown.
func (p StyleProfile) Hooks() string {
	v, ok := p.lookup(AttrHooks)
	if !ok {
		return Unknown
	}
	var out string
	switch h := v.(type) {
	case string:
		out = h
	case []any:
		parts := make([]string, 0, len(h))
		for _, item := range h {
			parts = append(parts, displayValue(item))
		}
		out = strings.Join(parts, ", ")
	case []string:
		out = strings.Join(h, ", ")
	}
	if out == "" {
		return Unknown
	}
	return out
}

// Clone returns a deep copy of p.
func (p StyleProfile) Clone() StyleProfile {
	if p == nil {
		return nil
	}
	out := make(StyleProfile, len(p))
	for k, v := range p {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = cloneValue(vv)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = cloneValue(vv)
		}
		return s
	case []string:
		return append([]string(nil), t...)
	}
	return v
}

// Keys returns the profile keys in sorted order.
func (p StyleProfile) Keys() []string {
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (p StyleProfile) lookup(key string) (any, bool) {
	if v, ok := p[key]; ok && v != nil {
		return v, true
	}
	if spaced := strings.ReplaceAll(key, "_", " "); spaced != key {
		if v, ok := p[spaced]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func displayValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64, bool, json.Number:
		return fmt.Sprint(t)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// ParseProfile turns cleaned analysis text into a profile. A JSON object
// wins; otherwise every "key: value" line becomes an entry, split at the
// first colon. Nothing usable yields ErrInsightsExtraction.
func ParseProfile(text string) (ParsedProfile, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return ParsedProfile{}, fmt.Errorf("%w: empty analysis", ErrInsightsExtraction)
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err == nil {
		if len(obj) == 0 {
			return ParsedProfile{}, fmt.Errorf("%w: empty JSON object", ErrInsightsExtraction)
		}
		return ParsedProfile{Profile: StyleProfile(obj), Format: FormatJSON}, nil
	}

	profile := parseFreeform(text)
	if len(profile) == 0 {
		return ParsedProfile{}, fmt.Errorf("%w: no key/value lines", ErrInsightsExtraction)
	}
	return ParsedProfile{Profile: profile, Format: FormatFreeform}, nil
}

func parseFreeform(text string) StyleProfile {
	profile := StyleProfile{}
	for _, line := range strings.Split(text, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		profile[key] = strings.TrimSpace(value)
	}
	return profile
}

// DecodeProfile reads a profile handed back by a caller: a JSON object,
// or a JSON string holding analysis text. Missing or empty input is
// ErrNoPendingProfile.
func DecodeProfile(raw json.RawMessage) (StyleProfile, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, ErrNoPendingProfile
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
		if len(obj) == 0 {
			return nil, ErrNoPendingProfile
		}
		return StyleProfile(obj), nil
	}

	var s string
	if err := json.Unmarshal([]byte(trimmed), &s); err != nil {
		return nil, fmt.Errorf("%w: profile must be an object or string", ErrNoPendingProfile)
	}
	if strings.TrimSpace(s) == "" {
		return nil, ErrNoPendingProfile
	}
	parsed, err := ParseProfile(stripFences(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoPendingProfile, err)
	}
	return parsed.Profile, nil
}
