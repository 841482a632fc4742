package engine

import (
	"context"
	"fmt"
	"strings"
)

// BuildGenerationPrompt restates topic and every profile attribute.
// Missing attributes read as Unknown.
func BuildGenerationPrompt(profile StyleProfile, topic string) string {
	tone := profile.Attr(AttrTone)
	length := profile.Attr(AttrSentenceLength)
	vocab := profile.Attr(AttrVocabulary)
	hooks := profile.Hooks()
	sentiment := profile.Attr(AttrSentiment)
	structure := profile.Attr(AttrStructure)
	return fmt.Sprintf(generationPrompt, topic,
		tone, length, vocab, hooks, sentiment, structure, profile.Attr(AttrRepetition),
		tone, length, vocab, hooks, sentiment, structure)
}

// BuildGenerationRequest returns the completion request for one script.
func BuildGenerationRequest(profile StyleProfile, topic string) ChatRequest {
	return newChatRequest(generationSystemPrompt,
		BuildGenerationPrompt(profile, topic), cfg.GenerationMaxTokens)
}

// GenerateScript writes a new script on topic in the style of profile.
// Reasoning blocks are removed unless VerbatimScripts is set.
func GenerateScript(ctx context.Context, profile StyleProfile, topic string) (string, error) {
	if len(profile) == 0 {
		return "", ErrNoPendingProfile
	}
	if strings.TrimSpace(topic) == "" {
		return "", ErrInvalidTopic
	}

	metrics.Generations.Add(1)
	text, err := callLLM(ctx, "script_generate", BuildGenerationRequest(profile, topic))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGenerationRequest, err)
	}
	if !cfg.VerbatimScripts {
		text = StripReasoning(text)
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: empty script", ErrGenerationRequest)
	}
	return text, nil
}
