package engine

// LLM prompt templates, data only.

const analysisSystemPrompt = "You are an AI assistant that analyzes text."

const generationSystemPrompt = "You are an AI assistant that generates video scripts."

// analysisPrompt asks for the seven style attributes as a JSON object.
// Args: transcript.
const analysisPrompt = `Analyze the following script for its writing style, tone, and structure:

%s

Provide ONLY the following breakdown in JSON format (do not include any additional explanations or reasoning):
{
  "tone": "Formal/Casual/Humorous/Serious/etc.",
  "sentence_length": "Short/Medium/Long/Mixed",
  "vocabulary": "Simple/Technical/Sophisticated",
  "hooks": ["List of hooks used, e.g., questions, exclamations"],
  "sentiment": "Positive/Negative/Neutral/Mixed",
  "structure": "Describe the structure (e.g., introduction, body, conclusion)",
  "repetition": "Yes/No, describe any repeated phrases or ideas"
}`

// generationPrompt restates the profile as a recap and as directives.
// Args: topic, tone, sentence length, vocabulary, hooks, sentiment, structure,
// repetition, tone, sentence length, vocabulary, hooks, sentiment, structure.
const generationPrompt = `Generate a video script for the following topic: "%s". Use the exact style and structure learned from the previous analysis:

Analysis Result:
Tone: %s
Sentence Length: %s
Vocabulary: %s
Hooks: %s
Sentiment: %s
Structure: %s
Repetition: %s

Instructions:
- Match the tone (%s).
- Use sentences of %s length.
- Use %s vocabulary.
- Include hooks like %s.
- Maintain a %s sentiment.
- Follow the structure: %s.
- Repeat phrases or ideas for emphasis if repetition was noted.
- DO NOT include scene descriptions or visual cues. Focus only on generating plain text that matches the original transcript's format.

New Video Script:`
