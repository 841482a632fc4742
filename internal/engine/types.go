package engine

// VideoIDExtractInput is the input for the video_id_extract tool.
type VideoIDExtractInput struct {
	Link string `json:"link" jsonschema:"YouTube video URL (watch, youtu.be, embed, shorts) or a bare 11-character video ID"`
}

// VideoIDExtractOutput is the output for the video_id_extract tool.
type VideoIDExtractOutput struct {
	VideoID string `json:"video_id"`
}

// StyleAnalyzeInput is the input for the style_analyze tool.
type StyleAnalyzeInput struct {
	VideoLink string `json:"video_link" jsonschema:"YouTube video URL or ID whose captions will be analyzed"`
}

// StyleAnalyzeOutput is the output for the style_analyze tool.
type StyleAnalyzeOutput struct {
	VideoID string       `json:"video_id"`
	Format  ParseFormat  `json:"format"`
	Profile StyleProfile `json:"profile"`
}

// ScriptGenerateInput is the input for the script_generate tool.
type ScriptGenerateInput struct {
	Topic       string         `json:"topic" jsonschema:"Topic of the new video script"`
	Profile     map[string]any `json:"profile,omitempty" jsonschema:"Style profile returned by style_analyze (tone, sentence_length, vocabulary, hooks, sentiment, structure, repetition)"`
	ProfileText string         `json:"profile_text,omitempty" jsonschema:"Alternative to profile: profile as JSON text or 'key: value' lines"`
}

// ScriptRestyleInput is the input for the script_restyle tool.
type ScriptRestyleInput struct {
	VideoLink string `json:"video_link" jsonschema:"YouTube video URL or ID to learn the style from"`
	Topic     string `json:"topic" jsonschema:"Topic of the new video script"`
}

// ScriptOutput is the output for script_generate and script_restyle.
type ScriptOutput struct {
	VideoID string       `json:"video_id,omitempty"`
	Profile StyleProfile `json:"profile,omitempty"`
	Script  string       `json:"script"`
}
