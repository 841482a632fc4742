package styleserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_scriptstyle/internal/engine"
	"github.com/anatolykoptev/go_scriptstyle/internal/toolutil"
)

func registerStyleAnalyze(server *mcp.Server, p *engine.Pipeline) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "style_analyze",
		Description: "Fetch a YouTube video's captions and infer its writing style profile: tone, sentence_length, vocabulary, hooks, sentiment, structure, repetition. Pass the returned profile to script_generate.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.StyleAnalyzeInput) (*mcp.CallToolResult, engine.StyleAnalyzeOutput, error) {
		a, err := p.AnalyzeLink(ctx, input.VideoLink)
		if err != nil {
			return nil, engine.StyleAnalyzeOutput{}, toolutil.ToolError("style_analyze", err)
		}
		return nil, engine.StyleAnalyzeOutput{VideoID: a.VideoID, Format: a.Format, Profile: a.Profile}, nil
	})
}
