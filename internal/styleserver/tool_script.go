package styleserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_scriptstyle/internal/engine"
	"github.com/anatolykoptev/go_scriptstyle/internal/toolutil"
)

func registerScriptGenerate(server *mcp.Server, p *engine.Pipeline) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "script_generate",
		Description: "Write a new video script on a topic in the style described by a profile from style_analyze. Missing profile attributes are treated as Unknown.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.ScriptGenerateInput) (*mcp.CallToolResult, engine.ScriptOutput, error) {
		profile, err := toolutil.ProfileArg(input.Profile, input.ProfileText)
		if err != nil {
			return nil, engine.ScriptOutput{}, toolutil.ToolError("script_generate", err)
		}
		script, err := p.Generate(ctx, profile, input.Topic)
		if err != nil {
			return nil, engine.ScriptOutput{}, toolutil.ToolError("script_generate", err)
		}
		return nil, engine.ScriptOutput{Script: script}, nil
	})
}

func registerScriptRestyle(server *mcp.Server, p *engine.Pipeline) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "script_restyle",
		Description: "One step: learn the style of a YouTube video from its captions, then write a new script on the topic in that style. Returns the profile used and the script.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(ctx context.Context, _ *mcp.CallToolRequest, input engine.ScriptRestyleInput) (*mcp.CallToolResult, engine.ScriptOutput, error) {
		a, script, err := p.Restyle(ctx, input.VideoLink, input.Topic)
		if err != nil {
			return nil, engine.ScriptOutput{}, toolutil.ToolError("script_restyle", err)
		}
		return nil, engine.ScriptOutput{VideoID: a.VideoID, Profile: a.Profile, Script: script}, nil
	})
}
