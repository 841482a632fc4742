package styleserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_scriptstyle/internal/engine"
	"github.com/anatolykoptev/go_scriptstyle/internal/toolutil"
)

func registerVideoIDExtract(server *mcp.Server, p *engine.Pipeline) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "video_id_extract",
		Description: "Extract the 11-character YouTube video ID from a link. Accepts watch, youtu.be, embed, /v/, shorts URLs and bare IDs. Does not check that the video exists.",
		Annotations: &mcp.ToolAnnotations{ReadOnlyHint: true},
	}, func(_ context.Context, _ *mcp.CallToolRequest, input engine.VideoIDExtractInput) (*mcp.CallToolResult, engine.VideoIDExtractOutput, error) {
		id, err := p.Identify(input.Link)
		if err != nil {
			return nil, engine.VideoIDExtractOutput{}, toolutil.ToolError("video_id_extract", err)
		}
		return nil, engine.VideoIDExtractOutput{VideoID: id}, nil
	})
}
