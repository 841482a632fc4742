package styleserver

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/anatolykoptev/go_scriptstyle/internal/engine"
)

// RegisterTools registers the style tools on the given MCP server:
// video_id_extract, style_analyze, script_generate, script_restyle.
func RegisterTools(server *mcp.Server, p *engine.Pipeline) {
	registerVideoIDExtract(server, p)
	registerStyleAnalyze(server, p)
	registerScriptGenerate(server, p)
	registerScriptRestyle(server, p)
}
