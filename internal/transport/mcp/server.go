package mcp

import (
	"context"
	"encoding/json"
	"io"

	mcpproto "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/sandevgo/truthlens/internal/core"
	"github.com/sandevgo/truthlens/internal/service/dispatch"
	"github.com/sandevgo/truthlens/pkg/log"
)

const AnalyzeTool = "analyze_claim"

type ToolSource interface {
	Tools() []core.Tool
}

type Analyzer interface {
	Analyze(ctx context.Context, req dispatch.Request) (dispatch.Response, error)
}

// Server publishes the capability tools, and optionally the full analysis, over MCP.
type Server struct {
	mcp *server.MCPServer
}

// NewServer registers every tool from tools. When analyzer is not nil an extra
// analyze_claim tool runs a complete text analysis.
func NewServer(tools ToolSource, analyzer Analyzer) *Server {
	s := server.NewMCPServer(core.AppName, core.Version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	for _, t := range tools.Tools() {
		s.AddTool(
			mcpproto.NewTool(t.Name,
				mcpproto.WithDescription(t.Description),
				mcpproto.WithString("input", mcpproto.Required(), mcpproto.Description("Free-text tool input")),
			),
			toolHandler(t),
		)
	}

	if analyzer != nil {
		s.AddTool(
			mcpproto.NewTool(AnalyzeTool,
				mcpproto.WithDescription("Runs a full TruthLens investigation of a claim and returns the verdict, reasoning steps and sources as JSON."),
				mcpproto.WithString("query", mcpproto.Required(), mcpproto.Description("Claim or question to investigate")),
			),
			analyzeHandler(analyzer),
		)
	}

	return &Server{mcp: s}
}

func (s *Server) MCP() *server.MCPServer {
	return s.mcp
}

// Serve speaks MCP over the given streams until ctx is done or in closes.
func (s *Server) Serve(ctx context.Context, in io.Reader, out io.Writer) error {
	log.FromCtx(ctx).Info().Msg("mcp stdio server started")
	return server.NewStdioServer(s.mcp).Listen(ctx, in, out)
}

func toolHandler(t core.Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
		input, err := req.RequireString("input")
		if err != nil {
			return mcpproto.NewToolResultError(err.Error()), nil
		}

		log.FromCtx(ctx).Debug().Str("tool", t.Name).Msg("mcp tool call")
		out, err := t.Invoke(ctx, input)
		if err != nil {
			return mcpproto.NewToolResultError("Error executing tool: " + err.Error()), nil
		}
		return mcpproto.NewToolResultText(out), nil
	}
}

func analyzeHandler(a Analyzer) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcpproto.CallToolRequest) (*mcpproto.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcpproto.NewToolResultError(err.Error()), nil
		}

		resp, err := a.Analyze(ctx, dispatch.Request{Query: query})
		if err != nil {
			return mcpproto.NewToolResultError(err.Error()), nil
		}

		data, err := json.Marshal(resp)
		if err != nil {
			return nil, err
		}
		return mcpproto.NewToolResultText(string(data)), nil
	}
}
