package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	mcpproto "github.com/mark3labs/mcp-go/mcp"
	"github.com/sandevgo/truthlens/internal/core"
	"github.com/sandevgo/truthlens/pkg/log"
)

type Timeouts struct {
	Connect  time.Duration
	ToolList time.Duration
	ToolCall time.Duration
}

func NewDefaultTimeouts() *Timeouts {
	return &Timeouts{
		Connect:  30 * time.Second,
		ToolList: 5 * time.Second,
		ToolCall: 2 * time.Minute,
	}
}

// Source exposes the tools of external MCP servers as capability tools.
// The tool list is captured once by Connect; the agent's tool set is fixed after startup.
type Source struct {
	pool     ConnectionPool
	timeouts *Timeouts
	tools    []core.Tool
}

func NewSource(pool ConnectionPool, timeouts *Timeouts) *Source {
	if timeouts == nil {
		timeouts = NewDefaultTimeouts()
	}
	return &Source{
		pool:     pool,
		timeouts: timeouts,
	}
}

// Connect starts every configured server in parallel and snapshots its tools.
// A server that fails to connect or list is logged and skipped.
func (s *Source) Connect(ctx context.Context, cfg *Config) {
	names := cfg.Names()
	lists := make([][]core.Tool, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lists[i] = s.connectServer(ctx, name, cfg.MCPServers[name])
		}()
	}
	wg.Wait()

	s.tools = nil
	for _, l := range lists {
		s.tools = append(s.tools, l...)
	}
}

func (s *Source) connectServer(ctx context.Context, name string, cfg ServerConfig) []core.Tool {
	logger := log.FromCtx(ctx).With().Str("server", name).Logger()
	logger.Info().
		Str("url", cfg.URL).
		Str("command", cfg.Command).
		Msg("starting mcp server")

	connectCtx, cancel := context.WithTimeout(ctx, s.timeouts.Connect)
	defer cancel()

	cli, err := s.pool.Add(connectCtx, name, cfg)
	if err != nil {
		logger.Error().Err(err).Msg("failed to start mcp server")
		return nil
	}

	tools, err := s.listTools(ctx, name, cli)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list tools")
		return nil
	}

	logger.Info().Int("tools", len(tools)).Msg("mcp server connected")
	return tools
}

func (s *Source) listTools(ctx context.Context, server string, cli *ManagedClient) ([]core.Tool, error) {
	tCtx, cancel := context.WithTimeout(ctx, s.timeouts.ToolList)
	defer cancel()

	resp, err := cli.ListTools(tCtx, mcpproto.ListToolsRequest{})
	if err != nil {
		return nil, err
	}

	tools := make([]core.Tool, 0, len(resp.Tools))
	for _, t := range resp.Tools {
		remote := t.Name
		schema := t.InputSchema
		tools = append(tools, core.Tool{
			Name:        fmt.Sprintf("%s.%s", server, remote),
			Description: strings.Join(strings.Fields(t.Description), " "),
			Invoke: func(ctx context.Context, input string) (string, error) {
				return s.call(ctx, cli, remote, toolArguments(schema.Properties, schema.Required, input))
			},
		})
	}
	return tools, nil
}

func (s *Source) call(ctx context.Context, cli *ManagedClient, name string, args map[string]any) (string, error) {
	if cli.IsClosed() {
		return "", fmt.Errorf("server %s is not available", cli.name)
	}

	req := mcpproto.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	tCtx, cancel := context.WithTimeout(ctx, s.timeouts.ToolCall)
	defer cancel()

	res, err := cli.CallTool(tCtx, req)
	if err != nil {
		return "", err
	}

	var output strings.Builder
	for _, content := range res.Content {
		if text, ok := content.(mcpproto.TextContent); ok {
			output.WriteString(text.Text + "\n")
		} else if textPtr, ok := content.(*mcpproto.TextContent); ok {
			output.WriteString(textPtr.Text + "\n")
		}
	}

	if res.IsError {
		return "", fmt.Errorf("tool execution failed: %s", strings.TrimSpace(output.String()))
	}
	return strings.TrimRight(output.String(), "\n"), nil
}

// Definitions returns the snapshot taken by Connect.
func (s *Source) Definitions() []core.Tool {
	out := make([]core.Tool, len(s.tools))
	copy(out, s.tools)
	return out
}

func (s *Source) Close() error {
	return s.pool.Close()
}

// toolArguments maps a single free-text tool input onto a remote schema.
// A JSON object is passed through; otherwise the text fills the only required
// (or only declared) property, falling back to "input".
func toolArguments(properties map[string]any, required []string, input string) map[string]any {
	trimmed := strings.TrimSpace(input)
	if strings.HasPrefix(trimmed, "{") {
		var obj map[string]any
		if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
			return obj
		}
	}

	key := "input"
	switch {
	case len(required) == 1:
		key = required[0]
	case len(properties) == 1:
		for k := range properties {
			key = k
		}
	}
	return map[string]any{key: input}
}
