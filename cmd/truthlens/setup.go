package main

import (
	"context"
	"fmt"

	"github.com/sandevgo/truthlens/internal/config"
	"github.com/sandevgo/truthlens/internal/providers/llm"
	"github.com/sandevgo/truthlens/internal/providers/mcp"
	"github.com/sandevgo/truthlens/internal/providers/search"
	"github.com/sandevgo/truthlens/internal/providers/tools"
	"github.com/sandevgo/truthlens/internal/service/agent"
	"github.com/sandevgo/truthlens/internal/service/dispatch"
	"github.com/sandevgo/truthlens/internal/service/media"
	"github.com/sandevgo/truthlens/internal/transport/api"
	"github.com/sandevgo/truthlens/pkg/log"
	"github.com/sandevgo/truthlens/pkg/srv"
)

// Deps is the process-wide state built once at startup and shared read-only by every request.
type Deps struct {
	App        *config.AppConfig
	Inference  *llm.OpenAICompatible
	Tools      *tools.Registry
	Dispatcher *dispatch.Dispatcher
	Metrics    *api.Metrics

	// Cleanup hooks, run in reverse order on shutdown
	Cleanup []srv.Service
}

func NewDeps(ctx context.Context) (*Deps, error) {
	logger := log.FromCtx(ctx)
	deps := &Deps{Metrics: api.NewMetrics()}

	// 1. Configuration
	deps.App = config.NewAppConfig(ctx)
	inferenceCfg := config.NewInferenceConfig(ctx)
	searchCfg := config.NewSearchConfig(ctx)
	agentCfg := config.NewAgentConfig(ctx)

	// 2. Inference provider
	ai, err := llm.NewProvider(ctx, inferenceCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize inference provider: %w", err)
	}
	deps.Inference = ai

	// 3. External tool servers (optional)
	mcpCfg, err := mcp.LoadConfig(ctx, config.GetMCPConfigPath())
	if err != nil {
		return nil, err
	}
	var extra []tools.Provider
	if len(mcpCfg.MCPServers) > 0 {
		source := mcp.NewSource(mcp.NewPool(), nil)
		source.Connect(ctx, mcpCfg)
		extra = append(extra, source)
		deps.Cleanup = append(deps.Cleanup, srv.NewCleanup("mcp tool servers", source.Close))
	}

	// 4. Capability tools
	if searchCfg.GetTavilyAPIKey() == "" {
		logger.Warn().Msg("TAVILY_API_KEY is not set, search tools will report errors")
	}
	registry, err := tools.NewDefaultRegistry(search.NewTavily(searchCfg), tools.FilenameScorer{}, extra...)
	if err != nil {
		return nil, fmt.Errorf("failed to build tool registry: %w", err)
	}
	deps.Tools = registry
	logger.Info().Strs("tools", registry.Names()).Msg("capability tools ready")

	// 5. Reasoning loop and interpreters
	executor := agent.NewExecutor(registry, agentCfg.GetObservationLimit(), deps.Metrics)
	reasoner := agent.NewAgent(agentCfg, ai, registry, executor)
	audio := media.NewAudioInterpreter(ai)

	deps.Dispatcher = dispatch.NewDispatcher(
		media.NewImageInterpreter(ai),
		audio,
		reasoner,
		audio.Model(),
		deps.Metrics,
	)

	return deps, nil
}

// Close runs the cleanup hooks outside of the service lifecycle.
func (d *Deps) Close(ctx context.Context) {
	for i := len(d.Cleanup) - 1; i >= 0; i-- {
		if err := d.Cleanup[i].Shutdown(ctx); err != nil {
			log.FromCtx(ctx).Error().Err(err).Msg("cleanup failed")
		}
	}
}

// NewServices assembles everything `serve` runs.
func NewServices(ctx context.Context) []srv.Service {
	deps, err := NewDeps(ctx)
	if err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to initialize")
	}

	services := append([]srv.Service{}, deps.Cleanup...)
	services = append(services, api.NewServer(ctx, deps.App, deps.Dispatcher, deps.Metrics))
	return services
}
