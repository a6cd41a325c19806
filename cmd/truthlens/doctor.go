package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sandevgo/truthlens/internal/config"
	"github.com/sandevgo/truthlens/internal/core"
	"github.com/sandevgo/truthlens/internal/providers/llm"
	"github.com/sandevgo/truthlens/internal/providers/mcp"
	"github.com/sandevgo/truthlens/internal/service/ui"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:          "doctor",
	Short:        "Check credentials and connectivity to the inference provider",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context(), os.Stderr)
		defer flushLog()

		out := cmd.OutOrStdout()
		inferenceCfg := config.NewInferenceConfig(ctx)
		searchCfg := config.NewSearchConfig(ctx)

		key := inferenceCfg.GetAPIKey()
		write(out, ui.Check(key != "", "Inference key", fmt.Sprintf("%s: %s", inferenceCfg.GetProvider(), maskKey(key))))
		write(out, ui.Check(searchCfg.GetTavilyAPIKey() != "", "Tavily key", maskKey(searchCfg.GetTavilyAPIKey())))

		mcpCfg, err := mcp.LoadConfig(ctx, config.GetMCPConfigPath())
		if err != nil {
			write(out, ui.Check(false, "MCP servers", err.Error()))
		} else {
			write(out, ui.Check(true, "MCP servers", fmt.Sprintf("%d configured", len(mcpCfg.MCPServers))))
		}

		provider, err := llm.NewProvider(ctx, inferenceCfg)
		if err != nil {
			write(out, ui.Check(false, "Provider", err.Error()))
			return err
		}

		tctx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		var failed bool
		models, err := provider.Models(tctx)
		if err != nil {
			failed = true
			write(out, ui.Check(false, "Models", err.Error()))
		} else {
			write(out, ui.Check(true, "Models", fmt.Sprintf("%d available", len(models))))
			for _, m := range models {
				write(out, "     "+ui.DescStyle.Render(m.Name)+"\n")
			}
		}

		reply, err := provider.Generate(tctx, core.Prompt{Text: "Reply with the single word: ready"})
		if err != nil {
			failed = true
			write(out, ui.Check(false, "Generation", err.Error()))
		} else {
			write(out, ui.Check(true, "Generation", fmt.Sprintf("%s replied %q", provider.Model(), strings.TrimSpace(reply))))
		}

		if failed {
			return fmt.Errorf("%s is not ready", core.AppName)
		}
		return nil
	},
}

// maskKey keeps the first four characters of a credential.
func maskKey(key string) string {
	switch {
	case key == "":
		return "not set"
	case len(key) <= 4:
		return "****"
	default:
		return key[:4] + "****"
	}
}

func write(w io.Writer, s string) {
	_, _ = io.WriteString(w, s)
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
