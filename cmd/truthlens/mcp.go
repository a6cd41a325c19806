package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/truthlens/internal/transport/mcp"
	"github.com/spf13/cobra"
)

var withAnalyze bool

var mcpCmd = &cobra.Command{
	Use:          "mcp",
	Short:        "Serve the capability tools over MCP stdio",
	Long:         `Speaks the Model Context Protocol on stdin/stdout. Logs go to stderr.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx, os.Stderr)
		defer flushLog()

		deps, err := NewDeps(ctx)
		if err != nil {
			return err
		}
		defer deps.Close(ctx)

		var analyzer mcp.Analyzer
		if withAnalyze {
			analyzer = deps.Dispatcher
		}
		return mcp.NewServer(deps.Tools, analyzer).Serve(ctx, os.Stdin, os.Stdout)
	},
}

func init() {
	mcpCmd.Flags().BoolVar(&withAnalyze, "with-analyze", true, "also expose the full analysis as the analyze_claim tool")
	rootCmd.AddCommand(mcpCmd)
}
