package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/truthlens/internal/core"
	"github.com/sandevgo/truthlens/pkg/log"
	"github.com/sandevgo/truthlens/pkg/srv"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP analysis service",
	Long:  `Serves POST /api/analyze, /healthz and /metrics until interrupted.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx, os.Stdout)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Str("version", core.Version).Msg("starting truthlens")

		services := NewServices(ctx)

		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("truthlens has been shut down gracefully")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
