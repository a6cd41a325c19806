package main

import (
	"context"
	"os"

	"github.com/sandevgo/truthlens/internal/config"
	"github.com/sandevgo/truthlens/internal/core"
	"github.com/sandevgo/truthlens/internal/providers/llm"
	"github.com/sandevgo/truthlens/internal/service/installer"
	"github.com/sandevgo/truthlens/pkg/log"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:           "install",
	Short:         "Create the runtime configuration interactively",
	SilenceUsage:  true,
	SilenceErrors: false,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, flushLog := setupLogger(cmd.Context(), os.Stderr)
		defer flushLog()

		logger := log.FromCtx(ctx)
		envPath := config.GetEnvPath()
		logger.Info().Str("path", envPath).Msg("starting setup")

		if _, err := installer.RunWizard(envPath, listModels); err != nil {
			return err
		}

		logger.Info().Msgf("configuration written to %s", envPath)
		logger.Info().Msg("Setup complete! You can now run 'truthlens serve'.")
		return nil
	},
}

func listModels(ctx context.Context, state *installer.InstallState) ([]core.Model, error) {
	provider, err := llm.NewProvider(ctx, state.Inference())
	if err != nil {
		return nil, err
	}
	return provider.Models(ctx)
}

func init() {
	rootCmd.AddCommand(installCmd)
}
