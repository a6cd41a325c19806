package main

import (
	"context"
	"io"
	"os"

	"github.com/sandevgo/truthlens/internal/config"
	"github.com/sandevgo/truthlens/internal/core"
	"github.com/sandevgo/truthlens/internal/service/ui"
	"github.com/sandevgo/truthlens/pkg/log"
	"github.com/spf13/cobra"
)

var (
	debug bool
)

var rootCmd = &cobra.Command{
	Use:     "truthlens",
	Short:   "TruthLens: multimodal fact-checking backend",
	Long:    `TruthLens investigates claims, images and voice notes with a tool-using reasoning agent.`,
	Version: core.Version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags available to all subcommands
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", config.IsDebug(), "enable debug logging")
}

// setupLogger loads the .env files, then installs the process logger writing to out.
func setupLogger(ctx context.Context, out io.Writer) (context.Context, func()) {
	envErr := config.LoadDotEnv(ctx, config.GetEnvPath(), ".env")

	format := log.FormatConsole
	if config.IsJSONLog() {
		format = log.FormatJSON
	}
	ctx, flush := log.NewContextWithFormat(ctx, debug || config.IsDebug(), format, out)
	if envErr != nil {
		log.FromCtx(ctx).Warn().Err(envErr).Msg("ignoring malformed .env file")
	}
	return ctx, flush
}

func CustomizeHelp(rootCmd *cobra.Command) {
	cobra.AddTemplateFunc("StyleTitle", func(s string) string { return ui.TitleStyle.Render(s) })
	cobra.AddTemplateFunc("StyleUsage", func(s string) string { return ui.UsageStyle.Render(s) })
	cobra.AddTemplateFunc("StyleFlag", func(s string) string { return ui.FlagStyle.Render(s) })
	cobra.AddTemplateFunc("StyleDesc", func(s string) string { return ui.DescStyle.Render(s) })

	template := `
{{StyleTitle "USAGE"}}
  {{.UseLine}}
{{if gt (len .Commands) 0}}{{StyleTitle "AVAILABLE COMMANDS"}}
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding}} {{StyleDesc .Short}}{{end}}
{{end}}{{end}}
{{if .HasAvailableLocalFlags}}{{StyleTitle "FLAGS"}}
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
{{end}}
`
	rootCmd.SetHelpTemplate(template)
}
