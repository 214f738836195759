package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ellavondegurechaff/cakeclaim/cakeclaim"
	"github.com/ellavondegurechaff/cakeclaim/cakeclaim/logger"
)

var (
	version = "dev"
	commit  = "unknown"
)

var (
	configPath string
	cfg        *cakeclaim.Config
)

var rootCmd = &cobra.Command{
	Use:           "cakeclaim",
	Short:         "Claim-and-mint NFT service",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := cakeclaim.LoadConfig(configPath)
		if err != nil {
			return err
		}
		cfg = loaded
		setupLogger(cfg.Log)

		slog.Debug("Configuration loaded",
			slog.String("type", "sys"),
			slog.String("path", configPath))
		return nil
	},
}

func setupLogger(cfg cakeclaim.LogConfig) {
	var handler slog.Handler
	switch cfg.Format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level:     cfg.Level,
			AddSource: cfg.AddSource,
		})
	default:
		handler = logger.NewHandler("CakeClaim", cfg.Level)
	}
	slog.SetDefault(slog.New(handler))
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.toml", "path to config")
	rootCmd.Version = fmt.Sprintf("%s (%s)", version, commit)
}
