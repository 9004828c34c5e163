package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/streetlens/go-activity/config"
)

// Version is the application version.
const Version = "0.1.0"

var (
	cfgPath string

	// Cfg is the loaded configuration shared by subcommands.
	Cfg config.Config
	// Log is the application logger shared by subcommands.
	Log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:     "go-activity",
	Short:   "Stream-sampled visual activity analyzer",
	Long:    "Estimates how busy a location is from a video stream or snapshot,\nusing blob, edge/contour and HOG pedestrian detection.",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; environment overrides still apply without it.
		_ = godotenv.Load()

		var err error
		Cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}

		var level slog.Level
		if err := level.UnmarshalText([]byte(Cfg.LogLevel)); err != nil {
			return fmt.Errorf("invalid log level %q: %w", Cfg.LogLevel, err)
		}
		Log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		return nil
	},
}

// Execute runs the CLI with signal-driven cancellation.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file")
}
