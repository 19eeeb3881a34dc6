package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/soocke/vacation-cam-go/app"
	"github.com/soocke/vacation-cam-go/config"
)

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		cfgPath     string
		debugMode   bool
		picturesDir string
	)
	cmd := &cobra.Command{
		Use:          "vacation-cam",
		Short:        "Take photos and see where they were taken",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := cfgPath
			if path == "" {
				if p, err := config.DefaultPath(); err == nil {
					path = p
				}
			}
			cfg, loadErr := config.Load(path)
			if cmd.Flags().Changed("debug") {
				cfg.Debug = debugMode
			}
			if cmd.Flags().Changed("pictures-dir") {
				cfg.PicturesDir = picturesDir
			}

			level := slog.LevelInfo
			if cfg.Debug {
				level = slog.LevelDebug
			}
			logger := NewLogger(level)
			if loadErr != nil {
				logger.Warn("config load failed, using defaults", "path", path, "error", loadErr)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			app.NewApp("Vacation Cam", cfg, path, logger).Start(ctx)
			return nil
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "Path to the JSON configuration file (default $XDG_CONFIG_HOME/vacation-cam/config.json)")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging and runtime loggers")
	cmd.Flags().StringVar(&picturesDir, "pictures-dir", "", "Directory photos are saved to")
	return cmd
}
