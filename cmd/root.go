// Package cmd holds the command line entry points.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/soocke/pixel-clicker-go/app"
	"github.com/soocke/pixel-clicker-go/config"
	"github.com/soocke/pixel-clicker-go/ui"
)

var (
	configPath string
	logLevel   string
	debugMode  bool
)

var rootCmd = &cobra.Command{
	Use:   "autoclick",
	Short: "Watch a screen region and click when a target image appears",
	Long: `autoclick captures a screen region on a fixed interval, compares it
with up to max_targets reference images and left-clicks the center of any
match above that target's confidence.

Without a subcommand it opens the settings window.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger := setup()
		c := app.BuildContainer(cfg, configPath, logger, app.Options{})
		return ui.Run(cmd.Context(), c, ui.Options{
			Title:  "Auto Clicker",
			Hotkey: cfg.Hotkey,
			Debug:  cfg.Debug,
		})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultPath, "path to the JSON config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable goroutine and memory loggers")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads the config and builds the logger. A broken config file is
// reported and replaced by defaults.
func setup() (*config.Config, *slog.Logger) {
	cfg, err := config.Load(configPath)
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if debugMode {
		cfg.Debug = true
	}
	logger := NewLogger(parseLevel(cfg.LogLevel))
	switch {
	case errors.Is(err, config.ErrAdjusted):
		logger.Warn("config adjusted", "path", configPath, "error", err)
	case err != nil:
		logger.Warn("config load failed, using defaults", "path", configPath, "error", err)
	}
	return cfg, logger
}
