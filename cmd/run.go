package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/soocke/pixel-clicker-go/app"
	"github.com/soocke/pixel-clicker-go/config"
	"github.com/soocke/pixel-clicker-go/debug"
	"github.com/soocke/pixel-clicker-go/domain/capture"
	"github.com/soocke/pixel-clicker-go/domain/hotkey"
	"github.com/soocke/pixel-clicker-go/domain/monitor"
)

var (
	runRegion []int
	runPaused bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Monitor without a window",
	Long: `run starts monitoring with the saved region and targets. The hotkey
toggles monitoring; edits to the config file are applied while running.
Interrupt to exit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger := setup()
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		c := app.BuildContainer(cfg, configPath, logger, app.Options{})
		defer c.Close()
		if len(runRegion) > 0 {
			if len(runRegion) != 4 {
				return fmt.Errorf("--region needs 4 values, got %d", len(runRegion))
			}
			if err := c.Controller.SetRegion(capture.RegionFromPoints(runRegion[0], runRegion[1], runRegion[2], runRegion[3])); err != nil {
				return fmt.Errorf("--region: %w", err)
			}
		}
		c.Controller.Subscribe(func(ev monitor.Event) {
			logger.Info("status", "message", ev.String())
		})

		if combo, err := hotkey.Parse(cfg.Hotkey); err != nil {
			logger.Warn("invalid hotkey", "hotkey", cfg.Hotkey, "error", err)
		} else {
			l := hotkey.New(combo, logger, c.Controller.RequestToggle)
			if err := l.Start(); err != nil {
				logger.Warn("hotkey unavailable", "hotkey", combo.String(), "error", err)
			} else {
				defer l.Stop()
			}
		}

		go func() {
			if err := config.Watch(ctx, configPath, logger, c.Apply); err != nil {
				logger.Warn("config watch stopped", "error", err)
			}
		}()
		if cfg.Debug {
			debug.Start(ctx, logger)
		}

		if !runPaused {
			if err := c.Controller.Start(); err != nil {
				return err
			}
		}
		for {
			select {
			case <-ctx.Done():
				logger.Info("shutting down")
				return nil
			case <-c.Controller.Requests():
				if err := c.Controller.Toggle(); err != nil {
					logger.Warn("toggle", "error", err)
				}
			}
		}
	},
}

func init() {
	runCmd.Flags().IntSliceVar(&runRegion, "region", nil, "region to watch as left,top,right,bottom (overrides config)")
	runCmd.Flags().BoolVar(&runPaused, "paused", false, "wait for the hotkey before monitoring")
	rootCmd.AddCommand(runCmd)
}
