// Package action injects synthetic input into the desktop.
package action

import (
	"context"
	"log/slog"
)

// ClickFunc performs a left click at absolute screen coordinates.
type ClickFunc func(x, y int) error

// Clicker performs left clicks and logs the window that received them.
type Clicker struct {
	logger *slog.Logger
	click  ClickFunc
	window func() (string, error)
}

// NewClicker returns a clicker using the platform backend.
func NewClicker(logger *slog.Logger) *Clicker {
	return &Clicker{logger: logger, click: Click, window: ForegroundWindowTitle}
}

// Click moves the pointer to (x, y) and clicks the left button.
func (c *Clicker) Click(x, y int) error {
	if err := c.click(x, y); err != nil {
		if c.logger != nil {
			c.logger.Error("click failed", "x", x, "y", y, "error", err)
		}
		return err
	}
	if c.logger != nil && c.logger.Enabled(context.Background(), slog.LevelDebug) {
		title, _ := c.window()
		c.logger.Debug("click", "x", x, "y", y, "window", title)
	}
	return nil
}
