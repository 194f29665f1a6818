package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/holdapp/hold/internal/app"
	"github.com/holdapp/hold/internal/clipboard"
	"github.com/holdapp/hold/internal/logging"
	"github.com/holdapp/hold/internal/notify"
)

// Execute implements the go-flags Commander interface for RunCommand.
func (c *RunCommand) Execute(args []string) error {
	cfg, err := loadConfig(c.globals)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := cfg.Logging.Level
	if c.globals.Verbose {
		level = "debug"
	}
	log := logging.New(level, os.Stderr)

	clip, err := clipboard.NewSystem()
	if err != nil {
		return fmt.Errorf("clipboard access: %w", err)
	}

	var notifier notify.Notifier
	if cfg.Notifications.Enabled {
		notifier = notify.NewDesktop()
	} else {
		notifier = notify.NewLog(log)
	}

	svc, err := app.New(cfg, log, clip, notifier)
	if err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Infof("hold %s capturing clipboard history (Ctrl-C to stop)", c.version)
	return svc.Run(ctx)
}
