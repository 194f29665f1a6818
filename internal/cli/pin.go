package cli

import (
	"fmt"
	"os"

	"github.com/holdapp/hold/internal/auth"
	"github.com/holdapp/hold/internal/logging"
)

// Execute implements the go-flags Commander interface for PinCommand.
func (c *PinCommand) Execute(args []string) error {
	pins := c.pins
	if pins == nil {
		cfg, err := loadConfig(c.globals)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		pins = auth.NewPINStore(
			cfg.Security.PINMinLength,
			cfg.Security.PINMaxLength,
			logging.New(cfg.Logging.Level, os.Stderr),
		)
	}

	return c.executeWithPINStore(pins)
}

// executeWithPINStore runs the pin command against a provided store.
func (c *PinCommand) executeWithPINStore(pins *auth.PINStore) error {
	switch {
	case c.Set != "" && c.Reset:
		return fmt.Errorf("--set and --reset are mutually exclusive")

	case c.Set != "":
		if err := pins.Set(c.Set); err != nil {
			return err
		}
		fmt.Println("PIN successfully set!")
		return nil

	case c.Reset:
		if err := pins.Reset(); err != nil {
			return err
		}
		fmt.Println("PIN removed.")
		return nil

	default:
		if pins.Configured() {
			fmt.Println("PIN is configured.")
		} else {
			fmt.Println("No PIN configured. Set one with: hold pin --set <digits>")
		}
		return nil
	}
}
