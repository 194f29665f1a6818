// Package notify delivers short, fire-and-forget status messages to the
// user. Delivery reliability is not the core's concern; callers log and
// move on when a notification fails.
package notify

import (
	"github.com/gen2brain/beeep"

	"github.com/holdapp/hold/internal/logging"
)

// Notifier accepts a (title, body) pair for immediate delivery.
type Notifier interface {
	Notify(title, body string) error
}

// Desktop sends OS desktop notifications.
type Desktop struct{}

func NewDesktop() *Desktop {
	return &Desktop{}
}

func (d *Desktop) Notify(title, body string) error {
	return beeep.Notify(title, body, "")
}

// Log writes notifications to the log instead of the OS. Used when desktop
// notifications are disabled in config.
type Log struct {
	log *logging.Logger
}

func NewLog(log *logging.Logger) *Log {
	return &Log{log: log}
}

func (l *Log) Notify(title, body string) error {
	l.log.Infof("notify: %s: %s", title, body)
	return nil
}

// Nop discards notifications.
type Nop struct{}

func (Nop) Notify(title, body string) error { return nil }
