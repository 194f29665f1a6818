package capture

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/holdapp/hold/internal/clipboard"
	"github.com/holdapp/hold/internal/logging"
	"github.com/holdapp/hold/internal/notify"
	"github.com/holdapp/hold/internal/storage"
)

// Notification texts for the sensitive-content path.
const (
	sensitiveTitle = "Hold: Sensitive Content"
	sensitiveBody  = "Will not save the newly copied text...looks sensitive"
)

// Poller samples the OS clipboard on a fixed cadence and hands candidate
// content to the dedup gate. It keeps one piece of local state: the last
// content it processed, a cheap first dedup layer in front of the
// store-level check.
type Poller struct {
	name     string
	clip     clipboard.Clipboard
	gate     *Gate
	notifier notify.Notifier
	log      *logging.Logger
	interval time.Duration
	maxBytes int

	mu     sync.Mutex
	last   string
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a poller. name distinguishes the foreground loop from
// the background slot in logs. maxBytes of 0 disables the size cut-off.
func NewPoller(name string, clip clipboard.Clipboard, gate *Gate, notifier notify.Notifier, log *logging.Logger, interval time.Duration, maxBytes int) *Poller {
	return &Poller{
		name:     name,
		clip:     clip,
		gate:     gate,
		notifier: notifier,
		log:      log,
		interval: interval,
		maxBytes: maxBytes,
	}
}

// Start launches the poll loop. Returns an error if already running.
func (p *Poller) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		return fmt.Errorf("poller %s already running", p.name)
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	p.log.Infof("poller %s started (every %s)", p.name, p.interval)
	go p.run(runCtx, p.done)

	return nil
}

// Stop cancels the loop and waits for it to exit. No tick runs after Stop
// returns. Stopping a poller that is not running is a no-op.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel, done := p.cancel, p.done
	p.cancel, p.done = nil, nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	p.log.Infof("poller %s stopped", p.name)
}

// Running reports whether the loop is active.
func (p *Poller) Running() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cancel != nil
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if ctx.Err() != nil {
				return
			}
			p.CheckOnce(ctx)
		}
	}
}

// CheckOnce performs a single poll cycle. A read failure or empty clipboard
// is "no new content", never an error: polling must not crash the host.
func (p *Poller) CheckOnce(ctx context.Context) {
	text, err := p.clip.Read()
	if err != nil {
		p.log.Debugf("poller %s: clipboard read failed: %v", p.name, err)
		return
	}
	if text == "" || text == p.lastProcessed() {
		return
	}

	if p.maxBytes > 0 && len(text) > p.maxBytes {
		p.log.Debugf("poller %s: content too large (%d bytes)", p.name, len(text))
		p.setLast(text)
		return
	}

	if IsSensitive(text) {
		if nerr := p.notifier.Notify(sensitiveTitle, sensitiveBody); nerr != nil {
			p.log.Debugf("sensitive notification failed: %v", nerr)
		}
		p.setLast(text)
		return
	}

	out := p.gate.TryPersist(ctx, text, storage.ContentTypeText, "")
	if out.Err != nil {
		// Transient storage failure: leave the latch alone so the next
		// tick retries the same content.
		return
	}
	p.setLast(text)
}

// Latch marks content as already processed, so writing a stored entry back
// to the clipboard does not re-capture it.
func (p *Poller) Latch(content string) {
	p.setLast(content)
}

// Forget clears the latch if it holds content. Called when an entry is
// deleted so re-copying the same text persists again immediately.
func (p *Poller) Forget(content string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.last == content {
		p.last = ""
	}
}

// ForgetAll clears the latch unconditionally (bulk clear).
func (p *Poller) ForgetAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = ""
}

func (p *Poller) lastProcessed() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.last
}

func (p *Poller) setLast(content string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.last = content
}
