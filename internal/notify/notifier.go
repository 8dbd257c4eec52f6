package notify

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const defaultSendTimeout = 10 * time.Second

// Sender delivers one admin notification over a single channel.
type Sender interface {
	Send(ctx context.Context, subject, htmlBody string) error
	Name() string
}

// NotifierConfig describes the notification channels and logging.
type NotifierConfig struct {
	Senders     []Sender
	Logger      *zap.Logger
	SendTimeout time.Duration
}

// Notifier dispatches best-effort admin notifications. Delivery happens on a
// background goroutine with a bounded timeout; failures are logged and
// swallowed, never surfaced to the request that triggered them.
type Notifier struct {
	senders []Sender
	logger  *zap.Logger
	timeout time.Duration
	pending sync.WaitGroup
}

// NewNotifier constructs a notifier. A notifier with no senders is valid and
// silently drops every notification.
func NewNotifier(cfg NotifierConfig) *Notifier {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := cfg.SendTimeout
	if timeout <= 0 {
		timeout = defaultSendTimeout
	}
	return &Notifier{senders: cfg.Senders, logger: logger, timeout: timeout}
}

// Notify dispatches the notification to every channel without blocking the
// caller. The caller never observes the outcome.
func (n *Notifier) Notify(subject, htmlBody string) {
	if n == nil || len(n.senders) == 0 {
		return
	}

	n.pending.Add(1)
	go func() {
		defer n.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), n.timeout)
		defer cancel()

		for _, sender := range n.senders {
			if err := sender.Send(ctx, subject, htmlBody); err != nil {
				n.logger.Warn("notification delivery failed",
					zap.String("channel", sender.Name()),
					zap.String("subject", subject),
					zap.Error(err))
			}
		}
	}()
}

// Flush waits for in-flight notifications to finish. Used on shutdown and in
// tests; request handlers never call it.
func (n *Notifier) Flush() {
	if n == nil {
		return
	}
	n.pending.Wait()
}
