package transaction

import (
	"log/slog"
)

// Event names a collection that changed.
type Event string

const (
	EventLedgerChanged Event = "ledger_changed"
	EventTrashChanged  Event = "trash_changed"
)

// Notifier is told about every persisted change. Implementations must not block.
type Notifier interface {
	Notify(Event)
}

type nopNotifier struct{}

func (nopNotifier) Notify(Event) {}

type options struct {
	logger   *slog.Logger
	notifier Notifier
}

type Option func(*options)

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func WithNotifier(n Notifier) Option {
	return func(o *options) {
		o.notifier = n
	}
}

func buildOptions(opts []Option) options {
	o := options{
		logger:   slog.Default(),
		notifier: nopNotifier{},
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
