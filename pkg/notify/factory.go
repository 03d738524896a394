package notify

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/emprecords/pkg/configuration"
)

// Closer is implemented by notifiers that hold background resources.
type Closer interface {
	Close(ctx context.Context) error
}

// NewEmailNotifier sends mail from a background worker so request handlers
// never wait on SMTP.
func NewEmailNotifier(opts EmailOptions, log logrus.FieldLogger, queueSize int) *Async {
	return NewAsync(NewEmailSender(opts), log, queueSize)
}

// New builds the notifier selected by opts.Backend.
func New(opts configuration.NotificationOptions, log logrus.FieldLogger) Notifier {
	switch opts.Backend {
	case configuration.NotifyBackendNone:
		return Nop()
	case configuration.NotifyBackendEmail:
		return NewEmailNotifier(EmailOptions{
			Host:       opts.SMTP.Host,
			Port:       opts.SMTP.Port,
			Username:   opts.SMTP.Username,
			Password:   opts.SMTP.Password,
			From:       opts.SMTP.From,
			Recipients: opts.Recipients,
		}, log, opts.QueueSize)
	default:
		return NewLogNotifier(log)
	}
}

// Close drains n when it holds background resources.
func Close(ctx context.Context, n Notifier) error {
	if c, ok := n.(Closer); ok {
		return c.Close(ctx)
	}
	return nil
}
