// Package notify reports operation outcomes to an external recipient.
// Notifications are best effort: implementations never return errors to the
// caller and must not block the request that triggered them.
package notify

import (
	"context"

	"github.com/sirupsen/logrus"
)

type Notifier interface {
	NotifySuccess(ctx context.Context, subject, body string)
	NotifyFailure(ctx context.Context, subject, body string)
}

type Kind string

const (
	KindSuccess Kind = "success"
	KindFailure Kind = "failure"
)

// Message is a single notification.
type Message struct {
	Kind    Kind
	Subject string
	Body    string
}

// Sender delivers one message. Errors are logged by the caller, never surfaced.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

type nop struct{}

func Nop() Notifier { return nop{} }

func (nop) NotifySuccess(context.Context, string, string) {}
func (nop) NotifyFailure(context.Context, string, string) {}

// LogNotifier writes notifications to a logrus logger.
type LogNotifier struct {
	log logrus.FieldLogger
}

func NewLogNotifier(log logrus.FieldLogger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) NotifySuccess(ctx context.Context, subject, body string) {
	_ = n.Send(ctx, Message{Kind: KindSuccess, Subject: subject, Body: body})
}

func (n *LogNotifier) NotifyFailure(ctx context.Context, subject, body string) {
	_ = n.Send(ctx, Message{Kind: KindFailure, Subject: subject, Body: body})
}

func (n *LogNotifier) Send(_ context.Context, msg Message) error {
	entry := n.log.WithFields(logrus.Fields{
		"notification": msg.Kind,
		"subject":      msg.Subject,
	})
	if msg.Kind == KindFailure {
		entry.Error(msg.Body)
	} else {
		entry.Info(msg.Body)
	}
	return nil
}
