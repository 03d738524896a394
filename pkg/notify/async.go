package notify

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultSendTimeout = 30 * time.Second

// Async queues messages for a single background worker. When the queue is
// full the message is dropped with a warning so callers never wait.
type Async struct {
	sender      Sender
	log         logrus.FieldLogger
	queue       chan Message
	sendTimeout time.Duration

	closeOnce sync.Once
	done      chan struct{}
	mu        sync.RWMutex
	closed    bool
}

func NewAsync(sender Sender, log logrus.FieldLogger, queueSize int) *Async {
	if queueSize <= 0 {
		queueSize = 1
	}
	a := &Async{
		sender:      sender,
		log:         log,
		queue:       make(chan Message, queueSize),
		sendTimeout: defaultSendTimeout,
		done:        make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Async) NotifySuccess(_ context.Context, subject, body string) {
	a.enqueue(Message{Kind: KindSuccess, Subject: subject, Body: body})
}

func (a *Async) NotifyFailure(_ context.Context, subject, body string) {
	a.enqueue(Message{Kind: KindFailure, Subject: subject, Body: body})
}

func (a *Async) enqueue(msg Message) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		a.log.WithField("subject", msg.Subject).Warn("notify: notifier closed, dropping message")
		return
	}
	select {
	case a.queue <- msg:
	default:
		a.log.WithField("subject", msg.Subject).Warn("notify: queue full, dropping message")
	}
}

func (a *Async) run() {
	defer close(a.done)
	for msg := range a.queue {
		ctx, cancel := context.WithTimeout(context.Background(), a.sendTimeout)
		if err := a.sender.Send(ctx, msg); err != nil {
			a.log.WithError(err).WithField("subject", msg.Subject).Error("notify: failed to send notification")
		}
		cancel()
	}
}

// Close stops accepting messages and waits for queued ones to be sent or
// for ctx to expire.
func (a *Async) Close(ctx context.Context) error {
	a.closeOnce.Do(func() {
		a.mu.Lock()
		a.closed = true
		close(a.queue)
		a.mu.Unlock()
	})
	select {
	case <-a.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
