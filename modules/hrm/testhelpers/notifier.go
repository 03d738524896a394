package testhelpers

import (
	"context"
	"sync"
)

type Notification struct {
	Success bool
	Subject string
	Body    string
}

// RecordingNotifier keeps every notification it receives.
type RecordingNotifier struct {
	mu   sync.Mutex
	sent []Notification
}

func (n *RecordingNotifier) NotifySuccess(_ context.Context, subject, body string) {
	n.record(Notification{Success: true, Subject: subject, Body: body})
}

func (n *RecordingNotifier) NotifyFailure(_ context.Context, subject, body string) {
	n.record(Notification{Subject: subject, Body: body})
}

func (n *RecordingNotifier) Sent() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.sent...)
}

func (n *RecordingNotifier) Reset() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = nil
}

func (n *RecordingNotifier) record(msg Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, msg)
}
