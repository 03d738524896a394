package eventbus

import (
	"reflect"
	"sync"

	"github.com/sirupsen/logrus"
)

type Subscriber struct {
	Handler interface{}
}

// EventBus dispatches events synchronously to every subscriber whose
// signature matches the published arguments.
type EventBus interface {
	Publish(args ...interface{})
	Subscribe(handler interface{})
	Unsubscribe(handler interface{})
	Clear()
	SubscribersCount() int
}

type publisherImpl struct {
	log         logrus.FieldLogger
	mu          sync.RWMutex
	subscribers []Subscriber
}

func NewEventPublisher(log logrus.FieldLogger) EventBus {
	return &publisherImpl{log: log}
}

func MatchSignature(handler interface{}, args []interface{}) bool {
	t := reflect.TypeOf(handler)
	if t.Kind() != reflect.Func {
		return false
	}

	if t.NumIn() != len(args) {
		return false
	}

	for i, arg := range args {
		paramType := t.In(i)

		if arg == nil {
			if paramType.Kind() != reflect.Interface && paramType.Kind() != reflect.Ptr {
				return false
			}
			continue
		}

		argType := reflect.TypeOf(arg)
		if paramType.Kind() == reflect.Interface {
			if !argType.Implements(paramType) {
				return false
			}
			continue
		}

		if !argType.AssignableTo(paramType) {
			return false
		}
	}

	return true
}

// Publish never panics: a panicking handler is logged and the remaining
// handlers still run.
func (p *publisherImpl) Publish(args ...interface{}) {
	p.mu.RLock()
	subscribers := make([]Subscriber, len(p.subscribers))
	copy(subscribers, p.subscribers)
	p.mu.RUnlock()

	handled := false
	for _, subscriber := range subscribers {
		if !MatchSignature(subscriber.Handler, args) {
			continue
		}
		if p.call(subscriber.Handler, args) {
			handled = true
		}
	}

	if !handled && p.log != nil {
		p.log.Warnf("eventbus.Publish: no matching subscribers for event with args: %v", args)
	}
}

func (p *publisherImpl) call(handler interface{}, args []interface{}) (ok bool) {
	v := reflect.ValueOf(handler)
	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		if arg == nil {
			in[i] = reflect.Zero(v.Type().In(i))
			continue
		}
		in[i] = reflect.ValueOf(arg)
	}
	defer func() {
		if r := recover(); r != nil {
			ok = false
			if p.log != nil {
				p.log.Errorf("eventbus: handler %s panicked with args %v: %v", v.Type().String(), args, r)
			}
		}
	}()
	v.Call(in)
	return true
}

func (p *publisherImpl) Subscribe(handler interface{}) {
	t := reflect.TypeOf(handler)
	if t == nil || t.Kind() != reflect.Func {
		panic("handler must be a function")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, Subscriber{Handler: handler})
}

// Unsubscribe removes handler. Functions are compared by code pointer, so
// closures created from the same literal are indistinguishable.
func (p *publisherImpl) Unsubscribe(handler interface{}) {
	target := reflect.ValueOf(handler).Pointer()
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, subscriber := range p.subscribers {
		if reflect.ValueOf(subscriber.Handler).Pointer() == target {
			p.subscribers = append(p.subscribers[:i], p.subscribers[i+1:]...)
			return
		}
	}
}

func (p *publisherImpl) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = nil
}

func (p *publisherImpl) SubscribersCount() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.subscribers)
}
