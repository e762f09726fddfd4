package bus

import (
	"strings"
	"sync"
)

// Bus is an in-process publish/subscribe event bus with namespace filtering.
//
// Subscribers are served in subscription order. Func subscribers run
// synchronously inside Publish; channel subscribers get an ordered,
// lossless queue drained by a per-subscription goroutine.
type Bus struct {
	mu   sync.RWMutex
	subs []*subscription
	next int
}

type subscription struct {
	id        int
	namespace string
	fn        func(Event)
	box       *mailbox
}

// New creates a new event bus.
func New() *Bus {
	return &Bus{}
}

// Publish delivers an event to all subscribers whose namespace is a prefix of event.Kind.
// Callers that need a total order across publishes must serialize their Publish calls.
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	matched := make([]*subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		if strings.HasPrefix(evt.Kind, sub.namespace) {
			matched = append(matched, sub)
		}
	}
	b.mu.RUnlock()

	for _, sub := range matched {
		if sub.fn != nil {
			sub.fn(evt)
			continue
		}
		sub.box.push(evt)
	}
}

// Subscribe returns a channel that receives events matching the given namespace prefix.
// bufSize controls the channel buffer; events beyond it are queued, never dropped.
// Returns the channel and an unsubscribe function which closes the channel.
func (b *Bus) Subscribe(namespace string, bufSize int) (<-chan Event, func()) {
	box := newMailbox(bufSize)
	id := b.add(&subscription{namespace: namespace, box: box})
	go box.pump()

	var once sync.Once
	return box.out, func() {
		once.Do(func() {
			b.remove(id)
			close(box.done)
		})
	}
}

// SubscribeFunc registers fn to be called synchronously for every matching event.
// fn must not publish on or subscribe to the same bus.
func (b *Bus) SubscribeFunc(namespace string, fn func(Event)) func() {
	id := b.add(&subscription{namespace: namespace, fn: fn})
	var once sync.Once
	return func() {
		once.Do(func() { b.remove(id) })
	}
}

// Subscribers returns the number of active subscriptions.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Bus) add(sub *subscription) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub.id = b.next
	b.next++
	b.subs = append(b.subs, sub)
	return sub.id
}

func (b *Bus) remove(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, sub := range b.subs {
		if sub.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

// mailbox is an unbounded FIFO in front of a buffered channel.
type mailbox struct {
	mu    sync.Mutex
	queue []Event
	wake  chan struct{}
	done  chan struct{}
	out   chan Event
}

func newMailbox(bufSize int) *mailbox {
	if bufSize < 0 {
		bufSize = 0
	}
	return &mailbox{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
		out:  make(chan Event, bufSize),
	}
}

func (m *mailbox) push(evt Event) {
	m.mu.Lock()
	m.queue = append(m.queue, evt)
	m.mu.Unlock()
	select {
	case m.wake <- struct{}{}:
	default:
	}
}

func (m *mailbox) pump() {
	defer close(m.out)
	for {
		select {
		case <-m.wake:
		case <-m.done:
			return
		}

		m.mu.Lock()
		pending := m.queue
		m.queue = nil
		m.mu.Unlock()

		for _, evt := range pending {
			select {
			case m.out <- evt:
			case <-m.done:
				return
			}
		}
	}
}
