package notify

import (
	"sync"
	"time"
)

// Broadcaster remembers the most recent messages and pushes new ones to
// subscribers. A slow subscriber loses its oldest buffered message
// rather than blocking the sender.
type Broadcaster struct {
	mu        sync.Mutex
	recent    []Message // oldest first
	keep      int
	listeners []chan Message
	now       func() time.Time
}

func NewBroadcaster(keep int) *Broadcaster {
	if keep <= 0 {
		keep = 1
	}
	return &Broadcaster{keep: keep, now: time.Now}
}

func (b *Broadcaster) Info(text string) {
	b.publish(Message{Level: LevelInfo, Text: text})
}

func (b *Broadcaster) Error(text string) {
	b.publish(Message{Level: LevelError, Text: text})
}

func (b *Broadcaster) publish(msg Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	msg.At = b.now()
	b.recent = append(b.recent, msg)
	if len(b.recent) > b.keep {
		b.recent = b.recent[len(b.recent)-b.keep:]
	}

	for _, listener := range b.listeners {
		if len(listener) == cap(listener) {
			<-listener
		}
		listener <- msg
	}
}

// Recent returns the remembered messages, newest first.
func (b *Broadcaster) Recent() []Message {
	b.mu.Lock()
	defer b.mu.Unlock()

	res := make([]Message, 0, len(b.recent))
	for i := len(b.recent) - 1; i >= 0; i-- {
		res = append(res, b.recent[i])
	}
	return res
}

// Subscribe registers a listener. The returned cancel func unregisters
// and closes the channel.
func (b *Broadcaster) Subscribe(buf int) (<-chan Message, func()) {
	if buf <= 0 {
		buf = 1
	}
	ch := make(chan Message, buf)

	b.mu.Lock()
	b.listeners = append(b.listeners, ch)
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			for i, listener := range b.listeners {
				if listener == ch {
					b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
					break
				}
			}
			close(ch)
		})
	}
	return ch, cancel
}
