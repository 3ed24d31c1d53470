package conn

import (
	"sync"

	"github.com/esphome-native/api-server/pkg/schema"
)

// Bus fans inbound application messages out to subscribers. The first
// subscriber gets lossless delivery (Publish blocks until it has room);
// later subscribers get drop-oldest semantics so one slow consumer cannot
// stall the others or the connection's read loop.
type Bus struct {
	mu          sync.Mutex
	subscribers []chan schema.Message
}

// NewBus returns an empty message bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers a new subscriber with the given channel buffer size
// and returns its receive-only channel.
func (b *Bus) Subscribe(buffer int) <-chan schema.Message {
	ch := make(chan schema.Message, buffer)
	b.mu.Lock()
	b.subscribers = append(b.subscribers, ch)
	b.mu.Unlock()
	return ch
}

// Publish delivers msg to every current subscriber.
func (b *Bus) Publish(msg schema.Message) {
	b.mu.Lock()
	subs := make([]chan schema.Message, len(b.subscribers))
	copy(subs, b.subscribers)
	b.mu.Unlock()

	for i, ch := range subs {
		if i == 0 {
			ch <- msg
			continue
		}
		select {
		case ch <- msg:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- msg:
			default:
			}
		}
	}
}
