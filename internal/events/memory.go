package events

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryPublisher is a synchronous in-process Publisher. Tests use it
// in place of kafka; subscribed handlers run inline on Publish.
type MemoryPublisher struct {
	mu       sync.RWMutex
	handlers []Handler
	// Published keeps the raw messages for assertions.
	Published []PublishedMessage
}

// PublishedMessage is one recorded Publish call.
type PublishedMessage struct {
	Key   string
	Value []byte
}

// NewMemoryPublisher creates an empty in-memory publisher.
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

// Subscribe registers a handler invoked synchronously on every Publish.
func (m *MemoryPublisher) Subscribe(handler Handler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers = append(m.handlers, handler)
}

// Publish marshals the value, records it, and invokes the handlers.
func (m *MemoryPublisher) Publish(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.Published = append(m.Published, PublishedMessage{Key: key, Value: raw})
	handlers := append([]Handler{}, m.handlers...)
	m.mu.Unlock()

	for _, handler := range handlers {
		if err := handler(ctx, []byte(key), raw); err != nil {
			return err
		}
	}
	return nil
}

// Close is a no-op.
func (m *MemoryPublisher) Close() error {
	return nil
}
