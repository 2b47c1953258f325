package testutil

import (
	"context"
	"sync"

	"github.com/podlift/backend/pkg/pubsub"
)

// MockPublisher records every published pack.
type MockPublisher struct {
	PublishFunc func(ctx context.Context, topic string, pack *pubsub.Pack) error

	mu        sync.Mutex
	Published map[string][]*pubsub.Pack
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	m.mu.Lock()
	if m.Published == nil {
		m.Published = map[string][]*pubsub.Pack{}
	}
	m.Published[topic] = append(m.Published[topic], pack)
	m.mu.Unlock()

	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	return nil
}

func (m *MockPublisher) Count(topic string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Published[topic])
}
