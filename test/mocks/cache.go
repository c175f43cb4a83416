package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/greenfolio/sustainability-rater/internal/events"
)

// MockCache is an in-memory mock implementation of the Cache interface.
// Used for testing without requiring a real Redis instance.
type MockCache struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMockCache creates a new mock cache instance.
func NewMockCache() *MockCache {
	return &MockCache{data: make(map[string]string)}
}

// Get retrieves a value. Missing keys return an empty string, like Redis.
func (m *MockCache) Get(ctx context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.data[key], nil
}

// Set stores a value. Expiration is ignored in the mock.
func (m *MockCache) Set(ctx context.Context, key string, value string, expiration time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Del deletes keys from the mock cache.
func (m *MockCache) Del(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		delete(m.data, key)
	}
	return nil
}

// MockPublisher records rating notifications instead of publishing them.
type MockPublisher struct {
	RatingCalculatedFunc func(ctx context.Context, n events.Notification) error

	mu        sync.Mutex
	Published []events.Notification
}

func (m *MockPublisher) RatingCalculated(ctx context.Context, n events.Notification) error {
	m.mu.Lock()
	m.Published = append(m.Published, n)
	m.mu.Unlock()
	if m.RatingCalculatedFunc != nil {
		return m.RatingCalculatedFunc(ctx, n)
	}
	return nil
}
