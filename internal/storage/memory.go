package storage

import (
	"context"
	"sync"
)

type memoryStorage struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStorage - хранилище на время жизни процесса (для тестов и --ephemeral)
func NewMemoryStorage() *memoryStorage {
	return &memoryStorage{data: make(map[string]string)}
}

func (s *memoryStorage) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *memoryStorage) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memoryStorage) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
