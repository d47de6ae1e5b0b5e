// Package storage хранит бинарные объекты (картинки товаров) и отдаёт
// публичные URL на них.
package storage

import (
	"context"
	"sync"
)

// ObjectStore абстракция объектного хранилища
type ObjectStore interface {
	// Put записывает объект и возвращает его публичный URL
	Put(ctx context.Context, key string, body []byte, contentType string) (string, error)
}

// MemoryStore хранит объекты в памяти; для тестов
type MemoryStore struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func (m *MemoryStore) Put(ctx context.Context, key string, body []byte, contentType string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := make([]byte, len(body))
	copy(cp, body)
	m.objects[key] = cp
	return "memory://" + key, nil
}

// Get возвращает сохранённый объект; только для проверок в тестах
func (m *MemoryStore) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.objects[key]
	return b, ok
}
