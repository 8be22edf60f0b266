package storage

import (
	"context"
	"sync"
)

// MockFileStorage is an in-memory implementation of FileStorage for testing
type MockFileStorage struct {
	mu    sync.RWMutex
	files map[string][]byte
}

// NewMockFileStorage creates a new MockFileStorage instance
func NewMockFileStorage() *MockFileStorage {
	return &MockFileStorage{files: make(map[string][]byte)}
}

// Store implements FileStorage.Store
func (m *MockFileStorage) Store(ctx context.Context, key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return NewStorageError("Store", key, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key] = append([]byte(nil), data...)
	return nil
}

// Retrieve implements FileStorage.Retrieve
func (m *MockFileStorage) Retrieve(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[key]
	if !ok {
		return nil, NewStorageError("Retrieve", key, ErrFileNotFound)
	}
	return append([]byte(nil), data...), nil
}

// Exists implements FileStorage.Exists
func (m *MockFileStorage) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.files[key]
	return ok, nil
}

// GetSize implements FileStorage.GetSize
func (m *MockFileStorage) GetSize(ctx context.Context, key string) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[key]
	if !ok {
		return 0, NewStorageError("GetSize", key, ErrFileNotFound)
	}
	return int64(len(data)), nil
}

// Close implements FileStorage.Close
func (m *MockFileStorage) Close() error {
	return nil
}
