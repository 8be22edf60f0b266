package storage

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// LocalFileStorage implements FileStorage for local filesystem
type LocalFileStorage struct {
	basePath string
}

// NewLocalFileStorage creates a store rooted at basePath. The directory is
// not created; a missing root simply holds no files.
func NewLocalFileStorage(basePath string) (*LocalFileStorage, error) {
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, NewStorageError("NewLocalFileStorage", "", err)
	}
	return &LocalFileStorage{basePath: absPath}, nil
}

// BasePath returns the absolute store root
func (l *LocalFileStorage) BasePath() string {
	return l.basePath
}

// Store writes data atomically by renaming a temp file into place
func (l *LocalFileStorage) Store(ctx context.Context, key string, data []byte) error {
	if err := validateKey(key); err != nil {
		return NewStorageError("Store", key, err)
	}

	filePath := l.getFilePath(key)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return NewStorageError("Store", key, err)
	}

	tempPath := filePath + ".tmp"
	if err := os.WriteFile(tempPath, data, 0644); err != nil {
		return NewStorageError("Store", key, err)
	}
	if err := os.Rename(tempPath, filePath); err != nil {
		os.Remove(tempPath)
		return NewStorageError("Store", key, err)
	}
	return nil
}

// Retrieve implements FileStorage.Retrieve
func (l *LocalFileStorage) Retrieve(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, NewStorageError("Retrieve", key, err)
	}

	data, err := os.ReadFile(l.getFilePath(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, NewStorageError("Retrieve", key, ErrFileNotFound)
	}
	if err != nil {
		return nil, NewStorageError("Retrieve", key, err)
	}
	return data, nil
}

// Exists implements FileStorage.Exists
func (l *LocalFileStorage) Exists(ctx context.Context, key string) (bool, error) {
	if err := validateKey(key); err != nil {
		return false, NewStorageError("Exists", key, err)
	}

	_, err := os.Stat(l.getFilePath(key))
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, NewStorageError("Exists", key, err)
	}
	return true, nil
}

// GetSize implements FileStorage.GetSize
func (l *LocalFileStorage) GetSize(ctx context.Context, key string) (int64, error) {
	if err := validateKey(key); err != nil {
		return 0, NewStorageError("GetSize", key, err)
	}

	info, err := os.Stat(l.getFilePath(key))
	if errors.Is(err, os.ErrNotExist) {
		return 0, NewStorageError("GetSize", key, ErrFileNotFound)
	}
	if err != nil {
		return 0, NewStorageError("GetSize", key, err)
	}
	return info.Size(), nil
}

// Close implements FileStorage.Close
func (l *LocalFileStorage) Close() error {
	return nil
}

func (l *LocalFileStorage) getFilePath(key string) string {
	return filepath.Join(l.basePath, filepath.FromSlash(key))
}

func validateKey(key string) error {
	if key == "" {
		return ErrInvalidKey
	}
	// Prevent directory traversal
	if strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return ErrInvalidKey
	}
	return nil
}
