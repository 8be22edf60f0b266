// Package storage reads and writes the JSON fixture files the seed tool
// loads into the catalog.
package storage

import "context"

// FileStorage is a flat key/value file store. Keys are slash separated and
// relative to the store root.
type FileStorage interface {
	Store(ctx context.Context, key string, data []byte) error
	Retrieve(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	GetSize(ctx context.Context, key string) (int64, error)
	Close() error
}
