package blobstore

import "context"

// FileStore is the blob-store collaborator: raw uploaded files keyed by
// object name. The ingestion pipeline only needs Upload; List, Get, and
// Delete exist for file administration by the caller.
type FileStore interface {
	// Upload stores content under name, overwriting any existing object.
	Upload(ctx context.Context, name string, content []byte) error

	// List returns the names of all stored objects.
	List(ctx context.Context) ([]string, error)

	// Get returns the content of the named object.
	// Returns ErrNotFound if no such object exists.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete removes the named object.
	// Returns ErrNotFound if no such object exists.
	Delete(ctx context.Context, name string) error

	// Close releases resources held by the store.
	Close() error
}
