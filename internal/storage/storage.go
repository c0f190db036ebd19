// Package storage is the media file abstraction. Uploaded application
// documents, payment receipts, and site branding assets go through it.
// Two backends exist: the local media directory and an S3-compatible
// object store.
package storage

import (
	"context"
	"io"
	"time"
)

// PutObjectOptions define optional parameters for storing objects.
// Size should be the exact number of bytes if known; if unknown, set to -1
// and the implementation will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored object.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is the media storage client interface. Methods use context and
// streaming readers.
type Storage interface {
	// Put stores an object under the given key using the provided reader
	// and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside
	// its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Deleting a missing object is not
	// an error.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a time-limited URL that can be used to download
	// the object without credentials. The local backend returns the
	// /media/ path instead.
	PresignGet(ctx context.Context, key string, expiry time.Duration) (string, error)
}
