// Package storage contains blob storage abstractions for uploaded audio.
// Backends are interchangeable: an S3-compatible bucket or a local directory
// under the server's static path. The generated filename is the storage key
// on every backend.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when no blob exists under the given key.
var ErrNotFound = errors.New("blob not found")

// PutObjectOptions define optional parameters for uploading blobs.
// Size should be the exact number of bytes if known; if unknown, set to -1 and
// the implementation will buffer/chunk as supported by the backend.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about a stored blob.
type ObjectInfo struct {
	Key          string
	Size         int64
	ContentType  string
	LastModified time.Time
}

// BlobStorage is the backend-agnostic blob store. Methods use context and
// streaming readers; callers never branch on the concrete backend.
type BlobStorage interface {
	// Put stores a blob under the given key using the provided reader and options.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves a blob's content as a streaming reader alongside its info.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes a blob by key. Returns ErrNotFound if no blob exists.
	Delete(ctx context.Context, key string) error
	// Resolve returns a URL from which the blob can be played back.
	Resolve(ctx context.Context, key string) (string, error)
}
