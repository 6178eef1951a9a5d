package storage

import (
	"context"
	"io"
)

// Package storage persists raw resume bytes outside the candidate record.
// Every backend picks its own collision-resistant object name: a random token plus the original extension.

// PutObjectOptions define optional parameters for uploading objects.
// Size is the exact number of bytes the reader will yield, or -1 when unknown.
// A known size is enforced: a shorter or longer stream is a failed write.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo describes a stored object.
type ObjectInfo struct {
	Key         string
	Size        int64
	ContentType string
}

// Storage is the file stash used by the candidate service.
type Storage interface {
	// Ensure creates the storage location if it is missing. It is idempotent.
	Ensure(ctx context.Context) error
	// Put writes the whole stream under a freshly generated name derived from originalFilename
	// and returns the locator in ObjectInfo.Key. Partial writes never leave an object behind at Key.
	Put(ctx context.Context, originalFilename string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Delete removes the object at key.
	Delete(ctx context.Context, key string) error
}
