// Package storage provides the filesystem abstraction behind uploaded
// firm and product images.
//
// Two drivers are available out of the box:
//   - "local"  — local filesystem (default)
//   - "s3"     — S3-compatible object storage (AWS S3, MinIO, R2, Spaces)
//
// Quick start:
//
//	// boot once (in internal/server/server.go):
//	storage.Connect(cfg)
//
//	// default disk
//	storage.Put("images/photo.jpg", data)
//	rc, _ := storage.GetStream("images/photo.jpg")
//	url := storage.URL("images/photo.jpg")
package storage

import "io"

// Disk is the filesystem driver interface.
type Disk interface {
	// Put writes content to path, creating parent directories as needed.
	Put(path string, content []byte) error

	// PutStream writes from r to path.
	PutStream(path string, r io.Reader) error

	// Get returns the full content of the file at path.
	Get(path string) ([]byte, error)

	// GetStream returns a reader for the file at path. Caller closes it.
	GetStream(path string) (io.ReadCloser, error)

	// Exists reports whether path exists on the disk.
	Exists(path string) bool

	// Size returns the file size in bytes.
	Size(path string) (int64, error)

	// Delete removes path. Deleting an absent path is not an error.
	Delete(path string) error

	// URL returns the public URL for path.
	URL(path string) string
}
