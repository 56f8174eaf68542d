// Package objectstore wraps the remote object store that holds book assets.
// The core pipeline only ever needs one operation: push a locally staged file
// to durable storage and get back a stable URL.
package objectstore

import "context"

// UploadOptions control where and how an asset is stored remotely.
type UploadOptions struct {
	// Folder is the logical bucket for the asset, e.g. "book-covers".
	Folder string
	// Filename overrides the stored name. The pipeline always passes the
	// client's original filename.
	Filename string
	// Format is the stored format, e.g. "png" for covers or "pdf" for
	// documents.
	Format string
	// Raw marks the transfer as an opaque binary resource that must not go
	// through image processing.
	Raw bool
}

// Uploader pushes a local file to remote storage and returns its durable
// reference. Any failure is terminal for the current upload step; retry and
// availability semantics belong to the store, not the caller.
type Uploader interface {
	Upload(ctx context.Context, localPath string, opts UploadOptions) (string, error)
}
