package storage

import (
	"context"
	"io"
)

// FileSystem 通讯录文件所在的存储
type FileSystem interface {
	// Exists determines if a file exists.
	Exists(ctx context.Context, file string) bool
	// GetStream opens the file for reading.
	GetStream(ctx context.Context, file string) (io.ReadCloser, error)
	// PutStream writes the contents of a file, replacing it.
	PutStream(ctx context.Context, file string, rs io.Reader) error
	// MimeType gets the file's mime type.
	MimeType(ctx context.Context, file string) (string, error)
	// Url get the URL for the file at the given path.
	Url(file string) string
}
