// Package blob stores uploaded syllabus images.
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"path"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Get for a missing key.
var ErrNotFound = errors.New("blob not found")

// Store keeps uploaded files. Keys use forward slashes.
type Store interface {
	// Put writes data under key and returns where it landed (a file path
	// or an s3:// URI).
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) (io.ReadCloser, error)
}

// UploadKey builds the key for a user's upload. Only the base name of
// filename is kept.
func UploadKey(userID, filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" || base == "" {
		base = "upload"
	}
	return path.Join("uploads", fmt.Sprintf("%s_%s", userID, base))
}

// ContentType guesses a MIME type from the file extension.
func ContentType(filename string) string {
	if ct := mime.TypeByExtension(filepath.Ext(filename)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
