package storage

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Uploader stores an object and returns a durable URL for it.
type Uploader interface {
	Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (url string, err error)
}

// DetectContentType sniffs the MIME type of an in-memory file.
func DetectContentType(b []byte) string {
	return mimetype.Detect(b).String()
}

// ObjectName builds a collision-free key under folder, keeping the original
// extension when there is one and otherwise deriving it from the content.
func ObjectName(folder, filename string, content []byte) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(filename)))
	if ext == "" || len(ext) > 10 {
		ext = mimetype.Detect(content).Extension()
	}
	return path.Join(folder, uuid.NewString()+ext)
}
