package ports

import (
	"context"
	"io"

	"github.com/propamit/propamit-api/internal/core/domain"
)

// UploadInput carries one multipart file upload.
type UploadInput struct {
	UserID       string
	OriginalName string
	ContentType  string
	Size         int64
	Category     string
	Body         io.Reader
}

// DocumentService stores an uploaded file and records its metadata.
type DocumentService interface {
	Upload(ctx context.Context, in UploadInput) (*domain.Document, error)
}

// FileStore is the object-storage collaborator behind document uploads.
type FileStore interface {
	// Put streams body to the store under key and returns the public URL.
	Put(ctx context.Context, key, contentType string, size int64, body io.Reader) (string, error)
}
