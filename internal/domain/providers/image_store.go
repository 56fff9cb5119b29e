package providers

import (
	"context"
	"io"

	"github.com/zatekoja/wanderlust/internal/domain/entities"
)

// ImageUpload is a file to be stored
type ImageUpload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

// ImageStore defines the interface for remote image storage
type ImageStore interface {
	// Upload stores the file and returns its public reference
	Upload(ctx context.Context, upload ImageUpload) (*entities.Image, error)

	// Destroy removes the file identified by filename
	Destroy(ctx context.Context, filename string) error
}
