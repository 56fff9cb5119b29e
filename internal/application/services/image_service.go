package services

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
)

// MaxImageSize is the largest accepted upload in bytes
const MaxImageSize = 5 << 20

const (
	MsgImageRequired = "Image file is required!"
	MsgImageTooLarge = "File size too large! Maximum size is 5MB."
	MsgImageType     = "Only image files are allowed!"
)

// ImageService checks uploads and moves them to and from the image store
type ImageService struct {
	store providers.ImageStore
}

// NewImageService creates a new image service
func NewImageService(store providers.ImageStore) *ImageService {
	return &ImageService{store: store}
}

// Prepare reads an uploaded file and checks its size and detected content
// type. The client-supplied content type is ignored.
func (s *ImageService) Prepare(filename string, body io.Reader) (*providers.ImageUpload, error) {
	data, err := io.ReadAll(io.LimitReader(body, MaxImageSize+1))
	if err != nil {
		return nil, apperrors.NewInternalError("failed to read upload", err)
	}
	if len(data) > MaxImageSize {
		return nil, apperrors.NewFileConstraintError(MsgImageTooLarge)
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return nil, apperrors.NewFileConstraintError(MsgImageType)
	}

	return &providers.ImageUpload{
		Filename:    filename,
		ContentType: mtype.String(),
		Body:        bytes.NewReader(data),
	}, nil
}

// Upload stores a prepared image
func (s *ImageService) Upload(ctx context.Context, upload providers.ImageUpload) (*entities.Image, error) {
	image, err := s.store.Upload(ctx, upload)
	if err != nil {
		return nil, apperrors.NewExternalError("failed to upload image", err)
	}
	return image, nil
}

// Destroy removes an image from the store. Failures are logged only.
func (s *ImageService) Destroy(ctx context.Context, filename string) {
	if filename == "" {
		return
	}
	if err := s.store.Destroy(ctx, filename); err != nil {
		log.Warn().Err(err).Str("filename", filename).Msg("Failed to delete image")
	}
}
