package imagestore

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
	"github.com/zatekoja/wanderlust/pkg/config"
)

const (
	imageResourceType  = "image"
	uploadTransform    = "c_limit,h_800,w_1200"
	defaultHTTPTimeout = 30 * time.Second
)

var allowedFormats = api.CldAPIArray{"jpg", "jpeg", "png", "gif", "webp"}

// CloudinaryStore implements ImageStore with the Cloudinary upload API
type CloudinaryStore struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// NewCloudinaryStore creates a store from configuration
func NewCloudinaryStore(cfg config.ImageStoreConfig) (*CloudinaryStore, error) {
	return NewCloudinaryStoreWithOptions(cfg, "", nil)
}

// NewCloudinaryStoreWithOptions allows overriding the upload prefix and HTTP client (used for tests).
func NewCloudinaryStoreWithOptions(cfg config.ImageStoreConfig, uploadPrefix string, httpClient *http.Client) (*CloudinaryStore, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("CLOUD_NAME, CLOUD_API_KEY and CLOUD_API_SECRET must be set")
	}

	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	if uploadPrefix != "" {
		cld.Upload.Config.API.UploadPrefix = strings.TrimRight(uploadPrefix, "/")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	cld.Upload.Client = *httpClient

	return &CloudinaryStore{cld: cld, folder: cfg.Folder}, nil
}

var _ providers.ImageStore = (*CloudinaryStore)(nil)

// Upload stores the file under the configured folder
func (s *CloudinaryStore) Upload(ctx context.Context, upload providers.ImageUpload) (*entities.Image, error) {
	result, err := s.cld.Upload.Upload(ctx, upload.Body, uploader.UploadParams{
		Folder:           s.folder,
		AllowedFormats:   allowedFormats,
		Transformation:   uploadTransform,
		FilenameOverride: upload.Filename,
		ResourceType:     imageResourceType,
	})
	if err != nil {
		return nil, fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if result.Error.Message != "" {
		return nil, fmt.Errorf("cloudinary upload failed: %s", result.Error.Message)
	}
	if result.SecureURL == "" || result.PublicID == "" {
		return nil, fmt.Errorf("cloudinary upload returned no asset")
	}

	return &entities.Image{URL: result.SecureURL, Filename: result.PublicID}, nil
}

// Destroy removes the asset identified by filename (its public id)
func (s *CloudinaryStore) Destroy(ctx context.Context, filename string) error {
	if filename == "" {
		return nil
	}

	result, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     filename,
		ResourceType: imageResourceType,
	})
	if err != nil {
		return fmt.Errorf("cloudinary destroy failed: %w", err)
	}
	if result.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy failed: %s", result.Error.Message)
	}
	if result.Result != "ok" && result.Result != "not found" {
		return fmt.Errorf("cloudinary destroy failed: %s", result.Result)
	}
	return nil
}
