package imagestore

import (
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
	"github.com/zatekoja/wanderlust/pkg/config"
)

// NewImageStore selects an image store from configuration. Cloudinary
// without credentials falls back to the in-memory store.
func NewImageStore(cfg config.ImageStoreConfig) providers.ImageStore {
	if strings.ToLower(cfg.Provider) == "cloudinary" {
		store, err := NewCloudinaryStore(cfg)
		if err == nil {
			return store
		}
		log.Warn().Err(err).Msg("Cloudinary not configured, using in-memory image store")
	}
	return NewMockImageStore("http://localhost/images", cfg.Folder)
}
