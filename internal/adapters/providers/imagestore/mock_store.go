package imagestore

import (
	"context"
	"fmt"
	"io"
	"path"
	"sync"

	"github.com/google/uuid"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
)

// MockImageStore keeps uploads in memory for local development
type MockImageStore struct {
	mu      sync.Mutex
	baseURL string
	folder  string
	files   map[string][]byte
}

// NewMockImageStore creates an empty in-memory store
func NewMockImageStore(baseURL, folder string) *MockImageStore {
	return &MockImageStore{
		baseURL: baseURL,
		folder:  folder,
		files:   make(map[string][]byte),
	}
}

var _ providers.ImageStore = (*MockImageStore)(nil)

// Upload stores the file and returns a URL shaped like a CDN upload path
func (m *MockImageStore) Upload(ctx context.Context, upload providers.ImageUpload) (*entities.Image, error) {
	data, err := io.ReadAll(upload.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	id := path.Join(m.folder, uuid.New().String())

	m.mu.Lock()
	m.files[id] = data
	m.mu.Unlock()

	return &entities.Image{
		URL:      fmt.Sprintf("%s/image/upload/%s%s", m.baseURL, id, path.Ext(upload.Filename)),
		Filename: id,
	}, nil
}

// Destroy removes a stored file
func (m *MockImageStore) Destroy(ctx context.Context, filename string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, filename)
	return nil
}

// Has reports whether filename is stored
func (m *MockImageStore) Has(filename string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[filename]
	return ok
}
