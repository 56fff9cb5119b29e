package imagestore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
	"github.com/zatekoja/wanderlust/pkg/config"
)

var testCfg = config.ImageStoreConfig{
	CloudName: "demo",
	APIKey:    "key",
	APISecret: "secret",
	Folder:    "wanderlust_listings",
}

func newTestStore(t *testing.T, handler http.HandlerFunc) *CloudinaryStore {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store, err := NewCloudinaryStoreWithOptions(testCfg, server.URL, server.Client())
	require.NoError(t, err)
	return store
}

func TestNewCloudinaryStore_RequiresCredentials(t *testing.T) {
	_, err := NewCloudinaryStore(config.ImageStoreConfig{CloudName: "demo"})
	assert.Error(t, err)
}

func TestCloudinaryStore_Upload(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/demo/image/upload"), r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "wanderlust_listings", r.FormValue("folder"))
		assert.Equal(t, "key", r.FormValue("api_key"))
		assert.Equal(t, "c_limit,h_800,w_1200", r.FormValue("transformation"))
		assert.Equal(t, "jpg,jpeg,png,gif,webp", r.FormValue("allowed_formats"))
		assert.Equal(t, "cabin.png", r.FormValue("filename_override"))
		assert.NotEmpty(t, r.FormValue("signature"))

		w.Write([]byte(`{"secure_url":"https://res.cloudinary.com/demo/image/upload/v1/wanderlust_listings/abc.png","public_id":"wanderlust_listings/abc"}`))
	})

	img, err := store.Upload(context.Background(), providers.ImageUpload{
		Filename:    "cabin.png",
		ContentType: "image/png",
		Body:        strings.NewReader("\x89PNG..."),
	})
	require.NoError(t, err)
	assert.Equal(t, "wanderlust_listings/abc", img.Filename)
	assert.Contains(t, img.URL, "/upload/")
}

func TestCloudinaryStore_UploadRejected(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid image file"}}`))
	})

	_, err := store.Upload(context.Background(), providers.ImageUpload{Filename: "x.png", Body: strings.NewReader("x")})
	assert.ErrorContains(t, err, "cloudinary upload failed")
}

func TestCloudinaryStore_Destroy(t *testing.T) {
	store := newTestStore(t, func(w http.ResponseWriter, r *http.Request) {
		assert.True(t, strings.HasSuffix(r.URL.Path, "/demo/image/destroy"), r.URL.Path)
		assert.Equal(t, "wanderlust_listings/abc", r.FormValue("public_id"))
		w.Write([]byte(`{"result":"ok"}`))
	})

	require.NoError(t, store.Destroy(context.Background(), "wanderlust_listings/abc"))
	require.NoError(t, store.Destroy(context.Background(), ""))
}

func TestMockImageStore(t *testing.T) {
	store := NewMockImageStore("http://localhost/images", "wanderlust_listings")

	img, err := store.Upload(context.Background(), providers.ImageUpload{Filename: "a.jpg", Body: strings.NewReader("data")})
	require.NoError(t, err)
	assert.True(t, store.Has(img.Filename))
	assert.Contains(t, img.URL, "/image/upload/wanderlust_listings/")

	require.NoError(t, store.Destroy(context.Background(), img.Filename))
	assert.False(t, store.Has(img.Filename))
}
