package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/wanderlust/internal/adapters/cache"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
)

func TestCacheStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewCacheStore(cache.NewMemoryAdapter())

	sess := &entities.Session{
		ID:          "s1",
		UserID:      "u1",
		Username:    "alice",
		RedirectURL: "/listings/l1",
		ResetEmail:  "alice@example.com",
		CreatedAt:   time.Now(),
		ExpiresAt:   time.Now().Add(7 * 24 * time.Hour),
	}
	sess.AddFlash(entities.FlashSuccess, "Welcome back, alice!")

	require.NoError(t, store.Save(ctx, sess))

	loaded, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "u1", loaded.UserID)
	assert.Equal(t, "/listings/l1", loaded.RedirectURL)
	assert.Equal(t, "alice@example.com", loaded.ResetEmail)
	assert.Equal(t, []string{"Welcome back, alice!"}, loaded.Flash[entities.FlashSuccess])
}

func TestCacheStore_Missing(t *testing.T) {
	store := NewCacheStore(cache.NewMemoryAdapter())

	_, err := store.Get(context.Background(), "nope")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
}

func TestCacheStore_Expired(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	store := NewCacheStore(cache.NewMemoryAdapter())

	require.NoError(t, store.Save(ctx, &entities.Session{ID: "s1", ExpiresAt: now.Add(time.Hour)}))

	store.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err := store.Get(ctx, "s1")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
}

func TestCacheStore_Delete(t *testing.T) {
	ctx := context.Background()
	store := NewCacheStore(cache.NewMemoryAdapter())

	require.NoError(t, store.Save(ctx, &entities.Session{ID: "s1", ExpiresAt: time.Now().Add(time.Hour)}))
	require.NoError(t, store.Delete(ctx, "s1"))

	_, err := store.Get(ctx, "s1")
	assert.True(t, apperrors.Is(err, apperrors.ErrorTypeNotFound))
}
