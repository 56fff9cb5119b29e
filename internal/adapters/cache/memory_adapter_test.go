package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
)

func TestMemoryAdapter_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryAdapter()
	t.Cleanup(m.Close)

	require.NoError(t, m.Set(ctx, "k", []byte("v"), 60))

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, m.Delete(ctx, "k"))
	_, err = m.Get(ctx, "k")
	assert.ErrorIs(t, err, providers.ErrCacheMiss)
}

func TestMemoryAdapter_Expiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryAdapter()
	t.Cleanup(m.Close)

	require.NoError(t, m.Set(ctx, "otp", []byte("123456"), 1))
	_, err := m.Get(ctx, "otp")
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		_, err := m.Get(ctx, "otp")
		return errors.Is(err, providers.ErrCacheMiss)
	}, 3*time.Second, 50*time.Millisecond)
}

func TestMemoryAdapter_JanitorDropsUnreadEntries(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryAdapter()
	t.Cleanup(m.Close)

	for _, key := range []string{"a", "b", "c"} {
		require.NoError(t, m.Set(ctx, key, []byte("v"), 1))
	}
	require.NoError(t, m.Set(ctx, "keep", []byte("v"), 0))
	assert.Equal(t, 4, m.items.Len())

	assert.Eventually(t, func() bool {
		return m.items.Len() == 1
	}, 3*time.Second, 50*time.Millisecond)

	got, err := m.Get(ctx, "keep")
	require.NoError(t, err)
	assert.Equal(t, []byte("v"), got)
}

func TestMemoryAdapter_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryAdapter()
	t.Cleanup(m.Close)

	value := []byte("abc")
	require.NoError(t, m.Set(ctx, "k", value, 0))
	value[0] = 'z'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), got)
}
