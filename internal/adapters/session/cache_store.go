package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
)

const keyPrefix = "session:"

// CacheStore persists sessions as JSON in a CacheProvider, expiring each
// entry at the session's ExpiresAt
type CacheStore struct {
	cache providers.CacheProvider
	now   func() time.Time
}

// NewCacheStore creates a session store over cache
func NewCacheStore(cache providers.CacheProvider) *CacheStore {
	return &CacheStore{cache: cache, now: time.Now}
}

var _ providers.SessionStore = (*CacheStore)(nil)

// Get loads a session
func (s *CacheStore) Get(ctx context.Context, id string) (*entities.Session, error) {
	data, err := s.cache.Get(ctx, keyPrefix+id)
	if errors.Is(err, providers.ErrCacheMiss) {
		return nil, apperrors.NewNotFoundError("session not found")
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to load session", err)
	}

	var sess entities.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, apperrors.NewInternalError("failed to decode session", err)
	}
	if !s.now().Before(sess.ExpiresAt) {
		return nil, apperrors.NewNotFoundError("session expired")
	}
	return &sess, nil
}

// Save writes the session until its ExpiresAt
func (s *CacheStore) Save(ctx context.Context, sess *entities.Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return s.Delete(ctx, sess.ID)
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return apperrors.NewInternalError("failed to encode session", err)
	}

	seconds := int(math.Ceil(ttl.Seconds()))
	if err := s.cache.Set(ctx, keyPrefix+sess.ID, data, seconds); err != nil {
		return apperrors.NewInternalError(fmt.Sprintf("failed to save session %s", sess.ID), err)
	}
	return nil
}

// Delete removes a session
func (s *CacheStore) Delete(ctx context.Context, id string) error {
	if err := s.cache.Delete(ctx, keyPrefix+id); err != nil {
		return apperrors.NewInternalError("failed to delete session", err)
	}
	return nil
}
