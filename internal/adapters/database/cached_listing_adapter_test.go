package database_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/wanderlust/internal/adapters/cache"
	"github.com/zatekoja/wanderlust/internal/adapters/database"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/domain/repositories"
)

type MockListingRepository struct {
	mock.Mock
	repositories.ListingRepository
}

func (m *MockListingRepository) GetByID(ctx context.Context, id string) (*entities.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Listing), args.Error(1)
}

func (m *MockListingRepository) Update(ctx context.Context, listing *entities.Listing) error {
	return m.Called(ctx, listing).Error(0)
}

func (m *MockListingRepository) AppendReview(ctx context.Context, listingID, reviewID string) error {
	return m.Called(ctx, listingID, reviewID).Error(0)
}

func TestCachedListingAdapter_ReadThrough(t *testing.T) {
	ctx := context.Background()
	repo := new(MockListingRepository)
	repo.On("GetByID", ctx, "l1").Return(&entities.Listing{ID: "l1", Title: "Lake Cabin"}, nil).Once()

	adapter := database.NewCachedListingAdapter(repo, cache.NewMemoryAdapter())

	first, err := adapter.GetByID(ctx, "l1")
	require.NoError(t, err)
	second, err := adapter.GetByID(ctx, "l1")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	repo.AssertNumberOfCalls(t, "GetByID", 1)
}

func TestCachedListingAdapter_WritesEvict(t *testing.T) {
	ctx := context.Background()
	repo := new(MockListingRepository)
	repo.On("GetByID", ctx, "l1").Return(&entities.Listing{ID: "l1", Title: "Old"}, nil).Once()
	repo.On("AppendReview", ctx, "l1", "r1").Return(nil)
	repo.On("GetByID", ctx, "l1").Return(&entities.Listing{ID: "l1", Title: "Old", ReviewIDs: []string{"r1"}}, nil).Once()

	adapter := database.NewCachedListingAdapter(repo, cache.NewMemoryAdapter())

	_, err := adapter.GetByID(ctx, "l1")
	require.NoError(t, err)
	require.NoError(t, adapter.AppendReview(ctx, "l1", "r1"))

	listing, err := adapter.GetByID(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1"}, listing.ReviewIDs)
	repo.AssertExpectations(t)
}

func TestCachedListingAdapter_SlowReadDoesNotRefillAfterWrite(t *testing.T) {
	ctx := context.Background()
	started := make(chan struct{})
	release := make(chan struct{})

	repo := new(MockListingRepository)
	repo.On("GetByID", ctx, "l1").
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&entities.Listing{ID: "l1", Title: "Old"}, nil).Once()
	repo.On("Update", ctx, mock.Anything).Return(nil)
	repo.On("GetByID", ctx, "l1").Return(&entities.Listing{ID: "l1", Title: "New"}, nil).Once()

	adapter := database.NewCachedListingAdapter(repo, cache.NewMemoryAdapter())

	done := make(chan *entities.Listing)
	go func() {
		listing, err := adapter.GetByID(ctx, "l1")
		assert.NoError(t, err)
		done <- listing
	}()

	<-started
	require.NoError(t, adapter.Update(ctx, &entities.Listing{ID: "l1", Title: "New"}))
	close(release)
	assert.Equal(t, "Old", (<-done).Title)

	listing, err := adapter.GetByID(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, "New", listing.Title)
	repo.AssertExpectations(t)
}
