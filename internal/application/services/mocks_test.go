package services_test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
)

type MockListingRepository struct{ mock.Mock }

func (m *MockListingRepository) Create(ctx context.Context, listing *entities.Listing) error {
	return m.Called(ctx, listing).Error(0)
}

func (m *MockListingRepository) GetByID(ctx context.Context, id string) (*entities.Listing, error) {
	args := m.Called(ctx, id)
	listing, _ := args.Get(0).(*entities.Listing)
	return listing, args.Error(1)
}

func (m *MockListingRepository) GetByIDs(ctx context.Context, ids []string) ([]*entities.Listing, error) {
	args := m.Called(ctx, ids)
	listings, _ := args.Get(0).([]*entities.Listing)
	return listings, args.Error(1)
}

func (m *MockListingRepository) List(ctx context.Context, filter entities.ListingFilter) ([]*entities.Listing, error) {
	args := m.Called(ctx, filter)
	listings, _ := args.Get(0).([]*entities.Listing)
	return listings, args.Error(1)
}

func (m *MockListingRepository) ListMissingCoordinates(ctx context.Context, limit int) ([]*entities.Listing, error) {
	args := m.Called(ctx, limit)
	listings, _ := args.Get(0).([]*entities.Listing)
	return listings, args.Error(1)
}

func (m *MockListingRepository) Update(ctx context.Context, listing *entities.Listing) error {
	return m.Called(ctx, listing).Error(0)
}

func (m *MockListingRepository) UpdateCoordinates(ctx context.Context, id string, coords *entities.Coordinates) error {
	return m.Called(ctx, id, coords).Error(0)
}

func (m *MockListingRepository) UpdateImage(ctx context.Context, id string, image entities.Image) error {
	return m.Called(ctx, id, image).Error(0)
}

func (m *MockListingRepository) UpdateCategory(ctx context.Context, id string, category entities.Category) error {
	return m.Called(ctx, id, category).Error(0)
}

func (m *MockListingRepository) AppendReview(ctx context.Context, listingID, reviewID string) error {
	return m.Called(ctx, listingID, reviewID).Error(0)
}

func (m *MockListingRepository) RemoveReview(ctx context.Context, listingID, reviewID string) error {
	return m.Called(ctx, listingID, reviewID).Error(0)
}

func (m *MockListingRepository) DeleteWithReviews(ctx context.Context, id string) ([]string, error) {
	args := m.Called(ctx, id)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

func (m *MockListingRepository) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type MockListingSearchRepository struct{ mock.Mock }

func (m *MockListingSearchRepository) Index(ctx context.Context, listing *entities.Listing) error {
	return m.Called(ctx, listing).Error(0)
}

func (m *MockListingSearchRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockListingSearchRepository) Search(ctx context.Context, filter entities.ListingFilter) ([]string, error) {
	args := m.Called(ctx, filter)
	ids, _ := args.Get(0).([]string)
	return ids, args.Error(1)
}

type MockReviewRepository struct{ mock.Mock }

func (m *MockReviewRepository) Create(ctx context.Context, review *entities.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) GetByID(ctx context.Context, id string) (*entities.Review, error) {
	args := m.Called(ctx, id)
	review, _ := args.Get(0).(*entities.Review)
	return review, args.Error(1)
}

func (m *MockReviewRepository) GetByIDs(ctx context.Context, ids []string) ([]*entities.Review, error) {
	args := m.Called(ctx, ids)
	reviews, _ := args.Get(0).([]*entities.Review)
	return reviews, args.Error(1)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByIDs(ctx context.Context, ids []string) ([]*entities.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).([]*entities.User)
	return users, args.Error(1)
}

func (m *MockUserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

type MockOTPRepository struct{ mock.Mock }

func (m *MockOTPRepository) Create(ctx context.Context, otp *entities.OneTimePasscode) error {
	return m.Called(ctx, otp).Error(0)
}

func (m *MockOTPRepository) DeleteByEmail(ctx context.Context, email string) (int64, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOTPRepository) Consume(ctx context.Context, email, code string, now time.Time) (*entities.OneTimePasscode, error) {
	args := m.Called(ctx, email, code, now)
	otp, _ := args.Get(0).(*entities.OneTimePasscode)
	return otp, args.Error(1)
}

func (m *MockOTPRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockGeocoder struct{ mock.Mock }

func (m *MockGeocoder) Geocode(ctx context.Context, address string) (*providers.GeocodedAddress, error) {
	args := m.Called(ctx, address)
	result, _ := args.Get(0).(*providers.GeocodedAddress)
	return result, args.Error(1)
}

type MockImageStore struct{ mock.Mock }

func (m *MockImageStore) Upload(ctx context.Context, upload providers.ImageUpload) (*entities.Image, error) {
	args := m.Called(ctx, upload)
	image, _ := args.Get(0).(*entities.Image)
	return image, args.Error(1)
}

func (m *MockImageStore) Destroy(ctx context.Context, filename string) error {
	return m.Called(ctx, filename).Error(0)
}

type MockEmailSender struct{ mock.Mock }

func (m *MockEmailSender) Send(ctx context.Context, msg providers.EmailMessage) error {
	return m.Called(ctx, msg).Error(0)
}
