package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/wanderlust/internal/api/session"
	"github.com/zatekoja/wanderlust/internal/api/views"
	"github.com/zatekoja/wanderlust/internal/application/services"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

// serve routes req through a mux holding a single pattern, with sess as
// the request's session
func serve(pattern string, h http.HandlerFunc, req *http.Request, sess *entities.Session) *httptest.ResponseRecorder {
	mux := http.NewServeMux()
	mux.HandleFunc(pattern, h)

	req = req.WithContext(session.WithState(req.Context(), &session.State{Session: sess}))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func multipartRequest(t *testing.T, method, target string, form url.Values, filename string, file []byte) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for key, values := range form {
		for _, v := range values {
			require.NoError(t, mw.WriteField(key, v))
		}
	}
	if filename != "" {
		part, err := mw.CreateFormFile("listing[image]", filename)
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decodePage(t *testing.T, rec *httptest.ResponseRecorder) views.Page {
	t.Helper()
	var page views.Page
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	return page
}

func validListingForm() url.Values {
	return url.Values{
		"listing[title]":       {"Lake Cabin"},
		"listing[description]": {"Quiet cabin by the lake"},
		"listing[price]":       {"120"},
		"listing[location]":    {"Lake Tahoe"},
		"listing[country]":     {"United States"},
		"listing[category]":    {"rooms"},
	}
}

type MockListingService struct {
	mock.Mock
}

func (m *MockListingService) List(ctx context.Context, filter entities.ListingFilter) ([]*entities.Listing, error) {
	args := m.Called(ctx, filter)
	listings, _ := args.Get(0).([]*entities.Listing)
	return listings, args.Error(1)
}

func (m *MockListingService) Get(ctx context.Context, id string) (*entities.Listing, error) {
	args := m.Called(ctx, id)
	listing, _ := args.Get(0).(*entities.Listing)
	return listing, args.Error(1)
}

func (m *MockListingService) GetDetail(ctx context.Context, id string) (*entities.ListingDetail, error) {
	args := m.Called(ctx, id)
	detail, _ := args.Get(0).(*entities.ListingDetail)
	return detail, args.Error(1)
}

func (m *MockListingService) Create(ctx context.Context, ownerID string, fields services.ListingFields, upload *providers.ImageUpload) (*entities.Listing, error) {
	args := m.Called(ctx, ownerID, fields, upload)
	listing, _ := args.Get(0).(*entities.Listing)
	return listing, args.Error(1)
}

func (m *MockListingService) Update(ctx context.Context, id string, fields services.ListingFields, upload *providers.ImageUpload) (*entities.Listing, error) {
	args := m.Called(ctx, id, fields, upload)
	listing, _ := args.Get(0).(*entities.Listing)
	return listing, args.Error(1)
}

func (m *MockListingService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(ctx context.Context, listingID, authorID string, rating int, comment string) (*entities.Review, error) {
	args := m.Called(ctx, listingID, authorID, rating, comment)
	review, _ := args.Get(0).(*entities.Review)
	return review, args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, listingID, reviewID string) error {
	args := m.Called(ctx, listingID, reviewID)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, username, email, password string) (*entities.User, error) {
	args := m.Called(ctx, username, email, password)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*entities.User, error) {
	args := m.Called(ctx, username, password)
	user, _ := args.Get(0).(*entities.User)
	return user, args.Error(1)
}

type MockPasswordResetService struct {
	mock.Mock
}

func (m *MockPasswordResetService) RequestCode(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

func (m *MockPasswordResetService) Verify(ctx context.Context, email, code string) error {
	return m.Called(ctx, email, code).Error(0)
}

func (m *MockPasswordResetService) Reset(ctx context.Context, email, password, confirm string) error {
	return m.Called(ctx, email, password, confirm).Error(0)
}

type stubRotator struct {
	rotated int
}

func (s *stubRotator) Rotate(st *session.State) {
	s.rotated++
	st.Session.ID = "rotated"
}
