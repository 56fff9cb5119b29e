package routes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/wanderlust/internal/adapters/cache"
	sessionstore "github.com/zatekoja/wanderlust/internal/adapters/session"
	"github.com/zatekoja/wanderlust/internal/api/handlers"
	"github.com/zatekoja/wanderlust/internal/api/middleware"
	"github.com/zatekoja/wanderlust/internal/api/routes"
	"github.com/zatekoja/wanderlust/internal/api/session"
	"github.com/zatekoja/wanderlust/internal/api/views"
	"github.com/zatekoja/wanderlust/internal/application/services"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
	"github.com/zatekoja/wanderlust/pkg/config"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
)

type noListings struct{}

func (noListings) Get(context.Context, string) (*entities.Listing, error) {
	return nil, apperrors.NewNotFoundError("Listing doesn't exist!")
}

type noReviews struct{}

func (noReviews) Get(context.Context, string) (*entities.Review, error) {
	return nil, apperrors.NewNotFoundError("Review not found!")
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }

type ownedListings map[string]*entities.Listing

func (o ownedListings) Get(_ context.Context, id string) (*entities.Listing, error) {
	if listing, ok := o[id]; ok {
		return listing, nil
	}
	return nil, apperrors.NewNotFoundError("Listing doesn't exist!")
}

type MockListingService struct {
	mock.Mock
	handlers.ListingService
}

func (m *MockListingService) Update(ctx context.Context, id string, fields services.ListingFields, upload *providers.ImageUpload) (*entities.Listing, error) {
	args := m.Called(ctx, id, fields, upload)
	listing, _ := args.Get(0).(*entities.Listing)
	return listing, args.Error(1)
}

func newTestSessions() *session.Manager {
	return session.NewManager(sessionstore.NewCacheStore(cache.NewMemoryAdapter()), config.SessionConfig{
		Secret:     "test-secret",
		CookieName: "wanderlust.sid",
		MaxAge:     time.Hour,
	}, false)
}

func newRouter(sessions *session.Manager, listingSvc handlers.ListingService, listings middleware.ListingFinder) http.Handler {
	renderer := views.NewJSONRenderer()
	router := routes.NewRouter(
		handlers.NewListingHandler(listingSvc, nil, renderer),
		handlers.NewReviewHandler(nil, renderer),
		handlers.NewUserHandler(nil, sessions, renderer),
		handlers.NewPasswordResetHandler(nil, renderer),
		handlers.HealthHandler(okPinger{}),
		listings,
		noReviews{},
		sessions,
		renderer,
		nil,
	)
	return router.SetupRoutes()
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	return newRouter(newTestSessions(), nil, noListings{})
}

// loginCookie stores a session for userID and returns its cookie
func loginCookie(t *testing.T, sessions *session.Manager, userID string) *http.Cookie {
	t.Helper()
	st := sessions.Load(httptest.NewRequest(http.MethodGet, "/", nil))
	st.Session.UserID = userID
	rec := httptest.NewRecorder()
	require.NoError(t, sessions.Commit(context.Background(), rec, st))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	return cookies[0]
}

func TestRouter_RootRedirects(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/listings", rec.Header().Get("Location"))
}

func TestRouter_UnknownPath(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/no/such/page", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Page Not Found!")
}

func TestRouter_Healthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_ProtectedRouteRemembersTarget(t *testing.T) {
	server := newTestServer(t)

	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/listings/new", nil))

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	// The login page shows the queued flash
	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "You must be logged in to do that!")
}

func TestRouter_MethodOverrideReachesDeleteRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestServer(t).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/listings/abc?_method=DELETE", nil))

	// Anonymous delete is bounced by the login guard rather than a 404
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRouter_NonOwnerCannotUpdateListing(t *testing.T) {
	sessions := newTestSessions()
	listingSvc := new(MockListingService)
	server := newRouter(sessions, listingSvc, ownedListings{"l1": {ID: "l1", OwnerID: "alice"}})
	cookie := loginCookie(t, sessions, "bob")

	form := url.Values{"_method": {"PUT"}, "listing[title]": {"Taken over"}}
	req := httptest.NewRequest(http.MethodPost, "/listings/l1", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/listings/l1", rec.Header().Get("Location"))
	listingSvc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything, mock.Anything)

	next := httptest.NewRequest(http.MethodGet, "/listings/l1", nil)
	next.AddCookie(cookie)
	st := sessions.Load(next)
	assert.Equal(t, []string{middleware.MsgNotOwner}, st.Session.Flash[entities.FlashError])
}
