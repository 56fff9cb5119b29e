package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/domain/providers"
	"github.com/zatekoja/wanderlust/pkg/config"
)

// Manager loads sessions from request cookies and commits them back. The
// cookie carries an HS256 token whose jti is the session id.
type Manager struct {
	store      providers.SessionStore
	secret     []byte
	cookieName string
	maxAge     time.Duration
	secure     bool
	now        func() time.Time
}

// NewManager creates a session manager
func NewManager(store providers.SessionStore, cfg config.SessionConfig, secure bool) *Manager {
	return &Manager{
		store:      store,
		secret:     []byte(cfg.Secret),
		cookieName: cfg.CookieName,
		maxAge:     cfg.MaxAge,
		secure:     secure,
		now:        time.Now,
	}
}

// State tracks one request's session
type State struct {
	Session   *entities.Session
	persisted bool
	staleID   string
}

// Load returns the session named by the request cookie, or a new empty one
// when the cookie is missing, forged or points at an expired session
func (m *Manager) Load(r *http.Request) *State {
	cookie, err := r.Cookie(m.cookieName)
	if err == nil {
		id, err := m.parseToken(cookie.Value)
		if err == nil {
			sess, err := m.store.Get(r.Context(), id)
			if err == nil {
				return &State{Session: sess, persisted: true}
			}
		} else {
			log.Debug().Err(err).Msg("Rejected session cookie")
		}
	}

	return &State{Session: m.newSession()}
}

// Rotate gives the session a new id, discarding the old one on commit
func (m *Manager) Rotate(st *State) {
	if st.persisted && st.staleID == "" {
		st.staleID = st.Session.ID
	}
	st.Session.ID = uuid.New().String()
}

// Commit saves the session and writes its cookie. A new session with
// nothing in it is not stored.
func (m *Manager) Commit(ctx context.Context, w http.ResponseWriter, st *State) error {
	if !st.persisted && isEmpty(st.Session) {
		return nil
	}

	if st.staleID != "" {
		if err := m.store.Delete(ctx, st.staleID); err != nil {
			log.Warn().Err(err).Msg("Failed to delete rotated session")
		}
		st.staleID = ""
	}

	now := m.now()
	st.Session.ExpiresAt = now.Add(m.maxAge)
	if err := m.store.Save(ctx, st.Session); err != nil {
		return err
	}
	st.persisted = true

	token, err := m.signToken(st.Session.ID, now)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  st.Session.ExpiresAt,
		MaxAge:   int(m.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (m *Manager) newSession() *entities.Session {
	now := m.now()
	return &entities.Session{
		ID:        uuid.New().String(),
		CreatedAt: now,
		ExpiresAt: now.Add(m.maxAge),
	}
}

func (m *Manager) signToken(id string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		ID:        id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(m.maxAge)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

func (m *Manager) parseToken(value string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(value, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return "", err
	}
	if claims.ID == "" {
		return "", fmt.Errorf("session token has no id")
	}
	return claims.ID, nil
}

func isEmpty(s *entities.Session) bool {
	return s.UserID == "" && len(s.Flash) == 0 && s.RedirectURL == "" && s.ResetEmail == ""
}
