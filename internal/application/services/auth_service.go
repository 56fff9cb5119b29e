package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/zatekoja/wanderlust/internal/domain/entities"
	"github.com/zatekoja/wanderlust/internal/domain/repositories"
	apperrors "github.com/zatekoja/wanderlust/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

const (
	// MsgBadCredentials is shown for any failed login
	MsgBadCredentials = "Password or username is incorrect"
	MsgUsernameLong   = "Username must be at most 100 characters long!"
	MsgEmailLong      = "Email must be at most 255 characters long!"
	MsgPasswordLong   = "Password must be at most 72 bytes long!"
)

// Column widths of the users table, and bcrypt's input limit
const (
	MaxUsernameLength = 100
	MaxEmailLength    = 255
	MaxPasswordBytes  = 72
)

// AuthService handles signup, login and password changes
type AuthService struct {
	users repositories.UserRepository
	cost  int
}

// NewAuthService creates a new auth service
func NewAuthService(users repositories.UserRepository) *AuthService {
	return &AuthService{users: users, cost: bcrypt.DefaultCost}
}

// Signup registers a new user
func (s *AuthService) Signup(ctx context.Context, username, email, password string) (*entities.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)

	switch {
	case username == "":
		return nil, apperrors.NewValidationError("No username was given")
	case email == "":
		return nil, apperrors.NewValidationError("No email was given")
	case password == "":
		return nil, apperrors.NewValidationError("No password was given")
	case utf8.RuneCountInString(username) > MaxUsernameLength:
		return nil, apperrors.NewValidationError(MsgUsernameLong)
	case utf8.RuneCountInString(email) > MaxEmailLength:
		return nil, apperrors.NewValidationError(MsgEmailLong)
	}

	hash, err := s.hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &entities.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login checks credentials and returns the matching user
func (s *AuthService) Login(ctx context.Context, username, password string) (*entities.User, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if apperrors.Is(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewUnauthorizedError(MsgBadCredentials)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.NewUnauthorizedError(MsgBadCredentials)
	}

	return user, nil
}

// SetPassword replaces the password of the user registered with email
func (s *AuthService) SetPassword(ctx context.Context, email, password string) error {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := s.hash(password)
	if err != nil {
		return err
	}
	return s.users.UpdatePassword(ctx, user.ID, hash)
}

func (s *AuthService) hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", apperrors.NewValidationError(MsgPasswordLong)
	}
	if err != nil {
		return "", apperrors.NewInternalError("failed to hash password", err)
	}
	return string(hash), nil
}
