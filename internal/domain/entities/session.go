package entities

import "time"

// Flash kinds
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// Session is the server-side state behind a session cookie
type Session struct {
	ID          string              `json:"id"`
	UserID      string              `json:"user_id,omitempty"`
	Username    string              `json:"username,omitempty"`
	Flash       map[string][]string `json:"flash,omitempty"`
	RedirectURL string              `json:"redirect_url,omitempty"`
	ResetEmail  string              `json:"reset_email,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	ExpiresAt   time.Time           `json:"expires_at"`
}

// IsAuthenticated reports whether a user is logged in on this session
func (s *Session) IsAuthenticated() bool {
	return s.UserID != ""
}

// AddFlash queues a message for the next rendered view
func (s *Session) AddFlash(kind, message string) {
	if s.Flash == nil {
		s.Flash = make(map[string][]string)
	}
	s.Flash[kind] = append(s.Flash[kind], message)
}

// TakeFlash returns and clears all queued messages
func (s *Session) TakeFlash() map[string][]string {
	flash := s.Flash
	s.Flash = nil
	if flash == nil {
		return map[string][]string{}
	}
	return flash
}

// Login binds the session to user
func (s *Session) Login(user *User) {
	s.UserID = user.ID
	s.Username = user.Username
}

// Logout clears the session identity
func (s *Session) Logout() {
	s.UserID = ""
	s.Username = ""
}
