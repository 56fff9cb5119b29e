package views

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/zatekoja/wanderlust/internal/api/session"
)

// View names
const (
	ListingsIndex  = "listings/index"
	ListingsNew    = "listings/new"
	ListingsShow   = "listings/show"
	ListingsEdit   = "listings/edit"
	UsersSignup    = "users/signup"
	UsersLogin     = "users/login"
	ForgotPassword = "users/forgotPassword"
	VerifyOTP      = "users/verifyotp"
	ResetPassword  = "users/resetpassword"
	Error          = "error"
)

// Renderer turns a view name and its model into a response
type Renderer interface {
	Render(w http.ResponseWriter, r *http.Request, status int, view string, data interface{})
}

// CurrentUser is the logged-in user exposed to every view
type CurrentUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Page is everything a view can see
type Page struct {
	View        string              `json:"view"`
	Status      int                 `json:"status"`
	Flash       map[string][]string `json:"flash"`
	CurrentUser *CurrentUser        `json:"currentUser"`
	Data        interface{}         `json:"data,omitempty"`
}

// ErrorData is the model of the error view
type ErrorData struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// JSONRenderer writes the page as JSON
type JSONRenderer struct{}

// NewJSONRenderer creates a JSON renderer
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render drains the session's flash messages into the page and writes it
func (JSONRenderer) Render(w http.ResponseWriter, r *http.Request, status int, view string, data interface{}) {
	sess := session.FromContext(r.Context())

	page := Page{
		View:   view,
		Status: status,
		Flash:  sess.TakeFlash(),
		Data:   data,
	}
	if sess.IsAuthenticated() {
		page.CurrentUser = &CurrentUser{ID: sess.UserID, Username: sess.Username}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(page); err != nil {
		log.Error().Err(err).Str("view", view).Msg("Failed to render view")
	}
}

// RenderError renders the shared error view
func RenderError(renderer Renderer, w http.ResponseWriter, r *http.Request, status int, message string) {
	renderer.Render(w, r, status, Error, ErrorData{StatusCode: status, Message: message})
}
