package app

import (
	"errors"
	"net/http"
	"regexp"

	"github.com/google/uuid"

	identityapi "github.com/leadmarket/leadmarket/pkg/apis/identity"
	middlewareapi "github.com/leadmarket/leadmarket/pkg/apis/middleware"
	"github.com/leadmarket/leadmarket/pkg/apis/models"
	"github.com/leadmarket/leadmarket/pkg/apis/options"
	"github.com/leadmarket/leadmarket/pkg/clock"
	"github.com/leadmarket/leadmarket/pkg/cookies"
	"github.com/leadmarket/leadmarket/pkg/identity"
	"github.com/leadmarket/leadmarket/pkg/logger"
	"github.com/leadmarket/leadmarket/pkg/storage"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// AuthHandler serves the account endpoints: register, login, logout and
// whoami.
type AuthHandler struct {
	users  storage.UserStore
	issuer *identity.TokenIssuer
	cookie *options.Cookie

	// clock is stubbable so tests control cookie expiry.
	clock clock.Clock
}

// NewAuthHandler wires the account endpoints against the given user store
// and token issuer.
func NewAuthHandler(users storage.UserStore, issuer *identity.TokenIssuer, cookie *options.Cookie) *AuthHandler {
	return &AuthHandler{
		users:  users,
		issuer: issuer,
		cookie: cookie,
	}
}

type registerRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	UserType  string `json:"userType"`
}

func (r *registerRequest) validate() string {
	switch {
	case r.Username == "", r.Email == "", r.Password == "", r.FirstName == "", r.LastName == "", r.UserType == "":
		return "All fields are required"
	case !emailRegex.MatchString(r.Email):
		return "Invalid email address"
	case len(r.Password) < 6:
		return "Password must be at least 6 characters"
	}
	if _, ok := identityapi.ParseRole(r.UserType); !ok {
		return "Invalid user type"
	}
	return ""
}

// Register creates a new account and responds with the sanitized user.
func (h *AuthHandler) Register(rw http.ResponseWriter, req *http.Request) {
	var body registerRequest
	if err := decodeJSON(req, &body); err != nil {
		writeError(rw, http.StatusBadRequest, "Invalid request body")
		return
	}

	if msg := body.validate(); msg != "" {
		writeError(rw, http.StatusBadRequest, msg)
		return
	}

	hashed, err := storage.HashPassword(body.Password)
	if err != nil {
		logger.Errorf("Error hashing password: %v", err)
		writeError(rw, http.StatusInternalServerError, "Internal server error")
		return
	}

	now := h.clock.Now()
	userType := body.UserType
	user := &models.User{
		ID:             uuid.New().String(),
		Username:       body.Username,
		Email:          body.Email,
		HashedPassword: hashed,
		FirstName:      body.FirstName,
		LastName:       body.LastName,
		UserType:       &userType,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := h.users.Create(req.Context(), user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			writeError(rw, http.StatusConflict, "Username or email already taken")
			return
		}
		logger.Errorf("Error creating user: %v", err)
		writeError(rw, http.StatusInternalServerError, "Internal server error")
		return
	}

	logger.PrintAuthf(user.Email, req, logger.AuthSuccess, "Registered new %s account", userType)
	writeJSON(rw, http.StatusCreated, map[string]interface{}{"user": user})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies the credentials, mints an auth token and sets it as the
// token cookie.
func (h *AuthHandler) Login(rw http.ResponseWriter, req *http.Request) {
	var body loginRequest
	if err := decodeJSON(req, &body); err != nil {
		writeError(rw, http.StatusBadRequest, "Invalid request body")
		return
	}

	if body.Email == "" || body.Password == "" {
		writeError(rw, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.users.GetByEmail(req.Context(), body.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			logger.PrintAuthf(body.Email, req, logger.AuthFailure, "Login failed: unknown email")
			writeError(rw, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		logger.Errorf("Error looking up user: %v", err)
		writeError(rw, http.StatusInternalServerError, "Internal server error")
		return
	}

	if !storage.CheckPassword(user.HashedPassword, body.Password) {
		logger.PrintAuthf(user.Email, req, logger.AuthFailure, "Login failed: wrong password")
		writeError(rw, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.issuer.Issue(userIdentity(user))
	if err != nil {
		logger.Errorf("Error issuing token: %v", err)
		writeError(rw, http.StatusInternalServerError, "Internal server error")
		return
	}

	http.SetCookie(rw, cookies.MakeCookieFromOptions(
		req, h.cookie.Name, token, h.cookie, h.cookie.Expire, h.clock.Now()))

	logger.PrintAuthf(user.Email, req, logger.AuthSuccess, "Authenticated via login")
	writeJSON(rw, http.StatusOK, map[string]interface{}{"user": user})
}

// Logout expires the token cookie.
func (h *AuthHandler) Logout(rw http.ResponseWriter, req *http.Request) {
	http.SetCookie(rw, cookies.ClearCookieFromOptions(req, h.cookie.Name, h.cookie, h.clock.Now()))
	writeJSON(rw, http.StatusOK, map[string]interface{}{"success": true})
}

// Whoami reports the identity resolved for this request, null when the
// request is anonymous. It is served on a public path so clients can always
// ask.
func (h *AuthHandler) Whoami(rw http.ResponseWriter, req *http.Request) {
	scope := middlewareapi.GetRequestScope(req)
	if scope == nil || scope.Identity == nil {
		writeJSON(rw, http.StatusOK, map[string]interface{}{"user": nil})
		return
	}

	attrs := &identityapi.Attributes{
		ID:      scope.Identity.ID,
		Email:   scope.Identity.Email,
		IsAdmin: scope.Identity.IsAdmin,
	}
	if scope.Identity.Role != nil {
		attrs.UserType = string(*scope.Identity.Role)
	}
	writeJSON(rw, http.StatusOK, map[string]interface{}{"user": attrs})
}

// userIdentity projects a stored user onto the identity the token carries.
func userIdentity(user *models.User) *identityapi.Identity {
	attrs := &identityapi.Attributes{
		ID:      user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}
	if user.UserType != nil {
		attrs.UserType = *user.UserType
	}
	return identityapi.Normalize(attrs)
}
