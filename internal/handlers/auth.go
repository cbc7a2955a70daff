package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stockroom/apiserver/config"
	"github.com/stockroom/apiserver/internal/services"
	"github.com/stockroom/apiserver/internal/session"
	"github.com/stockroom/apiserver/internal/store"
	"github.com/stockroom/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler provides session-cookie authentication endpoints.
type AuthHandler struct {
	userService *services.UserService
	sessions    session.Manager
	cookie      config.SessionConfig
}

// NewAuthHandler constructs an AuthHandler with the provided dependencies.
func NewAuthHandler(userService *services.UserService, sessions session.Manager, cookie config.SessionConfig) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessions:    sessions,
		cookie:      cookie,
	}
}

// AuthRouter registers auth routes on the given router.
func AuthRouter(r chi.Router, userService *services.UserService, sessions session.Manager, cookie config.SessionConfig) {
	handler := NewAuthHandler(userService, sessions, cookie)

	r.Post("/register", handler.Register)
	r.Post("/login", handler.Login)
	r.Post("/logout", handler.Logout)
}

// RequireSession constructs middleware that resolves the session token and
// injects the user id into context. Requests without a resolvable session
// terminate with 401 before any store access.
func RequireSession(sessions session.Manager, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := sessionToken(r, cookieName)
			if token == "" {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			userID, err := sessions.Resolve(r.Context(), token)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			ctx := context.WithValue(r.Context(), contextUserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Register creates a new user account.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	if _, err := h.userService.Create(r.Context(), types.User{
		Username:     req.Username,
		PasswordHash: string(hashed),
	}); err != nil {
		if errors.Is(err, store.ErrConflict) {
			writeError(w, http.StatusConflict, "username already exists")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	writeJSON(w, http.StatusOK, MessageResponse{Message: "user registered"})
}

// Login verifies credentials and issues a session cookie. Unknown usernames
// and wrong passwords produce the same response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user, err := h.userService.GetByUsername(r.Context(), req.Username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to authenticate")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.sessions.Create(r.Context(), user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(h.cookie.TTL),
		HttpOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, MessageResponse{Message: "login successful"})
}

// Logout destroys the current session, if any, and clears the cookie.
// Logging out without a session is not an error.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r, h.cookie.CookieName); token != "" {
		_ = h.sessions.Destroy(r.Context(), token)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cookie.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookie.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusOK, MessageResponse{Message: "logged out"})
}

type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// sessionToken extracts the opaque token from the session cookie, falling
// back to a bearer Authorization header for non-browser clients.
func sessionToken(r *http.Request, cookieName string) string {
	if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if auth == "" {
		return ""
	}
	parts := strings.SplitN(auth, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
