package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finhealth/internal/services/auth"
)

// AuthHandler handles the login form and logout
type AuthHandler struct {
	sessions SessionManager
	pages    *PageHandler
	logger   arbor.ILogger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(sessions SessionManager, pages *PageHandler, logger arbor.ILogger) *AuthHandler {
	return &AuthHandler{
		sessions: sessions,
		pages:    pages,
		logger:   logger,
	}
}

// LoginPageHandler serves the login form.
func (h *AuthHandler) LoginPageHandler(w http.ResponseWriter, r *http.Request) {
	h.pages.render(w, http.StatusOK, "login.html", PageData{Title: "Login"})
}

// LoginSubmitHandler checks the posted credentials and sets the session cookie.
func (h *AuthHandler) LoginSubmitHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.pages.render(w, http.StatusBadRequest, "login.html", PageData{Title: "Login", Error: "Invalid form submission"})
		return
	}

	email := strings.TrimSpace(r.PostFormValue("email"))
	password := r.PostFormValue("password")

	session, err := h.sessions.Authenticate(email, password)
	if err != nil {
		message := "Login failed"
		if errors.Is(err, auth.ErrInvalidCredentials) {
			message = "Invalid email or password"
		}
		h.pages.render(w, http.StatusUnauthorized, "login.html", PageData{
			Title:      "Login",
			Error:      message,
			LoginEmail: email,
		})
		return
	}

	if err := h.sessions.SetCookie(w, session); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LogoutHandler clears the session cookie and returns to the login page.
func (h *AuthHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	if s := auth.SessionFromContext(r.Context()); s != nil {
		h.logger.Info().Str("email", s.Email).Msg("User logged out")
	}

	h.sessions.ClearCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
