// Package auth provides the dashboard login gate: a fixed credential table,
// PBKDF2 password hashes and HMAC-signed idle-timeout sessions.
package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finhealth/internal/common"
)

// CookieName is the session cookie.
const CookieName = "finhealth_session"

// DefaultIdleTimeout ends a session after 30 minutes without activity.
const DefaultIdleTimeout = 30 * time.Minute

// ErrInvalidCredentials is returned for an unknown email or a wrong password.
var ErrInvalidCredentials = errors.New("invalid email or password")

// DemoUsers are always present in the credential table.
var DemoUsers = []common.UserConfig{
	{Email: "demo@example.com", Password: "demo123"},
	{Email: "admin@example.com", Password: "admin123"},
}

// Service authenticates users and issues sessions.
type Service struct {
	mu           sync.RWMutex
	users        map[string]string // email -> password hash
	salt         string
	iterations   int
	idleTimeout  time.Duration
	cookieSecure bool
	codec        codec
	logger       arbor.ILogger
	now          func() time.Time
}

// NewService builds the credential table from DemoUsers and config.Users.
// An empty session secret is replaced with random bytes, which invalidates
// sessions on restart.
func NewService(config common.AuthConfig, logger arbor.ILogger) (*Service, error) {
	secret := []byte(config.SessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("failed to generate session secret: %w", err)
		}
		logger.Debug().Msg("Generated random session secret")
	}

	salt := config.Salt
	if salt == "" {
		salt = DefaultSalt
	}
	iterations := config.Iterations
	if iterations < 1 {
		iterations = DefaultIterations
	}

	s := &Service{
		users:        make(map[string]string),
		salt:         salt,
		iterations:   iterations,
		idleTimeout:  common.ParseDuration(config.IdleTimeout, DefaultIdleTimeout),
		cookieSecure: config.CookieSecure,
		codec:        codec{secret: secret},
		logger:       logger,
		now:          time.Now,
	}

	for _, u := range append(append([]common.UserConfig{}, DemoUsers...), config.Users...) {
		s.AddUser(u.Email, u.Password)
	}

	logger.Info().
		Int("users", len(s.users)).
		Dur("idle_timeout", s.idleTimeout).
		Msg("Auth service initialized")

	return s, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// AddUser adds or replaces a login.
func (s *Service) AddUser(email, password string) {
	hash := HashPassword(password, s.salt, s.iterations)
	s.mu.Lock()
	s.users[normalizeEmail(email)] = hash
	s.mu.Unlock()
}

// Authenticate checks credentials and returns a new session.
func (s *Service) Authenticate(email, password string) (*Session, error) {
	email = normalizeEmail(email)

	s.mu.RLock()
	hash, ok := s.users[email]
	s.mu.RUnlock()

	if !ok || !VerifyPassword(password, hash, s.salt, s.iterations) {
		s.logger.Warn().Str("email", email).Msg("Failed login attempt")
		return nil, ErrInvalidCredentials
	}

	s.logger.Info().Str("email", email).Msg("User logged in")
	return s.Issue(email), nil
}

// Issue creates a session for email without checking credentials.
func (s *Service) Issue(email string) *Session {
	now := s.now()
	return &Session{
		ID:           common.NewSessionID(),
		Email:        normalizeEmail(email),
		IssuedAt:     now,
		LastActivity: now,
	}
}

// Verify decodes a token and checks the idle timeout.
func (s *Service) Verify(token string) (*Session, error) {
	session, err := s.codec.decode(token)
	if err != nil {
		return nil, err
	}
	if session.Expired(s.now(), s.idleTimeout) {
		return nil, ErrSessionExpired
	}
	return session, nil
}

// Touch slides the idle window forward.
func (s *Service) Touch(session *Session) {
	session.LastActivity = s.now()
}

// Encode returns the signed token for a session.
func (s *Service) Encode(session *Session) (string, error) {
	return s.codec.encode(session)
}

// IdleTimeout returns the configured idle timeout.
func (s *Service) IdleTimeout() time.Duration {
	return s.idleTimeout
}

// SetCookie writes the session cookie.
func (s *Service) SetCookie(w http.ResponseWriter, session *Session) error {
	token, err := s.Encode(session)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.idleTimeout.Seconds()),
	})
	return nil
}

// ClearCookie removes the session cookie.
func (s *Service) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cookieSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

// SessionFromRequest verifies the session cookie on r.
func (s *Service) SessionFromRequest(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, ErrInvalidSession
	}
	return s.Verify(cookie.Value)
}
