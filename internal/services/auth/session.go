package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrInvalidSession is returned for a token that is malformed or has a bad signature.
	ErrInvalidSession = errors.New("invalid session")

	// ErrSessionExpired is returned when the idle timeout has passed.
	ErrSessionExpired = errors.New("session expired")
)

// Session is a signed-in user. It is carried in a signed cookie; nothing is stored server side.
type Session struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	IssuedAt     time.Time `json:"issued_at"`
	LastActivity time.Time `json:"last_activity"`
}

// Expired reports whether the session has been idle longer than timeout.
func (s *Session) Expired(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LastActivity) > timeout
}

// codec signs and verifies session tokens of the form payload.signature,
// both base64url encoded.
type codec struct {
	secret []byte
}

func (c codec) sign(payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (c codec) encode(s *Session) (string, error) {
	raw, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("failed to encode session: %w", err)
	}
	payload := base64.RawURLEncoding.EncodeToString(raw)
	return payload + "." + c.sign(payload), nil
}

func (c codec) decode(token string) (*Session, error) {
	payload, signature, ok := strings.Cut(token, ".")
	if !ok || payload == "" || signature == "" {
		return nil, ErrInvalidSession
	}
	if !hmac.Equal([]byte(signature), []byte(c.sign(payload))) {
		return nil, ErrInvalidSession
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrInvalidSession
	}
	var s Session
	if err := json.Unmarshal(raw, &s); err != nil || s.Email == "" {
		return nil, ErrInvalidSession
	}
	return &s, nil
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session placed by WithSession, or nil.
func SessionFromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(sessionKey{}).(*Session)
	return s
}
