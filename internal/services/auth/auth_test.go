package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/finhealth/internal/common"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name       string
		password   string
		salt       string
		iterations int
		want       string
	}{
		{
			name:       "demo user",
			password:   "demo123",
			salt:       DefaultSalt,
			iterations: DefaultIterations,
			want:       "087b8d14b7354a72b6c0b8c6327e1a2dc23a723fd681a97149c360dc311213fd",
		},
		{
			name:       "admin user",
			password:   "admin123",
			salt:       DefaultSalt,
			iterations: DefaultIterations,
			want:       "474d8bc875db7568139bff9b64c73bdc0dda298c92a6fd89f7f661f59580b133",
		},
		{
			name:       "single iteration",
			password:   "secret",
			salt:       "salt",
			iterations: 1,
			want:       "38df428b309308e48c3687e7f90bda0e9cf253568c21ec754a0e076ab4ab6423",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HashPassword(tt.password, tt.salt, tt.iterations))
		})
	}
}

func TestVerifyPassword(t *testing.T) {
	hash := HashPassword("secret", "salt", 1)
	assert.True(t, VerifyPassword("secret", hash, "salt", 1))
	assert.False(t, VerifyPassword("Secret", hash, "salt", 1))
	assert.False(t, VerifyPassword("secret", hash, "pepper", 1))
}

func newTestService(t *testing.T, now *time.Time) *Service {
	t.Helper()
	config := common.AuthConfig{
		SessionSecret: "test-secret",
		IdleTimeout:   "30m",
		Salt:          "salt",
		Iterations:    1,
		Users:         []common.UserConfig{{Email: "Analyst@Example.com", Password: "pa55"}},
	}
	s, err := NewService(config, arbor.NewLogger())
	require.NoError(t, err)
	s.now = func() time.Time { return *now }
	return s
}

func TestAuthenticate(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	s := newTestService(t, &now)

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  bool
	}{
		{name: "demo", email: "demo@example.com", password: "demo123"},
		{name: "admin", email: "admin@example.com", password: "admin123"},
		{name: "configured user, case-insensitive email", email: " analyst@example.COM ", password: "pa55"},
		{name: "wrong password", email: "demo@example.com", password: "demo124", wantErr: true},
		{name: "unknown user", email: "nobody@example.com", password: "demo123", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := s.Authenticate(tt.email, tt.password)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidCredentials)
				assert.Nil(t, session)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.ToLower(strings.TrimSpace(tt.email)), session.Email)
			assert.True(t, strings.HasPrefix(session.ID, "sess_"))
			assert.Equal(t, now, session.LastActivity)
		})
	}
}

func TestSession_RoundTripAndIdleTimeout(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	s := newTestService(t, &now)

	session := s.Issue("demo@example.com")
	token, err := s.Encode(session)
	require.NoError(t, err)

	now = now.Add(29 * time.Minute)
	verified, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, session.ID, verified.ID)

	// activity slides the window
	s.Touch(verified)
	token, err = s.Encode(verified)
	require.NoError(t, err)

	now = now.Add(29 * time.Minute)
	_, err = s.Verify(token)
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = s.Verify(token)
	assert.ErrorIs(t, err, ErrSessionExpired)
}

func TestVerify_RejectsTampering(t *testing.T) {
	now := time.Now()
	s := newTestService(t, &now)

	token, err := s.Encode(s.Issue("demo@example.com"))
	require.NoError(t, err)

	payload, signature, _ := strings.Cut(token, ".")

	for name, bad := range map[string]string{
		"empty":             "",
		"no signature":      payload,
		"flipped signature": payload + "." + strings.ToUpper(signature),
		"foreign payload":   "eyJlbWFpbCI6ImFkbWluQGV4YW1wbGUuY29tIn0." + signature,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := s.Verify(bad)
			assert.ErrorIs(t, err, ErrInvalidSession)
		})
	}

	other, err := NewService(common.AuthConfig{SessionSecret: "other", Salt: "salt", Iterations: 1}, arbor.NewLogger())
	require.NoError(t, err)
	_, err = other.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestCookies(t *testing.T) {
	now := time.Now()
	s := newTestService(t, &now)

	rec := httptest.NewRecorder()
	require.NoError(t, s.SetCookie(rec, s.Issue("demo@example.com")))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	session, err := s.SessionFromRequest(req)
	require.NoError(t, err)
	assert.Equal(t, "demo@example.com", session.Email)

	_, err = s.SessionFromRequest(httptest.NewRequest(http.MethodGet, "/", nil))
	assert.ErrorIs(t, err, ErrInvalidSession)

	rec = httptest.NewRecorder()
	s.ClearCookie(rec)
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}

func TestSessionContext(t *testing.T) {
	assert.Nil(t, SessionFromContext(context.Background()))

	session := &Session{Email: "demo@example.com"}
	ctx := WithSession(context.Background(), session)
	assert.Same(t, session, SessionFromContext(ctx))
}
