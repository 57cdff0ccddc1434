package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "super-secret"

// fakeClock is a settable time source.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestTokenService(t *testing.T, clock *fakeClock) *TokenService {
	t.Helper()
	s, err := NewTokenService(testSecret, WithClock(clock.Now))
	require.NoError(t, err)
	return s
}

func TestNewTokenService_EmptySecret(t *testing.T) {
	_, err := NewTokenService("")
	require.ErrorIs(t, err, ErrEmptySecret)
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestTokenService(t, clock)

	tok, err := s.Issue("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	got, err := s.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, "user-123", got)
}

func TestTokenService_PayloadShape(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestTokenService(t, clock)

	tok, err := s.Issue("abc")
	require.NoError(t, err)

	parts := strings.Split(tok, ".")
	require.Len(t, parts, 3)
	raw, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(raw, &payload))

	assert.Equal(t, map[string]any{"id": "abc"}, payload["user"])
	assert.EqualValues(t, clock.t.Unix(), payload["iat"])
	assert.EqualValues(t, clock.t.Add(DefaultTokenTTL).Unix(), payload["exp"])
	assert.Len(t, payload, 3)
}

func TestTokenService_Expiry(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	s := newTestTokenService(t, clock)

	tok, err := s.Issue("u1")
	require.NoError(t, err)

	clock.Advance(DefaultTokenTTL - time.Second)
	_, err = s.Verify(tok)
	require.NoError(t, err, "token must still be valid one second before expiry")

	clock.Advance(time.Second)
	_, err = s.Verify(tok)
	require.ErrorIs(t, err, ErrTokenInvalid)

	clock.Advance(time.Hour)
	_, err = s.Verify(tok)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_WithTTL(t *testing.T) {
	clock := &fakeClock{t: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	s, err := NewTokenService(testSecret, WithClock(clock.Now), WithTTL(time.Minute))
	require.NoError(t, err)

	tok, err := s.Issue("u1")
	require.NoError(t, err)

	clock.Advance(2 * time.Minute)
	_, err = s.Verify(tok)
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenService_VerifyFailures(t *testing.T) {
	clock := &fakeClock{t: time.Now()}
	s := newTestTokenService(t, clock)

	other, err := NewTokenService("different-key", WithClock(clock.Now))
	require.NoError(t, err)
	foreign, err := other.Issue("u2")
	require.NoError(t, err)

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	rsTok, err := jwt.NewWithClaims(jwt.SigningMethodRS256, &Claims{
		User: ClaimsUser{ID: "u3"},
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
		},
	}).SignedString(privateKey)
	require.NoError(t, err)

	noSubject, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(clock.t.Add(time.Hour)),
		},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		User: ClaimsUser{ID: "u4"},
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	cases := map[string]string{
		"malformed":         "not-a-jwt",
		"wrong secret":      foreign,
		"unexpected alg":    rsTok,
		"missing user id":   noSubject,
		"missing exp claim": noExpiry,
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.Verify(tok)
			assert.ErrorIs(t, err, ErrTokenInvalid)
		})
	}
}

func TestTokenService_VerifyMissing(t *testing.T) {
	s := newTestTokenService(t, &fakeClock{t: time.Now()})
	_, err := s.Verify("")
	require.ErrorIs(t, err, ErrTokenMissing)
}
