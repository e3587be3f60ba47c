package auth

import (
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matias-dev/api-rest/internal/app/models"
	"github.com/matias-dev/api-rest/internal/pkg/config"
)

func testTokenService(ttl time.Duration) *TokenService {
	return NewTokenService(config.JWTConfig{
		SecretKey: "test-secret-key-for-token-tests",
		Issuer:    "api-rest-test",
		TTL:       ttl,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestTokenService_CreateAndVerify(t *testing.T) {
	s := testTokenService(time.Hour)

	token, err := s.Create(42, "ana@example.com", models.RolUser)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sess, ok := s.Verify(token)
	require.True(t, ok)
	assert.Equal(t, "42", sess.UserID)
	assert.Equal(t, "ana@example.com", sess.Email)
	assert.Equal(t, models.RolUser, sess.Rol)
}

func TestTokenService_AdminRoleClaim(t *testing.T) {
	s := testTokenService(time.Hour)

	token, err := s.Create(1, "root@example.com", models.RolAdmin)
	require.NoError(t, err)

	sess, ok := s.Verify(token)
	require.True(t, ok)
	assert.Equal(t, models.RolAdmin, sess.Rol)
}

func TestTokenService_Expiry(t *testing.T) {
	s := testTokenService(time.Millisecond)

	token, err := s.Create(7, "x@example.com", models.RolUser)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)

	_, ok := s.Verify(token)
	assert.False(t, ok, "token should be rejected after its ttl has passed")
}

func TestTokenService_NoExpiryWhenTTLZero(t *testing.T) {
	s := testTokenService(0)

	token, err := s.Create(7, "x@example.com", models.RolUser)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, ok := s.Verify(token)
	assert.True(t, ok, "token without exp claim should stay valid")
}

func TestTokenService_RejectsTamperedSignature(t *testing.T) {
	s := testTokenService(time.Hour)

	token, err := s.Create(42, "ana@example.com", models.RolUser)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + "AAAA" + parts[2][4:]

	_, ok := s.Verify(tampered)
	assert.False(t, ok)
}

func TestTokenService_RejectsWrongKey(t *testing.T) {
	s := testTokenService(time.Hour)
	other := NewTokenService(config.JWTConfig{
		SecretKey: "a-completely-different-secret",
		Issuer:    "api-rest-test",
		TTL:       time.Hour,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	token, err := other.Create(42, "ana@example.com", models.RolUser)
	require.NoError(t, err)

	_, ok := s.Verify(token)
	assert.False(t, ok)
}

func TestTokenService_RejectsGarbage(t *testing.T) {
	s := testTokenService(time.Hour)

	for _, input := range []string{"", "not-a-token", "a.b", "a.b.c"} {
		_, ok := s.Verify(input)
		assert.False(t, ok, "input %q should not verify", input)
	}
}

func TestTokenService_ClaimAccessors(t *testing.T) {
	s := testTokenService(time.Hour)

	token, err := s.Create(9, "b@example.com", models.RolUser)
	require.NoError(t, err)

	assert.Equal(t, "b@example.com", s.Subject(token))
	assert.Equal(t, "9", s.UserID(token))
	assert.Equal(t, models.RolUser, s.Rol(token))

	assert.Empty(t, s.Subject("garbage"))
	assert.Empty(t, s.UserID("garbage"))
	assert.Equal(t, models.RolUnknown, s.Rol("garbage"))
}

func TestTokenService_UnknownRolInToken(t *testing.T) {
	s := testTokenService(time.Hour)

	// A token minted with no usable role yields RolUnknown on verification.
	token, err := s.Create(3, "c@example.com", models.RolUnknown)
	require.NoError(t, err)

	sess, ok := s.Verify(token)
	require.True(t, ok)
	assert.Equal(t, models.RolUnknown, sess.Rol)
}
