package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matias-dev/api-rest/internal/pkg/config"
)

// Low-cost parameters keep the test suite fast; production values come from
// configuration.
func testHasher() *PasswordHasher {
	return NewPasswordHasher(config.Argon2Config{
		Iterations:  1,
		MemoryKB:    8 * 1024,
		Parallelism: 1,
	})
}

func TestPasswordHasher_RoundTrip(t *testing.T) {
	h := testHasher()

	hash, err := h.Hash("Abc12345")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$"), "hash should be PHC formatted: %s", hash)

	assert.True(t, h.Verify(hash, "Abc12345"))
	assert.False(t, h.Verify(hash, "Abc12346"))
	assert.False(t, h.Verify(hash, ""))
}

func TestPasswordHasher_SaltsAreUnique(t *testing.T) {
	h := testHasher()

	h1, err := h.Hash("Abc12345")
	require.NoError(t, err)
	h2, err := h.Hash("Abc12345")
	require.NoError(t, err)

	assert.NotEqual(t, h1, h2, "two hashes of the same password should differ by salt")
	assert.True(t, h.Verify(h1, "Abc12345"))
	assert.True(t, h.Verify(h2, "Abc12345"))
}

func TestPasswordHasher_ParamsEmbeddedInHash(t *testing.T) {
	// Verification must honor the parameters stored in the hash, not the
	// hasher's own configuration.
	writer := NewPasswordHasher(config.Argon2Config{Iterations: 2, MemoryKB: 16 * 1024, Parallelism: 2})
	reader := testHasher()

	hash, err := writer.Hash("Abc12345")
	require.NoError(t, err)

	assert.True(t, reader.Verify(hash, "Abc12345"))
}

func TestPasswordHasher_MalformedHash(t *testing.T) {
	h := testHasher()

	for _, hash := range []string{
		"",
		"plaintext",
		"$argon2id$v=19$m=8192,t=1,p=1$notbase64!!$also-not",
		"$bcrypt$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$aGFzaA",
	} {
		assert.False(t, h.Verify(hash, "Abc12345"), "malformed hash %q must not verify", hash)
	}
}
