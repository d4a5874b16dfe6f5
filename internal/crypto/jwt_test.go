package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJWTManagerRoundTrip(t *testing.T) {
	m, err := NewJWTManager("master-secret")
	require.NoError(t, err)

	token, err := m.CreateToken("sess-1", "user-1", "a@example.com")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, "sess-1", claims.ID)
	require.Equal(t, "user-1", claims.UserID)
	require.Equal(t, "a@example.com", claims.Email)
	require.Equal(t, "tangent-site", claims.Issuer)
}

func TestJWTManagerRequiresSecret(t *testing.T) {
	_, err := NewJWTManager("")
	require.Error(t, err)
}

func TestJWTManagerRejectsForeignToken(t *testing.T) {
	m1, err := NewJWTManager("secret-one")
	require.NoError(t, err)
	m2, err := NewJWTManager("secret-two")
	require.NoError(t, err)

	token, err := m1.CreateToken("sess-1", "user-1", "")
	require.NoError(t, err)

	_, err = m2.VerifyToken(token)
	require.Error(t, err)
}

func TestJWTManagerRejectsGarbage(t *testing.T) {
	m, err := NewJWTManager("master-secret")
	require.NoError(t, err)

	_, err = m.VerifyToken("not.a.jwt")
	require.Error(t, err)
}

func TestJWTManagerDeterministicKeys(t *testing.T) {
	// The same master secret must verify tokens across restarts.
	m1, err := NewJWTManager("stable-secret")
	require.NoError(t, err)
	m2, err := NewJWTManager("stable-secret")
	require.NoError(t, err)

	token, err := m1.CreateToken("sess-1", "user-1", "")
	require.NoError(t, err)

	claims, err := m2.VerifyToken(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.UserID)
}

func TestRandDigits(t *testing.T) {
	code, err := RandDigits(6)
	require.NoError(t, err)
	require.Len(t, code, 6)
	for _, r := range code {
		require.True(t, r >= '0' && r <= '9')
	}

	_, err = RandDigits(0)
	require.Error(t, err)
}

func TestRandDigitsUniform(t *testing.T) {
	// With rejection sampling every digit should land near 10% over a large
	// sample. The bound is loose enough to keep the test deterministic in
	// practice.
	const samples = 200
	counts := make(map[rune]int)
	for i := 0; i < samples; i++ {
		code, err := RandDigits(10)
		require.NoError(t, err)
		require.Len(t, code, 10)
		for _, r := range code {
			counts[r]++
		}
	}
	total := 0
	for r, n := range counts {
		require.True(t, r >= '0' && r <= '9')
		require.Greater(t, n, 100, "digit %c severely underrepresented", r)
		total += n
	}
	require.Equal(t, samples*10, total)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	require.NotEqual(t, "hunter22", hash)

	require.True(t, CheckPassword(hash, "hunter22"))
	require.False(t, CheckPassword(hash, "hunter23"))
}
