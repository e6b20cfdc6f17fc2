package cryptox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	// Each test run gets its own throwaway pepper so hashes never depend
	// on developer machines.
	dir, err := os.MkdirTemp("", "cryptox-test")
	if err != nil {
		panic(err)
	}
	SetPepperPath(filepath.Join(dir, "pepper"))

	code := m.Run()
	_ = os.RemoveAll(dir)
	os.Exit(code)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	require.Contains(t, hash, "$argon2id$v=19$")

	require.NoError(t, VerifyPassword("secret1", hash))
	require.ErrorIs(t, VerifyPassword("secret2", hash), ErrPasswordMismatch)
}

func TestHashIsSalted(t *testing.T) {
	a, err := HashPassword("secret1")
	require.NoError(t, err)
	b, err := HashPassword("secret1")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	require.Error(t, VerifyPassword("secret1", "not-a-phc-string"))
	require.Error(t, VerifyPassword("secret1", "$argon2i$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"))
}

func TestFingerprintToken(t *testing.T) {
	token, err := GenerateToken(TokenSize256)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Deterministic, and never equal to the raw token
	require.Equal(t, FingerprintToken(token), FingerprintToken(token))
	require.NotEqual(t, token, FingerprintToken(token))
}

func TestGenerateTokenRejectsBadSize(t *testing.T) {
	_, err := GenerateToken(0)
	require.Error(t, err)
}
