package cryptox

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	hash, err := HashPassword("S3cureP@ss")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, VerifyPassword("S3cureP@ss", hash))
	require.Error(t, VerifyPassword("wrong-password", hash))
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	a, err := HashPassword("same-input")
	require.NoError(t, err)
	b, err := HashPassword("same-input")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestVerifyPasswordRejectsMalformedHashes(t *testing.T) {
	SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	cases := []string{
		"",
		"not-a-hash",
		"$bcrypt$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA",
		"$argon2id$v=18$m=19456,t=2,p=1$c2FsdA$aGFzaA",
	}
	for _, in := range cases {
		require.Error(t, VerifyPassword("pw", in))
	}
}
