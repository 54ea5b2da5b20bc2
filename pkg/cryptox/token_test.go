package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(TokenSize256)
	require.NoError(t, err)

	raw, err := base64.RawURLEncoding.DecodeString(tok)
	require.NoError(t, err)
	require.Len(t, raw, TokenSize256)

	other, err := GenerateToken(TokenSize256)
	require.NoError(t, err)
	require.NotEqual(t, tok, other)
}

func TestGenerateTokenRejectsNonPositiveSize(t *testing.T) {
	t.Parallel()

	_, err := GenerateToken(0)
	require.Error(t, err)
	_, err = GenerateToken(-1)
	require.Error(t, err)
}

func TestFingerprintTokenIsDeterministic(t *testing.T) {
	t.Parallel()

	fp := FingerprintToken("refresh-token-value")
	require.Equal(t, fp, FingerprintToken("refresh-token-value"))
	require.NotEqual(t, fp, FingerprintToken("other-token"))

	// SHA-256 -> 32 bytes -> 43 chars base64url.
	require.Len(t, fp, 43)
}
