package app

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"

	"github.com/stallworks/identity/pkg/cryptox"
	"github.com/stallworks/identity/pkg/jwtx"
)

// InitSigningKeys loads the Ed25519 signing key and builds the signer,
// key set and verifier the services share.
//
// When cfg.SigningKeyFile is set the PKCS8 PEM key at that path is used, so
// access tokens survive restarts. Otherwise a fresh key is generated on
// startup and every outstanding access token becomes invalid.
func InitSigningKeys(cfg Config, logger *slog.Logger) (jwtx.Signer, *jwtx.KeySet, *jwtx.EdDSAVerifier, error) {
	var pemKey []byte
	var err error

	if cfg.SigningKeyFile != "" {
		pemKey, err = os.ReadFile(cfg.SigningKeyFile)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to read signing key %s: %w", cfg.SigningKeyFile, err)
		}
		logger.Info("signing key loaded", "path", cfg.SigningKeyFile)
	} else {
		pemKey, err = cryptox.GenerateEd25519Key()
		if err != nil {
			return nil, nil, nil, fmt.Errorf("failed to generate signing key: %w", err)
		}
		logger.Warn("ephemeral signing key generated, outstanding access tokens are now invalid")
	}

	signer, err := jwtx.NewSignerEdDSA(keyID(pemKey), pemKey)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize signer: %w", err)
	}

	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)
	verifier := jwtx.NewVerifierEdDSA(keys, cfg.Issuer, cfg.Audience)

	return signer, keys, verifier, nil
}

// keyID derives a stable identifier from the key material so a persisted
// key keeps its kid across restarts.
func keyID(pemKey []byte) string {
	sum := sha256.Sum256(pemKey)
	return hex.EncodeToString(sum[:8])
}
