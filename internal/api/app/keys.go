package app

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/quollsoft/projecthub/pkg/jwtx"
)

// initAuthKeys loads the signing key from cfg.KeyFile when set, otherwise
// generates an ephemeral key. Ephemeral keys invalidate every outstanding
// token on restart, which is fine for dev and test.
func initAuthKeys(cfg Config, logger *slog.Logger) (jwtx.Signer, *jwtx.KeySet, error) {
	var (
		signer jwtx.Signer
		err    error
	)

	if cfg.KeyFile != "" {
		pem, readErr := os.ReadFile(cfg.KeyFile)
		if readErr != nil {
			return nil, nil, fmt.Errorf("read signing key: %w", readErr)
		}
		signer, err = jwtx.NewSignerEdDSA("primary", pem)
		if err != nil {
			return nil, nil, fmt.Errorf("parse signing key: %w", err)
		}
		logger.Info("signing key loaded", "file", cfg.KeyFile)
	} else {
		signer, err = jwtx.NewEphemeralSigner()
		if err != nil {
			return nil, nil, fmt.Errorf("generate signing key: %w", err)
		}
		logger.Info("ephemeral signing key generated", "kid", signer.KID())
	}

	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)

	return signer, keys, nil
}
