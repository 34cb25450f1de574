package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/quollsoft/projecthub/internal/api/store/drivers/sqlite"
	"github.com/quollsoft/projecthub/pkg/cryptox"
	"github.com/quollsoft/projecthub/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	cryptox.SetPepperPath(filepath.Join(t.TempDir(), "pepper"))

	s, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	require.NoError(t, s.ApplyMigrations())

	signer, err := jwtx.NewEphemeralSigner()
	require.NoError(t, err)

	keys := jwtx.NewKeySet()
	keys.AddSigner(signer)

	issuer := "projecthub-test"
	aud := []string{"projecthub"}

	return &AuthService{
		Store:    s,
		Signer:   signer,
		Verifier: jwtx.NewVerifierEdDSA(keys, issuer, aud),
		Issuer:   issuer,
		Audience: aud,
		TokenTTL: time.Minute,
	}
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	token, err := svc.Register(ctx, "Alice", "Nguyen", "Alice@Example.com", "s3cret-pass")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.Verifier.Verify(token)
	require.NoError(t, err)
	require.NotEmpty(t, claims.Subject)
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, "Alice Nguyen", claims.Name)

	t.Run("stored user matches", func(t *testing.T) {
		user, err := svc.Store.Users().GetUserByID(ctx, claims.Subject)
		require.NoError(t, err)
		require.Equal(t, "alice@example.com", user.Email)
		require.NotEqual(t, "s3cret-pass", user.PasswordHash)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, "Alice", "Again", "alice@example.com", "another-pass")
		require.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	cases := []struct {
		name                         string
		first, last, email, password string
	}{
		{"missing first name", "", "Nguyen", "a@example.com", "s3cret-pass"},
		{"missing last name", "Alice", "", "a@example.com", "s3cret-pass"},
		{"missing email", "Alice", "Nguyen", "", "s3cret-pass"},
		{"malformed email", "Alice", "Nguyen", "not-an-email", "s3cret-pass"},
		{"short password", "Alice", "Nguyen", "a@example.com", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.first, tc.last, tc.email, tc.password)

			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.NotEmpty(t, verr.Problems)
		})
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	_, err := svc.Register(ctx, "Alice", "Nguyen", "alice@example.com", "s3cret-pass")
	require.NoError(t, err)

	t.Run("correct credentials", func(t *testing.T) {
		token, err := svc.Login(ctx, "alice@example.com", "s3cret-pass")
		require.NoError(t, err)
		require.True(t, svc.Validate(ctx, token))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.com", "wrong-pass")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email is the same failure", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "s3cret-pass")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestValidateRejectsGarbageAndExpired(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(t)

	require.False(t, svc.Validate(ctx, "not-a-jwt"))

	// token signed for a time window that already closed
	claims := jwtx.NewIdentityClaims(
		"user-1", "a@example.com", "A", time.Minute,
		svc.Issuer, svc.Audience, time.Now().Add(-2*time.Minute),
	)
	expired, err := svc.Signer.Sign(claims)
	require.NoError(t, err)
	require.False(t, svc.Validate(ctx, expired))
}
