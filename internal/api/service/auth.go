package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/quollsoft/projecthub/internal/api/domain"
	"github.com/quollsoft/projecthub/internal/api/store"
	"github.com/quollsoft/projecthub/pkg/cryptox"
	"github.com/quollsoft/projecthub/pkg/idx"
	"github.com/quollsoft/projecthub/pkg/jwtx"
	"github.com/quollsoft/projecthub/pkg/slogx"
)

const passwordMinLen = 8

// AuthService registers users, checks credentials and issues identity
// tokens. Every token carries the user id as its subject; the rest of the
// API trusts nothing else.
type AuthService struct {
	Store    store.Store
	Signer   jwtx.Signer
	Verifier jwtx.Verifier
	Issuer   string
	Audience []string
	TokenTTL time.Duration
}

// Register creates a new user and returns a signed identity token.
//
// Returns:
//   - (*ValidationError) when a field fails shape validation
//   - ErrEmailTaken when the email is already registered
func (s *AuthService) Register(ctx context.Context, firstName, lastName, email, password string) (string, error) {
	l := slogx.FromContext(ctx)

	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	email = strings.ToLower(strings.TrimSpace(email))

	if verr := validateRegistration(firstName, lastName, email, password); verr != nil {
		return "", verr
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return "", err
	}

	user := domain.User{
		ID:           idx.New().String(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	// The unique index is the real guard; no pre-check race window.
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return "", ErrEmailTaken
		}
		return "", err
	}

	l.Info("user registered", "user_id", user.ID)

	return s.issueToken(user)
}

// Login checks the credentials and returns a signed identity token.
// A missing user and a wrong password are the same failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	l := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrMismatch) {
			l.Info("login rejected", "user_id", user.ID)
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	l.Info("login accepted", "user_id", user.ID)

	return s.issueToken(user)
}

// Validate reports whether the token is currently valid. It never returns
// the reason; /auth/validate only answers yes or no.
func (s *AuthService) Validate(ctx context.Context, token string) bool {
	_, err := s.Verifier.Verify(token)
	return err == nil
}

func (s *AuthService) issueToken(user domain.User) (string, error) {
	ttl := s.TokenTTL
	if ttl <= 0 {
		ttl = jwtx.DefaultTokenTTL
	}

	claims := jwtx.NewIdentityClaims(
		user.ID,
		user.Email,
		user.DisplayName(),
		ttl,
		s.Issuer,
		s.Audience,
		time.Now(),
	)
	return s.Signer.Sign(claims)
}

func validateRegistration(firstName, lastName, email, password string) *ValidationError {
	var problems []string

	if firstName == "" {
		problems = append(problems, "first name is required")
	}
	if lastName == "" {
		problems = append(problems, "last name is required")
	}
	if email == "" {
		problems = append(problems, "email is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		problems = append(problems, "email is not a valid address")
	}
	if utf8.RuneCountInString(password) < passwordMinLen {
		problems = append(problems, "password must be at least 8 characters")
	}

	if len(problems) > 0 {
		return newValidationError(problems...)
	}
	return nil
}
