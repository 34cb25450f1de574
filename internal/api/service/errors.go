package service

import (
	"errors"
	"strings"

	"github.com/quollsoft/projecthub/internal/api/store"
)

var (
	// ErrAccessDenied covers both "does not exist" and "not yours". Callers
	// must never be able to tell which one happened.
	ErrAccessDenied       = errors.New("access_denied")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrEmailTaken         = errors.New("email_taken")
)

// ValidationError carries the individual field problems from a rejected
// request. Transport joins them into the response message.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, "; ")
}

func newValidationError(problems ...string) *ValidationError {
	return &ValidationError{Problems: problems}
}

// mapAccess folds the store's not-found into the merged access outcome.
func mapAccess(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrAccessDenied
	}
	return err
}
