package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a record that does not exist in the store.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password so the two cases are indistinguishable to a caller.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken covers malformed, tampered and expired bearer tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidResetToken covers unknown, mismatched and expired reset
	// tokens uniformly.
	ErrInvalidResetToken = errors.New("invalid or expired reset token")
	// ErrNotOwner reports a mutation attempted by someone other than the
	// resource's owner.
	ErrNotOwner = errors.New("not authorized")
)

// DuplicateKeyError identifies which uniquely-constrained field collided.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("%s already exists", e.Field)
}

// IsDuplicateKey unwraps err into a DuplicateKeyError if there is one.
func IsDuplicateKey(err error) (*DuplicateKeyError, bool) {
	var dup *DuplicateKeyError
	if errors.As(err, &dup) {
		return dup, true
	}
	return nil, false
}
