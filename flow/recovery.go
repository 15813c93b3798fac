package flow

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"github.com/taskdeck/taskdeck/domain"
)

const resetTokenBytes = 20

// RecoveryManager handles the password-reset token lifecycle: one pending
// token per user, valid for an hour, consumed exactly once.
type RecoveryManager struct {
	store  domain.UserStorage
	hasher domain.Hasher
	ttl    time.Duration
}

func NewRecoveryManager(store domain.UserStorage, hasher domain.Hasher) *RecoveryManager {
	return &RecoveryManager{
		store:  store,
		hasher: hasher,
		ttl:    1 * time.Hour,
	}
}

// Initiate generates a recovery token for the account registered under email
// and persists it on the user, overwriting any prior pending token. The
// caller is expected to mask domain.ErrNotFound so the HTTP response does not
// reveal whether the email is registered.
func (m *RecoveryManager) Initiate(ctx context.Context, email string) (string, error) {
	user, err := m.store.GetUserByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	token := hex.EncodeToString(buf)

	expires := time.Now().Add(m.ttl)
	user.ResetPasswordToken = token
	user.ResetPasswordExpires = &expires
	user.UpdatedAt = time.Now()

	if err := m.store.UpdateUser(ctx, user); err != nil {
		return "", err
	}

	return token, nil
}

// Reset consumes a recovery token: it replaces the password hash and clears
// both reset fields so the token cannot be used again. Unknown, mismatched
// and expired tokens all fail with domain.ErrInvalidResetToken.
func (m *RecoveryManager) Reset(ctx context.Context, token, newPassword string) error {
	user, err := m.store.GetUserByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrInvalidResetToken
		}
		return err
	}

	hashed, err := m.hasher.Hash(newPassword)
	if err != nil {
		return err
	}

	user.Password = hashed
	user.ResetPasswordToken = ""
	user.ResetPasswordExpires = nil
	user.UpdatedAt = time.Now()

	return m.store.UpdateUser(ctx, user)
}
