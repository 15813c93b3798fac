package flow

import (
	"context"

	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/identity"
)

// LoginManager verifies email/password credentials.
type LoginManager struct {
	store  domain.UserStorage
	hasher domain.Hasher
}

func NewLoginManager(store domain.UserStorage, hasher domain.Hasher) *LoginManager {
	return &LoginManager{store: store, hasher: hasher}
}

// Authenticate returns the user for a matching email and password. An unknown
// email and a wrong password both fail with domain.ErrInvalidCredentials so
// the two cases cannot be told apart.
func (m *LoginManager) Authenticate(ctx context.Context, email, password string) (*identity.User, error) {
	user, err := m.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !m.hasher.Compare(password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}
