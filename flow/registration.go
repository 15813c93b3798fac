package flow

import (
	"context"
	"time"

	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/identity"
)

// RegistrationManager creates new user accounts with hashed passwords.
type RegistrationManager struct {
	store     domain.UserStorage
	hasher    domain.Hasher
	generator domain.IDGenerator
}

func NewRegistrationManager(store domain.UserStorage, hasher domain.Hasher, generator domain.IDGenerator) *RegistrationManager {
	return &RegistrationManager{store: store, hasher: hasher, generator: generator}
}

// Register hashes the password and persists a new user. Username and email
// collisions propagate from the store as *domain.DuplicateKeyError.
func (m *RegistrationManager) Register(ctx context.Context, username, email, password string) (*identity.User, error) {
	hashed, err := m.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &identity.User{
		ID:        m.generator(),
		Username:  username,
		Email:     email,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := m.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}
