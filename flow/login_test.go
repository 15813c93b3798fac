package flow

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck/domain"
)

func TestLogin(t *testing.T) {
	store := newMockUserStore()
	hasher := NewBcryptHasher(4)
	regMgr := NewRegistrationManager(store, hasher, uuid.NewString)
	logMgr := NewLoginManager(store, hasher)

	password := "password123"
	registered, err := regMgr.Register(context.Background(), "alice", "alice@example.com", password)
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	user, err := logMgr.Authenticate(context.Background(), "alice@example.com", password)
	if err != nil {
		t.Fatalf("failed to login: %v", err)
	}
	if user.ID != registered.ID {
		t.Errorf("expected user %s, got %s", registered.ID, user.ID)
	}
}

func TestLoginFailureIsUniform(t *testing.T) {
	store := newMockUserStore()
	hasher := NewBcryptHasher(4)
	regMgr := NewRegistrationManager(store, hasher, uuid.NewString)
	logMgr := NewLoginManager(store, hasher)

	if _, err := regMgr.Register(context.Background(), "alice", "alice@example.com", "password123"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	// Wrong password and unknown email must be indistinguishable.
	_, wrongPw := logMgr.Authenticate(context.Background(), "alice@example.com", "wrongpassword")
	_, unknown := logMgr.Authenticate(context.Background(), "nobody@example.com", "password123")

	if !errors.Is(wrongPw, domain.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", wrongPw)
	}
	if !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", unknown)
	}
	if wrongPw.Error() != unknown.Error() {
		t.Error("login failures are distinguishable")
	}
}
