package domain

import (
	"context"

	"github.com/taskdeck/taskdeck/identity"
)

// Storage defines the interface for all persistence operations.
type Storage interface {
	UserStorage
	TodoStorage
	LogStorage
}

type UserStorage interface {
	// CreateUser persists a new user. A username or email collision surfaces
	// as *DuplicateKeyError naming the field that collided.
	CreateUser(ctx context.Context, u *identity.User) error
	GetUserByEmail(ctx context.Context, email string) (*identity.User, error)
	// GetUserByResetToken matches a pending reset token whose expiry is
	// strictly in the future. Expired or unknown tokens yield ErrNotFound.
	GetUserByResetToken(ctx context.Context, token string) (*identity.User, error)
	UpdateUser(ctx context.Context, u *identity.User) error
}

type TodoStorage interface {
	CreateTodo(ctx context.Context, t *identity.Todo) error
	GetTodo(ctx context.Context, id string) (*identity.Todo, error)
	// ListTodosByUser returns the user's todos, newest first.
	ListTodosByUser(ctx context.Context, userID string) ([]identity.Todo, error)
	UpdateTodo(ctx context.Context, t *identity.Todo) error
	DeleteTodo(ctx context.Context, id string) error
}

type LogStorage interface {
	CreateLog(ctx context.Context, l *identity.ErrorLog) error
}

// IDGenerator is a function that generates a new record ID.
type IDGenerator func() string

// Hasher defines the interface for password hashing and verification.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(password, hash string) bool
}
