package todo

import (
	"context"
	"time"

	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/identity"
)

// Manager implements owner-scoped todo operations. Every mutation checks
// existence before ownership: a nonexistent id reports domain.ErrNotFound no
// matter whose credentials were presented, while someone else's existing todo
// reports domain.ErrNotOwner.
type Manager struct {
	store     domain.TodoStorage
	generator domain.IDGenerator
}

func NewManager(store domain.TodoStorage, generator domain.IDGenerator) *Manager {
	return &Manager{store: store, generator: generator}
}

// List returns the user's todos, newest first.
func (m *Manager) List(ctx context.Context, userID string) ([]identity.Todo, error) {
	return m.store.ListTodosByUser(ctx, userID)
}

func (m *Manager) Create(ctx context.Context, userID, title, description string) (*identity.Todo, error) {
	now := time.Now()
	t := &identity.Todo{
		ID:          m.generator(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := m.store.CreateTodo(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Patch carries the fields of a partial update. Nil fields are left alone;
// Completed only changes when the request carried an explicit boolean.
type Patch struct {
	Title       *string
	Description *string
	Completed   *bool
}

func (m *Manager) Update(ctx context.Context, userID, id string, p Patch) (*identity.Todo, error) {
	t, err := m.store.GetTodo(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.UserID != userID {
		return nil, domain.ErrNotOwner
	}

	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	t.UpdatedAt = time.Now()

	if err := m.store.UpdateTodo(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (m *Manager) Delete(ctx context.Context, userID, id string) error {
	t, err := m.store.GetTodo(ctx, id)
	if err != nil {
		return err
	}
	if t.UserID != userID {
		return domain.ErrNotOwner
	}

	return m.store.DeleteTodo(ctx, id)
}
