package todo

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/google/uuid"
	"github.com/taskdeck/taskdeck/domain"
	"github.com/taskdeck/taskdeck/identity"
)

type mockTodoStore struct {
	todos map[string]*identity.Todo
}

func newMockTodoStore() *mockTodoStore {
	return &mockTodoStore{todos: make(map[string]*identity.Todo)}
}

func (m *mockTodoStore) CreateTodo(ctx context.Context, t *identity.Todo) error {
	cp := *t
	m.todos[t.ID] = &cp
	return nil
}

func (m *mockTodoStore) GetTodo(ctx context.Context, id string) (*identity.Todo, error) {
	t, ok := m.todos[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (m *mockTodoStore) ListTodosByUser(ctx context.Context, userID string) ([]identity.Todo, error) {
	var out []identity.Todo
	for _, t := range m.todos {
		if t.UserID == userID {
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockTodoStore) UpdateTodo(ctx context.Context, t *identity.Todo) error {
	if _, ok := m.todos[t.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *t
	m.todos[t.ID] = &cp
	return nil
}

func (m *mockTodoStore) DeleteTodo(ctx context.Context, id string) error {
	if _, ok := m.todos[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.todos, id)
	return nil
}

func strptr(s string) *string { return &s }
func boolptr(b bool) *bool    { return &b }

func TestListIsOwnerScoped(t *testing.T) {
	store := newMockTodoStore()
	mgr := NewManager(store, uuid.NewString)

	if _, err := mgr.Create(context.Background(), "user-a", "a1", ""); err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}
	if _, err := mgr.Create(context.Background(), "user-a", "a2", ""); err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}
	if _, err := mgr.Create(context.Background(), "user-b", "b1", ""); err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}

	todos, err := mgr.List(context.Background(), "user-a")
	if err != nil {
		t.Fatalf("failed to list todos: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("expected 2 todos for user-a, got %d", len(todos))
	}
	for _, td := range todos {
		if td.UserID != "user-a" {
			t.Errorf("listed a todo owned by %s", td.UserID)
		}
	}
}

func TestUpdatePartialPatch(t *testing.T) {
	store := newMockTodoStore()
	mgr := NewManager(store, uuid.NewString)

	created, err := mgr.Create(context.Background(), "user-a", "buy milk", "two liters")
	if err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}

	updated, err := mgr.Update(context.Background(), "user-a", created.ID, Patch{Completed: boolptr(true)})
	if err != nil {
		t.Fatalf("failed to update todo: %v", err)
	}
	if !updated.Completed {
		t.Error("completed flag was not set")
	}
	if updated.Title != "buy milk" || updated.Description != "two liters" {
		t.Error("unpatched fields were modified")
	}

	updated, err = mgr.Update(context.Background(), "user-a", created.ID, Patch{Title: strptr("buy oat milk")})
	if err != nil {
		t.Fatalf("failed to update todo: %v", err)
	}
	if updated.Title != "buy oat milk" {
		t.Errorf("title was not patched, got %q", updated.Title)
	}
	if !updated.Completed {
		t.Error("completed flag reset by unrelated patch")
	}
}

func TestNotFoundBeforeOwnership(t *testing.T) {
	store := newMockTodoStore()
	mgr := NewManager(store, uuid.NewString)

	created, err := mgr.Create(context.Background(), "user-a", "buy milk", "")
	if err != nil {
		t.Fatalf("failed to create todo: %v", err)
	}

	// Nonexistent id is not-found regardless of who asks.
	if _, err := mgr.Update(context.Background(), "user-b", uuid.NewString(), Patch{}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := mgr.Delete(context.Background(), "user-b", uuid.NewString()); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	// Someone else's existing todo is an ownership failure.
	if _, err := mgr.Update(context.Background(), "user-b", created.ID, Patch{Title: strptr("mine now")}); !errors.Is(err, domain.ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}
	if err := mgr.Delete(context.Background(), "user-b", created.ID); !errors.Is(err, domain.ErrNotOwner) {
		t.Errorf("expected ErrNotOwner, got %v", err)
	}

	// The owner can still delete it.
	if err := mgr.Delete(context.Background(), "user-a", created.ID); err != nil {
		t.Errorf("owner delete failed: %v", err)
	}
}
