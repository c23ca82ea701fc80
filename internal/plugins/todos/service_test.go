package todos

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tasknest/tasknest/internal/apperror"
)

// --- Mock Repository ---

// mockTodoRepo implements TodoRepository for testing.
type mockTodoRepo struct {
	createFn                func(ctx context.Context, todo *Todo) error
	findByOwnerFn           func(ctx context.Context, id, ownerID string) (*Todo, error)
	listByOwnerFn           func(ctx context.Context, ownerID string) ([]Todo, error)
	listIncompleteByOwnerFn func(ctx context.Context, ownerID string) ([]Todo, error)
	updateFn                func(ctx context.Context, todo *Todo) error
	deleteFn                func(ctx context.Context, id, ownerID string) error
}

func (m *mockTodoRepo) Create(ctx context.Context, todo *Todo) error {
	if m.createFn != nil {
		return m.createFn(ctx, todo)
	}
	return nil
}

func (m *mockTodoRepo) FindByOwner(ctx context.Context, id, ownerID string) (*Todo, error) {
	if m.findByOwnerFn != nil {
		return m.findByOwnerFn(ctx, id, ownerID)
	}
	return nil, apperror.NewNotFound("task not found")
}

func (m *mockTodoRepo) ListByOwner(ctx context.Context, ownerID string) ([]Todo, error) {
	if m.listByOwnerFn != nil {
		return m.listByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockTodoRepo) ListIncompleteByOwner(ctx context.Context, ownerID string) ([]Todo, error) {
	if m.listIncompleteByOwnerFn != nil {
		return m.listIncompleteByOwnerFn(ctx, ownerID)
	}
	return nil, nil
}

func (m *mockTodoRepo) Update(ctx context.Context, todo *Todo) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, todo)
	}
	return nil
}

func (m *mockTodoRepo) Delete(ctx context.Context, id, ownerID string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id, ownerID)
	}
	return nil
}

// assertAppError checks that err is an *apperror.AppError with the expected code.
func assertAppError(t *testing.T, err error, expectedCode int) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %d, got nil", expectedCode)
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	if appErr.Code != expectedCode {
		t.Errorf("expected status %d, got %d (message: %s)", expectedCode, appErr.Code, appErr.Message)
	}
}

// --- Create Tests ---

func TestCreate_Success(t *testing.T) {
	var created *Todo
	repo := &mockTodoRepo{
		createFn: func(ctx context.Context, todo *Todo) error {
			created = todo
			return nil
		},
		findByOwnerFn: func(ctx context.Context, id, ownerID string) (*Todo, error) {
			return &Todo{
				ID:        id,
				Title:     created.Title,
				UserID:    ownerID,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}, nil
		},
	}

	svc := NewTodoService(repo)
	todo, err := svc.Create(context.Background(), "owner-1", "  Buy milk  ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("expected repo.Create to be called")
	}
	if created.Title != "Buy milk" {
		t.Errorf("expected trimmed title, got %q", created.Title)
	}
	if created.UserID != "owner-1" {
		t.Errorf("expected owner-1, got %s", created.UserID)
	}
	if created.Completed {
		t.Error("expected new todo to start incomplete")
	}
	if created.ID == "" {
		t.Error("expected generated ID")
	}
	if todo == nil || todo.ID != created.ID {
		t.Errorf("expected re-read todo %s, got %+v", created.ID, todo)
	}
}

func TestCreate_EmptyTitle(t *testing.T) {
	svc := NewTodoService(&mockTodoRepo{})

	_, err := svc.Create(context.Background(), "owner-1", "   ")
	assertAppError(t, err, 400)
}

func TestCreate_TitleTooLong(t *testing.T) {
	svc := NewTodoService(&mockTodoRepo{})

	_, err := svc.Create(context.Background(), "owner-1", strings.Repeat("x", maxTitleLength+1))
	assertAppError(t, err, 400)
}

func TestCreate_RepoError(t *testing.T) {
	repo := &mockTodoRepo{
		createFn: func(ctx context.Context, todo *Todo) error {
			return errors.New("db write error")
		},
	}

	svc := NewTodoService(repo)
	_, err := svc.Create(context.Background(), "owner-1", "Buy milk")
	assertAppError(t, err, 500)
}

// --- List Tests ---

func TestList_ScopedToOwner(t *testing.T) {
	var capturedOwner string
	repo := &mockTodoRepo{
		listByOwnerFn: func(ctx context.Context, ownerID string) ([]Todo, error) {
			capturedOwner = ownerID
			return []Todo{{ID: "t1", Title: "a"}, {ID: "t2", Title: "b"}}, nil
		},
	}

	svc := NewTodoService(repo)
	todos, err := svc.List(context.Background(), "owner-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if capturedOwner != "owner-1" {
		t.Errorf("expected owner-1, got %s", capturedOwner)
	}
	if len(todos) != 2 {
		t.Errorf("expected 2 todos, got %d", len(todos))
	}
}

// --- Update Tests ---

func existingTodo() *Todo {
	return &Todo{
		ID:        "todo-1",
		Title:     "Original title",
		Completed: false,
		UserID:    "owner-1",
	}
}

func TestUpdate_CompletedOnlyKeepsTitle(t *testing.T) {
	var saved *Todo
	repo := &mockTodoRepo{
		findByOwnerFn: func(ctx context.Context, id, ownerID string) (*Todo, error) {
			if saved != nil {
				return saved, nil
			}
			return existingTodo(), nil
		},
		updateFn: func(ctx context.Context, todo *Todo) error {
			saved = todo
			return nil
		},
	}

	completed := true
	svc := NewTodoService(repo)
	todo, err := svc.Update(context.Background(), "owner-1", UpdateTodoRequest{
		ID:        "todo-1",
		Completed: &completed,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !todo.Completed {
		t.Error("expected completed to be set")
	}
	if todo.Title != "Original title" {
		t.Errorf("expected title untouched, got %q", todo.Title)
	}
}

func TestUpdate_TitleOnlyKeepsCompleted(t *testing.T) {
	start := existingTodo()
	start.Completed = true

	var saved *Todo
	repo := &mockTodoRepo{
		findByOwnerFn: func(ctx context.Context, id, ownerID string) (*Todo, error) {
			if saved != nil {
				return saved, nil
			}
			return start, nil
		},
		updateFn: func(ctx context.Context, todo *Todo) error {
			saved = todo
			return nil
		},
	}

	title := "New title"
	svc := NewTodoService(repo)
	todo, err := svc.Update(context.Background(), "owner-1", UpdateTodoRequest{
		ID:    "todo-1",
		Title: &title,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if todo.Title != "New title" {
		t.Errorf("expected new title, got %q", todo.Title)
	}
	if !todo.Completed {
		t.Error("expected completed untouched")
	}
}

func TestUpdate_EmptyTitleRejected(t *testing.T) {
	repo := &mockTodoRepo{
		findByOwnerFn: func(ctx context.Context, id, ownerID string) (*Todo, error) {
			return existingTodo(), nil
		},
	}

	title := "   "
	svc := NewTodoService(repo)
	_, err := svc.Update(context.Background(), "owner-1", UpdateTodoRequest{
		ID:    "todo-1",
		Title: &title,
	})
	assertAppError(t, err, 400)
}

func TestUpdate_OtherOwnersTodoIsNotFound(t *testing.T) {
	repo := &mockTodoRepo{
		findByOwnerFn: func(ctx context.Context, id, ownerID string) (*Todo, error) {
			// Owner-filtered query: someone else's record never comes back.
			return nil, apperror.NewNotFound("task not found")
		},
	}

	completed := true
	svc := NewTodoService(repo)
	_, err := svc.Update(context.Background(), "intruder", UpdateTodoRequest{
		ID:        "todo-1",
		Completed: &completed,
	})
	assertAppError(t, err, 404)
}

// --- Delete Tests ---

func TestDelete_ReturnsSnapshot(t *testing.T) {
	var deletedID, deletedOwner string
	repo := &mockTodoRepo{
		findByOwnerFn: func(ctx context.Context, id, ownerID string) (*Todo, error) {
			return existingTodo(), nil
		},
		deleteFn: func(ctx context.Context, id, ownerID string) error {
			deletedID, deletedOwner = id, ownerID
			return nil
		},
	}

	svc := NewTodoService(repo)
	todo, err := svc.Delete(context.Background(), "owner-1", "todo-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if deletedID != "todo-1" || deletedOwner != "owner-1" {
		t.Errorf("expected delete of (todo-1, owner-1), got (%s, %s)", deletedID, deletedOwner)
	}
	if todo == nil || todo.Title != "Original title" {
		t.Errorf("expected deleted record snapshot, got %+v", todo)
	}
}

func TestDelete_OtherOwnersTodoIsNotFound(t *testing.T) {
	repo := &mockTodoRepo{
		findByOwnerFn: func(ctx context.Context, id, ownerID string) (*Todo, error) {
			return nil, apperror.NewNotFound("task not found")
		},
	}

	svc := NewTodoService(repo)
	_, err := svc.Delete(context.Background(), "intruder", "todo-1")
	assertAppError(t, err, 404)
}

func TestDelete_RepoError(t *testing.T) {
	repo := &mockTodoRepo{
		findByOwnerFn: func(ctx context.Context, id, ownerID string) (*Todo, error) {
			return existingTodo(), nil
		},
		deleteFn: func(ctx context.Context, id, ownerID string) error {
			return errors.New("db write error")
		},
	}

	svc := NewTodoService(repo)
	_, err := svc.Delete(context.Background(), "owner-1", "todo-1")
	assertAppError(t, err, 500)
}
