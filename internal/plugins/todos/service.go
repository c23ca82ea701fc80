package todos

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tasknest/tasknest/internal/apperror"
)

// maxTitleLength caps todo titles at the column width.
const maxTitleLength = 500

// TodoService defines the business logic contract for todos. Every method
// takes the owner identifier produced by a prior session verification.
type TodoService interface {
	Create(ctx context.Context, ownerID, title string) (*Todo, error)
	List(ctx context.Context, ownerID string) ([]Todo, error)
	ListIncomplete(ctx context.Context, ownerID string) ([]Todo, error)
	Update(ctx context.Context, ownerID string, req UpdateTodoRequest) (*Todo, error)
	Delete(ctx context.Context, ownerID, id string) (*Todo, error)
}

// todoService implements TodoService.
type todoService struct {
	repo TodoRepository
}

// NewTodoService creates a new todo service.
func NewTodoService(repo TodoRepository) TodoService {
	return &todoService{repo: repo}
}

// Create validates and persists a new todo with completed = false.
func (s *todoService) Create(ctx context.Context, ownerID, title string) (*Todo, error) {
	title, err := validTitle(title)
	if err != nil {
		return nil, err
	}

	todo := &Todo{
		ID:     uuid.NewString(),
		Title:  title,
		UserID: ownerID,
	}

	if err := s.repo.Create(ctx, todo); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating todo: %w", err))
	}

	// Re-read so the caller sees the database-assigned timestamps.
	return s.findOwned(ctx, todo.ID, ownerID)
}

// List returns all todos owned by ownerID.
func (s *todoService) List(ctx context.Context, ownerID string) ([]Todo, error) {
	todos, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing todos: %w", err))
	}
	return todos, nil
}

// ListIncomplete returns the owner's outstanding todos for summarization.
func (s *todoService) ListIncomplete(ctx context.Context, ownerID string) ([]Todo, error) {
	todos, err := s.repo.ListIncompleteByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("listing incomplete todos: %w", err))
	}
	return todos, nil
}

// Update applies a partial update: only the fields present in the request
// change. A present completed without a title must not clear the title, and
// vice versa.
func (s *todoService) Update(ctx context.Context, ownerID string, req UpdateTodoRequest) (*Todo, error) {
	todo, err := s.findOwned(ctx, req.ID, ownerID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title, err := validTitle(*req.Title)
		if err != nil {
			return nil, err
		}
		todo.Title = title
	}
	if req.Completed != nil {
		todo.Completed = *req.Completed
	}

	if err := s.repo.Update(ctx, todo); err != nil {
		if apperror.SafeCode(err) == 404 {
			return nil, err
		}
		return nil, apperror.NewInternal(fmt.Errorf("updating todo: %w", err))
	}

	return s.findOwned(ctx, todo.ID, ownerID)
}

// Delete removes an owned todo and returns the deleted record's snapshot.
func (s *todoService) Delete(ctx context.Context, ownerID, id string) (*Todo, error) {
	todo, err := s.findOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		if apperror.SafeCode(err) == 404 {
			return nil, err
		}
		return nil, apperror.NewInternal(fmt.Errorf("deleting todo: %w", err))
	}

	return todo, nil
}

// findOwned fetches an owned todo, passing 404s through and wrapping
// infrastructure errors.
func (s *todoService) findOwned(ctx context.Context, id, ownerID string) (*Todo, error) {
	todo, err := s.repo.FindByOwner(ctx, id, ownerID)
	if err != nil {
		if apperror.SafeCode(err) == 404 {
			return nil, err
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding todo: %w", err))
	}
	return todo, nil
}

// validTitle trims the title and rejects empty or oversized values.
func validTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", apperror.NewBadRequest("please provide a title")
	}
	if len(title) > maxTitleLength {
		return "", apperror.NewBadRequest("title must be 500 characters or less")
	}
	return title, nil
}
