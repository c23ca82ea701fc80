package todos

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tasknest/tasknest/internal/apperror"
)

// TodoRepository defines the data access contract for todo operations.
// Every read and write is keyed by (id, owner) or owner alone -- there is
// deliberately no way to reach a record without its owner.
type TodoRepository interface {
	Create(ctx context.Context, todo *Todo) error
	FindByOwner(ctx context.Context, id, ownerID string) (*Todo, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Todo, error)
	ListIncompleteByOwner(ctx context.Context, ownerID string) ([]Todo, error)
	Update(ctx context.Context, todo *Todo) error
	Delete(ctx context.Context, id, ownerID string) error
}

// todoRepository is the MariaDB implementation of TodoRepository.
type todoRepository struct {
	db *sql.DB
}

// NewTodoRepository creates a new MariaDB-backed todo repository.
func NewTodoRepository(db *sql.DB) TodoRepository {
	return &todoRepository{db: db}
}

// todoColumns is the SELECT column list for todo queries.
const todoColumns = `id, title, completed, user_id, created_at, updated_at`

// Create inserts a new todo row.
func (r *todoRepository) Create(ctx context.Context, todo *Todo) error {
	query := `INSERT INTO todos (id, title, completed, user_id)
	          VALUES (?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		todo.ID, todo.Title, todo.Completed, todo.UserID,
	)
	if err != nil {
		return fmt.Errorf("inserting todo: %w", err)
	}
	return nil
}

// FindByOwner retrieves a todo by ID, scoped to its owner. A todo owned by
// someone else returns NotFound, never a permission error.
func (r *todoRepository) FindByOwner(ctx context.Context, id, ownerID string) (*Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = ? AND user_id = ?`

	t := &Todo{}
	err := r.db.QueryRowContext(ctx, query, id, ownerID).Scan(
		&t.ID, &t.Title, &t.Completed, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NewNotFound("task not found")
	}
	if err != nil {
		return nil, fmt.Errorf("querying todo: %w", err)
	}
	return t, nil
}

// ListByOwner returns all todos for the owner, oldest first. Creation order
// is a UX nicety, not a contract.
func (r *todoRepository) ListByOwner(ctx context.Context, ownerID string) ([]Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos
	          WHERE user_id = ? ORDER BY created_at`
	return r.scanTodos(ctx, query, ownerID)
}

// ListIncompleteByOwner returns the owner's todos with completed = false.
// Feeds the summarization gateway.
func (r *todoRepository) ListIncompleteByOwner(ctx context.Context, ownerID string) ([]Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos
	          WHERE user_id = ? AND completed = FALSE ORDER BY created_at`
	return r.scanTodos(ctx, query, ownerID)
}

// Update saves title and completed for an owned todo. updated_at uses
// millisecond precision so back-to-back writes still count as changed rows.
func (r *todoRepository) Update(ctx context.Context, todo *Todo) error {
	query := `UPDATE todos
	          SET title = ?, completed = ?, updated_at = NOW(3)
	          WHERE id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query,
		todo.Title, todo.Completed, todo.ID, todo.UserID,
	)
	if err != nil {
		return fmt.Errorf("updating todo: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("task not found")
	}
	return nil
}

// Delete removes an owned todo.
func (r *todoRepository) Delete(ctx context.Context, id, ownerID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM todos WHERE id = ? AND user_id = ?`, id, ownerID)
	if err != nil {
		return fmt.Errorf("deleting todo: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return apperror.NewNotFound("task not found")
	}
	return nil
}

// scanTodos runs a query and scans multiple todo rows.
func (r *todoRepository) scanTodos(ctx context.Context, query string, args ...any) ([]Todo, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying todos: %w", err)
	}
	defer rows.Close()

	var todos []Todo
	for rows.Next() {
		var t Todo
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Completed, &t.UserID, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning todo row: %w", err)
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}
