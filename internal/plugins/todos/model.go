// Package todos implements owner-scoped todo records for Tasknest. Every
// operation takes the authenticated owner's identifier and filters by it,
// so a record belonging to someone else is indistinguishable from one that
// does not exist.
//
// Updates are last-writer-wins: two concurrent edits to the same todo race
// and the later write sticks. There is no version counter.
package todos

import "time"

// Todo represents a single task owned by exactly one user. The owner
// reference is set at creation and never changes.
type Todo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	UserID    string    `json:"userId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// --- Request DTOs ---

// CreateTodoRequest holds the JSON body of POST /todo/todos.
type CreateTodoRequest struct {
	Title string `json:"title"`
}

// UpdateTodoRequest holds the JSON body of PUT /todo/todo. Title and
// Completed are pointers so the handler can distinguish "absent" from
// "zero value" -- absent fields are left untouched.
type UpdateTodoRequest struct {
	ID        string  `json:"id"`
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}
