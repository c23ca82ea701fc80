package todos

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tasknest/tasknest/internal/apperror"
	"github.com/tasknest/tasknest/internal/binding"
	"github.com/tasknest/tasknest/internal/envelope"
	"github.com/tasknest/tasknest/internal/plugins/auth"
)

// Handler handles HTTP requests for todos. Handlers are thin: bind, call
// the service with the authenticated owner, render the envelope.
type Handler struct {
	service TodoService
}

// NewHandler creates a new todo handler with the given service.
func NewHandler(service TodoService) *Handler {
	return &Handler{service: service}
}

// Create adds a todo for the authenticated owner (POST /todo/todos).
func (h *Handler) Create(c echo.Context) error {
	var req CreateTodoRequest
	if err := binding.Strict(c, &req); err != nil {
		return err
	}

	todo, err := h.service.Create(c.Request().Context(), auth.GetUserID(c), req.Title)
	if err != nil {
		return err
	}

	return envelope.JSON(c, http.StatusCreated, todo, "task created successfully")
}

// List returns all of the owner's todos (GET /todo/todos).
func (h *Handler) List(c echo.Context) error {
	todos, err := h.service.List(c.Request().Context(), auth.GetUserID(c))
	if err != nil {
		return err
	}

	// Serialize the empty list as [] rather than null.
	if todos == nil {
		todos = []Todo{}
	}

	return envelope.JSON(c, http.StatusOK, todos, "tasks fetched successfully")
}

// Update applies a partial update to an owned todo (PUT /todo/todo).
func (h *Handler) Update(c echo.Context) error {
	var req UpdateTodoRequest
	if err := binding.Strict(c, &req); err != nil {
		return err
	}
	if req.ID == "" {
		return apperror.NewBadRequest("please provide the task id")
	}

	todo, err := h.service.Update(c.Request().Context(), auth.GetUserID(c), req)
	if err != nil {
		return err
	}

	return envelope.JSON(c, http.StatusOK, todo, "task updated successfully")
}

// Delete removes an owned todo and returns its snapshot
// (DELETE /todo/todos/:id).
func (h *Handler) Delete(c echo.Context) error {
	todo, err := h.service.Delete(c.Request().Context(), auth.GetUserID(c), c.Param("id"))
	if err != nil {
		return err
	}

	return envelope.JSON(c, http.StatusAccepted, todo, "task deleted successfully")
}
