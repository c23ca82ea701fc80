package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestSafeHelpers_DirectAppError(t *testing.T) {
	err := NewNotFound("task not found")

	if got := SafeCode(err); got != http.StatusNotFound {
		t.Errorf("expected 404, got %d", got)
	}
	if got := SafeMessage(err); got != "task not found" {
		t.Errorf("expected safe message, got %q", got)
	}
}

func TestSafeHelpers_WrappedAppError(t *testing.T) {
	// A wrapped AppError must still resolve to its code and message, not
	// degrade to a generic 500.
	err := fmt.Errorf("finding todo: %w", NewNotFound("task not found"))

	if got := SafeCode(err); got != http.StatusNotFound {
		t.Errorf("expected 404 through the wrap, got %d", got)
	}
	if got := SafeMessage(err); got != "task not found" {
		t.Errorf("expected safe message through the wrap, got %q", got)
	}
}

func TestSafeHelpers_ForeignError(t *testing.T) {
	err := errors.New("dial tcp: connection refused")

	if got := SafeCode(err); got != http.StatusInternalServerError {
		t.Errorf("expected 500 for non-AppError, got %d", got)
	}
	if got := SafeMessage(err); got == err.Error() {
		t.Error("raw error text must not be exposed as the safe message")
	}
}
