package summarize

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tasknest/tasknest/internal/apperror"
	"github.com/tasknest/tasknest/internal/envelope"
	"github.com/tasknest/tasknest/internal/plugins/auth"
)

// Handler handles HTTP requests for summarization.
type Handler struct {
	service SummaryService
}

// NewHandler creates a new summarize handler with the given service.
func NewHandler(service SummaryService) *Handler {
	return &Handler{service: service}
}

// Summarize generates and delivers a summary of the owner's outstanding
// todos (POST /todo/summarize).
func (h *Handler) Summarize(c echo.Context) error {
	result, err := h.service.Summarize(c.Request().Context(), auth.GetUserID(c))
	if err != nil {
		// Delivery failures still carry the generated text; render the
		// upstream error envelope with the text attached so the caller
		// keeps what was produced.
		if result != nil {
			return envelope.JSON(c, apperror.SafeCode(err), result, apperror.SafeMessage(err))
		}
		return err
	}

	return envelope.JSON(c, http.StatusOK, result, "summary sent to slack")
}
