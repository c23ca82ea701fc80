// Package envelope defines the uniform JSON response wrapper used by every
// endpoint: {statusCode, data, message, success}. Success is derived from
// the status code, never set by hand.
package envelope

import (
	"github.com/labstack/echo/v4"
)

// Envelope is the wire format for all API responses, success and failure.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Data       any    `json:"data"`
	Message    string `json:"message"`
	Success    bool   `json:"success"`

	// Detail carries internal error text in development mode only.
	// Omitted entirely in production responses.
	Detail string `json:"detail,omitempty"`
}

// New builds an envelope for the given status code, data, and message.
func New(statusCode int, data any, message string) Envelope {
	return Envelope{
		StatusCode: statusCode,
		Data:       data,
		Message:    message,
		Success:    statusCode < 400,
	}
}

// JSON writes an envelope response with the given status code.
func JSON(c echo.Context, statusCode int, data any, message string) error {
	return c.JSON(statusCode, New(statusCode, data, message))
}
