// Package binding decodes JSON request bodies with strict field checking.
// Unknown fields are rejected deterministically instead of being silently
// dropped, so client typos surface as 400s rather than half-applied updates.
package binding

import (
	"encoding/json"
	"io"

	"github.com/labstack/echo/v4"

	"github.com/tasknest/tasknest/internal/apperror"
)

// maxBodyBytes caps request bodies. Todo titles and credentials are small;
// anything near this limit is abuse.
const maxBodyBytes = 64 * 1024

// Strict decodes the request body into v, rejecting unknown fields,
// malformed JSON, and trailing garbage with a 400 validation error.
func Strict(c echo.Context, v any) error {
	body := io.LimitReader(c.Request().Body, maxBodyBytes)

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		return apperror.NewBadRequest("invalid request body")
	}

	// A second token means trailing content after the JSON value.
	if dec.More() {
		return apperror.NewBadRequest("invalid request body")
	}

	return nil
}
