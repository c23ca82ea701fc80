package auth

import (
	"github.com/labstack/echo/v4"
)

// contextKeyUserID stores the verified user identifier in the Echo context.
// Other plugins read it via GetUserID.
const contextKeyUserID = "auth_user_id"

// RequireAuth returns middleware that verifies the session cookie and
// injects the owner identifier into the request context. Every owner-scoped
// route runs behind it. Verification failures surface as 401 envelopes via
// the app error handler.
func RequireAuth(service AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := service.VerifyToken(getSessionToken(c))
			if err != nil {
				return err
			}

			c.Set(contextKeyUserID, userID)

			return next(c)
		}
	}
}

// GetUserID retrieves the authenticated user's ID from the Echo context.
// Returns empty string if the request is not authenticated (middleware not
// applied).
func GetUserID(c echo.Context) string {
	id, ok := c.Get(contextKeyUserID).(string)
	if !ok {
		return ""
	}
	return id
}
