package auth

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tasknest/tasknest/internal/binding"
	"github.com/tasknest/tasknest/internal/envelope"
)

// sessionCookieName is the HTTP cookie used to store the session token.
const sessionCookieName = "token"

// Handler handles HTTP requests for authentication (signup, signin, signout,
// me). Handlers are thin: they bind the request, call the service, and render
// the envelope. No business logic lives here.
type Handler struct {
	service AuthService

	// cookieMaxAge mirrors the token TTL so the cookie and the token
	// expire together.
	cookieMaxAge int

	// secureCookies forces the Secure flag (production behind TLS).
	secureCookies bool
}

// NewHandler creates a new auth handler with the given service and cookie
// settings.
func NewHandler(service AuthService, cookieMaxAge int, secureCookies bool) *Handler {
	return &Handler{
		service:       service,
		cookieMaxAge:  cookieMaxAge,
		secureCookies: secureCookies,
	}
}

// Signup creates a new account (POST /auth/signup).
func (h *Handler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := binding.Strict(c, &req); err != nil {
		return err
	}

	user, err := h.service.Register(c.Request().Context(), RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return envelope.JSON(c, http.StatusCreated, user, "user created successfully")
}

// Signin authenticates and sets the session cookie (POST /auth/signin).
func (h *Handler) Signin(c echo.Context) error {
	var req SigninRequest
	if err := binding.Strict(c, &req); err != nil {
		return err
	}

	user, token, err := h.service.Login(c.Request().Context(), LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	h.setSessionCookie(c, token)

	return envelope.JSON(c, http.StatusOK, user, "user logged in successfully")
}

// Signout clears the session cookie (GET /auth/signout). Tokens are
// stateless, so there is no server-side session to destroy.
func (h *Handler) Signout(c echo.Context) error {
	h.clearSessionCookie(c)
	return envelope.JSON(c, http.StatusOK, nil, "user logged out successfully")
}

// Me returns the authenticated user's account (GET /auth/me).
func (h *Handler) Me(c echo.Context) error {
	user, err := h.service.CurrentUser(c.Request().Context(), GetUserID(c))
	if err != nil {
		return err
	}
	return envelope.JSON(c, http.StatusOK, user, "user fetched successfully")
}

// --- Cookie helpers ---

// getSessionToken reads the session token from the cookie.
func getSessionToken(c echo.Context) string {
	cookie, err := c.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}
	return cookie.Value
}

// setSessionCookie sets the session cookie on the response. The cookie is
// HttpOnly (JS can't read it) and SameSite=None because the browser client
// lives on a different origin.
func (h *Handler) setSessionCookie(c echo.Context, token string) {
	req := c.Request()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies || req.TLS != nil || req.Header.Get("X-Forwarded-Proto") == "https",
		SameSite: http.SameSiteNoneMode,
		MaxAge:   h.cookieMaxAge,
	})
}

// clearSessionCookie removes the session cookie. A negative MaxAge
// serializes as Max-Age=0, which deletes the cookie immediately.
func (h *Handler) clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteNoneMode,
		MaxAge:   -1,
	})
}
