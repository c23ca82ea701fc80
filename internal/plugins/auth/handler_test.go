package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/tasknest/tasknest/internal/apperror"
	"github.com/tasknest/tasknest/internal/envelope"
)

// --- In-Memory Repository ---

// memoryUserRepo is a map-backed UserRepository for handler flow tests.
type memoryUserRepo struct {
	byEmail map[string]*User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{byEmail: map[string]*User{}}
}

func (m *memoryUserRepo) Create(ctx context.Context, user *User) error {
	m.byEmail[user.Email] = user
	return nil
}

func (m *memoryUserRepo) FindByID(ctx context.Context, id string) (*User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperror.NewNotFound("user not found")
}

func (m *memoryUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	if u, ok := m.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperror.NewNotFound("user not found")
}

func (m *memoryUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := m.byEmail[email]
	return ok, nil
}

// --- Test Server ---

// newTestServer wires the full auth stack (real service, in-memory repo,
// miniredis-backed rate limiter) onto a fresh Echo instance, with an error
// handler that renders AppErrors as envelopes like the app does.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	repo := newMemoryUserRepo()
	svc := NewAuthService(repo, []byte("test-secret-at-least-32-bytes-long!"), 24*time.Hour)
	h := NewHandler(svc, int((24 * time.Hour).Seconds()), false)

	e := echo.New()
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		code := apperror.SafeCode(err)
		_ = c.JSON(code, envelope.New(code, nil, apperror.SafeMessage(err)))
	}

	RegisterRoutes(e.Group("/api/v1/auth"), h, svc, rdb)
	return e
}

// doJSON performs a JSON request against the test server and decodes the
// envelope response.
func doJSON(t *testing.T, e *echo.Echo, method, path, body string, cookies []*http.Cookie) (*httptest.ResponseRecorder, envelope.Envelope) {
	t.Helper()

	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var env envelope.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decoding envelope from %s %s: %v (body: %s)", method, path, err, rec.Body.String())
	}
	return rec, env
}

// sessionCookie extracts the session cookie from a response, if set.
func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == sessionCookieName {
			return ck
		}
	}
	return nil
}

// --- Flow Tests ---

func TestSignupSigninMeFlow(t *testing.T) {
	e := newTestServer(t)

	// Signup creates the account.
	rec, env := doJSON(t, e, http.MethodPost, "/api/v1/auth/signup",
		`{"name":"Alice","email":"alice@example.com","password":"secure-password-123"}`, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup: expected 201, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	if !env.Success {
		t.Error("signup: expected success envelope")
	}

	// The response must never leak the password hash.
	if strings.Contains(rec.Body.String(), "password") {
		t.Errorf("signup response leaks password material: %s", rec.Body.String())
	}

	// Signin sets the session cookie.
	rec, env = doJSON(t, e, http.MethodPost, "/api/v1/auth/signin",
		`{"email":"alice@example.com","password":"secure-password-123"}`, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("signin: expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}

	ck := sessionCookie(rec)
	if ck == nil {
		t.Fatal("signin: expected session cookie to be set")
	}
	if ck.Value == "" {
		t.Error("signin: expected non-empty session token")
	}
	if !ck.HttpOnly {
		t.Error("signin: session cookie must be HttpOnly")
	}
	if ck.SameSite != http.SameSiteNoneMode {
		t.Errorf("signin: expected SameSite=None, got %v", ck.SameSite)
	}

	// The cookie authenticates /me.
	rec, env = doJSON(t, e, http.MethodGet, "/api/v1/auth/me", "", []*http.Cookie{ck})
	if rec.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d (body: %s)", rec.Code, rec.Body.String())
	}
	user, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("me: expected user object in data, got %T", env.Data)
	}
	if user["email"] != "alice@example.com" {
		t.Errorf("me: expected alice@example.com, got %v", user["email"])
	}
}

func TestMe_WithoutSession(t *testing.T) {
	e := newTestServer(t)

	rec, env := doJSON(t, e, http.MethodGet, "/api/v1/auth/me", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if env.Success {
		t.Error("expected failure envelope")
	}
}

func TestMe_TamperedToken(t *testing.T) {
	e := newTestServer(t)

	rec, _ := doJSON(t, e, http.MethodGet, "/api/v1/auth/me", "", []*http.Cookie{
		{Name: sessionCookieName, Value: "eyJhbGciOiJIUzI1NiJ9.bogus.payload"},
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for tampered token, got %d", rec.Code)
	}
}

func TestSignin_UnknownEmail(t *testing.T) {
	e := newTestServer(t)

	rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/auth/signin",
		`{"email":"nobody@example.com","password":"whatever"}`, nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown email, got %d", rec.Code)
	}
}

func TestSignin_WrongPassword(t *testing.T) {
	e := newTestServer(t)

	doJSON(t, e, http.MethodPost, "/api/v1/auth/signup",
		`{"name":"Alice","email":"alice@example.com","password":"secure-password-123"}`, nil)

	rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/auth/signin",
		`{"email":"alice@example.com","password":"wrong-password"}`, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for wrong password, got %d", rec.Code)
	}

	// Failed signin must not set a cookie.
	if ck := sessionCookie(rec); ck != nil {
		t.Errorf("expected no session cookie on failed signin, got %q", ck.Value)
	}
}

func TestSignup_DuplicateEmail(t *testing.T) {
	e := newTestServer(t)

	body := `{"name":"Alice","email":"alice@example.com","password":"secure-password-123"}`
	doJSON(t, e, http.MethodPost, "/api/v1/auth/signup", body, nil)

	rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/auth/signup", body, nil)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate email, got %d", rec.Code)
	}
}

func TestSignup_UnknownFieldRejected(t *testing.T) {
	e := newTestServer(t)

	rec, _ := doJSON(t, e, http.MethodPost, "/api/v1/auth/signup",
		`{"name":"Alice","email":"alice@example.com","password":"pw","admin":true}`, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown field, got %d", rec.Code)
	}
}

func TestSignout_ClearsCookie(t *testing.T) {
	e := newTestServer(t)

	rec, env := doJSON(t, e, http.MethodGet, "/api/v1/auth/signout", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !env.Success {
		t.Error("expected success envelope")
	}

	ck := sessionCookie(rec)
	if ck == nil {
		t.Fatal("expected clearing cookie to be set")
	}
	if ck.Value != "" {
		t.Errorf("expected empty cookie value, got %q", ck.Value)
	}
	// Max-Age=0 on the wire parses back as MaxAge<0 (delete now).
	if ck.MaxAge >= 0 {
		t.Errorf("expected cookie deletion, got MaxAge=%d", ck.MaxAge)
	}
}
