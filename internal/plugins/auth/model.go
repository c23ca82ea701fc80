// Package auth handles user accounts and session tokens for Tasknest. It
// provides signup, signin, signout, and the RequireAuth middleware that
// gates every owner-scoped route.
//
// Session tokens are stateless HS256 JWTs carried in an HTTP-only cookie.
// Nothing is stored server-side per session, so signout only expires the
// cookie -- a stolen token stays valid until its expiry.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User represents a registered Tasknest user. This is the domain model used
// throughout the application. Database scanning and JSON marshaling use this
// struct directly.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Never expose in JSON responses.
	CreatedAt    time.Time `json:"createdAt"`
}

// Claims is the session token payload: the standard registered claims plus
// the authenticated user's identifier.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"uid"`
}

// --- Request DTOs (bound from HTTP requests) ---

// SignupRequest holds the JSON body of POST /auth/signup.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SigninRequest holds the JSON body of POST /auth/signin.
type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// --- Service Input DTOs (passed from handler to service) ---

// RegisterInput is the input for creating a new user.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput is the input for authenticating a user.
type LoginInput struct {
	Email    string
	Password string
}
