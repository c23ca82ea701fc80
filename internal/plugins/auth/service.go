package auth

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tasknest/tasknest/internal/apperror"
)

// bcryptCost is the fixed hashing cost for stored passwords.
const bcryptCost = 10

// emailPattern requires local@domain with no whitespace and at least one
// dot in the domain part.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AuthService defines the business logic contract for authentication.
// Handlers call these methods -- they never touch the repository directly.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Login(ctx context.Context, input LoginInput) (*User, string, error)
	VerifyToken(token string) (string, error)
	CurrentUser(ctx context.Context, id string) (*User, error)
}

// authService implements AuthService with bcrypt hashing and HS256 session
// tokens.
type authService struct {
	repo     UserRepository
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthService creates a new auth service with the given dependencies.
func NewAuthService(repo UserRepository, secret []byte, tokenTTL time.Duration) AuthService {
	return &authService{
		repo:     repo,
		secret:   secret,
		tokenTTL: tokenTTL,
	}
}

// Register creates a new user account. It validates the input, checks email
// uniqueness, hashes the password with bcrypt, and persists the user. The
// raw password is never stored or logged.
func (s *authService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if name == "" || email == "" || input.Password == "" {
		return nil, apperror.NewBadRequest("name, email and password are required")
	}
	if !emailPattern.MatchString(email) {
		return nil, apperror.NewBadRequest("please provide a valid email")
	}

	// Check if email is already taken before doing expensive hashing.
	exists, err := s.repo.EmailExists(ctx, email)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("checking email: %w", err))
	}
	if exists {
		return nil, apperror.NewConflict("an account with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("hashing password: %w", err))
	}

	user := &User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperror.NewInternal(fmt.Errorf("creating user: %w", err))
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, nil
}

// Login authenticates a user by email and password. On success it mints a
// session token for delivery as a cookie.
//
// An unknown email is a 404 and a wrong password a 401 -- the client
// distinguishes the two, so no anti-enumeration blurring here.
func (s *authService) Login(ctx context.Context, input LoginInput) (*User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if apperror.SafeCode(err) == 404 {
			return nil, "", apperror.NewNotFound("user not found")
		}
		return nil, "", apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", apperror.NewUnauthorized("invalid password")
	}

	token, err := s.mintToken(user.ID)
	if err != nil {
		return nil, "", apperror.NewInternal(fmt.Errorf("minting session token: %w", err))
	}

	slog.Info("user logged in",
		slog.String("user_id", user.ID),
		slog.String("email", user.Email),
	)

	return user, token, nil
}

// VerifyToken parses and validates a session token and returns the embedded
// user identifier. Any failure (missing, malformed, mis-signed, expired) is
// a 401.
func (s *authService) VerifyToken(token string) (string, error) {
	if token == "" {
		return "", apperror.NewUnauthorized("session token missing")
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !parsed.Valid || claims.UserID == "" {
		return "", apperror.NewUnauthorized("session expired or invalid")
	}

	return claims.UserID, nil
}

// CurrentUser resolves a verified user identifier to the stored account.
// Returns 404 if the account no longer exists.
func (s *authService) CurrentUser(ctx context.Context, id string) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if apperror.SafeCode(err) == 404 {
			return nil, apperror.NewNotFound("user not found")
		}
		return nil, apperror.NewInternal(fmt.Errorf("finding user: %w", err))
	}
	return user, nil
}

// mintToken signs an HS256 session token carrying the user ID, issued now
// and expiring after the configured TTL.
func (s *authService) mintToken(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
		},
		UserID: userID,
	})
	return token.SignedString(s.secret)
}
