package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ireporter/ireporter/internal/domain"
	"github.com/ireporter/ireporter/internal/ports"
)

// ErrInvalidCredentials is returned on login when the email is unknown or the
// password does not match. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid email or password")

// PasswordHasher hashes and verifies account passwords
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// TokenIssuer signs access tokens for an actor
type TokenIssuer interface {
	GenerateAccessToken(actor domain.Actor) (string, error)
}

// SignUpRequest represents an account registration request
type SignUpRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the signed token and the account it belongs to
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	ExpiresIn   int            `json:"expires_in"`
	User        domain.Profile `json:"user"`
}

// AuthUseCase handles account registration and login
type AuthUseCase struct {
	userRepo  ports.UserRepository
	passwords PasswordHasher
	tokens    TokenIssuer
	tokenTTL  time.Duration
}

// NewAuthUseCase creates a new auth use case
func NewAuthUseCase(userRepo ports.UserRepository, passwords PasswordHasher, tokens TokenIssuer, tokenTTL time.Duration) *AuthUseCase {
	return &AuthUseCase{
		userRepo:  userRepo,
		passwords: passwords,
		tokens:    tokens,
		tokenTTL:  tokenTTL,
	}
}

// SignUp registers a new account and returns a signed token for it
func (uc *AuthUseCase) SignUp(ctx context.Context, req SignUpRequest) (*AuthResponse, error) {
	if len(req.Password) < 8 {
		return nil, domain.NewValidationError("password", "must be at least 8 characters")
	}

	hashed, err := uc.passwords.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := domain.NewUser(req.Username, req.Email, hashed)
	if err != nil {
		return nil, err
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return uc.respond(user)
}

// Login authenticates an account by email and password
func (uc *AuthUseCase) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := uc.passwords.Verify(req.Password, user.Password)
	if err != nil || !ok {
		return nil, ErrInvalidCredentials
	}

	return uc.respond(user)
}

func (uc *AuthUseCase) respond(user *domain.User) (*AuthResponse, error) {
	token, err := uc.tokens.GenerateAccessToken(domain.Actor{ID: user.ID, Role: user.Role})
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	return &AuthResponse{
		AccessToken: token,
		ExpiresIn:   int(uc.tokenTTL.Seconds()),
		User:        user.Profile(),
	}, nil
}
