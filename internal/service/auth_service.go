package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Naman-Bagoria17/shortify/internal/apperr"
	"github.com/Naman-Bagoria17/shortify/internal/auth"
	"github.com/Naman-Bagoria17/shortify/internal/model"
	"github.com/Naman-Bagoria17/shortify/internal/storage"
	"github.com/google/uuid"
)

// AuthService implements registration, login and logout on top of the user
// store and the JWT service.
type AuthService struct {
	users storage.UserStore
	jwt   *auth.JWTService
}

func NewAuthService(users storage.UserStore, jwt *auth.JWTService) *AuthService {
	return &AuthService{
		users: users,
		jwt:   jwt,
	}
}

// Register creates a new account and issues a session token. The password
// is bcrypt-hashed before it reaches the store.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (string, *model.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return "", nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrEmailExists) {
			return "", nil, apperr.Conflict("user already exists")
		}
		return "", nil, fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("error generating token: %w", err)
	}

	return token, user, nil
}

// Login verifies credentials and issues a session token. An unknown email
// and a wrong password return the identical error so the response never
// reveals which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", nil, apperr.Unauthorized("invalid credentials")
		}
		return "", nil, fmt.Errorf("error fetching user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, apperr.Unauthorized("invalid credentials")
	}

	token, err := s.jwt.GenerateToken(user.ID)
	if err != nil {
		return "", nil, fmt.Errorf("error generating token: %w", err)
	}

	return token, user, nil
}

// Logout re-verifies the password before the handler clears the session
// cookie. The token is stateless and is not revoked server-side.
func (s *AuthService) Logout(ctx context.Context, email, password string) error {
	if password == "" {
		return apperr.BadRequest("password required")
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NotFound("user not found")
		}
		return fmt.Errorf("error fetching user: %w", err)
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return apperr.Unauthorized("incorrect password")
	}

	return nil
}
