package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/ushki/dndsheet/internal/storage/postgres"
)

// AuthStore defines the user persistence operations required by AuthService.
type AuthStore interface {
	Create(ctx context.Context, username, email, password string) (postgres.User, error)
	Authenticate(ctx context.Context, username, password string) (postgres.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

const minPasswordLength = 8

// AuthService handles registration and login. Passwords are verified against
// bcrypt hashes by the store; on success the token provider issues a JWT
// pair whose subject is the username.
type AuthService struct {
	users  AuthStore
	tokens *TokenProvider
	logger *zap.Logger
}

func NewAuthService(users AuthStore, tokens *TokenProvider, logger *zap.Logger) *AuthService {
	return &AuthService{users: users, tokens: tokens, logger: logger}
}

// RegisterInput carries a registration request.
type RegisterInput struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate checks the registration fields.
func (in RegisterInput) Validate() error {
	if strings.TrimSpace(in.Username) == "" {
		return errors.New("username must not be empty")
	}
	if !strings.Contains(in.Email, "@") {
		return fmt.Errorf("invalid email %q", in.Email)
	}
	if len(in.Password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}

// Register creates a new user account.
//
// Postcondition: Returns the created user, Validation on bad input, or
// Duplicate when the username or email is already taken.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (postgres.User, error) {
	if err := in.Validate(); err != nil {
		return postgres.User{}, invalid(err)
	}

	taken, err := s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return postgres.User{}, fmt.Errorf("checking username: %w", err)
	}
	if taken {
		return postgres.User{}, duplicate("user", in.Username)
	}

	taken, err = s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return postgres.User{}, fmt.Errorf("checking email: %w", err)
	}
	if taken {
		return postgres.User{}, duplicate("user", in.Email)
	}

	user, err := s.users.Create(ctx, in.Username, in.Email, in.Password)
	if err != nil {
		// Concurrent registrations can still trip the unique constraint.
		if errors.Is(err, postgres.ErrUserExists) {
			return postgres.User{}, duplicate("user", in.Username)
		}
		return postgres.User{}, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user registered", zap.String("username", user.Username), zap.Int64("id", user.ID))
	return user, nil
}

// Login verifies credentials and issues a token pair.
//
// Postcondition: Returns Unauthorized on a bad username or password; the
// two cases are not distinguished.
func (s *AuthService) Login(ctx context.Context, username, password string) (TokenPair, error) {
	user, err := s.users.Authenticate(ctx, username, password)
	if err != nil {
		if errors.Is(err, postgres.ErrInvalidCredentials) || errors.Is(err, postgres.ErrUserNotFound) {
			return TokenPair{}, fmt.Errorf("%w: bad credentials", ErrUnauthorized)
		}
		return TokenPair{}, fmt.Errorf("authenticating: %w", err)
	}
	if !user.Enabled {
		return TokenPair{}, fmt.Errorf("%w: account disabled", ErrUnauthorized)
	}

	pair, err := s.tokens.Issue(user.Username)
	if err != nil {
		return TokenPair{}, fmt.Errorf("issuing tokens: %w", err)
	}

	s.logger.Info("user logged in", zap.String("username", user.Username))
	return pair, nil
}

// Refresh validates a refresh token and issues a fresh pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	username, err := s.tokens.Parse(refreshToken)
	if err != nil {
		return TokenPair{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return s.tokens.Issue(username)
}
