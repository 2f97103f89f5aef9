package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"creature_packs/internal/domain"
	"creature_packs/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUsernameTaken      = errors.New("a user with your chosen name already exists")
	ErrUsernameTooShort   = errors.New("username should be at least 4 characters long")
	ErrUsernameInvalid    = errors.New("username may only contain letters, digits and underscores")
	ErrPasswordTooShort   = errors.New("password should be at least 6 characters long")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

var usernameRe = regexp.MustCompile(`^[\pL\p{Mn}\p{Nd}\p{Pc}]+$`)

// AuthService handles registration and login.
type AuthService struct {
	users *repository.UserRepository
}

func NewAuthService(users *repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// AuthResult carries the issued token and the account it belongs to.
type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

// Register validates the requested credentials, creates the account and
// issues a token.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}
	if len(username) < 4 {
		return nil, ErrUsernameTooShort
	}
	if !usernameRe.MatchString(username) {
		return nil, ErrUsernameInvalid
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if existing != nil {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	token, err := GenerateJWT(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResult{Token: token, User: u}, nil
}

// Login verifies a username/password pair and issues a token. Unknown names
// and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if u == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &AuthResult{Token: token, User: u}, nil
}
