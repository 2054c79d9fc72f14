package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Het6518/Fleetflow/internal/auth"
	"github.com/Het6518/Fleetflow/internal/domain"
	"github.com/Het6518/Fleetflow/internal/repo"
)

// bcryptCost is deliberately above the library default; registration is
// rare enough that the extra hashing time does not matter.
const bcryptCost = 12

// AuthService implements user registration and login. It is the only code
// that touches password hashes.
type AuthService struct {
	users  repo.UserRepo
	tokens *auth.TokenService
}

// NewAuthService constructs an AuthService backed by the provided UserRepo
// and token signer.
func NewAuthService(users repo.UserRepo, tokens *auth.TokenService) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// RegisterInput carries the fields accepted at registration.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     domain.Role // empty defaults to DISPATCHER
}

// LoginResult is a successful login: the signed token and the user snapshot.
type LoginResult struct {
	Token string      `json:"token"`
	User  domain.User `json:"user"`
}

// Register validates the input, hashes the password, and persists the user.
// A duplicate email surfaces as domain.ErrConflict.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	if err := validateRegister(in); err != nil {
		return domain.User{}, err
	}
	role := in.Role
	if role == "" {
		role = domain.RoleDispatcher
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: hash: %w", err)
	}

	user, err := s.users.Create(ctx, domain.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Role:         role,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}

	user.PasswordHash = ""
	return user, nil
}

// Login checks the credentials and returns a signed role-bearing token.
// Unknown email and wrong password are indistinguishable to the caller:
// both surface as domain.ErrUnauthorized.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return LoginResult{}, fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
		}
		return LoginResult{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return LoginResult{}, fmt.Errorf("%w: invalid email or password", domain.ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return LoginResult{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}

	user.PasswordHash = ""
	return LoginResult{Token: token, User: user}, nil
}

// validateRegister enforces registration bounds.
func validateRegister(in RegisterInput) error {
	if len(strings.TrimSpace(in.Name)) < 2 {
		return fmt.Errorf("%w: name must be at least 2 characters", domain.ErrValidation)
	}
	if !strings.Contains(in.Email, "@") {
		return fmt.Errorf("%w: invalid email address", domain.ErrValidation)
	}
	if len(in.Password) < 6 {
		return fmt.Errorf("%w: password must be at least 6 characters", domain.ErrValidation)
	}
	if in.Role != "" && !domain.ValidRole(in.Role) {
		return fmt.Errorf("%w: unknown role %q", domain.ErrValidation, in.Role)
	}
	return nil
}
