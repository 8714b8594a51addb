package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/judging-system/models"
	"github.com/Dosada05/judging-system/repositories"
	"golang.org/x/crypto/bcrypt"
)

// DefaultAdminUsername is the account created on first start.
const DefaultAdminUsername = "admin"

type AuthService interface {
	Login(ctx context.Context, input LoginInput) (*models.User, error)
	// EnsureDefaultAdmin creates the admin account when no admin exists yet.
	// It reports whether an account was created.
	EnsureDefaultAdmin(ctx context.Context, password string) (bool, error)
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type authService struct {
	userRepo repositories.UserRepository
}

func NewAuthService(userRepo repositories.UserRepository) AuthService {
	return &authService{
		userRepo: userRepo,
	}
}

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

func (s *authService) Login(ctx context.Context, input LoginInput) (*models.User, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, nil, input.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user by username: %w", err)
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, ErrAuthInvalidCredentials
		}
		return nil, fmt.Errorf("failed to compare password hash: %w", err)
	}

	user.PasswordHash = ""

	return user, nil
}

func (s *authService) EnsureDefaultAdmin(ctx context.Context, password string) (bool, error) {
	count, err := s.userRepo.CountByRole(ctx, nil, models.RoleAdmin)
	if err != nil {
		return false, fmt.Errorf("failed to count admins: %w", err)
	}
	if count > 0 {
		return false, nil
	}
	if password == "" {
		return false, ErrPasswordRequired
	}

	hash, err := hashPassword(password)
	if err != nil {
		return false, err
	}
	admin := &models.User{
		Username:     DefaultAdminUsername,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := s.userRepo.Create(ctx, nil, admin); err != nil {
		if errors.Is(err, repositories.ErrUserUsernameConflict) {
			return false, ErrUsernameConflict
		}
		return false, fmt.Errorf("failed to create default admin: %w", err)
	}
	return true, nil
}
