package user

import (
	"context"
	"errors"
	"time"

	userRepo "shopline/database/repository/user"
	"shopline/models"
	"shopline/utils"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = time.Hour

// UserService manages accounts and credentials.
type UserService interface {
	Register(ctx context.Context, name, email, password string) (string, *models.User, error)
	Authenticate(ctx context.Context, email, password string) (string, *models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpdateUser(ctx context.Context, id, name string) (*models.User, error)
	ResetPassword(ctx context.Context, email, newPassword string) error
	UpdateFCMToken(ctx context.Context, id, token string) error
	DeleteUser(ctx context.Context, id string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// Register creates an account and returns a signed token.
func (s *DefaultUserService) Register(ctx context.Context, name, email, password string) (string, *models.User, error) {
	if name == "" || email == "" || password == "" {
		return "", nil, NewValidationError("All fields (email, password, name) are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
	}
	err = s.Repo.Create(ctx, u)
	if errors.Is(err, userRepo.ErrEmailTaken) {
		return "", nil, NewConflictError("User already exists")
	}
	if err != nil {
		return "", nil, err
	}

	token, err := utils.GenerateToken(u.ID, u.Email, tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// Authenticate verifies credentials and returns a signed token.
func (s *DefaultUserService) Authenticate(ctx context.Context, email, password string) (string, *models.User, error) {
	if email == "" || password == "" {
		return "", nil, NewValidationError("Email and password are required")
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return "", nil, err
	}
	if u == nil {
		return "", nil, NewAuthError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, NewAuthError("Invalid email or password")
	}

	token, err := utils.GenerateToken(u.ID, u.Email, tokenTTL)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}

// GetUserByID fetches one account.
func (s *DefaultUserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, NewNotFoundError("User not found")
	}
	return u, nil
}

// UpdateUser renames an account.
func (s *DefaultUserService) UpdateUser(ctx context.Context, id, name string) (*models.User, error) {
	if name == "" {
		return nil, NewValidationError("Name is required")
	}
	u, err := s.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Name = name
	if err := s.Repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ResetPassword replaces the credential for an existing account.
func (s *DefaultUserService) ResetPassword(ctx context.Context, email, newPassword string) error {
	if email == "" || newPassword == "" {
		return NewValidationError("Email and new password are required")
	}

	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if u == nil {
		return NewNotFoundError("User not found")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.Repo.UpdatePassword(ctx, u.ID, string(hash))
}

// UpdateFCMToken stores the push token for the user's device.
func (s *DefaultUserService) UpdateFCMToken(ctx context.Context, id, token string) error {
	if token == "" {
		return NewValidationError("FCM token is required")
	}
	if _, err := s.GetUserByID(ctx, id); err != nil {
		return err
	}
	return s.Repo.UpdateFCMToken(ctx, id, token)
}

// DeleteUser removes an account.
func (s *DefaultUserService) DeleteUser(ctx context.Context, id string) error {
	if _, err := s.GetUserByID(ctx, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}
