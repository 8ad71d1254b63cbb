package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	apperrors "github.com/horizonstores/backend/common/errors"
	"github.com/horizonstores/backend/common/logger"
	"github.com/horizonstores/backend/models"
	"github.com/horizonstores/backend/repository"
)

// RegisterRequest carries the caller-supplied fields of a new account.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Mobile   string `json:"mobile" binding:"required"`
	Address  string `json:"address" binding:"required"`
	Password string `json:"password" binding:"required,min=6"`
}

// UserService manages accounts and the seeded administrator.
type UserService struct {
	repo repository.UserRepo
}

func NewUserService(repo repository.UserRepo) *UserService {
	return &UserService{repo: repo}
}

// Register creates a regular account. The administrator flag is always forced
// off; the only admin is the seeded one. Returns a conflict error when the
// email is already registered.
func (s *UserService) Register(ctx context.Context, req RegisterRequest) (*models.User, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return nil, apperrors.Validation("name, email and password are required", nil)
	}

	user := &models.User{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Mobile:    req.Mobile,
		Address:   req.Address,
		Password:  req.Password,
		IsAdmin:   false,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetByEmail returns the user or (nil, nil) when absent. Lookup is exact and
// case-sensitive, matching how emails are stored.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.repo.FindByEmail(ctx, email)
}

// GetByID returns the user or (nil, nil) when absent.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.FindByID(ctx, id)
}

// Authenticate checks credentials by plain equality, matching the stored-
// verbatim credential model this storefront has always had. This is NOT a
// secure scheme; any production use must hash credentials instead.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.Password != password {
		return nil, nil
	}
	return user, nil
}

// EnsureAdmin guarantees the well-known administrator account exists. Safe to
// run on every startup; a lost creation race against another booting process
// is treated as success.
func (s *UserService) EnsureAdmin(ctx context.Context, email, password string) error {
	existing, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	admin := &models.User{
		ID:        uuid.NewString(),
		Name:      "Admin",
		Email:     email,
		Mobile:    "1234567890",
		Address:   "Horizon Stores HQ",
		Password:  password,
		IsAdmin:   true,
		CreatedAt: time.Now().UTC(),
	}
	err = s.repo.Create(ctx, admin)
	if err != nil && errors.Is(err, apperrors.ErrConflict) {
		return nil
	}
	if err == nil {
		logger.Log.Info("Seeded administrator account", zap.String("email", email))
	}
	return err
}
