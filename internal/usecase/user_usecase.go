package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/iho/panelledger/internal/domain"
)

// UserUseCase handles user management operations
type UserUseCase struct {
	userRepo UserRepository
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(userRepo UserRepository) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
	}
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	Username string
	IsAdmin  bool
}

// CreateUser creates a new user
func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	username := strings.TrimSpace(input.Username)
	if err := domain.ValidateName(username, domain.MaxUsernameLength); err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:  username,
		IsAdmin:   input.IsAdmin,
		CreatedAt: time.Now().UTC(),
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// GetUser retrieves a user by ID
func (uc *UserUseCase) GetUser(ctx context.Context, id int64) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, id)
}

// ListUsers lists users with pagination
func (uc *UserUseCase) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	limit, offset = domain.ValidatePagination(limit, offset)
	return uc.userRepo.List(ctx, limit, offset)
}
