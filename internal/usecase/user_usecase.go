// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"github.com/google/uuid"

	"mediarating/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new user.
// Guid is optional; a fresh one is generated when absent.
type RegisterInput struct {
	Username string
	Password string
	Guid     *uuid.UUID
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// UpdateUserInput carries a partial patch; nil fields are left untouched.
type UpdateUserInput struct {
	Username *string
	Password *string
}

// --- Output DTOs ---

// LoginOutput returns the issued credential after a successful login.
type LoginOutput struct {
	Token string
	User  *entity.User
}

// UserUsecase defines the interface for user-related business operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type UserUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*entity.User, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	List(ctx context.Context) ([]*entity.User, error)
	Update(ctx context.Context, requester *entity.User, guid uuid.UUID, input UpdateUserInput) (*entity.User, error)
}
