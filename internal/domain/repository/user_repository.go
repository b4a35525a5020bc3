// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"mediarating/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is a domain-specific error returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// ErrUsernameTaken is returned by Create when the username is already
// registered (compared case-insensitively).
var ErrUsernameTaken = errors.New("username already taken")

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByGuid retrieves a single user by their external identifier.
	FindByGuid(ctx context.Context, guid uuid.UUID) (*entity.User, error)

	// FindByUsername retrieves a single user by username, matched
	// case-insensitively.
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// List retrieves all users ordered by their storage id.
	List(ctx context.Context) ([]*entity.User, error)

	// Create persists a new user. The username-uniqueness check and the
	// insert are atomic; a duplicate yields ErrUsernameTaken.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// Users are never deleted in this system, so there is no Delete.
}
