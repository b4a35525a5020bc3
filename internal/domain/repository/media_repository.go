package repository

import (
	"context"
	"errors"

	"mediarating/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrMediaNotFound is a domain-specific error returned when a media entry is not found.
var ErrMediaNotFound = errors.New("media entry not found")

// MediaRepository defines the standard operations for media entry persistence.
// Implementations always resolve the Creator of returned entries.
type MediaRepository interface {
	// FindByGuid retrieves a single media entry by its external identifier.
	FindByGuid(ctx context.Context, guid uuid.UUID) (*entity.MediaEntry, error)

	// List retrieves all media entries ordered by their storage id.
	List(ctx context.Context) ([]*entity.MediaEntry, error)

	// Create persists a new media entry owned by its Creator.
	Create(ctx context.Context, media *entity.MediaEntry) error

	// Update modifies an existing media entry. The Creator is immutable
	// and never written by Update.
	Update(ctx context.Context, media *entity.MediaEntry) error

	// Delete removes the media entry with the given guid. Ratings that
	// target the entry are removed with it; a missing entry yields
	// ErrMediaNotFound.
	Delete(ctx context.Context, guid uuid.UUID) error
}
