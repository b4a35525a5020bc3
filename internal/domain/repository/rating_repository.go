package repository

import (
	"context"
	"errors"

	"mediarating/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrRatingNotFound is a domain-specific error returned when a rating is not found.
var ErrRatingNotFound = errors.New("rating not found")

// ErrRatingExists is returned by Create when the (creator, media) pair
// already has a rating.
var ErrRatingExists = errors.New("rating already exists for this user and media")

// RatingRepository defines the standard operations for rating persistence.
type RatingRepository interface {
	// FindByGuid retrieves a single rating by its external identifier.
	FindByGuid(ctx context.Context, guid uuid.UUID) (*entity.Rating, error)

	// FindForPair retrieves the rating a user gave a media entry, if any.
	FindForPair(ctx context.Context, userGuid, mediaGuid uuid.UUID) (*entity.Rating, error)

	// ListForMedia retrieves all ratings targeting a media entry,
	// ordered most recent first.
	ListForMedia(ctx context.Context, mediaGuid uuid.UUID) ([]*entity.Rating, error)

	// ListForUser retrieves all ratings submitted by a user,
	// ordered most recent first.
	ListForUser(ctx context.Context, userGuid uuid.UUID) ([]*entity.Rating, error)

	// Create persists a new rating. The per-(creator, media) uniqueness
	// check and the insert are atomic; a duplicate pair yields
	// ErrRatingExists regardless of interleaving.
	Create(ctx context.Context, rating *entity.Rating) error

	// Update modifies an existing rating's stars, comment and confirmed
	// flag. Creator and Media are immutable.
	Update(ctx context.Context, rating *entity.Rating) error

	// Delete removes the rating with the given guid.
	Delete(ctx context.Context, guid uuid.UUID) error

	// AggregateForMedia returns the derived average and count over all
	// ratings targeting the media entry. No ratings aggregates to
	// {Average: 0, Count: 0}.
	AggregateForMedia(ctx context.Context, mediaGuid uuid.UUID) (entity.RatingAggregate, error)
}
