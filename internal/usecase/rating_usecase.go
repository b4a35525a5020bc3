package usecase

import (
	"context"

	"github.com/google/uuid"

	"mediarating/internal/domain/entity"
)

// CreateRatingInput defines the data required to submit a rating.
// Submission is open: the rated user is named in the body, not derived
// from a bearer credential.
type CreateRatingInput struct {
	UserGuid  uuid.UUID
	MediaGuid uuid.UUID
	Stars     int
	Comment   string
}

// UpdateRatingInput carries the mutable rating fields.
type UpdateRatingInput struct {
	Stars     int
	Comment   *string
	Confirmed *bool
}

// RatingUsecase defines the interface for rating-related business operations.
type RatingUsecase interface {
	Create(ctx context.Context, input CreateRatingInput) (*entity.Rating, error)
	ListForMedia(ctx context.Context, mediaGuid uuid.UUID) ([]*entity.Rating, error)
	ListForUser(ctx context.Context, userGuid uuid.UUID) ([]*entity.Rating, error)
	Update(ctx context.Context, requester *entity.User, guid uuid.UUID, input UpdateRatingInput) (*entity.Rating, error)
	Delete(ctx context.Context, requester *entity.User, guid uuid.UUID) error
	DeleteForPair(ctx context.Context, requester *entity.User, userGuid, mediaGuid uuid.UUID) error
}
