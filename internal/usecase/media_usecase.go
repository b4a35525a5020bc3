package usecase

import (
	"context"

	"github.com/google/uuid"

	"mediarating/internal/domain/entity"
)

// CreateMediaInput defines the data required to catalogue a new media entry.
// UserGuid optionally names the intended owner; when present it must match
// the requester.
type CreateMediaInput struct {
	Kind           string
	Title          string
	Description    string
	ReleaseYear    int
	AgeRestriction int
	Genres         []string
	UserGuid       *uuid.UUID
}

// UpdateMediaInput carries a partial patch; nil fields are left untouched.
type UpdateMediaInput struct {
	Kind           *string
	Title          *string
	Description    *string
	ReleaseYear    *int
	AgeRestriction *int
	Genres         []string
}

// MediaUsecase defines the interface for media-related business operations.
type MediaUsecase interface {
	List(ctx context.Context) ([]*entity.MediaEntry, error)
	GetByGuid(ctx context.Context, guid uuid.UUID) (*entity.MediaEntry, error)
	Create(ctx context.Context, requester *entity.User, input CreateMediaInput) (*entity.MediaEntry, error)
	Update(ctx context.Context, requester *entity.User, guid uuid.UUID, input UpdateMediaInput) (*entity.MediaEntry, error)
	Delete(ctx context.Context, requester *entity.User, guid uuid.UUID) error
	AverageRating(ctx context.Context, guid uuid.UUID) (entity.RatingAggregate, error)
}
