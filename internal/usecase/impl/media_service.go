package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "mediarating/internal/delivery/context"
	"mediarating/internal/domain/entity"
	domainerrors "mediarating/internal/domain/errors"
	"mediarating/internal/domain/repository"
	"mediarating/internal/usecase"
)

// mediaService implements the MediaUsecase interface.
type mediaService struct {
	txManager  repository.TransactionManager
	mediaRepo  repository.MediaRepository
	ratingRepo repository.RatingRepository
	logger     *slog.Logger
}

// MediaServiceParams holds dependencies for mediaService, injected by Fx.
type MediaServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	MediaRepo  repository.MediaRepository
	RatingRepo repository.RatingRepository
	Logger     *slog.Logger
}

// NewMediaService is the constructor for mediaService.
func NewMediaService(params MediaServiceParams) usecase.MediaUsecase {
	return &mediaService{
		txManager:  params.TxManager,
		mediaRepo:  params.MediaRepo,
		ratingRepo: params.RatingRepo,
		logger:     params.Logger,
	}
}

func (srv *mediaService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *mediaService) List(ctx context.Context) ([]*entity.MediaEntry, error) {
	entries, err := srv.mediaRepo.List(ctx)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list media")
	}

	return entries, nil
}

func (srv *mediaService) GetByGuid(ctx context.Context, guid uuid.UUID) (*entity.MediaEntry, error) {
	entry, err := srv.mediaRepo.FindByGuid(ctx, guid)
	if err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return nil, domainerrors.ErrMediaNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find media")
	}

	return entry, nil
}

// Create catalogues a new entry owned by the requester. A body that names a
// different owner than the authenticated user is rejected.
func (srv *mediaService) Create(ctx context.Context, requester *entity.User, input usecase.CreateMediaInput) (*entity.MediaEntry, error) {
	if requester == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	kind := entity.MediaKind(input.Kind)
	if !kind.IsValid() {
		return nil, domainerrors.ErrInvalidMediaKind
	}
	if strings.TrimSpace(input.Title) == "" {
		return nil, domainerrors.ErrTitleRequired
	}
	if input.UserGuid != nil && *input.UserGuid != requester.Guid {
		return nil, domainerrors.ErrForbidden
	}

	entry := &entity.MediaEntry{
		Kind:           kind,
		Title:          input.Title,
		Description:    input.Description,
		ReleaseYear:    input.ReleaseYear,
		AgeRestriction: input.AgeRestriction,
		Genres:         input.Genres,
		Creator:        requester,
	}

	if err := srv.mediaRepo.Create(ctx, entry); err != nil {
		srv.log(ctx).Error("Failed to create media", slog.String("title", input.Title), slog.Any("error", err))

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create media")
	}

	srv.log(ctx).Info("Media created", slog.String("guid", entry.Guid.String()), slog.String("kind", kind.String()))

	return entry, nil
}

// Update applies a partial patch after the ownership check. The check and
// the write run inside one transaction so a concurrent delete cannot slip
// between them.
func (srv *mediaService) Update(ctx context.Context, requester *entity.User, guid uuid.UUID, input usecase.UpdateMediaInput) (*entity.MediaEntry, error) {
	if requester == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	var updated *entity.MediaEntry
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		mediaRepo := repoFactory.MediaRepo()

		entry, err := mediaRepo.FindByGuid(ctx, guid)
		if err != nil {
			if errors.Is(err, repository.ErrMediaNotFound) {
				return domainerrors.ErrMediaNotFound
			}

			return errors.Wrap(err, "failed to find media")
		}

		if !entry.OwnedBy(requester.Guid) {
			return domainerrors.ErrForbidden
		}

		if input.Kind != nil {
			kind := entity.MediaKind(*input.Kind)
			if !kind.IsValid() {
				return domainerrors.ErrInvalidMediaKind
			}
			entry.Kind = kind
		}
		if input.Title != nil {
			if strings.TrimSpace(*input.Title) == "" {
				return domainerrors.ErrTitleRequired
			}
			entry.Title = *input.Title
		}
		if input.Description != nil {
			entry.Description = *input.Description
		}
		if input.ReleaseYear != nil {
			entry.ReleaseYear = *input.ReleaseYear
		}
		if input.AgeRestriction != nil {
			entry.AgeRestriction = *input.AgeRestriction
		}
		if input.Genres != nil {
			entry.Genres = input.Genres
		}

		if err := mediaRepo.Update(ctx, entry); err != nil {
			return errors.Wrap(err, "failed to update media")
		}

		updated = entry

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Media updated", slog.String("guid", guid.String()))

	return updated, nil
}

// Delete removes an entry and its ratings after the ownership check.
func (srv *mediaService) Delete(ctx context.Context, requester *entity.User, guid uuid.UUID) error {
	if requester == nil {
		return domainerrors.ErrUnauthenticated
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		mediaRepo := repoFactory.MediaRepo()

		entry, err := mediaRepo.FindByGuid(ctx, guid)
		if err != nil {
			if errors.Is(err, repository.ErrMediaNotFound) {
				return domainerrors.ErrMediaNotFound
			}

			return errors.Wrap(err, "failed to find media")
		}

		if !entry.OwnedBy(requester.Guid) {
			return domainerrors.ErrForbidden
		}

		if err := mediaRepo.Delete(ctx, guid); err != nil {
			return errors.Wrap(err, "failed to delete media")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Media deleted", slog.String("guid", guid.String()))

	return nil
}

// AverageRating returns the derived mean and count for an entry.
func (srv *mediaService) AverageRating(ctx context.Context, guid uuid.UUID) (entity.RatingAggregate, error) {
	if _, err := srv.mediaRepo.FindByGuid(ctx, guid); err != nil {
		if errors.Is(err, repository.ErrMediaNotFound) {
			return entity.RatingAggregate{}, domainerrors.ErrMediaNotFound
		}

		return entity.RatingAggregate{}, domainerrors.NewDatabaseExecuteError(err, "failed to find media")
	}

	aggregate, err := srv.ratingRepo.AggregateForMedia(ctx, guid)
	if err != nil {
		return entity.RatingAggregate{}, domainerrors.NewDatabaseExecuteError(err, "failed to aggregate ratings")
	}

	return aggregate, nil
}
