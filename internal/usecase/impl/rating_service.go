package impl

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "mediarating/internal/delivery/context"
	"mediarating/internal/domain/entity"
	domainerrors "mediarating/internal/domain/errors"
	"mediarating/internal/domain/repository"
	"mediarating/internal/usecase"
)

// ratingService implements the RatingUsecase interface.
type ratingService struct {
	txManager  repository.TransactionManager
	ratingRepo repository.RatingRepository
	logger     *slog.Logger
}

// RatingServiceParams holds dependencies for ratingService, injected by Fx.
type RatingServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	RatingRepo repository.RatingRepository
	Logger     *slog.Logger
}

// NewRatingService is the constructor for ratingService.
func NewRatingService(params RatingServiceParams) usecase.RatingUsecase {
	return &ratingService{
		txManager:  params.TxManager,
		ratingRepo: params.RatingRepo,
		logger:     params.Logger,
	}
}

func (srv *ratingService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create submits a rating for a (user, media) pair. The pair check, the
// entity resolution and the insert run inside one transaction; the unique
// pair constraint backs the check so a race still yields a conflict, never
// a duplicate.
func (srv *ratingService) Create(ctx context.Context, input usecase.CreateRatingInput) (*entity.Rating, error) {
	if !entity.ValidStars(input.Stars) {
		return nil, domainerrors.ErrInvalidStars
	}

	var created *entity.Rating
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		mediaRepo := repoFactory.MediaRepo()
		ratingRepo := repoFactory.RatingRepo()

		if _, err := ratingRepo.FindForPair(ctx, input.UserGuid, input.MediaGuid); err == nil {
			return domainerrors.ErrRatingExists
		} else if !errors.Is(err, repository.ErrRatingNotFound) {
			return errors.Wrap(err, "failed to check existing rating")
		}

		creator, err := userRepo.FindByGuid(ctx, input.UserGuid)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find rating user")
		}

		media, err := mediaRepo.FindByGuid(ctx, input.MediaGuid)
		if err != nil {
			if errors.Is(err, repository.ErrMediaNotFound) {
				return domainerrors.ErrMediaNotFound
			}

			return errors.Wrap(err, "failed to find rated media")
		}

		rating := &entity.Rating{
			Stars:   input.Stars,
			Comment: input.Comment,
			Creator: creator,
			Media:   media,
		}
		if err := ratingRepo.Create(ctx, rating); err != nil {
			if errors.Is(err, repository.ErrRatingExists) {
				return domainerrors.ErrRatingExists
			}

			return errors.Wrap(err, "failed to create rating")
		}

		created = rating

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Rating created",
		slog.String("guid", created.Guid.String()),
		slog.Int("stars", created.Stars),
	)

	return created, nil
}

func (srv *ratingService) ListForMedia(ctx context.Context, mediaGuid uuid.UUID) ([]*entity.Rating, error) {
	ratings, err := srv.ratingRepo.ListForMedia(ctx, mediaGuid)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list ratings for media")
	}

	return ratings, nil
}

func (srv *ratingService) ListForUser(ctx context.Context, userGuid uuid.UUID) ([]*entity.Rating, error) {
	ratings, err := srv.ratingRepo.ListForUser(ctx, userGuid)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list ratings for user")
	}

	return ratings, nil
}

// Update rewrites stars and comment after the ownership check.
func (srv *ratingService) Update(ctx context.Context, requester *entity.User, guid uuid.UUID, input usecase.UpdateRatingInput) (*entity.Rating, error) {
	if !entity.ValidStars(input.Stars) {
		return nil, domainerrors.ErrInvalidStars
	}
	if requester == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	var updated *entity.Rating
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ratingRepo := repoFactory.RatingRepo()

		rating, err := ratingRepo.FindByGuid(ctx, guid)
		if err != nil {
			if errors.Is(err, repository.ErrRatingNotFound) {
				return domainerrors.ErrRatingNotFound
			}

			return errors.Wrap(err, "failed to find rating")
		}

		if !rating.OwnedBy(requester.Guid) {
			return domainerrors.ErrForbidden
		}

		rating.Stars = input.Stars
		if input.Comment != nil {
			rating.Comment = *input.Comment
		}
		if input.Confirmed != nil {
			rating.Confirmed = *input.Confirmed
		}

		if err := ratingRepo.Update(ctx, rating); err != nil {
			return errors.Wrap(err, "failed to update rating")
		}

		updated = rating

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Rating updated", slog.String("guid", guid.String()))

	return updated, nil
}

// Delete removes a rating by guid after the ownership check.
func (srv *ratingService) Delete(ctx context.Context, requester *entity.User, guid uuid.UUID) error {
	if requester == nil {
		return domainerrors.ErrUnauthenticated
	}

	return srv.deleteOwned(ctx, requester, func(ratingRepo repository.RatingRepository) (*entity.Rating, error) {
		return ratingRepo.FindByGuid(ctx, guid)
	})
}

// DeleteForPair removes the rating identified by its (user, media) pair.
func (srv *ratingService) DeleteForPair(ctx context.Context, requester *entity.User, userGuid, mediaGuid uuid.UUID) error {
	if requester == nil {
		return domainerrors.ErrUnauthenticated
	}

	return srv.deleteOwned(ctx, requester, func(ratingRepo repository.RatingRepository) (*entity.Rating, error) {
		return ratingRepo.FindForPair(ctx, userGuid, mediaGuid)
	})
}

func (srv *ratingService) deleteOwned(
	ctx context.Context,
	requester *entity.User,
	find func(ratingRepo repository.RatingRepository) (*entity.Rating, error),
) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		ratingRepo := repoFactory.RatingRepo()

		rating, err := find(ratingRepo)
		if err != nil {
			if errors.Is(err, repository.ErrRatingNotFound) {
				return domainerrors.ErrRatingNotFound
			}

			return errors.Wrap(err, "failed to find rating")
		}

		if !rating.OwnedBy(requester.Guid) {
			return domainerrors.ErrForbidden
		}

		if err := ratingRepo.Delete(ctx, rating.Guid); err != nil {
			return errors.Wrap(err, "failed to delete rating")
		}

		return nil
	})
	if err != nil {
		return err
	}

	srv.log(ctx).Info("Rating deleted")

	return nil
}
