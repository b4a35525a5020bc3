package postgres

import (
	"context"

	"mediarating/internal/domain/entity"
	"mediarating/internal/domain/repository"
	"mediarating/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ratingRepository implements repository.RatingRepository using GORM.
type ratingRepository struct {
	db *gorm.DB
}

// NewRatingRepository is the constructor for ratingRepository.
func NewRatingRepository(db *gorm.DB) repository.RatingRepository {
	return &ratingRepository{db: db}
}

func (repo *ratingRepository) FindByGuid(ctx context.Context, guid uuid.UUID) (*entity.Rating, error) {
	var ratingM model.RatingModel
	err := repo.db.WithContext(ctx).
		Preload("Creator").Preload("Media").Preload("Media.Creator").
		Where("guid = ?", guid).First(&ratingM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRatingNotFound
		}

		return nil, errors.Wrap(err, "failed to find rating by guid")
	}

	return toRatingDomain(&ratingM), nil
}

func (repo *ratingRepository) FindForPair(ctx context.Context, userGuid, mediaGuid uuid.UUID) (*entity.Rating, error) {
	var ratingM model.RatingModel
	err := repo.db.WithContext(ctx).
		Preload("Creator").Preload("Media").Preload("Media.Creator").
		Where("creator_id = (?)", userIDByGuid(repo.db, userGuid)).
		Where("media_id = (?)", mediaIDByGuid(repo.db, mediaGuid)).
		First(&ratingM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrRatingNotFound
		}

		return nil, errors.Wrap(err, "failed to find rating for pair")
	}

	return toRatingDomain(&ratingM), nil
}

func (repo *ratingRepository) ListForMedia(ctx context.Context, mediaGuid uuid.UUID) ([]*entity.Rating, error) {
	var models []model.RatingModel
	err := repo.db.WithContext(ctx).
		Preload("Creator").Preload("Media").Preload("Media.Creator").
		Where("media_id = (?)", mediaIDByGuid(repo.db, mediaGuid)).
		Order("created_at DESC, id DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ratings for media")
	}

	return toRatingDomainSlice(models), nil
}

func (repo *ratingRepository) ListForUser(ctx context.Context, userGuid uuid.UUID) ([]*entity.Rating, error) {
	var models []model.RatingModel
	err := repo.db.WithContext(ctx).
		Preload("Creator").Preload("Media").Preload("Media.Creator").
		Where("creator_id = (?)", userIDByGuid(repo.db, userGuid)).
		Order("created_at DESC, id DESC").
		Find(&models).Error
	if err != nil {
		return nil, errors.Wrap(err, "failed to list ratings for user")
	}

	return toRatingDomainSlice(models), nil
}

// Create inserts the rating. The composite unique index on
// (creator_id, media_id) makes the pair check and the insert a single
// atomic statement; the loser of a race gets ErrRatingExists.
func (repo *ratingRepository) Create(ctx context.Context, rating *entity.Rating) error {
	if rating.Guid == uuid.Nil {
		rating.Guid = uuid.New()
	}

	ratingM := fromRatingDomain(rating)
	if err := repo.db.WithContext(ctx).Omit("Creator", "Media").Create(ratingM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return repository.ErrRatingExists
		}
		if isCheckConstraintViolation(err) || isForeignKeyConstraintViolation(err) {
			return errors.Wrap(err, "rating violates a constraint")
		}

		return errors.Wrap(err, "failed to create rating")
	}

	rating.ID = ratingM.ID
	rating.CreatedAt = ratingM.CreatedAt

	return nil
}

func (repo *ratingRepository) Update(ctx context.Context, rating *entity.Rating) error {
	result := repo.db.WithContext(ctx).Model(&model.RatingModel{}).
		Where("guid = ?", rating.Guid).
		Select("stars", "comment", "confirmed").
		Updates(model.RatingModel{
			Stars:     rating.Stars,
			Comment:   rating.Comment,
			Confirmed: rating.Confirmed,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update rating")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRatingNotFound
	}

	return nil
}

func (repo *ratingRepository) Delete(ctx context.Context, guid uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("guid = ?", guid).Delete(&model.RatingModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete rating")
	}
	if result.RowsAffected == 0 {
		return repository.ErrRatingNotFound
	}

	return nil
}

// AggregateForMedia derives the average and count in a single query.
// COALESCE keeps the average at zero for entries without ratings.
func (repo *ratingRepository) AggregateForMedia(ctx context.Context, mediaGuid uuid.UUID) (entity.RatingAggregate, error) {
	var aggregate entity.RatingAggregate
	err := repo.db.WithContext(ctx).Model(&model.RatingModel{}).
		Select("COALESCE(AVG(stars), 0) AS average, COUNT(*) AS count").
		Where("media_id = (?)", mediaIDByGuid(repo.db, mediaGuid)).
		Scan(&aggregate).Error
	if err != nil {
		return entity.RatingAggregate{}, errors.Wrap(err, "failed to aggregate ratings")
	}

	return aggregate, nil
}

// userIDByGuid builds a subquery resolving a user guid to the internal id.
func userIDByGuid(db *gorm.DB, guid uuid.UUID) *gorm.DB {
	return db.Model(&model.UserModel{}).Select("id").Where("guid = ?", guid)
}

// mediaIDByGuid builds a subquery resolving a media guid to the internal id.
func mediaIDByGuid(db *gorm.DB, guid uuid.UUID) *gorm.DB {
	return db.Model(&model.MediaModel{}).Select("id").Where("guid = ?", guid)
}

// toRatingDomain converts a GORM RatingModel to a domain Rating entity.
func toRatingDomain(data *model.RatingModel) *entity.Rating {
	if data == nil {
		return nil
	}

	return &entity.Rating{
		ID:        data.ID,
		Guid:      data.Guid,
		Stars:     data.Stars,
		Comment:   data.Comment,
		Confirmed: data.Confirmed,
		Creator:   toUserDomain(data.Creator),
		Media:     toMediaDomain(data.Media),
		CreatedAt: data.CreatedAt,
	}
}

func toRatingDomainSlice(models []model.RatingModel) []*entity.Rating {
	ratings := make([]*entity.Rating, 0, len(models))
	for i := range models {
		ratings = append(ratings, toRatingDomain(&models[i]))
	}

	return ratings
}

// fromRatingDomain converts a domain Rating entity to a GORM RatingModel for persistence.
func fromRatingDomain(data *entity.Rating) *model.RatingModel {
	if data == nil {
		return nil
	}

	ratingM := &model.RatingModel{
		ID:        data.ID,
		Guid:      data.Guid,
		Stars:     data.Stars,
		Comment:   data.Comment,
		Confirmed: data.Confirmed,
	}
	if data.Creator != nil {
		ratingM.CreatorID = data.Creator.ID
	}
	if data.Media != nil {
		ratingM.MediaID = data.Media.ID
	}

	return ratingM
}
