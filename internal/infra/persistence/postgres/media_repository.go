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

// mediaRepository implements repository.MediaRepository using GORM.
type mediaRepository struct {
	db *gorm.DB
}

// NewMediaRepository is the constructor for mediaRepository.
func NewMediaRepository(db *gorm.DB) repository.MediaRepository {
	return &mediaRepository{db: db}
}

func (repo *mediaRepository) FindByGuid(ctx context.Context, guid uuid.UUID) (*entity.MediaEntry, error) {
	var mediaM model.MediaModel
	err := repo.db.WithContext(ctx).Preload("Creator").Where("guid = ?", guid).First(&mediaM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrMediaNotFound
		}

		return nil, errors.Wrap(err, "failed to find media by guid")
	}

	return toMediaDomain(&mediaM), nil
}

func (repo *mediaRepository) List(ctx context.Context) ([]*entity.MediaEntry, error) {
	var models []model.MediaModel
	if err := repo.db.WithContext(ctx).Preload("Creator").Order("id").Find(&models).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list media")
	}

	entries := make([]*entity.MediaEntry, 0, len(models))
	for i := range models {
		entries = append(entries, toMediaDomain(&models[i]))
	}

	return entries, nil
}

func (repo *mediaRepository) Create(ctx context.Context, media *entity.MediaEntry) error {
	if media.Guid == uuid.Nil {
		media.Guid = uuid.New()
	}

	mediaM := fromMediaDomain(media)
	if err := repo.db.WithContext(ctx).Omit("Creator").Create(mediaM).Error; err != nil {
		return errors.Wrap(err, "failed to create media")
	}

	media.ID = mediaM.ID
	media.CreatedAt = mediaM.CreatedAt
	media.UpdatedAt = mediaM.UpdatedAt

	return nil
}

// Update rewrites the mutable columns only; creator_id is never touched.
// Select forces zero-valued fields through, and keeps the Genres serializer
// in play.
func (repo *mediaRepository) Update(ctx context.Context, media *entity.MediaEntry) error {
	result := repo.db.WithContext(ctx).Model(&model.MediaModel{}).
		Where("guid = ?", media.Guid).
		Select("kind", "title", "description", "release_year", "age_restriction", "genres").
		Updates(model.MediaModel{
			Kind:           string(media.Kind),
			Title:          media.Title,
			Description:    media.Description,
			ReleaseYear:    media.ReleaseYear,
			AgeRestriction: media.AgeRestriction,
			Genres:         media.Genres,
		})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update media")
	}
	if result.RowsAffected == 0 {
		return repository.ErrMediaNotFound
	}

	return nil
}

// Delete removes the entry; the foreign key cascade removes its ratings.
func (repo *mediaRepository) Delete(ctx context.Context, guid uuid.UUID) error {
	result := repo.db.WithContext(ctx).Where("guid = ?", guid).Delete(&model.MediaModel{})
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to delete media")
	}
	if result.RowsAffected == 0 {
		return repository.ErrMediaNotFound
	}

	return nil
}

// toMediaDomain converts a GORM MediaModel to a domain MediaEntry entity.
func toMediaDomain(data *model.MediaModel) *entity.MediaEntry {
	if data == nil {
		return nil
	}

	return &entity.MediaEntry{
		ID:             data.ID,
		Guid:           data.Guid,
		Kind:           entity.MediaKind(data.Kind),
		Title:          data.Title,
		Description:    data.Description,
		ReleaseYear:    data.ReleaseYear,
		AgeRestriction: data.AgeRestriction,
		Genres:         data.Genres,
		Creator:        toUserDomain(data.Creator),
		CreatedAt:      data.CreatedAt,
		UpdatedAt:      data.UpdatedAt,
	}
}

// fromMediaDomain converts a domain MediaEntry entity to a GORM MediaModel for persistence.
func fromMediaDomain(data *entity.MediaEntry) *model.MediaModel {
	if data == nil {
		return nil
	}

	mediaM := &model.MediaModel{
		ID:             data.ID,
		Guid:           data.Guid,
		Kind:           string(data.Kind),
		Title:          data.Title,
		Description:    data.Description,
		ReleaseYear:    data.ReleaseYear,
		AgeRestriction: data.AgeRestriction,
		Genres:         data.Genres,
	}
	if data.Creator != nil {
		mediaM.CreatorID = data.Creator.ID
	}

	return mediaM
}
