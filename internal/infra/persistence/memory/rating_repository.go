package memory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"mediarating/internal/domain/entity"
	"mediarating/internal/domain/repository"
)

// ratingRepository implements repository.RatingRepository on the in-process store.
type ratingRepository struct {
	store *Store
}

// NewRatingRepository is the constructor for the memory-backed rating repository.
func NewRatingRepository(store *Store) repository.RatingRepository {
	return &ratingRepository{store: store}
}

func (r *ratingRepository) FindByGuid(_ context.Context, guid uuid.UUID) (*entity.Rating, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	rating, ok := r.store.ratingByGuidLocked(guid)
	if !ok {
		return nil, repository.ErrRatingNotFound
	}

	return rating, nil
}

func (r *ratingRepository) FindForPair(_ context.Context, userGuid, mediaGuid uuid.UUID) (*entity.Rating, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ratingGuid, ok := r.store.ratingPairs[ratingPair{creatorGuid: userGuid, mediaGuid: mediaGuid}]
	if !ok {
		return nil, repository.ErrRatingNotFound
	}

	rating, _ := r.store.ratingByGuidLocked(ratingGuid)

	return rating, nil
}

func (r *ratingRepository) ListForMedia(_ context.Context, mediaGuid uuid.UUID) ([]*entity.Rating, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ratings := make([]*entity.Rating, 0)
	for guid, rec := range r.store.ratings {
		if rec.mediaGuid != mediaGuid {
			continue
		}
		rating, _ := r.store.ratingByGuidLocked(guid)
		ratings = append(ratings, rating)
	}
	sortRatingsNewestFirst(ratings)

	return ratings, nil
}

func (r *ratingRepository) ListForUser(_ context.Context, userGuid uuid.UUID) ([]*entity.Rating, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	ratings := make([]*entity.Rating, 0)
	for guid, rec := range r.store.ratings {
		if rec.creatorGuid != userGuid {
			continue
		}
		rating, _ := r.store.ratingByGuidLocked(guid)
		ratings = append(ratings, rating)
	}
	sortRatingsNewestFirst(ratings)

	return ratings, nil
}

// Create inserts the rating under the write lock. The pair check and the
// insert cannot interleave with a concurrent submission for the same pair,
// so exactly one of two racing submissions wins.
func (r *ratingRepository) Create(_ context.Context, rating *entity.Rating) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	pair := ratingPair{creatorGuid: rating.Creator.Guid, mediaGuid: rating.Media.Guid}
	if _, exists := r.store.ratingPairs[pair]; exists {
		return repository.ErrRatingExists
	}

	r.store.nextRatingID++
	rating.ID = r.store.nextRatingID
	if rating.Guid == uuid.Nil {
		rating.Guid = uuid.New()
	}
	if rating.CreatedAt.IsZero() {
		rating.CreatedAt = time.Now()
	}

	stored := *rating
	stored.Creator = nil
	stored.Media = nil

	r.store.ratings[rating.Guid] = ratingRecord{
		rating:      stored,
		creatorGuid: pair.creatorGuid,
		mediaGuid:   pair.mediaGuid,
	}
	r.store.ratingPairs[pair] = rating.Guid

	return nil
}

// Update rewrites stars, comment and the confirmed flag. The creator and
// media references are taken from the stored record.
func (r *ratingRepository) Update(_ context.Context, rating *entity.Rating) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.ratings[rating.Guid]
	if !ok {
		return repository.ErrRatingNotFound
	}

	current.rating.Stars = rating.Stars
	current.rating.Comment = rating.Comment
	current.rating.Confirmed = rating.Confirmed
	r.store.ratings[rating.Guid] = current

	return nil
}

func (r *ratingRepository) Delete(_ context.Context, guid uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	rec, ok := r.store.ratings[guid]
	if !ok {
		return repository.ErrRatingNotFound
	}
	delete(r.store.ratings, guid)
	delete(r.store.ratingPairs, ratingPair{creatorGuid: rec.creatorGuid, mediaGuid: rec.mediaGuid})

	return nil
}

// AggregateForMedia derives the average and count in one pass. The average
// is the plain arithmetic mean, unrounded.
func (r *ratingRepository) AggregateForMedia(_ context.Context, mediaGuid uuid.UUID) (entity.RatingAggregate, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	var sum, count int64
	for _, rec := range r.store.ratings {
		if rec.mediaGuid != mediaGuid {
			continue
		}
		sum += int64(rec.rating.Stars)
		count++
	}

	aggregate := entity.RatingAggregate{Count: count}
	if count > 0 {
		aggregate.Average = float64(sum) / float64(count)
	}

	return aggregate, nil
}
