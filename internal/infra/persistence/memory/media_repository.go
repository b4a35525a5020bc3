package memory

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"mediarating/internal/domain/entity"
	"mediarating/internal/domain/repository"
)

// mediaRepository implements repository.MediaRepository on the in-process store.
type mediaRepository struct {
	store *Store
}

// NewMediaRepository is the constructor for the memory-backed media repository.
func NewMediaRepository(store *Store) repository.MediaRepository {
	return &mediaRepository{store: store}
}

func (r *mediaRepository) FindByGuid(_ context.Context, guid uuid.UUID) (*entity.MediaEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entry, ok := r.store.mediaByGuidLocked(guid)
	if !ok {
		return nil, repository.ErrMediaNotFound
	}

	return entry, nil
}

func (r *mediaRepository) List(_ context.Context) ([]*entity.MediaEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	entries := make([]*entity.MediaEntry, 0, len(r.store.media))
	for guid := range r.store.media {
		entry, _ := r.store.mediaByGuidLocked(guid)
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	return entries, nil
}

func (r *mediaRepository) Create(_ context.Context, media *entity.MediaEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	r.store.nextMediaID++
	media.ID = r.store.nextMediaID
	if media.Guid == uuid.Nil {
		media.Guid = uuid.New()
	}
	now := time.Now()
	if media.CreatedAt.IsZero() {
		media.CreatedAt = now
	}
	media.UpdatedAt = now

	stored := *media
	stored.Creator = nil
	stored.Genres = append([]string(nil), media.Genres...)

	r.store.media[media.Guid] = mediaRecord{
		entry:       stored,
		creatorGuid: media.Creator.Guid,
	}

	return nil
}

// Update rewrites the mutable fields of an entry. The creator reference is
// taken from the stored record, never from the argument.
func (r *mediaRepository) Update(_ context.Context, media *entity.MediaEntry) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.media[media.Guid]
	if !ok {
		return repository.ErrMediaNotFound
	}

	media.ID = current.entry.ID
	media.CreatedAt = current.entry.CreatedAt
	media.UpdatedAt = time.Now()

	stored := *media
	stored.Creator = nil
	stored.Genres = append([]string(nil), media.Genres...)

	r.store.media[media.Guid] = mediaRecord{
		entry:       stored,
		creatorGuid: current.creatorGuid,
	}

	return nil
}

// Delete removes the entry and every rating that targets it.
func (r *mediaRepository) Delete(_ context.Context, guid uuid.UUID) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.media[guid]; !ok {
		return repository.ErrMediaNotFound
	}
	delete(r.store.media, guid)

	for ratingGuid, rec := range r.store.ratings {
		if rec.mediaGuid != guid {
			continue
		}
		delete(r.store.ratings, ratingGuid)
		delete(r.store.ratingPairs, ratingPair{creatorGuid: rec.creatorGuid, mediaGuid: rec.mediaGuid})
	}

	return nil
}
