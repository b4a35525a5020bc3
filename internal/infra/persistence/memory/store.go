// Package memory implements the repository interfaces on top of an
// in-process store. It is the default backend and the one the test suite
// runs against; all state is lost on shutdown.
package memory

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"mediarating/internal/domain/entity"
)

// ratingPair identifies the one rating a user may give a media entry.
type ratingPair struct {
	creatorGuid uuid.UUID
	mediaGuid   uuid.UUID
}

// mediaRecord stores a media entry with its creator held by reference,
// so user updates are visible through every entry they own.
type mediaRecord struct {
	entry       entity.MediaEntry
	creatorGuid uuid.UUID
}

type ratingRecord struct {
	rating      entity.Rating
	creatorGuid uuid.UUID
	mediaGuid   uuid.UUID
}

// Store is the shared in-process state behind the memory repositories.
// A single RWMutex guards all tables; check-then-write sequences inside one
// repository call run under the write lock and are therefore atomic.
type Store struct {
	mu sync.RWMutex

	users       map[uuid.UUID]entity.User
	usersByName map[string]uuid.UUID

	media       map[uuid.UUID]mediaRecord
	ratings     map[uuid.UUID]ratingRecord
	ratingPairs map[ratingPair]uuid.UUID

	nextUserID   int64
	nextMediaID  int64
	nextRatingID int64
}

// NewStore creates an empty in-process store.
func NewStore() *Store {
	return &Store{
		users:       make(map[uuid.UUID]entity.User),
		usersByName: make(map[string]uuid.UUID),
		media:       make(map[uuid.UUID]mediaRecord),
		ratings:     make(map[uuid.UUID]ratingRecord),
		ratingPairs: make(map[ratingPair]uuid.UUID),
	}
}

func usernameKey(username string) string {
	return strings.ToLower(username)
}

// cloneUser returns an independent copy so callers cannot mutate store state.
func cloneUser(u entity.User) *entity.User {
	copied := u

	return &copied
}

// userByGuidLocked must be called with at least the read lock held.
func (s *Store) userByGuidLocked(guid uuid.UUID) (*entity.User, bool) {
	u, ok := s.users[guid]
	if !ok {
		return nil, false
	}

	return cloneUser(u), true
}

// mediaByGuidLocked resolves the record to a full entry, creator included.
// Must be called with at least the read lock held.
func (s *Store) mediaByGuidLocked(guid uuid.UUID) (*entity.MediaEntry, bool) {
	rec, ok := s.media[guid]
	if !ok {
		return nil, false
	}

	entry := rec.entry
	entry.Genres = append([]string(nil), rec.entry.Genres...)
	entry.Creator, _ = s.userByGuidLocked(rec.creatorGuid)

	return &entry, true
}

// ratingByGuidLocked resolves the record to a full rating, creator and media
// included. Must be called with at least the read lock held.
func (s *Store) ratingByGuidLocked(guid uuid.UUID) (*entity.Rating, bool) {
	rec, ok := s.ratings[guid]
	if !ok {
		return nil, false
	}

	rating := rec.rating
	rating.Creator, _ = s.userByGuidLocked(rec.creatorGuid)
	rating.Media, _ = s.mediaByGuidLocked(rec.mediaGuid)

	return &rating, true
}

// sortRatingsNewestFirst orders by submission time, falling back to the
// storage id for ratings created within the same instant.
func sortRatingsNewestFirst(ratings []*entity.Rating) {
	sort.Slice(ratings, func(i, j int) bool {
		if !ratings[i].CreatedAt.Equal(ratings[j].CreatedAt) {
			return ratings[i].CreatedAt.After(ratings[j].CreatedAt)
		}

		return ratings[i].ID > ratings[j].ID
	})
}
