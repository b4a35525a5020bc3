// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// MediaEntry is a catalogued piece of media (movie, series or game).
// The Creator is fixed at creation time; only the Creator may mutate or
// delete the entry afterwards.
type MediaEntry struct {
	ID             int64     // Storage-internal numeric id.
	Guid           uuid.UUID // The Global Unique Identifier (GUID) for the entry.
	Kind           MediaKind // Variant tag: Movie, Series or Game.
	Title          string    // Required, non-blank.
	Description    string    // Optional free text.
	ReleaseYear    int       // Year of first release.
	AgeRestriction int       // Minimum age in years, 0 when unrestricted.
	Genres         []string  // Genre tags.
	Creator        *User     // The owning user. Immutable after creation.
	CreatedAt      time.Time // Timestamp of when this entry was created.
	UpdatedAt      time.Time // Timestamp of the last modification.
}

// OwnedBy reports whether the entry belongs to the user with the given guid.
func (m *MediaEntry) OwnedBy(userGuid uuid.UUID) bool {
	return m.Creator != nil && m.Creator.Guid == userGuid
}
