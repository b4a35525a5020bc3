// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Rating is a single user's star score for a media entry. At most one
// rating may exist per (Creator, Media) pair; its contribution to the
// entry's average is derived on demand, never stored.
type Rating struct {
	ID        int64     // Storage-internal numeric id.
	Guid      uuid.UUID // The Global Unique Identifier (GUID) for the rating.
	Stars     int       // Star score, 1 to 5 inclusive.
	Comment   string    // Optional free-text comment.
	Confirmed bool      // Set once the rating has been confirmed by moderation.
	Creator   *User     // The user who submitted the rating.
	Media     *MediaEntry
	CreatedAt time.Time // Timestamp of submission; lists are ordered newest first.
}

// ValidStars reports whether the given star score is inside the accepted range.
func ValidStars(stars int) bool {
	return stars >= 1 && stars <= 5
}

// OwnedBy reports whether the rating belongs to the user with the given guid.
func (r *Rating) OwnedBy(userGuid uuid.UUID) bool {
	return r.Creator != nil && r.Creator.Guid == userGuid
}

// RatingAggregate provides the derived average and count for a media entry.
// An entry without ratings aggregates to {Average: 0, Count: 0}.
type RatingAggregate struct {
	Average float64
	Count   int64
}
