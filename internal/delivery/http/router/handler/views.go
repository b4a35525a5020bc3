// Package handler contains the HTTP handlers for the application.
package handler

import (
	"time"

	"github.com/google/uuid"

	"mediarating/internal/domain/entity"
)

// UserView is the public projection of a user. The credential hash is
// never part of any response body.
type UserView struct {
	ID       int64     `json:"id"`
	Guid     uuid.UUID `json:"guid"`
	Username string    `json:"username"`
}

// CreatorView is the nested owner projection on media and ratings.
type CreatorView struct {
	Guid     uuid.UUID `json:"guid"`
	Username string    `json:"username"`
}

// MediaView is the public projection of a media entry.
type MediaView struct {
	Guid           uuid.UUID    `json:"guid"`
	Kind           string       `json:"kind"`
	Title          string       `json:"title"`
	Description    string       `json:"description,omitempty"`
	ReleaseYear    int          `json:"releaseYear,omitempty"`
	AgeRestriction int          `json:"ageRestriction,omitempty"`
	Genres         []string     `json:"genres,omitempty"`
	Creator        *CreatorView `json:"creator,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// RatingView is the public projection of a rating.
type RatingView struct {
	Guid      uuid.UUID    `json:"guid"`
	Stars     int          `json:"stars"`
	Comment   string       `json:"comment,omitempty"`
	Confirmed bool         `json:"confirmed"`
	MediaGuid uuid.UUID    `json:"mediaGuid"`
	Creator   *CreatorView `json:"creator,omitempty"`
	CreatedAt time.Time    `json:"createdAt"`
}

// RatingAggregateView is the derived {avg, count} projection for an entry.
type RatingAggregateView struct {
	Avg   float64 `json:"avg"`
	Count int64   `json:"count"`
}

func toUserView(user *entity.User) UserView {
	return UserView{
		ID:       user.ID,
		Guid:     user.Guid,
		Username: user.Username,
	}
}

func toUserViews(users []*entity.User) []UserView {
	views := make([]UserView, 0, len(users))
	for _, user := range users {
		views = append(views, toUserView(user))
	}

	return views
}

func toCreatorView(user *entity.User) *CreatorView {
	if user == nil {
		return nil
	}

	return &CreatorView{Guid: user.Guid, Username: user.Username}
}

func toMediaView(entry *entity.MediaEntry) MediaView {
	return MediaView{
		Guid:           entry.Guid,
		Kind:           entry.Kind.String(),
		Title:          entry.Title,
		Description:    entry.Description,
		ReleaseYear:    entry.ReleaseYear,
		AgeRestriction: entry.AgeRestriction,
		Genres:         entry.Genres,
		Creator:        toCreatorView(entry.Creator),
		CreatedAt:      entry.CreatedAt,
		UpdatedAt:      entry.UpdatedAt,
	}
}

func toMediaViews(entries []*entity.MediaEntry) []MediaView {
	views := make([]MediaView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, toMediaView(entry))
	}

	return views
}

func toRatingView(rating *entity.Rating) RatingView {
	view := RatingView{
		Guid:      rating.Guid,
		Stars:     rating.Stars,
		Comment:   rating.Comment,
		Confirmed: rating.Confirmed,
		Creator:   toCreatorView(rating.Creator),
		CreatedAt: rating.CreatedAt,
	}
	if rating.Media != nil {
		view.MediaGuid = rating.Media.Guid
	}

	return view
}

func toRatingAggregateView(aggregate entity.RatingAggregate) RatingAggregateView {
	return RatingAggregateView{
		Avg:   aggregate.Average,
		Count: aggregate.Count,
	}
}

func toRatingViews(ratings []*entity.Rating) []RatingView {
	views := make([]RatingView, 0, len(ratings))
	for _, rating := range ratings {
		views = append(views, toRatingView(rating))
	}

	return views
}
