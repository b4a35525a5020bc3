package model

import (
	"time"

	"github.com/google/uuid"
)

// RatingModel mirrors the 'ratings' table. The composite unique index
// enforces one rating per (creator, media) pair at the database level, and
// the cascade removes ratings together with their media entry.
type RatingModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Guid      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Stars     int       `gorm:"not null;check:stars >= 1 AND stars <= 5"`
	Comment   string    `gorm:"type:text"`
	Confirmed bool      `gorm:"not null;default:false"`
	CreatorID int64     `gorm:"not null;uniqueIndex:idx_ratings_creator_media"`
	MediaID   int64     `gorm:"not null;uniqueIndex:idx_ratings_creator_media"`
	CreatedAt time.Time

	Creator *UserModel  `gorm:"foreignKey:CreatorID"`
	Media   *MediaModel `gorm:"foreignKey:MediaID;constraint:OnDelete:CASCADE"`
}

// TableName explicitly sets the table name for GORM.
func (RatingModel) TableName() string {
	return "ratings"
}
