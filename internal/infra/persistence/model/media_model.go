package model

import (
	"time"

	"github.com/google/uuid"
)

// MediaModel mirrors the 'media_entries' table. The creator reference is
// written once at insert time and never updated.
type MediaModel struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	Guid           uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Kind           string    `gorm:"type:varchar(20);not null"`
	Title          string    `gorm:"type:varchar(255);not null"`
	Description    string    `gorm:"type:text"`
	ReleaseYear    int
	AgeRestriction int
	Genres         []string `gorm:"serializer:json;type:jsonb"`
	CreatorID      int64    `gorm:"not null;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Creator *UserModel `gorm:"foreignKey:CreatorID"`
}

// TableName explicitly sets the table name for GORM.
func (MediaModel) TableName() string {
	return "media_entries"
}
