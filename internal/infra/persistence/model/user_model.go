// Package model holds the GORM persistence models mirroring the database
// tables. Repositories map these to and from domain entities; the models
// never leave the infrastructure layer.
package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. UsernameLower is maintained by the
// repository and carries the unique index, which makes username uniqueness
// case-insensitive at the database level.
type UserModel struct {
	ID            int64     `gorm:"primaryKey;autoIncrement"`
	Guid          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Username      string    `gorm:"type:varchar(100);not null"`
	UsernameLower string    `gorm:"type:varchar(100);not null;uniqueIndex"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	CreatedAt     time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
