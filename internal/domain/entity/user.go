// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system. Every MediaEntry and Rating is
// owned by exactly one User (its Creator).
type User struct {
	ID           int64     // Storage-internal numeric id.
	Guid         uuid.UUID // The Global Unique Identifier (GUID) for the user, stable across stores.
	Username     string    // Unique login name, compared case-insensitively.
	PasswordHash string    // Stores the bcrypt-hashed password. Never serialized to callers.
	CreatedAt    time.Time // Timestamp of when this user account was created.
}
