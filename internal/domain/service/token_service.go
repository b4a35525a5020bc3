package service

import (
	"context"
	"errors"

	"mediarating/internal/domain/entity"
)

// ErrInvalidToken is returned by Validate for any credential that does not
// resolve to an existing user: wrong shape, wrong scheme, unknown identity.
var ErrInvalidToken = errors.New("invalid token")

// TokenService defines the interface for issuing and validating the opaque
// bearer credentials presented on protected routes.
//
// Tokens carry no server-side session state: validation resolves the encoded
// user identity against the store. Tokens do not expire; they stay valid for
// as long as the referenced user exists. This mirrors the intended design and
// is a documented limitation, not an oversight.
type TokenService interface {
	// Issue creates a new bearer credential bound to the given user.
	Issue(user *entity.User) (string, error)

	// Validate checks a credential and resolves it to the user it was
	// issued for. An invalid credential yields ErrInvalidToken; callers
	// must treat that as unauthenticated.
	Validate(ctx context.Context, token string) (*entity.User, error)
}
