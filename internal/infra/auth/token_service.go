package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"mediarating/internal/domain/entity"
	"mediarating/internal/domain/repository"
	"mediarating/internal/domain/service"
	"mediarating/internal/errors"
)

// tokenScheme prefixes every credential issued by this service.
const tokenScheme = "mrpx"

// tokenFieldCount is the number of dot-separated fields in a credential.
const tokenFieldCount = 4

// nonceBytes is the size of the random nonce, 4 bytes hex-encoded to 8 chars.
const nonceBytes = 4

// opaqueTokenService issues bearer credentials of the form
//
//	mrpx.<guid-hex>.<unix-seconds>.<nonce>
//
// The credential is opaque to clients. Validation resolves the embedded user
// guid against the store, so revoking a user revokes all their tokens.
type opaqueTokenService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewTokenService is the constructor for opaqueTokenService.
func NewTokenService(userRepo repository.UserRepository) service.TokenService {
	return &opaqueTokenService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// Issue creates a new credential bound to the given user.
func (s *opaqueTokenService) Issue(user *entity.User) (string, error) {
	if user == nil {
		return "", errors.New("issue token: nil user")
	}

	nonce := make([]byte, nonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Wrap(err, "generate token nonce")
	}

	guidHex := strings.ReplaceAll(user.Guid.String(), "-", "")

	return fmt.Sprintf("%s.%s.%d.%s",
		tokenScheme,
		guidHex,
		s.now().Unix(),
		hex.EncodeToString(nonce),
	), nil
}

// Validate checks the credential shape and resolves the embedded guid to an
// existing user. Any failure yields service.ErrInvalidToken; the caller never
// learns which field was wrong.
func (s *opaqueTokenService) Validate(ctx context.Context, token string) (*entity.User, error) {
	fields := strings.Split(token, ".")
	if len(fields) != tokenFieldCount {
		return nil, service.ErrInvalidToken
	}

	// The scheme matches case-insensitively, everything else is exact.
	if !strings.EqualFold(fields[0], tokenScheme) {
		return nil, service.ErrInvalidToken
	}

	guid, err := uuid.Parse(fields[1])
	if err != nil {
		return nil, service.ErrInvalidToken
	}

	if _, err := strconv.ParseInt(fields[2], 10, 64); err != nil {
		return nil, service.ErrInvalidToken
	}

	if len(fields[3]) != nonceBytes*2 {
		return nil, service.ErrInvalidToken
	}
	if _, err := hex.DecodeString(fields[3]); err != nil {
		return nil, service.ErrInvalidToken
	}

	user, err := s.userRepo.FindByGuid(ctx, guid)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, service.ErrInvalidToken
		}

		return nil, errors.Wrap(err, "resolve token user")
	}

	return user, nil
}
