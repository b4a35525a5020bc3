package impl

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"mediarating/internal/domain/entity"
	"mediarating/internal/infra/auth"
	"mediarating/internal/infra/persistence/memory"
	"mediarating/internal/usecase"
)

// fixture wires the use cases against a fresh in-process store, so the
// tests exercise the same store semantics the service runs with by default.
type fixture struct {
	users   usecase.UserUsecase
	media   usecase.MediaUsecase
	ratings usecase.RatingUsecase
	tokens  interface {
		Validate(ctx context.Context, token string) (*entity.User, error)
	}
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.NewStore()
	userRepo := memory.NewUserRepository(store)
	mediaRepo := memory.NewMediaRepository(store)
	ratingRepo := memory.NewRatingRepository(store)
	txManager := memory.NewTransactionManager(store)
	tokens := auth.NewTokenService(userRepo)
	hasher := auth.NewBcryptHasherWithCost(4)
	logger := slog.New(slog.DiscardHandler)

	return &fixture{
		users: NewUserService(UserServiceParams{
			TxManager:    txManager,
			UserRepo:     userRepo,
			Hasher:       hasher,
			TokenService: tokens,
			Logger:       logger,
		}),
		media: NewMediaService(MediaServiceParams{
			TxManager:  txManager,
			MediaRepo:  mediaRepo,
			RatingRepo: ratingRepo,
			Logger:     logger,
		}),
		ratings: NewRatingService(RatingServiceParams{
			TxManager:  txManager,
			RatingRepo: ratingRepo,
			Logger:     logger,
		}),
		tokens: tokens,
	}
}

func (f *fixture) register(t *testing.T, username string) *entity.User {
	t.Helper()

	user, err := f.users.Register(context.Background(), usecase.RegisterInput{
		Username: username,
		Password: "password-" + username,
	})
	require.NoError(t, err)

	return user
}

func (f *fixture) createMedia(t *testing.T, owner *entity.User, title string) *entity.MediaEntry {
	t.Helper()

	entry, err := f.media.Create(context.Background(), owner, usecase.CreateMediaInput{
		Kind:  "Movie",
		Title: title,
	})
	require.NoError(t, err)

	return entry
}
