package impl

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "mediarating/internal/domain/errors"
	"mediarating/internal/usecase"
)

func TestMediaServiceCreateAndRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.register(t, "owner")

	created, err := f.media.Create(ctx, owner, usecase.CreateMediaInput{
		Kind:           "Series",
		Title:          "The Expanse",
		Description:    "Belters, Earthers and Martians",
		ReleaseYear:    2015,
		AgeRestriction: 16,
		Genres:         []string{"sci-fi", "drama"},
	})
	require.NoError(t, err)

	found, err := f.media.GetByGuid(ctx, created.Guid)
	require.NoError(t, err)
	assert.Equal(t, "The Expanse", found.Title)
	assert.Equal(t, "Belters, Earthers and Martians", found.Description)
	assert.Equal(t, 2015, found.ReleaseYear)
	assert.Equal(t, 16, found.AgeRestriction)
	assert.Equal(t, "Series", found.Kind.String())
	assert.Equal(t, owner.Guid, found.Creator.Guid)

	require.NoError(t, f.media.Delete(ctx, owner, created.Guid))

	_, err = f.media.GetByGuid(ctx, created.Guid)
	assert.ErrorIs(t, err, domainerrors.ErrMediaNotFound)
}

func TestMediaServiceCreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.register(t, "owner")
	stranger := f.register(t, "stranger")

	_, err := f.media.Create(ctx, nil, usecase.CreateMediaInput{Kind: "Movie", Title: "Dune"})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)

	_, err = f.media.Create(ctx, owner, usecase.CreateMediaInput{Kind: "Podcast", Title: "Dune"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidMediaKind)

	_, err = f.media.Create(ctx, owner, usecase.CreateMediaInput{Kind: "Movie", Title: "   "})
	assert.ErrorIs(t, err, domainerrors.ErrTitleRequired)

	// A body naming someone else as owner is rejected.
	_, err = f.media.Create(ctx, owner, usecase.CreateMediaInput{
		Kind:     "Movie",
		Title:    "Dune",
		UserGuid: &stranger.Guid,
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	// Naming yourself is fine.
	_, err = f.media.Create(ctx, owner, usecase.CreateMediaInput{
		Kind:     "Movie",
		Title:    "Dune",
		UserGuid: &owner.Guid,
	})
	assert.NoError(t, err)
}

func TestMediaServiceUpdateOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.register(t, "owner")
	stranger := f.register(t, "stranger")
	entry := f.createMedia(t, owner, "Dune")

	title := "Dune Part Two"
	_, err := f.media.Update(ctx, stranger, entry.Guid, usecase.UpdateMediaInput{Title: &title})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	_, err = f.media.Update(ctx, owner, uuid.New(), usecase.UpdateMediaInput{Title: &title})
	assert.ErrorIs(t, err, domainerrors.ErrMediaNotFound)

	year := 2024
	updated, err := f.media.Update(ctx, owner, entry.Guid, usecase.UpdateMediaInput{Title: &title, ReleaseYear: &year})
	require.NoError(t, err)
	assert.Equal(t, "Dune Part Two", updated.Title)
	assert.Equal(t, 2024, updated.ReleaseYear)
	assert.Equal(t, owner.Guid, updated.Creator.Guid)
}

func TestMediaServiceDeleteOwnership(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.register(t, "owner")
	stranger := f.register(t, "stranger")
	entry := f.createMedia(t, owner, "Dune")

	err := f.media.Delete(ctx, stranger, entry.Guid)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	err = f.media.Delete(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrMediaNotFound)

	require.NoError(t, f.media.Delete(ctx, owner, entry.Guid))
}

func TestMediaServiceAverageRating(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	owner := f.register(t, "owner")
	entry := f.createMedia(t, owner, "Dune")

	_, err := f.media.AverageRating(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrMediaNotFound)

	empty, err := f.media.AverageRating(ctx, entry.Guid)
	require.NoError(t, err)
	assert.Zero(t, empty.Average)
	assert.Zero(t, empty.Count)

	first := f.register(t, "first")
	second := f.register(t, "second")
	for _, sub := range []struct {
		userGuid uuid.UUID
		stars    int
	}{
		{first.Guid, 5},
		{second.Guid, 3},
	} {
		_, err := f.ratings.Create(ctx, usecase.CreateRatingInput{
			UserGuid:  sub.userGuid,
			MediaGuid: entry.Guid,
			Stars:     sub.stars,
		})
		require.NoError(t, err)
	}

	aggregate, err := f.media.AverageRating(ctx, entry.Guid)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, aggregate.Average, 1e-9)
	assert.Equal(t, int64(2), aggregate.Count)
}
