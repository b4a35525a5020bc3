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

func TestUserServiceRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.users.Register(ctx, usecase.RegisterInput{Username: "alice", Password: "secret"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, user.Guid)
	assert.NotEqual(t, "secret", user.PasswordHash)
}

func TestUserServiceRegisterWithSuppliedGuid(t *testing.T) {
	f := newFixture(t)

	guid := uuid.New()
	user, err := f.users.Register(context.Background(), usecase.RegisterInput{
		Username: "alice",
		Password: "secret",
		Guid:     &guid,
	})
	require.NoError(t, err)
	assert.Equal(t, guid, user.Guid)
}

func TestUserServiceRegisterBlankCredentials(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"blank username", "", "secret"},
		{"whitespace username", "   ", "secret"},
		{"blank password", "alice", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.users.Register(ctx, usecase.RegisterInput{Username: tc.username, Password: tc.password})
			assert.ErrorIs(t, err, domainerrors.ErrCredentialsRequired)
		})
	}
}

func TestUserServiceRegisterDuplicateAnyCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.register(t, "Alice")

	for _, username := range []string{"Alice", "alice", "ALICE"} {
		_, err := f.users.Register(ctx, usecase.RegisterInput{Username: username, Password: "x"})
		assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken, username)
	}
}

func TestUserServiceLoginTokenRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := f.register(t, "alice")

	out, err := f.users.Login(ctx, usecase.LoginInput{Username: "alice", Password: "password-alice"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	resolved, err := f.tokens.Validate(ctx, out.Token)
	require.NoError(t, err)
	assert.Equal(t, user.Guid, resolved.Guid)
}

func TestUserServiceLoginFailures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.register(t, "alice")

	_, err := f.users.Login(ctx, usecase.LoginInput{Username: "", Password: "x"})
	assert.ErrorIs(t, err, domainerrors.ErrCredentialsRequired)

	_, err = f.users.Login(ctx, usecase.LoginInput{Username: "nobody", Password: "x"})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	_, err = f.users.Login(ctx, usecase.LoginInput{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserServiceListNeverExposesHash(t *testing.T) {
	f := newFixture(t)

	f.register(t, "alice")
	f.register(t, "bob")

	users, err := f.users.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestUserServiceUpdatePartialPatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user := f.register(t, "alice")
	oldHash := user.PasswordHash

	newName := "alice2"
	updated, err := f.users.Update(ctx, user, user.Guid, usecase.UpdateUserInput{Username: &newName})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
	assert.Equal(t, oldHash, updated.PasswordHash)

	// Patching only the password leaves the username alone.
	newPassword := "next secret"
	updated, err = f.users.Update(ctx, user, user.Guid, usecase.UpdateUserInput{Password: &newPassword})
	require.NoError(t, err)
	assert.Equal(t, "alice2", updated.Username)
	assert.NotEqual(t, oldHash, updated.PasswordHash)

	_, err = f.users.Login(ctx, usecase.LoginInput{Username: "alice2", Password: "next secret"})
	assert.NoError(t, err)
}

func TestUserServiceUpdateGuards(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")
	bob := f.register(t, "bob")

	name := "whatever"
	_, err := f.users.Update(ctx, nil, alice.Guid, usecase.UpdateUserInput{Username: &name})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)

	_, err = f.users.Update(ctx, alice, uuid.New(), usecase.UpdateUserInput{Username: &name})
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)

	_, err = f.users.Update(ctx, bob, alice.Guid, usecase.UpdateUserInput{Username: &name})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)

	taken := "Bob"
	_, err = f.users.Update(ctx, alice, alice.Guid, usecase.UpdateUserInput{Username: &taken})
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestUserServiceUpdateRejectsBlankPatchFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.register(t, "alice")

	blankName := "   "
	_, err := f.users.Update(ctx, alice, alice.Guid, usecase.UpdateUserInput{Username: &blankName})
	assert.ErrorIs(t, err, domainerrors.ErrBlankUserFields)

	blankPassword := ""
	_, err = f.users.Update(ctx, alice, alice.Guid, usecase.UpdateUserInput{Password: &blankPassword})
	assert.ErrorIs(t, err, domainerrors.ErrBlankUserFields)

	// The record is untouched after a rejected patch.
	_, err = f.users.Login(ctx, usecase.LoginInput{Username: "alice", Password: "password-alice"})
	assert.NoError(t, err)
}
