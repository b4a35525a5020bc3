// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "mediarating/internal/delivery/context"
	"mediarating/internal/domain/entity"
	domainerrors "mediarating/internal/domain/errors"
	"mediarating/internal/domain/repository"
	"mediarating/internal/domain/service"
	"mediarating/internal/usecase"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for userService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new user with a hashed credential.
func (srv *userService) Register(ctx context.Context, input usecase.RegisterInput) (*entity.User, error) {
	if strings.TrimSpace(input.Username) == "" || input.Password == "" {
		return nil, domainerrors.ErrCredentialsRequired
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password")
	}

	user := &entity.User{
		Username:     input.Username,
		PasswordHash: hash,
	}
	if input.Guid != nil && *input.Guid != uuid.Nil {
		user.Guid = *input.Guid
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, domainerrors.ErrUsernameTaken
		}
		srv.log(ctx).Error("Failed to create user", slog.String("username", input.Username), slog.Any("error", err))

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to create user")
	}

	srv.log(ctx).Info("User registered", slog.String("guid", user.Guid.String()))

	return user, nil
}

// Login verifies the credential and issues a bearer token.
func (srv *userService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	if strings.TrimSpace(input.Username) == "" || input.Password == "" {
		return nil, domainerrors.ErrCredentialsRequired
	}

	user, err := srv.userRepo.FindByUsername(ctx, input.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUserNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find user")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login rejected", slog.String("guid", user.Guid.String()))

		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokenService.Issue(user)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.String("guid", user.Guid.String()), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token")
	}

	srv.log(ctx).Debug("Login succeeded", slog.String("guid", user.Guid.String()))

	return &usecase.LoginOutput{Token: token, User: user}, nil
}

// List returns every registered user.
func (srv *userService) List(ctx context.Context) ([]*entity.User, error) {
	users, err := srv.userRepo.List(ctx)
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list users")
	}

	return users, nil
}

// Update applies a partial patch to the target user. Only the user itself
// may change its record.
func (srv *userService) Update(ctx context.Context, requester *entity.User, guid uuid.UUID, input usecase.UpdateUserInput) (*entity.User, error) {
	if requester == nil {
		return nil, domainerrors.ErrUnauthenticated
	}

	var updated *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByGuid(ctx, guid)
		if err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUserNotFound
			}

			return errors.Wrap(err, "failed to find user")
		}

		if requester.Guid != user.Guid {
			return domainerrors.ErrForbidden
		}

		if input.Username != nil {
			if strings.TrimSpace(*input.Username) == "" {
				return domainerrors.ErrBlankUserFields
			}
			user.Username = *input.Username
		}
		if input.Password != nil {
			if *input.Password == "" {
				return domainerrors.ErrBlankUserFields
			}
			hash, err := srv.hasher.Hash(*input.Password)
			if err != nil {
				return errors.Wrap(err, "failed to hash password")
			}
			user.PasswordHash = hash
		}

		if err := userRepo.Update(ctx, user); err != nil {
			if errors.Is(err, repository.ErrUsernameTaken) {
				return domainerrors.ErrUsernameTaken
			}

			return errors.Wrap(err, "failed to update user")
		}

		updated = user

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("User updated", slog.String("guid", guid.String()))

	return updated, nil
}
