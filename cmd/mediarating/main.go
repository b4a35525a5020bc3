package main

import (
	"context"
	"log/slog"
	"os"

	"go.uber.org/fx"

	"mediarating/config"
	"mediarating/internal/delivery"
	"mediarating/internal/delivery/http"
	httpmiddleware "mediarating/internal/delivery/http/middleware"
	"mediarating/internal/delivery/http/router/handler"
	deliverymiddleware "mediarating/internal/delivery/middleware"
	"mediarating/internal/domain/repository"
	"mediarating/internal/infra/auth"
	logs "mediarating/internal/infra/log"
	"mediarating/internal/infra/persistence/memory"
	"mediarating/internal/infra/persistence/postgres"
	"mediarating/internal/usecase/impl"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle
	fx.Shutdowner

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

type repoParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

type repoResult struct {
	fx.Out

	UserRepo   repository.UserRepository
	MediaRepo  repository.MediaRepository
	RatingRepo repository.RatingRepository
	TxManager  repository.TransactionManager
}

// newRepositories selects the store backend from configuration. The default
// in-process store needs no external service; the postgres backend opens a
// pooled connection with lifecycle hooks.
func newRepositories(params repoParams) (repoResult, error) {
	if params.Config.Store.Driver == config.StoreDriverPostgres {
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return repoResult{}, err
		}

		return repoResult{
			UserRepo:   postgres.NewUserRepository(db),
			MediaRepo:  postgres.NewMediaRepository(db),
			RatingRepo: postgres.NewRatingRepository(db),
			TxManager:  postgres.NewTransactionManager(db),
		}, nil
	}

	store := memory.NewStore()

	return repoResult{
		UserRepo:   memory.NewUserRepository(store),
		MediaRepo:  memory.NewMediaRepository(store),
		RatingRepo: memory.NewRatingRepository(store),
		TxManager:  memory.NewTransactionManager(store),
	}, nil
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			newRepositories,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewTokenService,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewUserService,
			impl.NewMediaService,
			impl.NewRatingService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			httpmiddleware.NewAuthMiddleware,
			httpmiddleware.NewErrorMiddleware,
			httpmiddleware.NewCORSMiddleware,
			httpmiddleware.NewPathMiddleware,
			deliverymiddleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewUserHandler,
			handler.NewMediaHandler,
			handler.NewRatingHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))

				// Trigger graceful shutdown to execute all OnStop hooks
				if shutdownErr := params.Shutdown(); shutdownErr != nil {
					slog.Error("Failed to shutdown gracefully", slog.Any("error", shutdownErr))
					os.Exit(1)
				}
			}
		}()
	}
}
