// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"mediarating/internal/delivery/http/middleware"
	"mediarating/internal/delivery/http/router/handler"
)

// RouterParams holds the handlers and middlewares, injected by Fx.
type RouterParams struct {
	fx.In

	UserHandler    *handler.UserHandler
	MediaHandler   *handler.MediaHandler
	RatingHandler  *handler.RatingHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler    *handler.UserHandler
	mediaHandler   *handler.MediaHandler
	ratingHandler  *handler.RatingHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:    params.UserHandler,
		mediaHandler:   params.MediaHandler,
		ratingHandler:  params.RatingHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")
	auth := r.authMiddleware.Authenticate

	users := api.Group("/users")
	{
		users.GET("", r.userHandler.List)
		users.POST("/register", r.userHandler.Register)
		users.POST("/login", r.userHandler.Login)
		users.PUT("/:guid", r.userHandler.Update, auth)
	}

	media := api.Group("/media")
	{
		media.GET("", r.mediaHandler.List)
		// The avg route is static and must sit above the :guid parameter.
		media.GET("/avg/:guid", r.mediaHandler.AverageRating)
		media.GET("/:guid", r.mediaHandler.Get)
		media.POST("", r.mediaHandler.Create, auth)
		media.PUT("/:guid", r.mediaHandler.Update, auth)
		media.DELETE("/:guid", r.mediaHandler.Delete, auth)
	}

	ratings := api.Group("/ratings")
	{
		ratings.POST("", r.ratingHandler.Create)
		ratings.GET("/media/:guid", r.ratingHandler.ListForMedia)
		ratings.GET("/user/:guid", r.ratingHandler.ListForUser)
		ratings.PUT("/:guid", r.ratingHandler.Update, auth)
		ratings.DELETE("/:guid", r.ratingHandler.Delete, auth)
		ratings.DELETE("", r.ratingHandler.DeleteForPair, auth)
	}
}
