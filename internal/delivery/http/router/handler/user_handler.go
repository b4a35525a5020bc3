package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	deliverycontext "mediarating/internal/delivery/context"
	"mediarating/internal/delivery/http/response"
	domainerrors "mediarating/internal/domain/errors"
	"mediarating/internal/usecase"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	uc     usecase.UserUsecase
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(uc usecase.UserUsecase, logger *slog.Logger) *UserHandler {
	return &UserHandler{uc: uc, logger: logger}
}

type registerRequest struct {
	Username string     `json:"username"`
	Password string     `json:"password"`
	Guid     *uuid.UUID `json:"guid,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type updateUserRequest struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// Register handles the user registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var input registerRequest
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed registration body")
	}

	user, err := h.uc.Register(c.Request().Context(), usecase.RegisterInput{
		Username: input.Username,
		Password: input.Password,
		Guid:     input.Guid,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusCreated, toUserView(user))
}

// Login handles the user login request and returns the bearer token.
func (h *UserHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed login body")
	}

	out, err := h.uc.Login(c.Request().Context(), usecase.LoginInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, map[string]string{"token": out.Token})
}

// List handles the request for all users.
func (h *UserHandler) List(c echo.Context) error {
	users, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, toUserViews(users))
}

// Update handles the partial user patch.
func (h *UserHandler) Update(c echo.Context) error {
	guid, err := guidParam(c)
	if err != nil {
		return err
	}

	var input updateUserRequest
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed user patch body")
	}

	user, err := h.uc.Update(c.Request().Context(), deliverycontext.GetUser(c), guid, usecase.UpdateUserInput{
		Username: input.Username,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, toUserView(user))
}
