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

// RatingHandler holds dependencies for rating-related handlers.
type RatingHandler struct {
	uc     usecase.RatingUsecase
	logger *slog.Logger
}

// NewRatingHandler is the constructor for RatingHandler, injected by Fx.
func NewRatingHandler(uc usecase.RatingUsecase, logger *slog.Logger) *RatingHandler {
	return &RatingHandler{uc: uc, logger: logger}
}

type createRatingRequest struct {
	UserGuid  uuid.UUID `json:"userGuid" validate:"required"`
	MediaGuid uuid.UUID `json:"mediaGuid" validate:"required"`
	Stars     int       `json:"stars"`
	Comment   string    `json:"comment"`
}

type updateRatingRequest struct {
	Stars     int     `json:"stars"`
	Comment   *string `json:"comment"`
	Confirmed *bool   `json:"confirmed"`
}

// Create handles an open rating submission.
func (h *RatingHandler) Create(c echo.Context) error {
	var input createRatingRequest
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed rating body")
	}
	if err := c.Validate(&input); err != nil {
		return err
	}

	rating, err := h.uc.Create(c.Request().Context(), usecase.CreateRatingInput{
		UserGuid:  input.UserGuid,
		MediaGuid: input.MediaGuid,
		Stars:     input.Stars,
		Comment:   input.Comment,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusCreated, toRatingView(rating))
}

// ListForMedia handles the request for all ratings targeting an entry.
func (h *RatingHandler) ListForMedia(c echo.Context) error {
	guid, err := guidParam(c)
	if err != nil {
		return err
	}

	ratings, err := h.uc.ListForMedia(c.Request().Context(), guid)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, toRatingViews(ratings))
}

// ListForUser handles the request for all ratings submitted by a user.
func (h *RatingHandler) ListForUser(c echo.Context) error {
	guid, err := guidParam(c)
	if err != nil {
		return err
	}

	ratings, err := h.uc.ListForUser(c.Request().Context(), guid)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, toRatingViews(ratings))
}

// Update handles the ownership-checked rating patch.
func (h *RatingHandler) Update(c echo.Context) error {
	guid, err := guidParam(c)
	if err != nil {
		return err
	}

	var input updateRatingRequest
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed rating patch body")
	}

	rating, err := h.uc.Update(c.Request().Context(), deliverycontext.GetUser(c), guid, usecase.UpdateRatingInput{
		Stars:     input.Stars,
		Comment:   input.Comment,
		Confirmed: input.Confirmed,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, toRatingView(rating))
}

// Delete handles removal addressed by rating guid.
func (h *RatingHandler) Delete(c echo.Context) error {
	guid, err := guidParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), deliverycontext.GetUser(c), guid); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// DeleteForPair handles removal addressed by (userGuid, mediaGuid) query
// parameters.
func (h *RatingHandler) DeleteForPair(c echo.Context) error {
	userGuid, err := uuid.Parse(c.QueryParam("userGuid"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed userGuid query parameter")
	}
	mediaGuid, err := uuid.Parse(c.QueryParam("mediaGuid"))
	if err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed mediaGuid query parameter")
	}

	if err := h.uc.DeleteForPair(c.Request().Context(), deliverycontext.GetUser(c), userGuid, mediaGuid); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}
