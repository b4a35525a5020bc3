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

// MediaHandler holds dependencies for media-related handlers.
type MediaHandler struct {
	uc     usecase.MediaUsecase
	logger *slog.Logger
}

// NewMediaHandler is the constructor for MediaHandler, injected by Fx.
func NewMediaHandler(uc usecase.MediaUsecase, logger *slog.Logger) *MediaHandler {
	return &MediaHandler{uc: uc, logger: logger}
}

type createMediaRequest struct {
	Kind           string     `json:"kind"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	ReleaseYear    int        `json:"releaseYear"`
	AgeRestriction int        `json:"ageRestriction"`
	Genres         []string   `json:"genres"`
	UserGuid       *uuid.UUID `json:"userGuid,omitempty"`
}

type updateMediaRequest struct {
	Kind           *string  `json:"kind"`
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	ReleaseYear    *int     `json:"releaseYear"`
	AgeRestriction *int     `json:"ageRestriction"`
	Genres         []string `json:"genres"`
}

// List handles the request for the full catalogue.
func (h *MediaHandler) List(c echo.Context) error {
	entries, err := h.uc.List(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, toMediaViews(entries))
}

// Get handles the request for a single entry by guid.
func (h *MediaHandler) Get(c echo.Context) error {
	guid, err := guidParam(c)
	if err != nil {
		return err
	}

	entry, err := h.uc.GetByGuid(c.Request().Context(), guid)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, toMediaView(entry))
}

// Create handles cataloguing a new entry for the authenticated user.
func (h *MediaHandler) Create(c echo.Context) error {
	var input createMediaRequest
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed media body")
	}

	entry, err := h.uc.Create(c.Request().Context(), deliverycontext.GetUser(c), usecase.CreateMediaInput{
		Kind:           input.Kind,
		Title:          input.Title,
		Description:    input.Description,
		ReleaseYear:    input.ReleaseYear,
		AgeRestriction: input.AgeRestriction,
		Genres:         input.Genres,
		UserGuid:       input.UserGuid,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusCreated, toMediaView(entry))
}

// Update handles the partial media patch.
func (h *MediaHandler) Update(c echo.Context) error {
	guid, err := guidParam(c)
	if err != nil {
		return err
	}

	var input updateMediaRequest
	if err := c.Bind(&input); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed media patch body")
	}

	entry, err := h.uc.Update(c.Request().Context(), deliverycontext.GetUser(c), guid, usecase.UpdateMediaInput{
		Kind:           input.Kind,
		Title:          input.Title,
		Description:    input.Description,
		ReleaseYear:    input.ReleaseYear,
		AgeRestriction: input.AgeRestriction,
		Genres:         input.Genres,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, toMediaView(entry))
}

// Delete handles ownership-checked removal of an entry.
func (h *MediaHandler) Delete(c echo.Context) error {
	guid, err := guidParam(c)
	if err != nil {
		return err
	}

	if err := h.uc.Delete(c.Request().Context(), deliverycontext.GetUser(c), guid); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// AverageRating handles the derived {avg, count} request.
func (h *MediaHandler) AverageRating(c echo.Context) error {
	guid, err := guidParam(c)
	if err != nil {
		return err
	}

	aggregate, err := h.uc.AverageRating(c.Request().Context(), guid)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, toRatingAggregateView(aggregate))
}
