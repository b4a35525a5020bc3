package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"mediarating/internal/delivery/http/response"
	domainerrors "mediarating/internal/domain/errors"
)

// guidParam parses the :guid path parameter. A malformed value is a plain
// input error, not a routing miss.
func guidParam(c echo.Context) (uuid.UUID, error) {
	guid, err := uuid.Parse(c.Param("guid"))
	if err != nil {
		return uuid.Nil, domainerrors.ErrValidationFailed.WithDetails("malformed guid path parameter")
	}

	return guid, nil
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.JSON(c, http.StatusOK, map[string]string{"status": "ok"})
}
