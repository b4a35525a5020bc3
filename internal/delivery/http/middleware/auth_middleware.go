package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	deliverycontext "mediarating/internal/delivery/context"
	domainerrors "mediarating/internal/domain/errors"
	"mediarating/internal/domain/service"
)

// AuthMiddleware resolves the bearer credential on protected routes.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token and stores the resolved user on
// the context. A missing or invalid credential ends the request with 401;
// handlers behind this middleware always see a requester.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c)
		if !ok {
			return domainerrors.ErrUnauthenticated
		}

		user, err := m.tokenSvc.Validate(c.Request().Context(), token)
		if err != nil {
			return domainerrors.ErrUnauthenticated
		}

		deliverycontext.SetUser(c, user)

		return next(c)
	}
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if authHeader == "" {
		return "", false
	}

	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return "", false
	}

	token := strings.TrimSpace(strings.TrimPrefix(authHeader, prefix))

	return token, token != ""
}
