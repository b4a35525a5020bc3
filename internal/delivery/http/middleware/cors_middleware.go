// Package middleware holds the HTTP middlewares for the echo server.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CORSMiddleware stamps permissive cross-origin headers on every response
// and short-circuits OPTIONS requests to an empty 204 before routing and
// authentication run.
type CORSMiddleware struct{}

// NewCORSMiddleware creates the CORS middleware.
func NewCORSMiddleware() *CORSMiddleware {
	return &CORSMiddleware{}
}

// Handle applies the cross-origin headers and answers preflights.
func (m *CORSMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Response().Header()
		header.Set(echo.HeaderAccessControlAllowOrigin, "*")
		header.Set(echo.HeaderAccessControlAllowMethods, "GET, POST, PUT, DELETE, OPTIONS")
		header.Set(echo.HeaderAccessControlAllowHeaders, "Content-Type, Authorization")

		if c.Request().Method == http.MethodOptions {
			return c.NoContent(http.StatusNoContent)
		}

		return next(c)
	}
}
