package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
)

// PathMiddleware normalizes the request path before routing: matching is
// case-insensitive and tolerates trailing slashes, so /API/Users/ dispatches
// to the same handler as /api/users.
type PathMiddleware struct{}

// NewPathMiddleware creates the path normalization middleware.
func NewPathMiddleware() *PathMiddleware {
	return &PathMiddleware{}
}

// Handle rewrites the request path to its canonical lowercase,
// no-trailing-slash form. Guid path parameters survive the lowercasing
// since their hex form is case-insensitive.
func (m *PathMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		req := c.Request()

		path := strings.ToLower(req.URL.Path)
		if len(path) > 1 {
			path = strings.TrimRight(path, "/")
		}
		if path == "" {
			path = "/"
		}

		if path != req.URL.Path {
			req.URL.Path = path
			req.URL.RawPath = ""
		}

		return next(c)
	}
}
