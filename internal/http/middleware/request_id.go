package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// RequestID assigns each request a correlation id. A client-supplied
// X-Request-ID is honored only when it is a valid UUID.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			requestID := c.Request().Header.Get("X-Request-ID")
			if _, err := uuid.Parse(requestID); err != nil {
				requestID = uuid.New().String()
			}

			c.Response().Header().Set("X-Request-ID", requestID)
			c.Set("request_id", requestID)

			return next(c)
		}
	}
}
