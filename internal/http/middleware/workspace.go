package middleware

import (
	"context"
	"net/http"

	"harborcrm/internal/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// WorkspaceResolver middleware resolves the workspace from the
// X-Workspace-ID header and checks that the authenticated user is a
// member of it. Runs after JWTAuth.
func WorkspaceResolver(authService *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("X-Workspace-ID")
			if header == "" {
				return echo.NewHTTPError(http.StatusBadRequest, "Workspace ID is required")
			}

			workspaceID, err := uuid.Parse(header)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "Invalid workspace ID format")
			}

			userID, ok := c.Get("user_id").(uuid.UUID)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "User context missing")
			}

			member, err := authService.AuthorizeWorkspace(userID, workspaceID)
			if err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "Not a member of this workspace")
			}

			c.Set("workspace_id", workspaceID)
			c.Set("workspace_role", member.Role)

			ctx := context.WithValue(c.Request().Context(), workspaceContextKey{}, workspaceID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

type workspaceContextKey struct{}

// WorkspaceID returns the workspace resolved for the request.
func WorkspaceID(c echo.Context) uuid.UUID {
	if id, ok := c.Get("workspace_id").(uuid.UUID); ok {
		return id
	}
	return uuid.Nil
}

// RequireWrite middleware ensures the member role allows mutating CRM data
func RequireWrite() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("workspace_role").(string)
			if !ok {
				return echo.NewHTTPError(http.StatusForbidden, "Workspace context missing")
			}

			switch role {
			case "owner", "admin", "member":
				return next(c)
			}

			return echo.NewHTTPError(http.StatusForbidden, "Insufficient workspace permissions")
		}
	}
}
