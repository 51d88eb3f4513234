package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Roles used by mission deployments. A user may carry several, e.g. a
// dentist who also coordinates sync for their site.
const (
	RoleAdmin       = "admin"
	RoleDentist     = "dentist"
	RoleHygienist   = "hygienist"
	RoleIntake      = "intake"
	RoleCoordinator = "coordinator"
)

// RequireRole returns middleware that checks if the user has at least one of
// the specified roles. Admin passes every check.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userRoles := RolesFromContext(c.Request().Context())
			for _, required := range roles {
				for _, has := range userRoles {
					if has == required || has == RoleAdmin {
						return next(c)
					}
				}
			}
			return echo.NewHTTPError(http.StatusForbidden,
				fmt.Sprintf("required role: %s", strings.Join(roles, " or ")))
		}
	}
}

// IsClinical reports whether the role may author assessments and treatments.
func IsClinical(role string) bool {
	return role == RoleDentist || role == RoleHygienist || role == RoleAdmin
}

// RequireClinical restricts a route to users who may author clinical records.
func RequireClinical() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			for _, role := range RolesFromContext(c.Request().Context()) {
				if IsClinical(role) {
					return next(c)
				}
			}
			return echo.NewHTTPError(http.StatusForbidden, "clinical role required")
		}
	}
}
