package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sweetshop/inventory-api/internal/core/domain"
)

// Operation names used as keys into the policy table. Each protected route
// declares its operation; the table alone decides the minimum role.
const (
	OpListSweets    = "sweets:list"
	OpGetSweet      = "sweets:get"
	OpSearchSweets  = "sweets:search"
	OpCreateSweet   = "sweets:create"
	OpUpdateSweet   = "sweets:update"
	OpDeleteSweet   = "sweets:delete"
	OpRestockSweet  = "sweets:restock"
	OpPurchaseSweet = "sweets:purchase"
	OpListUsers     = "users:list"
	OpUpdateUser    = "users:update"
)

// policy is the single source of truth for role requirements.
// domain.RoleUser admits any authenticated caller; domain.RoleAdmin admits
// admins only. Registration and login are public and never consult the table.
var policy = map[string]string{
	OpListSweets:    domain.RoleUser,
	OpGetSweet:      domain.RoleUser,
	OpSearchSweets:  domain.RoleUser,
	OpCreateSweet:   domain.RoleUser,
	OpUpdateSweet:   domain.RoleAdmin,
	OpDeleteSweet:   domain.RoleAdmin,
	OpRestockSweet:  domain.RoleAdmin,
	OpPurchaseSweet: domain.RoleUser,
	OpListUsers:     domain.RoleAdmin,
	OpUpdateUser:    domain.RoleAdmin,
}

// Require enforces the policy entry for op against the role injected by Auth.
// An operation missing from the table is denied outright.
func Require(op string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, _ := c.Get("role").(string)
			if role == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}

			required, ok := policy[op]
			if !ok {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			if required == domain.RoleAdmin && role != domain.RoleAdmin {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
