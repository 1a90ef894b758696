package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zsmartex/coreledger/controllers/helpers"
)

// RequireRole lets the request through only for users holding one of roles.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *fiber.Ctx) error {
		CurrentUser := GetCurrentUser(c)

		if CurrentUser == nil || !allowed[CurrentUser.Role] {
			return c.Status(403).JSON(helpers.Errors{
				Errors: []string{AuthzInvalidPermission},
			})
		}

		return c.Next()
	}
}
