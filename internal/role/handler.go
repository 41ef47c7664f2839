package role

import (
	"github.com/gofiber/fiber/v2"
	"github.com/kasirapp/user-api/internal/database"
	"github.com/kasirapp/user-api/internal/response"
)

// Roles are a read-only lookup; this endpoint only exists so clients can
// populate role_id choices.
func ListRolesHandler(c *fiber.Ctx) error {
	roles, err := ListRoles(database.DB)
	if err != nil {
		return response.InternalError(c, "Failed to fetch roles: "+err.Error())
	}

	return response.Success(c, roles, "Roles retrieved successfully")
}
