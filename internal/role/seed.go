package role

import (
	"errors"

	"github.com/kasirapp/user-api/internal/models"
	"gorm.io/gorm"
)

// AdminRoleID is the well-known admin role; the listing statistics count
// active users holding it.
const (
	OwnerRoleID    = "role_owner"
	AdminRoleID    = "role_admin"
	CustomerRoleID = "role_customer"
)

func SeedDefaultRoles(db *gorm.DB) error {
	roles := []models.Role{
		{ID: OwnerRoleID, Name: "Owner"},
		{ID: AdminRoleID, Name: "Admin"},
		{ID: CustomerRoleID, Name: "Customer"},
	}

	for _, r := range roles {
		var existing models.Role
		result := db.Where("id = ?", r.ID).First(&existing)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			if err := db.Create(&r).Error; err != nil {
				return err
			}
		}
	}

	return nil
}
