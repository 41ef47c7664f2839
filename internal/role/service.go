package role

import (
	"github.com/kasirapp/user-api/internal/models"
	"gorm.io/gorm"
)

func ListRoles(db *gorm.DB) ([]models.Role, error) {
	var roles []models.Role
	if err := db.Order("id").Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func Exists(db *gorm.DB, id string) (bool, error) {
	var n int64
	if err := db.Model(&models.Role{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
