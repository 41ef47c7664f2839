package user

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/kasirapp/user-api/internal/database"
	"github.com/kasirapp/user-api/internal/models"
	"github.com/kasirapp/user-api/internal/response"
	"github.com/kasirapp/user-api/internal/role"
	"github.com/kasirapp/user-api/internal/utils"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"
)

// Display names are free text from clients; strip any markup before storing.
var namePolicy = bluemonday.StrictPolicy()

func isValidEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	return err == nil && addr.Address == s
}

func ListUsersHandler(c *fiber.Ctx) error {
	params := ListParams{
		Status:  c.Query("status", "all"),
		Page:    c.QueryInt("page", 1),
		PerPage: c.QueryInt("per_page", 20),
		Search:  c.Query("search"),
		Role:    c.Query("role"),
	}

	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage < 1 {
		params.PerPage = 1
	}
	if params.PerPage > 100 {
		params.PerPage = 100
	}

	users, total, err := ListUsers(database.DB, params)
	if err != nil {
		return response.InternalError(c, "Failed to fetch users: "+err.Error())
	}

	stats, err := GetStatistics(database.DB)
	if err != nil {
		return response.InternalError(c, "Failed to fetch users: "+err.Error())
	}

	pagination := response.CalculatePagination(params.Page, params.PerPage, total)

	return response.List(c, users, pagination, stats)
}

func CreateUserHandler(c *fiber.Ctx) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
		RoleID   string `json:"role_id"`
		IsActive *bool  `json:"is_active"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	required := []struct {
		field string
		value string
	}{
		{"name", body.Name},
		{"email", body.Email},
		{"username", body.Username},
		{"password", body.Password},
		{"role_id", body.RoleID},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return response.BadRequest(c, fmt.Sprintf("Field '%s' is required", r.field))
		}
	}

	if !isValidEmail(body.Email) {
		return response.BadRequest(c, "Invalid email format")
	}

	taken, err := EmailTaken(database.DB, body.Email, "")
	if err != nil {
		return response.InternalError(c, "Failed to create user: "+err.Error())
	}
	if taken {
		return response.BadRequest(c, "Email already exists")
	}

	taken, err = UsernameTaken(database.DB, body.Username, "")
	if err != nil {
		return response.InternalError(c, "Failed to create user: "+err.Error())
	}
	if taken {
		return response.BadRequest(c, "Username already exists")
	}

	roleExists, err := role.Exists(database.DB, body.RoleID)
	if err != nil {
		return response.InternalError(c, "Failed to create user: "+err.Error())
	}
	if !roleExists {
		return response.BadRequest(c, "Role not found")
	}

	passwordHash, err := utils.HashPassword(body.Password)
	if err != nil {
		return response.InternalError(c, "Failed to hash password")
	}

	isActive := true
	if body.IsActive != nil {
		isActive = *body.IsActive
	}

	user := models.User{
		ID:           utils.NewUserID(),
		Name:         namePolicy.Sanitize(body.Name),
		Email:        body.Email,
		Username:     body.Username,
		PasswordHash: passwordHash,
		RoleID:       body.RoleID,
		IsActive:     isActive,
	}

	if err := CreateUser(database.DB, &user); err != nil {
		// The unique indexes are the authoritative guard; a concurrent
		// create can slip past the pre-flight checks above.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.BadRequest(c, "Email or username already exists")
		}
		return response.InternalError(c, "Failed to create user: "+err.Error())
	}

	row, err := FindUserRow(database.DB, user.ID)
	if err != nil {
		return response.InternalError(c, "Failed to create user: "+err.Error())
	}

	return response.Success(c, row, "User created successfully")
}

func UpdateUserHandler(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return response.BadRequest(c, "User ID is required")
	}

	// Pointer fields distinguish "absent" from "explicitly empty/false".
	var body struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Username *string `json:"username"`
		Password *string `json:"password"`
		RoleID   *string `json:"role_id"`
		IsActive *bool   `json:"is_active"`
	}

	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := userExists(database.DB, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User")
		}
		return response.InternalError(c, "Failed to update user: "+err.Error())
	}

	updates := map[string]interface{}{}

	if body.Name != nil {
		updates["name"] = namePolicy.Sanitize(*body.Name)
	}

	if body.Email != nil {
		if !isValidEmail(*body.Email) {
			return response.BadRequest(c, "Invalid email format")
		}
		taken, err := EmailTaken(database.DB, *body.Email, id)
		if err != nil {
			return response.InternalError(c, "Failed to update user: "+err.Error())
		}
		if taken {
			return response.BadRequest(c, "Email already exists")
		}
		updates["email"] = *body.Email
	}

	if body.Username != nil {
		taken, err := UsernameTaken(database.DB, *body.Username, id)
		if err != nil {
			return response.InternalError(c, "Failed to update user: "+err.Error())
		}
		if taken {
			return response.BadRequest(c, "Username already exists")
		}
		updates["username"] = *body.Username
	}

	// An empty password is a no-op, not a clear-password request.
	if body.Password != nil && *body.Password != "" {
		passwordHash, err := utils.HashPassword(*body.Password)
		if err != nil {
			return response.InternalError(c, "Failed to hash password")
		}
		updates["password_hash"] = passwordHash
	}

	if body.RoleID != nil {
		roleExists, err := role.Exists(database.DB, *body.RoleID)
		if err != nil {
			return response.InternalError(c, "Failed to update user: "+err.Error())
		}
		if !roleExists {
			return response.BadRequest(c, "Role not found")
		}
		updates["role_id"] = *body.RoleID
	}

	if body.IsActive != nil {
		updates["is_active"] = *body.IsActive
	}

	if len(updates) == 0 {
		return response.BadRequest(c, "No fields to update")
	}

	if err := UpdateUser(database.DB, id, updates); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return response.BadRequest(c, "Email or username already exists")
		}
		return response.InternalError(c, "Failed to update user: "+err.Error())
	}

	row, err := FindUserRow(database.DB, id)
	if err != nil {
		return response.InternalError(c, "Failed to update user: "+err.Error())
	}

	return response.Success(c, row, "User updated successfully")
}

// DeleteUserHandler soft-deletes: the row stays, is_active goes false.
func DeleteUserHandler(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return response.BadRequest(c, "User ID is required")
	}

	if err := SetActive(database.DB, id, false); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User")
		}
		return response.InternalError(c, "Failed to deactivate user: "+err.Error())
	}

	return response.SuccessMessage(c, "User deactivated successfully")
}

func RestoreUserHandler(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return response.BadRequest(c, "User ID is required")
	}

	if err := SetActive(database.DB, id, true); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User")
		}
		return response.InternalError(c, "Failed to activate user: "+err.Error())
	}

	return response.SuccessMessage(c, "User activated successfully")
}

func ToggleUserStatusHandler(c *fiber.Ctx) error {
	id := c.Query("id")
	if id == "" {
		return response.BadRequest(c, "User ID is required")
	}

	isActive, err := ToggleActive(database.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return response.NotFound(c, "User")
		}
		return response.InternalError(c, "Failed to toggle user status: "+err.Error())
	}

	statusText := "deactivated"
	if isActive {
		statusText = "activated"
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"message":   fmt.Sprintf("User %s successfully", statusText),
		"is_active": isActive,
	})
}

func PatchUserHandler(c *fiber.Ctx) error {
	switch c.Query("action") {
	case "restore":
		return RestoreUserHandler(c)
	case "toggle-status":
		return ToggleUserStatusHandler(c)
	default:
		return response.BadRequest(c, "Invalid PATCH action")
	}
}
