package user

import (
	"strings"
	"time"

	"github.com/kasirapp/user-api/internal/models"
	"github.com/kasirapp/user-api/internal/role"
	"gorm.io/gorm"
)

type ListParams struct {
	Status  string // "active", "inactive" or "all"
	Page    int
	PerPage int
	Search  string
	Role    string
}

// UserRow is the wire shape of a user: role name joined in, password hash
// never included.
type UserRow struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	RoleID    string    `json:"role_id"`
	RoleName  string    `json:"role_name"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Statistics struct {
	Total      int64 `json:"total"`
	Active     int64 `json:"active"`
	Inactive   int64 `json:"inactive"`
	AdminCount int64 `json:"admin_count"`
	NewUsers   int64 `json:"new_users"`
}

const userColumns = "users.id, users.name, users.email, users.username, users.role_id, " +
	"roles.name AS role_name, users.is_active, users.created_at, users.updated_at"

// likeEscaper neutralizes LIKE metacharacters in user input so a literal
// % or _ in the search term does not act as a wildcard. The queries carry
// a matching ESCAPE '!' clause; ! is used because a backslash escape
// constant is itself escaped differently across MySQL and Postgres.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func applyFilters(db *gorm.DB, params ListParams) *gorm.DB {
	query := db.Model(&models.User{})

	switch params.Status {
	case "active":
		query = query.Where("users.is_active = ?", true)
	case "inactive":
		query = query.Where("users.is_active = ?", false)
	}
	// "all" applies no status filter

	if search := strings.TrimSpace(params.Search); search != "" {
		pattern := "%" + likeEscaper.Replace(search) + "%"
		if db.Dialector.Name() == "postgres" {
			query = query.Where(
				"(users.name ILIKE ? ESCAPE '!' OR users.email ILIKE ? ESCAPE '!' OR users.username ILIKE ? ESCAPE '!')",
				pattern, pattern, pattern,
			)
		} else {
			pattern = strings.ToLower(pattern)
			query = query.Where(
				"(LOWER(users.name) LIKE ? ESCAPE '!' OR LOWER(users.email) LIKE ? ESCAPE '!' OR LOWER(users.username) LIKE ? ESCAPE '!')",
				pattern, pattern, pattern,
			)
		}
	}

	if params.Role != "" {
		query = query.Where("users.role_id = ?", params.Role)
	}

	return query
}

// ListUsers counts with the same WHERE clause as the page fetch, then
// fetches one page joined with the role name. Ordering is created_at
// descending with id as tie-breaker so pagination stays deterministic.
func ListUsers(db *gorm.DB, params ListParams) ([]UserRow, int64, error) {
	var total int64
	if err := applyFilters(db, params).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (params.Page - 1) * params.PerPage

	users := []UserRow{}
	err := applyFilters(db, params).
		Select(userColumns).
		Joins("LEFT JOIN roles ON roles.id = users.role_id").
		Order("users.created_at DESC, users.id DESC").
		Limit(params.PerPage).
		Offset(offset).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// GetStatistics is global: it ignores the request's filters on purpose.
func GetStatistics(db *gorm.DB) (*Statistics, error) {
	newUserCutoff := time.Now().AddDate(0, 0, -30)

	var stats Statistics
	err := db.Model(&models.User{}).
		Select(
			"COUNT(*) AS total, "+
				"COALESCE(SUM(CASE WHEN is_active THEN 1 ELSE 0 END), 0) AS active, "+
				"COALESCE(SUM(CASE WHEN is_active THEN 0 ELSE 1 END), 0) AS inactive, "+
				"COALESCE(SUM(CASE WHEN role_id = ? AND is_active THEN 1 ELSE 0 END), 0) AS admin_count, "+
				"COALESCE(SUM(CASE WHEN created_at >= ? THEN 1 ELSE 0 END), 0) AS new_users",
			role.AdminRoleID, newUserCutoff,
		).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

// FindUserRow fetches one user joined with its role name. Returns
// gorm.ErrRecordNotFound for an unknown id.
func FindUserRow(db *gorm.DB, id string) (*UserRow, error) {
	var row UserRow
	err := db.Model(&models.User{}).
		Select(userColumns).
		Joins("LEFT JOIN roles ON roles.id = users.role_id").
		Where("users.id = ?", id).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func userExists(db *gorm.DB, id string) error {
	var existing models.User
	return db.Select("id").Where("id = ?", id).Take(&existing).Error
}

// EmailTaken checks email uniqueness across all rows, active or inactive.
// This is a pre-flight convenience; the unique index is the real guard.
func EmailTaken(db *gorm.DB, email, excludeID string) (bool, error) {
	query := db.Model(&models.User{}).Where("email = ?", email)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var n int64
	if err := query.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func UsernameTaken(db *gorm.DB, username, excludeID string) (bool, error) {
	query := db.Model(&models.User{}).Where("username = ?", username)
	if excludeID != "" {
		query = query.Where("id <> ?", excludeID)
	}

	var n int64
	if err := query.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func CreateUser(db *gorm.DB, u *models.User) error {
	return db.Create(u).Error
}

func UpdateUser(db *gorm.DB, id string, updates map[string]interface{}) error {
	if err := userExists(db, id); err != nil {
		return err
	}
	updates["updated_at"] = time.Now()
	return db.Model(&models.User{}).Where("id = ?", id).Updates(updates).Error
}

// SetActive backs both deactivate (soft delete) and restore. Idempotent:
// setting the flag to its current value succeeds without error.
func SetActive(db *gorm.DB, id string, active bool) error {
	if err := userExists(db, id); err != nil {
		return err
	}
	return db.Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  active,
			"updated_at": time.Now(),
		}).Error
}

// ToggleActive flips is_active in a single conditional UPDATE, so two
// concurrent toggles on the same id each flip exactly once.
func ToggleActive(db *gorm.DB, id string) (bool, error) {
	if err := userExists(db, id); err != nil {
		return false, err
	}

	err := db.Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  gorm.Expr("NOT is_active"),
			"updated_at": time.Now(),
		}).Error
	if err != nil {
		return false, err
	}

	var u models.User
	if err := db.Select("is_active").Where("id = ?", id).Take(&u).Error; err != nil {
		return false, err
	}
	return u.IsActive, nil
}
