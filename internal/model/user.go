package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role constants. The role set is a closed enum; per-report authority comes
// from the workflow capability engine, not a permission table.
const (
	RoleAdmin     = "ADMIN"
	RoleAO        = "AO"
	RoleAK        = "AK"
	RoleAKA       = "AKA"
	RoleAKP       = "AKP"
	RoleAM        = "AM"
	RoleGM        = "GM"
	RoleITSupport = "IT_SUPPORT"
)

// AllRoles lists every valid role, for validation and route gating.
var AllRoles = []string{RoleAdmin, RoleAO, RoleAK, RoleAKA, RoleAKP, RoleAM, RoleGM, RoleITSupport}

// ValidRole reports whether role is a member of the closed role set.
func ValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User represents the central user entity for logic and database structure
type User struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username   string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Name       string         `gorm:"type:varchar(255);not null" json:"name"`
	Password   string         `gorm:"type:varchar(255);not null" json:"-"` // Omit password from JSON requests/responses
	Role       string         `gorm:"type:varchar(20);not null;index" json:"role"`
	BranchCode string         `gorm:"type:varchar(50);not null;index" json:"branch_code"`
	AreaCode   string         `gorm:"type:varchar(50);not null;index" json:"area_code"`
	CreatedAt  time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"` // GORM soft delete
}

// RefreshToken stores long-lived tokens allowing users to request new access tokens
type RefreshToken struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Token     string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
