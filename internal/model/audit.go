package model

import (
	"time"

	"github.com/google/uuid"
)

// Report workflow actions
const (
	ActionCreateReport     = "CREATE_REPORT"
	ActionSubmitReport     = "SUBMIT_REPORT"
	ActionSaveReportDraft  = "SAVE_REPORT_DRAFT"
	ActionOpenReport       = "OPEN_REPORT"
	ActionApproveReport    = "APPROVE_REPORT"
	ActionReturnReport     = "RETURN_REPORT"
	ActionForwardReport    = "FORWARD_REPORT"
	ActionCancelSubmission = "CANCEL_SUBMISSION"
	ActionDeleteReport     = "DELETE_REPORT"
	ActionITOverrideEdit   = "IT_OVERRIDE_EDIT"

	// User / master data actions
	ActionCreateUser   = "CREATE_USER"
	ActionUpdateUser   = "UPDATE_USER"
	ActionDeleteUser   = "DELETE_USER"
	ActionAddBranch    = "ADD_BRANCH"
	ActionDeleteBranch = "DELETE_BRANCH"
	ActionAddArea      = "ADD_AREA"
	ActionDeleteArea   = "DELETE_AREA"
)

// AuditLog tracks Who, What, and When for critical system changes
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"user_id"` // Nullable gracefully if automated job
	User       *User      `gorm:"foreignKey:UserID" json:"user"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(50);index" json:"entity_id"`        // Reference string (uuid/code)
	EntityName string     `gorm:"type:varchar(255)" json:"entity_name,omitempty"` // Human readable name
	Details    string     `gorm:"type:jsonb" json:"details"`                      // Serialized JSON payload of the action
	CreatedAt  time.Time  `gorm:"index" json:"created_at"`
}
