package model

import (
	"time"

	"github.com/google/uuid"
)

// ReportStatus enum constants
const (
	StatusDraft     = "DRAFT"
	StatusSubmitted = "SUBMITTED"
	StatusReturned  = "RETURNED"
	StatusApproved  = "APPROVED"
)

// ReportType enum constants. KC reports finish at the AK stage;
// AREA and KP reports travel the full AK -> AKA -> AKP chain.
const (
	TypeKC   = "KC"
	TypeArea = "AREA"
	TypeKP   = "KP"
)

// Review stage constants (also double as reviewer roles)
const (
	StageAK  = "AK"
	StageAKA = "AKA"
	StageAKP = "AKP"
)

// Report is the central entity: a credit survey compiled by an AO that moves
// through the review chain. Branch, area, author and type are fixed at creation
// and never touched by any review action.
type Report struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	AoID            uuid.UUID  `gorm:"type:uuid;not null;index" json:"ao_id"`
	AoName          string     `gorm:"type:varchar(255);not null" json:"ao_name"`
	Branch          string     `gorm:"type:varchar(50);not null;index" json:"branch"`
	AreaCode        string     `gorm:"type:varchar(50);not null;index" json:"area_code"`
	ReportType      string     `gorm:"type:varchar(10);not null;index" json:"report_type"`
	Status          string     `gorm:"type:varchar(20);not null;index" json:"status"`
	CurrentStage    string     `gorm:"type:varchar(10);not null;default:'AK'" json:"current_stage"`
	AssignedToID    *uuid.UUID `gorm:"type:uuid;index" json:"assigned_to_id"`
	AssignedToName  string     `gorm:"type:varchar(255)" json:"assigned_to_name"`
	CorrectionNotes string     `gorm:"type:text" json:"correction_notes"`
	ViewedByAK      bool       `gorm:"not null;default:false" json:"viewed_by_ak"`
	IsRevision      bool       `gorm:"not null;default:false" json:"is_revision"`
	Data            ReportData `gorm:"type:jsonb;serializer:json" json:"data"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time  `gorm:"index" json:"updated_at"`
}

// Assignee identifies the AK an AO picked at submission time.
type Assignee struct {
	ID   uuid.UUID
	Name string
}

// NewReport builds a report with the construction defaults: branch/area copied
// from the author, stage AK unconditionally (unused downstream for KC), and
// status derived from whether a reviewer was chosen.
func NewReport(author Actor, data ReportData, reportType string, assignedTo *Assignee) *Report {
	now := time.Now()
	r := &Report{
		AoID:         author.ID,
		AoName:       author.Name,
		Branch:       author.BranchCode,
		AreaCode:     author.AreaCode,
		ReportType:   reportType,
		Status:       StatusDraft,
		CurrentStage: StageAK,
		Data:         data,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if assignedTo != nil {
		id := assignedTo.ID
		r.AssignedToID = &id
		r.AssignedToName = assignedTo.Name
		r.Status = StatusSubmitted
	}
	return r
}

// IsMultiStage reports whether the report travels past the AK stage.
func (r *Report) IsMultiStage() bool {
	return r.ReportType == TypeArea || r.ReportType == TypeKP
}

// IsAssigned reports whether an AK has been chosen for this report.
func (r *Report) IsAssigned() bool {
	return r.AssignedToID != nil
}

// Actor is the acting user as seen by the workflow and visibility engines.
type Actor struct {
	ID         uuid.UUID
	Name       string
	Role       string
	BranchCode string
	AreaCode   string
}

// ActorFromUser projects a stored user onto the workflow actor shape.
func ActorFromUser(u *User) Actor {
	return Actor{
		ID:         u.ID,
		Name:       u.Name,
		Role:       u.Role,
		BranchCode: u.BranchCode,
		AreaCode:   u.AreaCode,
	}
}
