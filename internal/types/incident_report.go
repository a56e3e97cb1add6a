package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	IncidentStatusOpen       = "OPEN"
	IncidentStatusInProgress = "IN_PROGRESS"
	IncidentStatusResolved   = "RESOLVED"
	IncidentStatusClosed     = "CLOSED"
)

type IncidentReport struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProjectID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"project_id"`
	Project     *Project       `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	IncidentID  string         `gorm:"column:incident_id;not null" json:"incident_id"`
	Title       string         `gorm:"column:title;not null" json:"title"`
	Description string         `gorm:"column:description" json:"description"`
	Status      string         `gorm:"column:status;not null" json:"status"`
	Priority    string         `gorm:"column:priority" json:"priority"`
	CreatedByID uuid.UUID      `gorm:"type:uuid;not null;index" json:"created_by_id"`
	CreatedBy   *User          `gorm:"foreignKey:CreatedByID;references:ID" json:"created_by,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (IncidentReport) TableName() string { return "incident_report" }

type IncidentReportTeamMember struct {
	ID               uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	IncidentReportID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_incident_team_member" json:"incident_report_id"`
	IncidentReport   *IncidentReport `gorm:"constraint:OnDelete:CASCADE;foreignKey:IncidentReportID;references:ID" json:"incident_report,omitempty"`
	UserID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:ux_incident_team_member" json:"user_id"`
	User             *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CreatedAt        time.Time       `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (IncidentReportTeamMember) TableName() string { return "incident_report_team_member" }
