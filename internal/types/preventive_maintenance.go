package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task categories carried by both master templates and instances.
const (
	TaskCategoryPreventiveMaintenance = "PREVENTIVE_MAINTENANCE"
	TaskCategoryCorrectiveMaintenance = "CORRECTIVE_MAINTENANCE"
	TaskCategoryDamage                = "DAMAGE"
	TaskCategoryDeficiency            = "DEFICIENCY"
)

// Instance lifecycle. FUTURE and CURRENT instances are mutable by
// template propagation; COMPLETED and CANCELLED are immutable history.
// A master has at most one CURRENT instance at a time.
const (
	PMStatusFuture    = "FUTURE"
	PMStatusCurrent   = "CURRENT"
	PMStatusCompleted = "COMPLETED"
	PMStatusCancelled = "CANCELLED"
)

// MasterPreventiveMaintenance is the recurrence template. It owns its
// master-level link rows and is never hard-deleted.
type MasterPreventiveMaintenance struct {
	ID            uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProjectID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"project_id"`
	Project       *Project       `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	SubProjectID  *uuid.UUID     `gorm:"type:uuid;index" json:"sub_project_id,omitempty"`
	TaskCategory  string         `gorm:"column:task_category;not null" json:"task_category"`
	PMType        string         `gorm:"column:pm_type;not null" json:"pm_type"`
	WorkID        string         `gorm:"column:work_id;not null" json:"work_id"`
	WorkTitle     string         `gorm:"column:work_title;not null" json:"work_title"`
	IsRecurring   bool           `gorm:"column:is_recurring;not null;default:false" json:"is_recurring"`
	FrequencyDays int            `gorm:"column:frequency_days;not null;default:0" json:"frequency_days"`
	DueDate       time.Time      `gorm:"column:due_date;not null" json:"due_date"`
	IsActive      bool           `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt     time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (MasterPreventiveMaintenance) TableName() string { return "master_preventive_maintenance" }

// PreventiveMaintenance is one concrete occurrence generated from a
// master template, or a standalone one-off when the back-reference is
// nil. Link rows belong to the instance alone.
type PreventiveMaintenance struct {
	ID                            uuid.UUID                    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MasterPreventiveMaintenanceID *uuid.UUID                   `gorm:"type:uuid;index" json:"master_preventive_maintenance_id,omitempty"`
	MasterPreventiveMaintenance   *MasterPreventiveMaintenance `gorm:"foreignKey:MasterPreventiveMaintenanceID;references:ID" json:"master_preventive_maintenance,omitempty"`
	ProjectID                     uuid.UUID                    `gorm:"type:uuid;not null;index" json:"project_id"`
	Project                       *Project                     `gorm:"constraint:OnDelete:CASCADE;foreignKey:ProjectID;references:ID" json:"project,omitempty"`
	SubProjectID                  *uuid.UUID                   `gorm:"type:uuid;index" json:"sub_project_id,omitempty"`
	TaskCategory                  string                       `gorm:"column:task_category;not null" json:"task_category"`
	PMType                        string                       `gorm:"column:pm_type;not null" json:"pm_type"`
	WorkID                        string                       `gorm:"column:work_id;not null" json:"work_id"`
	WorkTitle                     string                       `gorm:"column:work_title;not null" json:"work_title"`
	Status                        string                       `gorm:"column:status;not null;index" json:"status"`
	DueDate                       time.Time                    `gorm:"column:due_date;not null" json:"due_date"`
	CompletedAt                   *time.Time                   `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt                     time.Time                    `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt                     time.Time                    `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt                     gorm.DeletedAt               `gorm:"index" json:"deleted_at,omitempty"`
}

func (PreventiveMaintenance) TableName() string { return "preventive_maintenance" }

// Mutable reports whether template-relation edits may still touch the
// instance.
func (pm *PreventiveMaintenance) Mutable() bool {
	if pm == nil {
		return false
	}
	return pm.Status == PMStatusFuture || pm.Status == PMStatusCurrent
}
