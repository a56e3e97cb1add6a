package types

import (
	"time"

	"github.com/google/uuid"
)

type PreventiveMaintenanceArea struct {
	ID                      uuid.UUID              `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PreventiveMaintenanceID uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:ux_pm_area" json:"preventive_maintenance_id"`
	PreventiveMaintenance   *PreventiveMaintenance `gorm:"constraint:OnDelete:CASCADE;foreignKey:PreventiveMaintenanceID;references:ID" json:"preventive_maintenance,omitempty"`
	AreaID                  uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:ux_pm_area" json:"area_id"`
	Area                    *Area                  `gorm:"constraint:OnDelete:CASCADE;foreignKey:AreaID;references:ID" json:"area,omitempty"`
	CreatedAt               time.Time              `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt               time.Time              `gorm:"not null;default:now()" json:"updated_at"`
}

func (PreventiveMaintenanceArea) TableName() string { return "preventive_maintenance_area" }

type MasterPreventiveMaintenanceArea struct {
	ID                            uuid.UUID                    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MasterPreventiveMaintenanceID uuid.UUID                    `gorm:"type:uuid;not null;uniqueIndex:ux_master_pm_area" json:"master_preventive_maintenance_id"`
	MasterPreventiveMaintenance   *MasterPreventiveMaintenance `gorm:"constraint:OnDelete:CASCADE;foreignKey:MasterPreventiveMaintenanceID;references:ID" json:"master_preventive_maintenance,omitempty"`
	AreaID                        uuid.UUID                    `gorm:"type:uuid;not null;uniqueIndex:ux_master_pm_area" json:"area_id"`
	Area                          *Area                        `gorm:"constraint:OnDelete:CASCADE;foreignKey:AreaID;references:ID" json:"area,omitempty"`
	CreatedAt                     time.Time                    `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt                     time.Time                    `gorm:"not null;default:now()" json:"updated_at"`
}

func (MasterPreventiveMaintenanceArea) TableName() string {
	return "master_preventive_maintenance_area"
}
