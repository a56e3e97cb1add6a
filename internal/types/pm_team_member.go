package types

import (
	"time"

	"github.com/google/uuid"
)

type PreventiveMaintenanceTeamMember struct {
	ID                      uuid.UUID              `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PreventiveMaintenanceID uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:ux_pm_team_member" json:"preventive_maintenance_id"`
	PreventiveMaintenance   *PreventiveMaintenance `gorm:"constraint:OnDelete:CASCADE;foreignKey:PreventiveMaintenanceID;references:ID" json:"preventive_maintenance,omitempty"`
	UserID                  uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:ux_pm_team_member" json:"user_id"`
	User                    *User                  `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CreatedAt               time.Time              `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt               time.Time              `gorm:"not null;default:now()" json:"updated_at"`
}

func (PreventiveMaintenanceTeamMember) TableName() string {
	return "preventive_maintenance_team_member"
}

type MasterPreventiveMaintenanceTeamMember struct {
	ID                            uuid.UUID                    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MasterPreventiveMaintenanceID uuid.UUID                    `gorm:"type:uuid;not null;uniqueIndex:ux_master_pm_team_member" json:"master_preventive_maintenance_id"`
	MasterPreventiveMaintenance   *MasterPreventiveMaintenance `gorm:"constraint:OnDelete:CASCADE;foreignKey:MasterPreventiveMaintenanceID;references:ID" json:"master_preventive_maintenance,omitempty"`
	UserID                        uuid.UUID                    `gorm:"type:uuid;not null;uniqueIndex:ux_master_pm_team_member" json:"user_id"`
	User                          *User                        `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	CreatedAt                     time.Time                    `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt                     time.Time                    `gorm:"not null;default:now()" json:"updated_at"`
}

func (MasterPreventiveMaintenanceTeamMember) TableName() string {
	return "master_preventive_maintenance_team_member"
}
