package types

import (
	"time"

	"github.com/google/uuid"
)

type PreventiveMaintenanceAsset struct {
	ID                      uuid.UUID              `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	PreventiveMaintenanceID uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:ux_pm_asset" json:"preventive_maintenance_id"`
	PreventiveMaintenance   *PreventiveMaintenance `gorm:"constraint:OnDelete:CASCADE;foreignKey:PreventiveMaintenanceID;references:ID" json:"preventive_maintenance,omitempty"`
	AssetID                 uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex:ux_pm_asset" json:"asset_id"`
	Asset                   *Asset                 `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssetID;references:ID" json:"asset,omitempty"`
	CreatedAt               time.Time              `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt               time.Time              `gorm:"not null;default:now()" json:"updated_at"`
}

func (PreventiveMaintenanceAsset) TableName() string { return "preventive_maintenance_asset" }

type MasterPreventiveMaintenanceAsset struct {
	ID                            uuid.UUID                    `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	MasterPreventiveMaintenanceID uuid.UUID                    `gorm:"type:uuid;not null;uniqueIndex:ux_master_pm_asset" json:"master_preventive_maintenance_id"`
	MasterPreventiveMaintenance   *MasterPreventiveMaintenance `gorm:"constraint:OnDelete:CASCADE;foreignKey:MasterPreventiveMaintenanceID;references:ID" json:"master_preventive_maintenance,omitempty"`
	AssetID                       uuid.UUID                    `gorm:"type:uuid;not null;uniqueIndex:ux_master_pm_asset" json:"asset_id"`
	Asset                         *Asset                       `gorm:"constraint:OnDelete:CASCADE;foreignKey:AssetID;references:ID" json:"asset,omitempty"`
	CreatedAt                     time.Time                    `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt                     time.Time                    `gorm:"not null;default:now()" json:"updated_at"`
}

func (MasterPreventiveMaintenanceAsset) TableName() string {
	return "master_preventive_maintenance_asset"
}
