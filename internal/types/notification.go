package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Notification is the persisted in-app row written by the notification
// bridge. Push delivery to devices is best-effort and separate.
type Notification struct {
	ID                      uuid.UUID              `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID                  uuid.UUID              `gorm:"type:uuid;not null;index" json:"user_id"`
	User                    *User                  `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ActorID                 uuid.UUID              `gorm:"type:uuid;not null" json:"actor_id"`
	Actor                   *User                  `gorm:"foreignKey:ActorID;references:ID" json:"actor,omitempty"`
	PreventiveMaintenanceID *uuid.UUID             `gorm:"type:uuid;index" json:"preventive_maintenance_id,omitempty"`
	PreventiveMaintenance   *PreventiveMaintenance `gorm:"foreignKey:PreventiveMaintenanceID;references:ID" json:"preventive_maintenance,omitempty"`
	Message                 string                 `gorm:"column:message;not null" json:"message"`
	Payload                 datatypes.JSON         `gorm:"column:payload;type:jsonb" json:"payload"`
	IsRead                  bool                   `gorm:"column:is_read;not null;default:false" json:"is_read"`
	CreatedAt               time.Time              `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt               time.Time              `gorm:"not null;default:now()" json:"updated_at"`
}

func (Notification) TableName() string { return "notification" }
