package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/steadyops/facilities-backend/internal/types"
)

func PtrUUID(id uuid.UUID) *uuid.UUID { return &id }

func PtrString(s string) *string { return &s }

func PtrTime(ts time.Time) *time.Time { return &ts }

func SeedProject(t *testing.T, tx *gorm.DB, name string, prefix *string) *types.Project {
	t.Helper()
	p := &types.Project{
		ID:           uuid.New(),
		Name:         name,
		WorkIDPrefix: prefix,
	}
	if err := tx.Create(p).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return p
}

func SeedUser(t *testing.T, tx *gorm.DB, firstName, lastName string) *types.User {
	t.Helper()
	u := &types.User{
		ID:        uuid.New(),
		Email:     fmt.Sprintf("%s.%s.%s@example.com", firstName, lastName, uuid.NewString()[:8]),
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := tx.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func SeedAsset(t *testing.T, tx *gorm.DB, projectID uuid.UUID, name string) *types.Asset {
	t.Helper()
	a := &types.Asset{
		ID:        uuid.New(),
		ProjectID: projectID,
		Name:      name,
	}
	if err := tx.Create(a).Error; err != nil {
		t.Fatalf("seed asset: %v", err)
	}
	return a
}

func SeedArea(t *testing.T, tx *gorm.DB, projectID uuid.UUID, name string) *types.Area {
	t.Helper()
	a := &types.Area{
		ID:        uuid.New(),
		ProjectID: projectID,
		Name:      name,
	}
	if err := tx.Create(a).Error; err != nil {
		t.Fatalf("seed area: %v", err)
	}
	return a
}

func SeedMasterPM(t *testing.T, tx *gorm.DB, projectID uuid.UUID, workID string, recurring bool) *types.MasterPreventiveMaintenance {
	t.Helper()
	m := &types.MasterPreventiveMaintenance{
		ID:            uuid.New(),
		ProjectID:     projectID,
		TaskCategory:  types.TaskCategoryPreventiveMaintenance,
		PMType:        "INSPECTION",
		WorkID:        workID,
		WorkTitle:     "HVAC filter inspection",
		IsRecurring:   recurring,
		FrequencyDays: 30,
		DueDate:       time.Now().UTC().Truncate(time.Microsecond).AddDate(0, 0, 30),
		IsActive:      true,
	}
	if err := tx.Create(m).Error; err != nil {
		t.Fatalf("seed master pm: %v", err)
	}
	return m
}

func SeedPM(t *testing.T, tx *gorm.DB, projectID uuid.UUID, masterID *uuid.UUID, workID, status string) *types.PreventiveMaintenance {
	t.Helper()
	pm := &types.PreventiveMaintenance{
		ID:                            uuid.New(),
		MasterPreventiveMaintenanceID: masterID,
		ProjectID:                     projectID,
		TaskCategory:                  types.TaskCategoryPreventiveMaintenance,
		PMType:                        "INSPECTION",
		WorkID:                        workID,
		WorkTitle:                     "HVAC filter inspection",
		Status:                        status,
		DueDate:                       time.Now().UTC().Truncate(time.Microsecond).AddDate(0, 0, 14),
	}
	if err := tx.Create(pm).Error; err != nil {
		t.Fatalf("seed pm: %v", err)
	}
	return pm
}
