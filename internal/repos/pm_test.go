package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/steadyops/facilities-backend/internal/repos/testutil"
	"github.com/steadyops/facilities-backend/internal/types"
)

func TestPMRepo_FindCurrentByMasterID(t *testing.T) {
	conn := testutil.DB(t)
	tx := testutil.Tx(t, conn)
	repo := NewPreventiveMaintenanceRepo(tx, testutil.Logger())
	ctx := context.Background()

	project := testutil.SeedProject(t, tx, "Harborview", nil)
	master := testutil.SeedMasterPM(t, tx, project.ID, "10-PM-1", true)
	testutil.SeedPM(t, tx, project.ID, &master.ID, master.WorkID, types.PMStatusFuture)
	current := testutil.SeedPM(t, tx, project.ID, &master.ID, master.WorkID, types.PMStatusCurrent)
	testutil.SeedPM(t, tx, project.ID, &master.ID, master.WorkID, types.PMStatusCompleted)

	got, err := repo.FindCurrentByMasterID(ctx, tx, master.ID)
	if err != nil {
		t.Fatalf("find current: %v", err)
	}
	if got == nil || got.ID != current.ID {
		t.Fatalf("expected current instance %s, got %+v", current.ID, got)
	}
}

func TestPMRepo_FindFutureAndCurrentOrdersByDueDate(t *testing.T) {
	conn := testutil.DB(t)
	tx := testutil.Tx(t, conn)
	repo := NewPreventiveMaintenanceRepo(tx, testutil.Logger())
	ctx := context.Background()

	project := testutil.SeedProject(t, tx, "Harborview", nil)
	master := testutil.SeedMasterPM(t, tx, project.ID, "10-PM-1", true)

	late := testutil.SeedPM(t, tx, project.ID, &master.ID, master.WorkID, types.PMStatusFuture)
	early := testutil.SeedPM(t, tx, project.ID, &master.ID, master.WorkID, types.PMStatusCurrent)
	testutil.SeedPM(t, tx, project.ID, &master.ID, master.WorkID, types.PMStatusCancelled)

	if err := tx.Model(late).Update("due_date", time.Now().UTC().AddDate(0, 0, 60)).Error; err != nil {
		t.Fatalf("adjusting due date: %v", err)
	}
	if err := tx.Model(early).Update("due_date", time.Now().UTC().AddDate(0, 0, 7)).Error; err != nil {
		t.Fatalf("adjusting due date: %v", err)
	}

	rows, err := repo.FindFutureAndCurrentByMasterID(ctx, tx, master.ID)
	if err != nil {
		t.Fatalf("find future and current: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].ID != early.ID || rows[1].ID != late.ID {
		t.Fatalf("expected due-date order, got %v then %v", rows[0].ID, rows[1].ID)
	}
}

func TestPMRepo_FindLastByProjectIDIncludesSoftDeleted(t *testing.T) {
	conn := testutil.DB(t)
	tx := testutil.Tx(t, conn)
	repo := NewPreventiveMaintenanceRepo(tx, testutil.Logger())
	ctx := context.Background()

	project := testutil.SeedProject(t, tx, "Harborview", nil)
	testutil.SeedPM(t, tx, project.ID, nil, "10-PM-1", types.PMStatusCompleted)
	newest := testutil.SeedPM(t, tx, project.ID, nil, "10-PM-2", types.PMStatusCurrent)

	if err := repo.SoftDeleteByIDs(ctx, tx, []uuid.UUID{newest.ID}); err != nil {
		t.Fatalf("soft delete: %v", err)
	}

	got, err := repo.FindLastByProjectID(ctx, tx, project.ID)
	if err != nil {
		t.Fatalf("find last: %v", err)
	}
	if got == nil || got.WorkID != "10-PM-2" {
		t.Fatalf("expected soft-deleted newest row, got %+v", got)
	}
}
