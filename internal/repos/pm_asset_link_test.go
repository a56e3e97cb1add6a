package repos

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/steadyops/facilities-backend/internal/repos/testutil"
	"github.com/steadyops/facilities-backend/internal/types"
)

func TestPMAssetRepo_InsertAndQueryLinks(t *testing.T) {
	conn := testutil.DB(t)
	tx := testutil.Tx(t, conn)
	repo := NewPreventiveMaintenanceAssetRepo(tx, testutil.Logger())
	ctx := context.Background()

	project := testutil.SeedProject(t, tx, "Harborview", nil)
	pm := testutil.SeedPM(t, tx, project.ID, nil, "10-PM-1", types.PMStatusCurrent)
	a1 := testutil.SeedAsset(t, tx, project.ID, "Chiller 3")
	a2 := testutil.SeedAsset(t, tx, project.ID, "Boiler 1")

	if err := repo.InsertLinks(ctx, tx, pm.ID, []uuid.UUID{a1.ID, a2.ID}); err != nil {
		t.Fatalf("insert links: %v", err)
	}

	ids, err := repo.ExistingIDs(ctx, tx, pm.ID)
	if err != nil {
		t.Fatalf("existing ids: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("expected 2 links, got %v", ids)
	}

	has, err := repo.HasLink(ctx, tx, pm.ID, a1.ID)
	if err != nil {
		t.Fatalf("has link: %v", err)
	}
	if !has {
		t.Fatalf("expected link present")
	}
}

func TestPMAssetRepo_DuplicateLinkRejected(t *testing.T) {
	conn := testutil.DB(t)
	tx := testutil.Tx(t, conn)
	repo := NewPreventiveMaintenanceAssetRepo(tx, testutil.Logger())
	ctx := context.Background()

	project := testutil.SeedProject(t, tx, "Harborview", nil)
	pm := testutil.SeedPM(t, tx, project.ID, nil, "10-PM-1", types.PMStatusCurrent)
	asset := testutil.SeedAsset(t, tx, project.ID, "Chiller 3")

	if err := repo.InsertLinks(ctx, tx, pm.ID, []uuid.UUID{asset.ID}); err != nil {
		t.Fatalf("insert links: %v", err)
	}
	err := repo.InsertLinks(ctx, tx, pm.ID, []uuid.UUID{asset.ID})
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
}

func TestPMAssetRepo_DeleteForParents(t *testing.T) {
	conn := testutil.DB(t)
	tx := testutil.Tx(t, conn)
	repo := NewPreventiveMaintenanceAssetRepo(tx, testutil.Logger())
	ctx := context.Background()

	project := testutil.SeedProject(t, tx, "Harborview", nil)
	pm1 := testutil.SeedPM(t, tx, project.ID, nil, "10-PM-1", types.PMStatusCurrent)
	pm2 := testutil.SeedPM(t, tx, project.ID, nil, "10-PM-2", types.PMStatusFuture)
	asset := testutil.SeedAsset(t, tx, project.ID, "Chiller 3")
	keep := testutil.SeedAsset(t, tx, project.ID, "Boiler 1")

	for _, pmID := range []uuid.UUID{pm1.ID, pm2.ID} {
		if err := repo.InsertLinks(ctx, tx, pmID, []uuid.UUID{asset.ID, keep.ID}); err != nil {
			t.Fatalf("insert links: %v", err)
		}
	}

	if err := repo.DeleteForParents(ctx, tx, []uuid.UUID{pm1.ID, pm2.ID}, asset.ID); err != nil {
		t.Fatalf("delete for parents: %v", err)
	}

	for _, pmID := range []uuid.UUID{pm1.ID, pm2.ID} {
		ids, err := repo.ExistingIDs(ctx, tx, pmID)
		if err != nil {
			t.Fatalf("existing ids: %v", err)
		}
		if len(ids) != 1 || ids[0] != keep.ID {
			t.Fatalf("expected only %s left, got %v", keep.ID, ids)
		}
	}
}
