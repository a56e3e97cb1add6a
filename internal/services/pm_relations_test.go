package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/steadyops/facilities-backend/internal/pkg/apierr"
	"github.com/steadyops/facilities-backend/internal/repos"
	"github.com/steadyops/facilities-backend/internal/repos/testutil"
	"github.com/steadyops/facilities-backend/internal/types"
)

type fakePMRepo struct {
	repos.PreventiveMaintenanceRepo
	byID map[uuid.UUID]*types.PreventiveMaintenance
}

func (f *fakePMRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.PreventiveMaintenance, error) {
	return f.byID[id], nil
}

type fakeInstanceLinks struct {
	*fakeLinkStore
	deletedForParents []uuid.UUID
}

func (f *fakeInstanceLinks) HasLink(_ context.Context, _ *gorm.DB, parentID, relatedID uuid.UUID) (bool, error) {
	return f.links[parentID][relatedID], nil
}

func (f *fakeInstanceLinks) DeleteForParents(_ context.Context, _ *gorm.DB, parentIDs []uuid.UUID, relatedID uuid.UUID) error {
	for _, id := range parentIDs {
		delete(f.links[id], relatedID)
		f.deletedForParents = append(f.deletedForParents, id)
	}
	return nil
}

func newRelationFixture(pms map[uuid.UUID]*types.PreventiveMaintenance, existingAssets ...uuid.UUID) (PMRelationService, *fakeInstanceLinks) {
	known := make(map[uuid.UUID]bool, len(existingAssets))
	for _, id := range existingAssets {
		known[id] = true
	}
	links := &fakeInstanceLinks{fakeLinkStore: newFakeLinkStore()}
	svc := &relationService{
		log:           testutil.Logger(),
		label:         "asset",
		pms:           &fakePMRepo{byID: pms},
		instanceLinks: links,
		relatedExists: func(_ context.Context, _ *gorm.DB, id uuid.UUID) (bool, error) {
			return known[id], nil
		},
	}
	return svc, links
}

func TestRelationLink_AddsMissingLink(t *testing.T) {
	pm := &types.PreventiveMaintenance{ID: uuid.New(), Status: types.PMStatusCurrent}
	assetID := uuid.New()
	svc, links := newRelationFixture(map[uuid.UUID]*types.PreventiveMaintenance{pm.ID: pm}, assetID)

	if err := svc.Link(context.Background(), uuid.Nil, pm.ID, assetID); err != nil {
		t.Fatalf("link: %v", err)
	}
	if !links.links[pm.ID][assetID] {
		t.Fatalf("expected link stored")
	}
}

func TestRelationLink_ExistingLinkConflicts(t *testing.T) {
	pm := &types.PreventiveMaintenance{ID: uuid.New(), Status: types.PMStatusFuture}
	assetID := uuid.New()
	svc, links := newRelationFixture(map[uuid.UUID]*types.PreventiveMaintenance{pm.ID: pm}, assetID)

	links.set(pm.ID, assetID)

	err := svc.Link(context.Background(), uuid.Nil, pm.ID, assetID)
	if !apierr.IsConflict(err) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRelationLink_UnknownRelatedRejected(t *testing.T) {
	pm := &types.PreventiveMaintenance{ID: uuid.New(), Status: types.PMStatusCurrent}
	svc, links := newRelationFixture(map[uuid.UUID]*types.PreventiveMaintenance{pm.ID: pm})

	ghost := uuid.New()
	err := svc.Link(context.Background(), uuid.Nil, pm.ID, ghost)
	if !apierr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(links.links[pm.ID]) != 0 {
		t.Fatalf("no link row may be written for a missing asset, got %v", links.links[pm.ID])
	}
}

func TestRelationReconcile_UnknownRelatedRejected(t *testing.T) {
	pm := &types.PreventiveMaintenance{ID: uuid.New(), Status: types.PMStatusCurrent}
	known := uuid.New()
	svc, links := newRelationFixture(map[uuid.UUID]*types.PreventiveMaintenance{pm.ID: pm}, known)

	_, err := svc.Reconcile(context.Background(), uuid.Nil, pm.ID, []uuid.UUID{known, uuid.New()})
	if !apierr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
	if len(links.links[pm.ID]) != 0 {
		t.Fatalf("reconcile must not write anything when an id is unknown, got %v", links.links[pm.ID])
	}
}

func TestRelationLink_ClosedInstanceRejected(t *testing.T) {
	for _, status := range []string{types.PMStatusCompleted, types.PMStatusCancelled} {
		pm := &types.PreventiveMaintenance{ID: uuid.New(), Status: status}
		svc, _ := newRelationFixture(map[uuid.UUID]*types.PreventiveMaintenance{pm.ID: pm})

		err := svc.Link(context.Background(), uuid.Nil, pm.ID, uuid.New())
		if !apierr.IsInvalid(err) {
			t.Fatalf("status %s: expected invalid, got %v", status, err)
		}
	}
}

func TestRelationLink_UnknownInstance(t *testing.T) {
	svc, _ := newRelationFixture(map[uuid.UUID]*types.PreventiveMaintenance{})

	err := svc.Link(context.Background(), uuid.Nil, uuid.New(), uuid.New())
	if !apierr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRelationUnlink_MissingLinkNotFound(t *testing.T) {
	pm := &types.PreventiveMaintenance{ID: uuid.New(), Status: types.PMStatusCurrent}
	svc, _ := newRelationFixture(map[uuid.UUID]*types.PreventiveMaintenance{pm.ID: pm})

	err := svc.Unlink(context.Background(), uuid.Nil, pm.ID, uuid.New())
	if !apierr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestRelationUnlink_RemovesLink(t *testing.T) {
	pm := &types.PreventiveMaintenance{ID: uuid.New(), Status: types.PMStatusCurrent}
	svc, links := newRelationFixture(map[uuid.UUID]*types.PreventiveMaintenance{pm.ID: pm})

	assetID := uuid.New()
	links.set(pm.ID, assetID)

	if err := svc.Unlink(context.Background(), uuid.Nil, pm.ID, assetID); err != nil {
		t.Fatalf("unlink: %v", err)
	}
	if links.links[pm.ID][assetID] {
		t.Fatalf("expected link removed")
	}
}
