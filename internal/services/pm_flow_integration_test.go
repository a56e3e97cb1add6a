package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/steadyops/facilities-backend/internal/pkg/apierr"
	"github.com/steadyops/facilities-backend/internal/repos"
	"github.com/steadyops/facilities-backend/internal/repos/testutil"
	"github.com/steadyops/facilities-backend/internal/types"
)

type flowFixture struct {
	tx *gorm.DB

	pms         repos.PreventiveMaintenanceRepo
	masters     repos.MasterPreventiveMaintenanceRepo
	pmAssets    repos.PreventiveMaintenanceAssetRepo
	masterAsset repos.MasterPreventiveMaintenanceAssetRepo
	pmTeam      repos.PreventiveMaintenanceTeamMemberRepo
	masterTeam  repos.MasterPreventiveMaintenanceTeamMemberRepo

	assetRelations PMRelationService
	teamRelations  PMRelationService
	pmService      PreventiveMaintenanceService
}

func newFlowFixture(t *testing.T) *flowFixture {
	t.Helper()
	conn := testutil.DB(t)
	tx := testutil.Tx(t, conn)
	log := testutil.Logger()

	f := &flowFixture{
		tx:          tx,
		pms:         repos.NewPreventiveMaintenanceRepo(tx, log),
		masters:     repos.NewMasterPreventiveMaintenanceRepo(tx, log),
		pmAssets:    repos.NewPreventiveMaintenanceAssetRepo(tx, log),
		masterAsset: repos.NewMasterPreventiveMaintenanceAssetRepo(tx, log),
		pmTeam:      repos.NewPreventiveMaintenanceTeamMemberRepo(tx, log),
		masterTeam:  repos.NewMasterPreventiveMaintenanceTeamMemberRepo(tx, log),
	}

	users := repos.NewUserRepo(tx, log)
	projects := repos.NewProjectRepo(tx, log)
	assets := repos.NewAssetRepo(tx, log)
	incidents := repos.NewIncidentReportRepo(tx, log)
	pmAreas := repos.NewPreventiveMaintenanceAreaRepo(tx, log)
	masterAreas := repos.NewMasterPreventiveMaintenanceAreaRepo(tx, log)
	pmAssignees := repos.NewPreventiveMaintenanceAssigneeRepo(tx, log)
	masterAssignees := repos.NewMasterPreventiveMaintenanceAssigneeRepo(tx, log)

	f.assetRelations = NewPMAssetRelationService(tx, log, f.pms, f.masters, assets, f.pmAssets, f.masterAsset)
	f.teamRelations = NewPMTeamMemberRelationService(tx, log, f.pms, f.masters, users, f.pmTeam, f.masterTeam, nil)

	workIDs := NewWorkIDService(log, projects, f.pms, f.masters, incidents)
	copier := NewInstanceLinkCopier(
		f.masterAsset, f.pmAssets,
		masterAreas, pmAreas,
		f.masterTeam, f.pmTeam,
		masterAssignees, pmAssignees,
	)
	f.pmService = NewPreventiveMaintenanceService(tx, log, workIDs, f.pms, f.masters, copier)
	return f
}

func master24hFromNow() time.Time {
	return time.Now().UTC().Add(24 * time.Hour)
}

func (f *flowFixture) instanceAssetIDs(t *testing.T, pmID uuid.UUID) []uuid.UUID {
	t.Helper()
	ids, err := f.pmAssets.ExistingIDs(context.Background(), f.tx, pmID)
	if err != nil {
		t.Fatalf("loading instance asset ids: %v", err)
	}
	return ids
}

func TestLinkForMaster_FansOutToMutableInstancesOnly(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, f.tx, "Harborview", testutil.PtrString("OPS"))
	master := testutil.SeedMasterPM(t, f.tx, project.ID, "OPS-PM-1", true)
	future1 := testutil.SeedPM(t, f.tx, project.ID, &master.ID, master.WorkID, types.PMStatusFuture)
	future2 := testutil.SeedPM(t, f.tx, project.ID, &master.ID, master.WorkID, types.PMStatusFuture)
	current := testutil.SeedPM(t, f.tx, project.ID, &master.ID, master.WorkID, types.PMStatusCurrent)
	completed := testutil.SeedPM(t, f.tx, project.ID, &master.ID, master.WorkID, types.PMStatusCompleted)
	asset := testutil.SeedAsset(t, f.tx, project.ID, "Chiller 3")

	if err := f.assetRelations.LinkForMaster(ctx, uuid.Nil, master.ID, asset.ID); err != nil {
		t.Fatalf("link for master: %v", err)
	}

	for _, pm := range []*types.PreventiveMaintenance{future1, future2, current} {
		if got := f.instanceAssetIDs(t, pm.ID); len(got) != 1 || got[0] != asset.ID {
			t.Fatalf("instance %s: expected asset link, got %v", pm.Status, got)
		}
	}
	if got := f.instanceAssetIDs(t, completed.ID); len(got) != 0 {
		t.Fatalf("completed instance must stay untouched, got %v", got)
	}

	masterIDs, err := f.masterAsset.ExistingIDs(ctx, f.tx, master.ID)
	if err != nil {
		t.Fatalf("loading master links: %v", err)
	}
	if len(masterIDs) != 1 || masterIDs[0] != asset.ID {
		t.Fatalf("expected master link recorded, got %v", masterIDs)
	}

	// Linking the same asset again must be rejected.
	err = f.assetRelations.LinkForMaster(ctx, uuid.Nil, master.ID, asset.ID)
	if !apierr.IsConflict(err) {
		t.Fatalf("expected conflict on repeat link, got %v", err)
	}
}

func TestUnlinkForMaster_PreservesCompletedHistory(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, f.tx, "Harborview", testutil.PtrString("OPS"))
	master := testutil.SeedMasterPM(t, f.tx, project.ID, "OPS-PM-1", true)
	future := testutil.SeedPM(t, f.tx, project.ID, &master.ID, master.WorkID, types.PMStatusFuture)
	current := testutil.SeedPM(t, f.tx, project.ID, &master.ID, master.WorkID, types.PMStatusCurrent)
	completed := testutil.SeedPM(t, f.tx, project.ID, &master.ID, master.WorkID, types.PMStatusCompleted)
	asset := testutil.SeedAsset(t, f.tx, project.ID, "Chiller 3")

	if err := f.assetRelations.LinkForMaster(ctx, uuid.Nil, master.ID, asset.ID); err != nil {
		t.Fatalf("link for master: %v", err)
	}
	// Completed history carries its own copy of the link.
	if err := f.pmAssets.InsertLinks(ctx, f.tx, completed.ID, []uuid.UUID{asset.ID}); err != nil {
		t.Fatalf("seeding completed link: %v", err)
	}

	if err := f.assetRelations.UnlinkForMaster(ctx, uuid.Nil, master.ID, asset.ID); err != nil {
		t.Fatalf("unlink for master: %v", err)
	}

	for _, pm := range []*types.PreventiveMaintenance{future, current} {
		if got := f.instanceAssetIDs(t, pm.ID); len(got) != 0 {
			t.Fatalf("instance %s: expected link removed, got %v", pm.Status, got)
		}
	}
	if got := f.instanceAssetIDs(t, completed.ID); len(got) != 1 {
		t.Fatalf("completed instance must keep its link, got %v", got)
	}

	err := f.assetRelations.UnlinkForMaster(ctx, uuid.Nil, master.ID, asset.ID)
	if !apierr.IsNotFound(err) {
		t.Fatalf("expected not found on repeat unlink, got %v", err)
	}
}

func TestReconcileForMaster_DiffAndApply(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, f.tx, "Harborview", testutil.PtrString("OPS"))
	master := testutil.SeedMasterPM(t, f.tx, project.ID, "OPS-PM-1", true)
	current := testutil.SeedPM(t, f.tx, project.ID, &master.ID, master.WorkID, types.PMStatusCurrent)
	u1 := testutil.SeedUser(t, f.tx, "Ana", "Silva")
	u2 := testutil.SeedUser(t, f.tx, "Ben", "Okoye")
	u3 := testutil.SeedUser(t, f.tx, "Cam", "Ito")

	diff, err := f.teamRelations.ReconcileForMaster(ctx, uuid.Nil, master.ID, []uuid.UUID{u1.ID, u2.ID})
	if err != nil {
		t.Fatalf("first reconcile: %v", err)
	}
	if len(diff.Added) != 2 || len(diff.Removed) != 0 {
		t.Fatalf("unexpected first diff: %+v", diff)
	}

	diff, err = f.teamRelations.ReconcileForMaster(ctx, uuid.Nil, master.ID, []uuid.UUID{u2.ID, u3.ID})
	if err != nil {
		t.Fatalf("second reconcile: %v", err)
	}
	if len(diff.Added) != 1 || diff.Added[0] != u3.ID {
		t.Fatalf("expected only %s added, got %v", u3.ID, diff.Added)
	}
	if len(diff.Removed) != 1 || diff.Removed[0] != u1.ID {
		t.Fatalf("expected only %s removed, got %v", u1.ID, diff.Removed)
	}

	masterIDs, err := f.masterTeam.ExistingIDs(ctx, f.tx, master.ID)
	if err != nil {
		t.Fatalf("loading master links: %v", err)
	}
	if len(masterIDs) != 2 {
		t.Fatalf("expected 2 master links, got %v", masterIDs)
	}
	instanceIDs, err := f.pmTeam.ExistingIDs(ctx, f.tx, current.ID)
	if err != nil {
		t.Fatalf("loading instance links: %v", err)
	}
	if len(instanceIDs) != 2 {
		t.Fatalf("expected 2 instance links, got %v", instanceIDs)
	}
}

func TestComplete_SpawnsNextOccurrenceWithTemplateLinks(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, f.tx, "Harborview", testutil.PtrString("OPS"))
	master := testutil.SeedMasterPM(t, f.tx, project.ID, "OPS-PM-1", true)
	current := testutil.SeedPM(t, f.tx, project.ID, &master.ID, master.WorkID, types.PMStatusCurrent)
	asset := testutil.SeedAsset(t, f.tx, project.ID, "Chiller 3")

	if err := f.assetRelations.LinkForMaster(ctx, uuid.Nil, master.ID, asset.ID); err != nil {
		t.Fatalf("link for master: %v", err)
	}

	done, err := f.pmService.Complete(ctx, current.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if done.Status != types.PMStatusCompleted || done.CompletedAt == nil {
		t.Fatalf("expected completed occurrence, got %+v", done)
	}

	next, err := f.pms.FindCurrentByMasterID(ctx, f.tx, master.ID)
	if err != nil {
		t.Fatalf("loading next occurrence: %v", err)
	}
	if next == nil {
		t.Fatalf("expected a new current occurrence")
	}
	if next.ID == current.ID {
		t.Fatalf("expected a fresh occurrence, got the completed one")
	}
	wantDue := current.DueDate.AddDate(0, 0, master.FrequencyDays)
	if !next.DueDate.Equal(wantDue) {
		t.Fatalf("expected due date %s, got %s", wantDue, next.DueDate)
	}
	if got := f.instanceAssetIDs(t, next.ID); len(got) != 1 || got[0] != asset.ID {
		t.Fatalf("expected template link copied, got %v", got)
	}

	// The completed occurrence cannot be completed again.
	if _, err := f.pmService.Complete(ctx, current.ID); !apierr.IsInvalid(err) {
		t.Fatalf("expected invalid on repeat complete, got %v", err)
	}
}

func TestGenerateDueInstances_SkipsMastersWithCurrent(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, f.tx, "Harborview", testutil.PtrString("OPS"))
	master := testutil.SeedMasterPM(t, f.tx, project.ID, "OPS-PM-1", true)
	testutil.SeedPM(t, f.tx, project.ID, &master.ID, master.WorkID, types.PMStatusCurrent)

	activated, err := f.pmService.GenerateDueInstances(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if activated != 0 {
		t.Fatalf("expected no activations, got %d", activated)
	}
}

func TestCreateAndCreateMaster_SequencerMonotonic(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, f.tx, "Harborview", testutil.PtrString("OPS"))

	first, err := f.pmService.Create(ctx, CreatePMInput{
		ProjectID:    project.ID,
		TaskCategory: types.TaskCategoryPreventiveMaintenance,
		WorkTitle:    "Belt inspection",
		DueDate:      master24hFromNow(),
	})
	if err != nil {
		t.Fatalf("first create: %v", err)
	}
	if first.WorkID != "OPS-PM-1" {
		t.Fatalf("expected OPS-PM-1, got %q", first.WorkID)
	}

	second, err := f.pmService.Create(ctx, CreatePMInput{
		ProjectID:    project.ID,
		TaskCategory: types.TaskCategoryPreventiveMaintenance,
		WorkTitle:    "Filter swap",
		DueDate:      master24hFromNow(),
	})
	if err != nil {
		t.Fatalf("second create: %v", err)
	}
	if second.WorkID != "OPS-PM-2" {
		t.Fatalf("expected OPS-PM-2, got %q", second.WorkID)
	}
}

func TestCreateMaster_SequencerCountsTemplateDraws(t *testing.T) {
	// Templates record their work id only on the master row until the
	// first occurrence exists; consecutive draws must still advance.
	f := newFlowFixture(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, f.tx, "Harborview", testutil.PtrString("OPS"))

	m1, err := f.pmService.CreateMaster(ctx, CreateMasterInput{
		ProjectID:     project.ID,
		TaskCategory:  types.TaskCategoryPreventiveMaintenance,
		WorkTitle:     "Quarterly roof walk",
		IsRecurring:   true,
		FrequencyDays: 90,
		DueDate:       master24hFromNow(),
	})
	if err != nil {
		t.Fatalf("first master: %v", err)
	}
	if m1.WorkID != "OPS-PM-1" {
		t.Fatalf("expected OPS-PM-1, got %q", m1.WorkID)
	}

	m2, err := f.pmService.CreateMaster(ctx, CreateMasterInput{
		ProjectID:     project.ID,
		TaskCategory:  types.TaskCategoryPreventiveMaintenance,
		WorkTitle:     "Annual fire damper check",
		IsRecurring:   true,
		FrequencyDays: 365,
		DueDate:       master24hFromNow(),
	})
	if err != nil {
		t.Fatalf("second master: %v", err)
	}
	if m2.WorkID != "OPS-PM-2" {
		t.Fatalf("expected OPS-PM-2 after a template draw, got %q", m2.WorkID)
	}

	standalone, err := f.pmService.Create(ctx, CreatePMInput{
		ProjectID:    project.ID,
		TaskCategory: types.TaskCategoryPreventiveMaintenance,
		WorkTitle:    "One-off pump check",
		DueDate:      master24hFromNow(),
	})
	if err != nil {
		t.Fatalf("standalone create: %v", err)
	}
	if standalone.WorkID != "OPS-PM-3" {
		t.Fatalf("expected OPS-PM-3 after two template draws, got %q", standalone.WorkID)
	}
}

func TestLink_UnknownAssetRejected(t *testing.T) {
	f := newFlowFixture(t)
	ctx := context.Background()

	project := testutil.SeedProject(t, f.tx, "Harborview", testutil.PtrString("OPS"))
	master := testutil.SeedMasterPM(t, f.tx, project.ID, "OPS-PM-1", true)
	current := testutil.SeedPM(t, f.tx, project.ID, &master.ID, master.WorkID, types.PMStatusCurrent)

	ghost := uuid.New()
	if err := f.assetRelations.Link(ctx, uuid.Nil, current.ID, ghost); !apierr.IsNotFound(err) {
		t.Fatalf("expected not found for missing asset, got %v", err)
	}
	if got := f.instanceAssetIDs(t, current.ID); len(got) != 0 {
		t.Fatalf("no link row may be stored for a missing asset, got %v", got)
	}

	if err := f.assetRelations.LinkForMaster(ctx, uuid.Nil, master.ID, ghost); !apierr.IsNotFound(err) {
		t.Fatalf("expected not found for missing asset on template, got %v", err)
	}
}
