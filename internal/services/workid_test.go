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

type fakeProjectRepo struct {
	repos.ProjectRepo
	project *types.Project
}

func (f *fakeProjectRepo) GetByID(_ context.Context, _ *gorm.DB, _ uuid.UUID) (*types.Project, error) {
	return f.project, nil
}

type fakePMSeqRepo struct {
	repos.PreventiveMaintenanceRepo
	last *types.PreventiveMaintenance
}

func (f *fakePMSeqRepo) FindLastByProjectID(_ context.Context, _ *gorm.DB, _ uuid.UUID) (*types.PreventiveMaintenance, error) {
	return f.last, nil
}

type fakeMasterSeqRepo struct {
	repos.MasterPreventiveMaintenanceRepo
	last *types.MasterPreventiveMaintenance
}

func (f *fakeMasterSeqRepo) FindLastByProjectID(_ context.Context, _ *gorm.DB, _ uuid.UUID) (*types.MasterPreventiveMaintenance, error) {
	return f.last, nil
}

type fakeIncidentSeqRepo struct {
	repos.IncidentReportRepo
	last *types.IncidentReport
}

func (f *fakeIncidentSeqRepo) FindLastByProjectID(_ context.Context, _ *gorm.DB, _ uuid.UUID) (*types.IncidentReport, error) {
	return f.last, nil
}

func newWorkIDFixture(project *types.Project, lastPM *types.PreventiveMaintenance, lastMaster *types.MasterPreventiveMaintenance, lastIncident *types.IncidentReport) WorkIDService {
	return NewWorkIDService(
		testutil.Logger(),
		&fakeProjectRepo{project: project},
		&fakePMSeqRepo{last: lastPM},
		&fakeMasterSeqRepo{last: lastMaster},
		&fakeIncidentSeqRepo{last: lastIncident},
	)
}

func harborview() *types.Project {
	return &types.Project{ID: uuid.New(), Name: "Harborview", WorkIDPrefix: testutil.PtrString("OPS")}
}

func TestNextWorkID_IncrementsLastIssued(t *testing.T) {
	project := harborview()
	svc := newWorkIDFixture(project, &types.PreventiveMaintenance{WorkID: "OPS-PM-7"}, nil, nil)

	got, err := svc.NextWorkID(context.Background(), nil, project.ID)
	if err != nil {
		t.Fatalf("next work id: %v", err)
	}
	if got != "OPS-PM-8" {
		t.Fatalf("expected OPS-PM-8, got %q", got)
	}
}

func TestNextWorkID_FirstRecordStartsAtOne(t *testing.T) {
	project := harborview()
	svc := newWorkIDFixture(project, nil, nil, nil)

	got, err := svc.NextWorkID(context.Background(), nil, project.ID)
	if err != nil {
		t.Fatalf("next work id: %v", err)
	}
	if got != "OPS-PM-1" {
		t.Fatalf("expected OPS-PM-1, got %q", got)
	}
}

func TestNextWorkID_SeededFromTemplateTable(t *testing.T) {
	// A template draws a work id without any instance row existing yet;
	// the next draw must still see it.
	project := harborview()
	svc := newWorkIDFixture(project, nil, &types.MasterPreventiveMaintenance{WorkID: "OPS-PM-1"}, nil)

	got, err := svc.NextWorkID(context.Background(), nil, project.ID)
	if err != nil {
		t.Fatalf("next work id: %v", err)
	}
	if got != "OPS-PM-2" {
		t.Fatalf("expected OPS-PM-2, got %q", got)
	}
}

func TestNextWorkID_TakesHighestAcrossTables(t *testing.T) {
	project := harborview()
	svc := newWorkIDFixture(project,
		&types.PreventiveMaintenance{WorkID: "OPS-PM-3"},
		&types.MasterPreventiveMaintenance{WorkID: "OPS-PM-5"},
		nil)

	got, err := svc.NextWorkID(context.Background(), nil, project.ID)
	if err != nil {
		t.Fatalf("next work id: %v", err)
	}
	if got != "OPS-PM-6" {
		t.Fatalf("expected OPS-PM-6, got %q", got)
	}
}

func TestNextWorkID_PrefixFallsBackToNameLength(t *testing.T) {
	// "Riverside" is nine characters.
	project := &types.Project{ID: uuid.New(), Name: "Riverside"}
	svc := newWorkIDFixture(project, nil, nil, nil)

	got, err := svc.NextWorkID(context.Background(), nil, project.ID)
	if err != nil {
		t.Fatalf("next work id: %v", err)
	}
	if got != "9-PM-1" {
		t.Fatalf("expected 9-PM-1, got %q", got)
	}
}

func TestNextWorkID_RejectsMalformedSuffix(t *testing.T) {
	project := harborview()
	svc := newWorkIDFixture(project, &types.PreventiveMaintenance{WorkID: "OPS-PM-seven"}, nil, nil)

	if _, err := svc.NextWorkID(context.Background(), nil, project.ID); err == nil {
		t.Fatalf("expected error for malformed suffix")
	}
}

func TestNextIncidentID_UsesIncidentCounter(t *testing.T) {
	project := harborview()
	svc := newWorkIDFixture(project, &types.PreventiveMaintenance{WorkID: "OPS-PM-40"}, nil, &types.IncidentReport{IncidentID: "OPS-IR-2"})

	got, err := svc.NextIncidentID(context.Background(), nil, project.ID)
	if err != nil {
		t.Fatalf("next incident id: %v", err)
	}
	if got != "OPS-IR-3" {
		t.Fatalf("expected OPS-IR-3, got %q", got)
	}
}

func TestNextWorkID_UnknownProject(t *testing.T) {
	svc := newWorkIDFixture(nil, nil, nil, nil)

	_, err := svc.NextWorkID(context.Background(), nil, uuid.New())
	if !apierr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
