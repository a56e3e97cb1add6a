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

type fakeIncidentRepo struct {
	repos.IncidentReportRepo
	byID    map[uuid.UUID]*types.IncidentReport
	updates map[uuid.UUID]map[string]interface{}
}

func (f *fakeIncidentRepo) GetByID(_ context.Context, _ *gorm.DB, id uuid.UUID) (*types.IncidentReport, error) {
	return f.byID[id], nil
}

func (f *fakeIncidentRepo) UpdateFields(_ context.Context, _ *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	if f.updates == nil {
		f.updates = map[uuid.UUID]map[string]interface{}{}
	}
	f.updates[id] = updates
	return nil
}

func newIncidentFixture(reports ...*types.IncidentReport) (IncidentReportService, *fakeIncidentRepo) {
	repo := &fakeIncidentRepo{byID: map[uuid.UUID]*types.IncidentReport{}}
	for _, r := range reports {
		repo.byID[r.ID] = r
	}
	svc := &incidentService{
		log:       testutil.Logger(),
		incidents: repo,
	}
	return svc, repo
}

func TestIncidentUpdateStatus_AllowedTransition(t *testing.T) {
	report := &types.IncidentReport{ID: uuid.New(), IncidentID: "OPS-IR-1", Status: types.IncidentStatusOpen}
	svc, repo := newIncidentFixture(report)

	if err := svc.UpdateStatus(context.Background(), report.ID, types.IncidentStatusInProgress); err != nil {
		t.Fatalf("update status: %v", err)
	}
	if repo.updates[report.ID]["status"] != types.IncidentStatusInProgress {
		t.Fatalf("expected status written, got %v", repo.updates[report.ID])
	}
}

func TestIncidentUpdateStatus_SkippingAStageRejected(t *testing.T) {
	report := &types.IncidentReport{ID: uuid.New(), IncidentID: "OPS-IR-1", Status: types.IncidentStatusOpen}
	svc, _ := newIncidentFixture(report)

	err := svc.UpdateStatus(context.Background(), report.ID, types.IncidentStatusResolved)
	if !apierr.IsInvalid(err) {
		t.Fatalf("expected invalid, got %v", err)
	}
}

func TestIncidentUpdateStatus_ClosedIsTerminal(t *testing.T) {
	report := &types.IncidentReport{ID: uuid.New(), IncidentID: "OPS-IR-1", Status: types.IncidentStatusClosed}
	svc, _ := newIncidentFixture(report)

	err := svc.UpdateStatus(context.Background(), report.ID, types.IncidentStatusInProgress)
	if !apierr.IsInvalid(err) {
		t.Fatalf("expected invalid, got %v", err)
	}
}

func TestIncidentUpdateStatus_UnknownIncident(t *testing.T) {
	svc, _ := newIncidentFixture()

	err := svc.UpdateStatus(context.Background(), uuid.New(), types.IncidentStatusInProgress)
	if !apierr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}
