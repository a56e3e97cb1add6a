package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/steadyops/facilities-backend/internal/pkg/apierr"
	"github.com/steadyops/facilities-backend/internal/pkg/logger"
	"github.com/steadyops/facilities-backend/internal/repos"
	"github.com/steadyops/facilities-backend/internal/types"
)

// incidentStatusFlow lists the statuses reachable from each status.
var incidentStatusFlow = map[string][]string{
	types.IncidentStatusOpen:       {types.IncidentStatusInProgress, types.IncidentStatusClosed},
	types.IncidentStatusInProgress: {types.IncidentStatusResolved, types.IncidentStatusClosed},
	types.IncidentStatusResolved:   {types.IncidentStatusClosed, types.IncidentStatusInProgress},
	types.IncidentStatusClosed:     {},
}

type CreateIncidentInput struct {
	ProjectID   uuid.UUID
	CreatedByID uuid.UUID
	Title       string
	Description string
	Priority    string
	TeamUserIDs []uuid.UUID
}

type IncidentReportService interface {
	Create(ctx context.Context, in CreateIncidentInput) (*types.IncidentReport, error)
	Get(ctx context.Context, id uuid.UUID) (*types.IncidentReport, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
	ReconcileTeam(ctx context.Context, actorID, incidentID uuid.UUID, userIDs []uuid.UUID) (LinkDiff, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type incidentService struct {
	db        *gorm.DB
	log       *logger.Logger
	workIDs   WorkIDService
	incidents repos.IncidentReportRepo
	team      repos.IncidentReportTeamMemberRepo
	users     repos.UserRepo
	notifier  NotificationService
}

func NewIncidentReportService(db *gorm.DB, log *logger.Logger, workIDs WorkIDService, incidents repos.IncidentReportRepo, team repos.IncidentReportTeamMemberRepo, users repos.UserRepo, notifier NotificationService) IncidentReportService {
	return &incidentService{
		db:        db,
		log:       log.With("service", "IncidentReportService"),
		workIDs:   workIDs,
		incidents: incidents,
		team:      team,
		users:     users,
		notifier:  notifier,
	}
}

func (s *incidentService) Create(ctx context.Context, in CreateIncidentInput) (*types.IncidentReport, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, apierr.Invalid("title is required")
	}
	if in.CreatedByID == uuid.Nil {
		return nil, apierr.Invalid("created by is required")
	}
	if err := s.requireUsers(ctx, in.TeamUserIDs); err != nil {
		return nil, err
	}

	var report *types.IncidentReport
	var diff LinkDiff
	err := s.db.Transaction(func(tx *gorm.DB) error {
		incidentID, err := s.workIDs.NextIncidentID(ctx, tx, in.ProjectID)
		if err != nil {
			return err
		}
		report = &types.IncidentReport{
			ID:          uuid.New(),
			ProjectID:   in.ProjectID,
			IncidentID:  incidentID,
			Title:       strings.TrimSpace(in.Title),
			Description: in.Description,
			Status:      types.IncidentStatusOpen,
			Priority:    in.Priority,
			CreatedByID: in.CreatedByID,
		}
		if _, err := s.incidents.Create(ctx, tx, []*types.IncidentReport{report}); err != nil {
			return err
		}
		diff, err = ReconcileLinks(ctx, tx, s.team, report.ID, in.TeamUserIDs)
		return err
	})
	if err != nil {
		return nil, wrap(err, "creating incident report")
	}

	for _, userID := range diff.Added {
		s.notifyTeamChange(ctx, in.CreatedByID, report, userID, true)
	}
	s.log.Info("created incident report", "incident_id", report.IncidentID, "project_id", report.ProjectID)
	return report, nil
}

func (s *incidentService) Get(ctx context.Context, id uuid.UUID) (*types.IncidentReport, error) {
	report, err := s.incidents.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.Unexpected("loading incident report", err)
	}
	if report == nil {
		return nil, apierr.NotFound("incident report not found")
	}
	return report, nil
}

func (s *incidentService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	report, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	allowed, ok := incidentStatusFlow[report.Status]
	if !ok {
		return apierr.Unexpectedf("incident %s has unknown status %q", report.IncidentID, report.Status)
	}
	valid := false
	for _, next := range allowed {
		if next == status {
			valid = true
			break
		}
	}
	if !valid {
		return apierr.Invalid("cannot move incident from " + report.Status + " to " + status)
	}
	if err := s.incidents.UpdateFields(ctx, nil, id, map[string]interface{}{"status": status}); err != nil {
		return apierr.Unexpected("updating incident status", err)
	}
	return nil
}

func (s *incidentService) ReconcileTeam(ctx context.Context, actorID, incidentID uuid.UUID, userIDs []uuid.UUID) (LinkDiff, error) {
	report, err := s.Get(ctx, incidentID)
	if err != nil {
		return LinkDiff{}, err
	}
	if report.Status == types.IncidentStatusClosed {
		return LinkDiff{}, apierr.Invalid("closed incident cannot be reassigned")
	}
	if err := s.requireUsers(ctx, userIDs); err != nil {
		return LinkDiff{}, err
	}

	var diff LinkDiff
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		diff, txErr = ReconcileLinks(ctx, tx, s.team, incidentID, userIDs)
		return txErr
	})
	if err != nil {
		return LinkDiff{}, wrap(err, "reconciling incident team")
	}

	for _, userID := range diff.Added {
		s.notifyTeamChange(ctx, actorID, report, userID, true)
	}
	for _, userID := range diff.Removed {
		s.notifyTeamChange(ctx, actorID, report, userID, false)
	}
	return diff, nil
}

func (s *incidentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.team.DeleteByParentIDs(ctx, tx, []uuid.UUID{id}); err != nil {
			return err
		}
		return s.incidents.SoftDeleteByIDs(ctx, tx, []uuid.UUID{id})
	})
	return wrap(err, "deleting incident report")
}

// requireUsers verifies every referenced user exists before any link
// row is written.
func (s *incidentService) requireUsers(ctx context.Context, ids []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	want := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		want = append(want, id)
	}
	if len(want) == 0 {
		return nil
	}
	rows, err := s.users.GetByIDs(ctx, nil, want)
	if err != nil {
		return apierr.Unexpected("loading team members", err)
	}
	if len(rows) != len(want) {
		return apierr.NotFound("team member not found")
	}
	return nil
}

func (s *incidentService) notifyTeamChange(ctx context.Context, actorID uuid.UUID, report *types.IncidentReport, affectedUserID uuid.UUID, added bool) {
	if s.notifier == nil || actorID == uuid.Nil || actorID == affectedUserID {
		return
	}
	actor, err := s.users.GetByID(ctx, nil, actorID)
	if err != nil || actor == nil {
		s.log.Warn("skipping notification, actor lookup failed", "actor_id", actorID, "error", err)
		return
	}
	msg := incidentTeamRemovedMessage(actor, report)
	if added {
		msg = incidentTeamAddedMessage(actor, report)
	}
	s.notifier.Notify(Notice{
		UserID:  affectedUserID,
		ActorID: actorID,
		Title:   "Incident update",
		Message: msg,
		Data: map[string]string{
			"incident_report_id": report.ID.String(),
			"incident_id":        report.IncidentID,
		},
	})
}
