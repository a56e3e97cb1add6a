package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/steadyops/facilities-backend/internal/pkg/apierr"
	"github.com/steadyops/facilities-backend/internal/pkg/logger"
	"github.com/steadyops/facilities-backend/internal/repos"
)

const (
	workIDTypePM       = "PM"
	workIDTypeIncident = "IR"
)

// WorkIDService issues the human-facing sequential identifiers of the
// form {prefix}-{TYPE}-{n}. Each project keeps an independent counter
// per record type. Work IDs are drawn by both templates and
// instances, so the counter is seeded from the newest row across both
// tables, soft-deleted rows included, and numbers are never reissued.
type WorkIDService interface {
	NextWorkID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (string, error)
	NextIncidentID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (string, error)
}

type workIDService struct {
	log       *logger.Logger
	projects  repos.ProjectRepo
	pms       repos.PreventiveMaintenanceRepo
	masters   repos.MasterPreventiveMaintenanceRepo
	incidents repos.IncidentReportRepo
}

func NewWorkIDService(log *logger.Logger, projects repos.ProjectRepo, pms repos.PreventiveMaintenanceRepo, masters repos.MasterPreventiveMaintenanceRepo, incidents repos.IncidentReportRepo) WorkIDService {
	return &workIDService{
		log:       log.With("service", "WorkIDService"),
		projects:  projects,
		pms:       pms,
		masters:   masters,
		incidents: incidents,
	}
}

func (s *workIDService) NextWorkID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (string, error) {
	var lastIDs []string
	pm, err := s.pms.FindLastByProjectID(ctx, tx, projectID)
	if err != nil {
		return "", apierr.Unexpected("loading last work id", err)
	}
	if pm != nil {
		lastIDs = append(lastIDs, pm.WorkID)
	}
	master, err := s.masters.FindLastByProjectID(ctx, tx, projectID)
	if err != nil {
		return "", apierr.Unexpected("loading last template work id", err)
	}
	if master != nil {
		lastIDs = append(lastIDs, master.WorkID)
	}
	return s.next(ctx, tx, projectID, workIDTypePM, lastIDs)
}

func (s *workIDService) NextIncidentID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (string, error) {
	var lastIDs []string
	report, err := s.incidents.FindLastByProjectID(ctx, tx, projectID)
	if err != nil {
		return "", apierr.Unexpected("loading last incident id", err)
	}
	if report != nil {
		lastIDs = append(lastIDs, report.IncidentID)
	}
	return s.next(ctx, tx, projectID, workIDTypeIncident, lastIDs)
}

func (s *workIDService) next(ctx context.Context, tx *gorm.DB, projectID uuid.UUID, recordType string, lastIDs []string) (string, error) {
	project, err := s.projects.GetByID(ctx, tx, projectID)
	if err != nil {
		return "", apierr.Unexpected("loading project for work id", err)
	}
	if project == nil {
		return "", apierr.NotFound("project not found")
	}

	prefix := ""
	if project.WorkIDPrefix != nil && strings.TrimSpace(*project.WorkIDPrefix) != "" {
		prefix = strings.TrimSpace(*project.WorkIDPrefix)
	} else {
		// Projects without a configured prefix fall back to the
		// decimal length of the project name.
		prefix = strconv.Itoa(len(project.Name))
	}

	seq := 0
	for _, lastID := range lastIDs {
		n, err := lastSequence(lastID)
		if err != nil {
			return "", err
		}
		if n > seq {
			seq = n
		}
	}
	return fmt.Sprintf("%s-%s-%d", prefix, recordType, seq+1), nil
}

// lastSequence extracts the numeric counter from an issued identifier.
// An empty identifier seeds the counter at zero. A suffix that does
// not parse means the stored data is corrupt and the sequencer
// refuses to guess.
func lastSequence(lastID string) (int, error) {
	if lastID == "" {
		return 0, nil
	}
	idx := strings.LastIndex(lastID, "-")
	if idx < 0 || idx == len(lastID)-1 {
		return 0, apierr.Unexpectedf("malformed work id %q", lastID)
	}
	n, err := strconv.Atoi(lastID[idx+1:])
	if err != nil {
		return 0, apierr.Unexpectedf("malformed work id %q", lastID)
	}
	return n, nil
}
