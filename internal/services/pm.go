package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/steadyops/facilities-backend/internal/pkg/apierr"
	"github.com/steadyops/facilities-backend/internal/pkg/logger"
	"github.com/steadyops/facilities-backend/internal/repos"
	"github.com/steadyops/facilities-backend/internal/types"
)

var validTaskCategories = map[string]struct{}{
	types.TaskCategoryPreventiveMaintenance: {},
	types.TaskCategoryCorrectiveMaintenance: {},
	types.TaskCategoryDamage:                {},
	types.TaskCategoryDeficiency:            {},
}

type CreateMasterInput struct {
	ProjectID     uuid.UUID
	SubProjectID  *uuid.UUID
	TaskCategory  string
	PMType        string
	WorkTitle     string
	IsRecurring   bool
	FrequencyDays int
	DueDate       time.Time
}

type CreatePMInput struct {
	ProjectID    uuid.UUID
	SubProjectID *uuid.UUID
	TaskCategory string
	PMType       string
	WorkTitle    string
	DueDate      time.Time
}

// PreventiveMaintenanceService owns the template and occurrence
// lifecycle. Recurring templates fan occurrences out over time: at
// most one CURRENT occurrence exists per template, completing it
// promotes or creates the next one, and the sweep in
// GenerateDueInstances catches templates whose next occurrence came
// due with nothing live.
type PreventiveMaintenanceService interface {
	CreateMaster(ctx context.Context, in CreateMasterInput) (*types.MasterPreventiveMaintenance, error)
	GetMaster(ctx context.Context, id uuid.UUID) (*types.MasterPreventiveMaintenance, error)
	DeactivateMaster(ctx context.Context, id uuid.UUID) error
	DeleteMaster(ctx context.Context, id uuid.UUID) error

	Create(ctx context.Context, in CreatePMInput) (*types.PreventiveMaintenance, error)
	Get(ctx context.Context, id uuid.UUID) (*types.PreventiveMaintenance, error)
	Complete(ctx context.Context, pmID uuid.UUID) (*types.PreventiveMaintenance, error)
	Cancel(ctx context.Context, pmID uuid.UUID) error

	GenerateDueInstances(ctx context.Context) (int, error)
}

// InstanceLinkCopier stamps a new occurrence with the template's
// current link sets.
type InstanceLinkCopier struct {
	pairs []linkPair
}

type linkPair struct {
	master   masterLinkStore
	instance instanceLinkStore
}

func NewInstanceLinkCopier(
	masterAssets repos.MasterPreventiveMaintenanceAssetRepo, assets repos.PreventiveMaintenanceAssetRepo,
	masterAreas repos.MasterPreventiveMaintenanceAreaRepo, areas repos.PreventiveMaintenanceAreaRepo,
	masterTeamMembers repos.MasterPreventiveMaintenanceTeamMemberRepo, teamMembers repos.PreventiveMaintenanceTeamMemberRepo,
	masterAssignees repos.MasterPreventiveMaintenanceAssigneeRepo, assignees repos.PreventiveMaintenanceAssigneeRepo,
) *InstanceLinkCopier {
	return &InstanceLinkCopier{pairs: []linkPair{
		{master: masterAssets, instance: assets},
		{master: masterAreas, instance: areas},
		{master: masterTeamMembers, instance: teamMembers},
		{master: masterAssignees, instance: assignees},
	}}
}

func (c *InstanceLinkCopier) Copy(ctx context.Context, tx *gorm.DB, masterID, pmID uuid.UUID) error {
	for _, p := range c.pairs {
		ids, err := p.master.ExistingIDs(ctx, tx, masterID)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			continue
		}
		if err := p.instance.InsertLinks(ctx, tx, pmID, ids); err != nil {
			return err
		}
	}
	return nil
}

type pmService struct {
	db      *gorm.DB
	log     *logger.Logger
	workIDs WorkIDService
	pms     repos.PreventiveMaintenanceRepo
	masters repos.MasterPreventiveMaintenanceRepo
	copier  *InstanceLinkCopier
}

func NewPreventiveMaintenanceService(db *gorm.DB, log *logger.Logger, workIDs WorkIDService, pms repos.PreventiveMaintenanceRepo, masters repos.MasterPreventiveMaintenanceRepo, copier *InstanceLinkCopier) PreventiveMaintenanceService {
	return &pmService{
		db:      db,
		log:     log.With("service", "PreventiveMaintenanceService"),
		workIDs: workIDs,
		pms:     pms,
		masters: masters,
		copier:  copier,
	}
}

func (s *pmService) CreateMaster(ctx context.Context, in CreateMasterInput) (*types.MasterPreventiveMaintenance, error) {
	if err := validateTaskFields(in.TaskCategory, in.WorkTitle); err != nil {
		return nil, err
	}
	if in.IsRecurring && in.FrequencyDays <= 0 {
		return nil, apierr.Invalid("recurring template requires a positive frequency")
	}

	var master *types.MasterPreventiveMaintenance
	err := s.db.Transaction(func(tx *gorm.DB) error {
		workID, err := s.workIDs.NextWorkID(ctx, tx, in.ProjectID)
		if err != nil {
			return err
		}
		master = &types.MasterPreventiveMaintenance{
			ID:            uuid.New(),
			ProjectID:     in.ProjectID,
			SubProjectID:  in.SubProjectID,
			TaskCategory:  in.TaskCategory,
			PMType:        in.PMType,
			WorkID:        workID,
			WorkTitle:     strings.TrimSpace(in.WorkTitle),
			IsRecurring:   in.IsRecurring,
			FrequencyDays: in.FrequencyDays,
			DueDate:       in.DueDate.UTC(),
			IsActive:      true,
		}
		_, err = s.masters.Create(ctx, tx, []*types.MasterPreventiveMaintenance{master})
		return err
	})
	if err != nil {
		return nil, wrap(err, "creating master preventive maintenance")
	}
	s.log.Info("created master preventive maintenance", "master_id", master.ID, "work_id", master.WorkID, "recurring", master.IsRecurring)
	return master, nil
}

func (s *pmService) GetMaster(ctx context.Context, id uuid.UUID) (*types.MasterPreventiveMaintenance, error) {
	master, err := s.masters.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.Unexpected("loading master preventive maintenance", err)
	}
	if master == nil {
		return nil, apierr.NotFound("master preventive maintenance not found")
	}
	return master, nil
}

func (s *pmService) DeactivateMaster(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetMaster(ctx, id); err != nil {
		return err
	}
	if err := s.masters.UpdateFields(ctx, nil, id, map[string]interface{}{"is_active": false}); err != nil {
		return apierr.Unexpected("deactivating master preventive maintenance", err)
	}
	return nil
}

// DeleteMaster soft-deletes the template together with its FUTURE
// occurrences. The CURRENT occurrence and completed history survive.
func (s *pmService) DeleteMaster(ctx context.Context, id uuid.UUID) error {
	if _, err := s.GetMaster(ctx, id); err != nil {
		return err
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		instances, err := s.pms.FindFutureAndCurrentByMasterID(ctx, tx, id)
		if err != nil {
			return err
		}
		var futureIDs []uuid.UUID
		for _, pm := range instances {
			if pm.Status == types.PMStatusFuture {
				futureIDs = append(futureIDs, pm.ID)
			}
		}
		if err := s.pms.SoftDeleteByIDs(ctx, tx, futureIDs); err != nil {
			return err
		}
		if err := s.masters.UpdateFields(ctx, tx, id, map[string]interface{}{"is_active": false}); err != nil {
			return err
		}
		return s.masters.SoftDeleteByIDs(ctx, tx, []uuid.UUID{id})
	})
	return wrap(err, "deleting master preventive maintenance")
}

func (s *pmService) Create(ctx context.Context, in CreatePMInput) (*types.PreventiveMaintenance, error) {
	if err := validateTaskFields(in.TaskCategory, in.WorkTitle); err != nil {
		return nil, err
	}

	var pm *types.PreventiveMaintenance
	err := s.db.Transaction(func(tx *gorm.DB) error {
		workID, err := s.workIDs.NextWorkID(ctx, tx, in.ProjectID)
		if err != nil {
			return err
		}
		pm = &types.PreventiveMaintenance{
			ID:           uuid.New(),
			ProjectID:    in.ProjectID,
			SubProjectID: in.SubProjectID,
			TaskCategory: in.TaskCategory,
			PMType:       in.PMType,
			WorkID:       workID,
			WorkTitle:    strings.TrimSpace(in.WorkTitle),
			Status:       types.PMStatusCurrent,
			DueDate:      in.DueDate.UTC(),
		}
		_, err = s.pms.Create(ctx, tx, []*types.PreventiveMaintenance{pm})
		return err
	})
	if err != nil {
		return nil, wrap(err, "creating preventive maintenance")
	}
	return pm, nil
}

func (s *pmService) Get(ctx context.Context, id uuid.UUID) (*types.PreventiveMaintenance, error) {
	pm, err := s.pms.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.Unexpected("loading preventive maintenance", err)
	}
	if pm == nil {
		return nil, apierr.NotFound("preventive maintenance not found")
	}
	return pm, nil
}

// Complete closes the CURRENT occurrence. For an active recurring
// template the successor is lined up in the same transaction: the
// earliest FUTURE occurrence is promoted to CURRENT, and when none
// exists a fresh one is created one frequency interval out, stamped
// with the template's link sets.
func (s *pmService) Complete(ctx context.Context, pmID uuid.UUID) (*types.PreventiveMaintenance, error) {
	pm, err := s.Get(ctx, pmID)
	if err != nil {
		return nil, err
	}
	if pm.Status != types.PMStatusCurrent {
		return nil, apierr.Invalid("only the current occurrence can be completed")
	}

	now := time.Now().UTC()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.pms.UpdateFields(ctx, tx, pm.ID, map[string]interface{}{
			"status":       types.PMStatusCompleted,
			"completed_at": now,
		}); err != nil {
			return err
		}
		if pm.MasterPreventiveMaintenanceID == nil {
			return nil
		}
		master, err := s.masters.GetByID(ctx, tx, *pm.MasterPreventiveMaintenanceID)
		if err != nil {
			return err
		}
		if master == nil || !master.IsRecurring || !master.IsActive {
			return nil
		}
		return s.advance(ctx, tx, master, pm.DueDate.AddDate(0, 0, master.FrequencyDays))
	})
	if err != nil {
		return nil, wrap(err, "completing preventive maintenance")
	}

	pm.Status = types.PMStatusCompleted
	pm.CompletedAt = &now
	return pm, nil
}

func (s *pmService) Cancel(ctx context.Context, pmID uuid.UUID) error {
	pm, err := s.Get(ctx, pmID)
	if err != nil {
		return err
	}
	if !pm.Mutable() {
		return apierr.Invalid("occurrence is already closed")
	}
	if err := s.pms.UpdateFields(ctx, nil, pm.ID, map[string]interface{}{"status": types.PMStatusCancelled}); err != nil {
		return apierr.Unexpected("cancelling preventive maintenance", err)
	}
	return nil
}

// GenerateDueInstances sweeps every active recurring template and
// makes sure one that has come due has a live occurrence. Templates
// that already carry a CURRENT occurrence are skipped, so the sweep
// can run on any schedule without duplicating work.
func (s *pmService) GenerateDueInstances(ctx context.Context) (int, error) {
	masters, err := s.masters.FindAllRecurring(ctx, nil)
	if err != nil {
		return 0, apierr.Unexpected("loading recurring templates", err)
	}

	now := time.Now().UTC()
	activated := 0
	for _, master := range masters {
		m := master
		err := s.db.Transaction(func(tx *gorm.DB) error {
			current, err := s.pms.FindCurrentByMasterID(ctx, tx, m.ID)
			if err != nil {
				return err
			}
			if current != nil {
				return nil
			}
			instances, err := s.pms.FindFutureAndCurrentByMasterID(ctx, tx, m.ID)
			if err != nil {
				return err
			}
			if len(instances) > 0 {
				next := instances[0]
				if next.DueDate.After(now) {
					return nil
				}
				if err := s.pms.UpdateFields(ctx, tx, next.ID, map[string]interface{}{"status": types.PMStatusCurrent}); err != nil {
					return err
				}
				activated++
				return nil
			}
			if m.DueDate.After(now) {
				return nil
			}
			if err := s.advance(ctx, tx, m, m.DueDate); err != nil {
				return err
			}
			activated++
			return nil
		})
		if err != nil {
			s.log.Error("generating occurrence failed", "master_id", m.ID, "error", err)
			return activated, wrap(err, "generating occurrences")
		}
	}
	return activated, nil
}

// advance gives the template a new CURRENT occurrence, promoting the
// earliest FUTURE one when present and creating a fresh occurrence
// otherwise. New occurrences inherit the template's work id and link
// sets.
func (s *pmService) advance(ctx context.Context, tx *gorm.DB, master *types.MasterPreventiveMaintenance, dueDate time.Time) error {
	instances, err := s.pms.FindFutureAndCurrentByMasterID(ctx, tx, master.ID)
	if err != nil {
		return err
	}
	for _, pm := range instances {
		if pm.Status == types.PMStatusFuture {
			return s.pms.UpdateFields(ctx, tx, pm.ID, map[string]interface{}{"status": types.PMStatusCurrent})
		}
	}

	next := &types.PreventiveMaintenance{
		ID:                            uuid.New(),
		MasterPreventiveMaintenanceID: &master.ID,
		ProjectID:                     master.ProjectID,
		SubProjectID:                  master.SubProjectID,
		TaskCategory:                  master.TaskCategory,
		PMType:                        master.PMType,
		WorkID:                        master.WorkID,
		WorkTitle:                     master.WorkTitle,
		Status:                        types.PMStatusCurrent,
		DueDate:                       dueDate.UTC(),
	}
	if _, err := s.pms.Create(ctx, tx, []*types.PreventiveMaintenance{next}); err != nil {
		return err
	}
	return s.copier.Copy(ctx, tx, master.ID, next.ID)
}

func validateTaskFields(taskCategory, workTitle string) error {
	if _, ok := validTaskCategories[taskCategory]; !ok {
		return apierr.Invalid("unknown task category")
	}
	if strings.TrimSpace(workTitle) == "" {
		return apierr.Invalid("work title is required")
	}
	return nil
}

// wrap keeps API errors produced inside transactions intact and
// classifies everything else as unexpected.
func wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	if apierr.KindOf(err) != apierr.KindUnexpected {
		return err
	}
	return apierr.Unexpected(msg, err)
}
