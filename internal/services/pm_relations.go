package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/steadyops/facilities-backend/internal/pkg/apierr"
	"github.com/steadyops/facilities-backend/internal/pkg/logger"
	"github.com/steadyops/facilities-backend/internal/repos"
	"github.com/steadyops/facilities-backend/internal/types"
)

// PMRelationService manages one kind of many-to-many link (assets,
// areas, team members or assignees) on both sides of the template
// split: instance-level operations touch a single occurrence, the
// ForMaster variants edit the template link set and propagate the
// change to every FUTURE and CURRENT instance. COMPLETED and
// CANCELLED instances are never rewritten.
type PMRelationService interface {
	Link(ctx context.Context, actorID, pmID, relatedID uuid.UUID) error
	Unlink(ctx context.Context, actorID, pmID, relatedID uuid.UUID) error
	Reconcile(ctx context.Context, actorID, pmID uuid.UUID, desired []uuid.UUID) (LinkDiff, error)

	LinkForMaster(ctx context.Context, actorID, masterID, relatedID uuid.UUID) error
	UnlinkForMaster(ctx context.Context, actorID, masterID, relatedID uuid.UUID) error
	ReconcileForMaster(ctx context.Context, actorID, masterID uuid.UUID, desired []uuid.UUID) (LinkDiff, error)
}

type instanceLinkStore interface {
	LinkStore
	HasLink(ctx context.Context, tx *gorm.DB, parentID, relatedID uuid.UUID) (bool, error)
	DeleteForParents(ctx context.Context, tx *gorm.DB, parentIDs []uuid.UUID, relatedID uuid.UUID) error
}

type masterLinkStore interface {
	LinkStore
	HasLink(ctx context.Context, tx *gorm.DB, parentID, relatedID uuid.UUID) (bool, error)
}

type relationService struct {
	db    *gorm.DB
	log   *logger.Logger
	label string

	pms     repos.PreventiveMaintenanceRepo
	masters repos.MasterPreventiveMaintenanceRepo
	users   repos.UserRepo

	instanceLinks instanceLinkStore
	masterLinks   masterLinkStore

	// relatedExists resolves relatedID against the entity table this
	// service links (assets, areas or users).
	relatedExists func(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error)

	// notifier is nil for non-user relations; the message builders are
	// only consulted when it is set.
	notifier   NotificationService
	addedMsg   func(actor *types.User, pm *types.PreventiveMaintenance) string
	removedMsg func(actor *types.User, pm *types.PreventiveMaintenance) string
}

func NewPMAssetRelationService(db *gorm.DB, log *logger.Logger, pms repos.PreventiveMaintenanceRepo, masters repos.MasterPreventiveMaintenanceRepo, assets repos.AssetRepo, links repos.PreventiveMaintenanceAssetRepo, masterLinks repos.MasterPreventiveMaintenanceAssetRepo) PMRelationService {
	return &relationService{
		db:            db,
		log:           log.With("service", "PMAssetRelationService"),
		label:         "asset",
		pms:           pms,
		masters:       masters,
		instanceLinks: links,
		masterLinks:   masterLinks,
		relatedExists: func(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
			asset, err := assets.GetByID(ctx, tx, id)
			return asset != nil, err
		},
	}
}

func NewPMAreaRelationService(db *gorm.DB, log *logger.Logger, pms repos.PreventiveMaintenanceRepo, masters repos.MasterPreventiveMaintenanceRepo, areas repos.AreaRepo, links repos.PreventiveMaintenanceAreaRepo, masterLinks repos.MasterPreventiveMaintenanceAreaRepo) PMRelationService {
	return &relationService{
		db:            db,
		log:           log.With("service", "PMAreaRelationService"),
		label:         "area",
		pms:           pms,
		masters:       masters,
		instanceLinks: links,
		masterLinks:   masterLinks,
		relatedExists: func(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
			area, err := areas.GetByID(ctx, tx, id)
			return area != nil, err
		},
	}
}

func NewPMTeamMemberRelationService(db *gorm.DB, log *logger.Logger, pms repos.PreventiveMaintenanceRepo, masters repos.MasterPreventiveMaintenanceRepo, users repos.UserRepo, links repos.PreventiveMaintenanceTeamMemberRepo, masterLinks repos.MasterPreventiveMaintenanceTeamMemberRepo, notifier NotificationService) PMRelationService {
	return &relationService{
		db:            db,
		log:           log.With("service", "PMTeamMemberRelationService"),
		label:         "team member",
		pms:           pms,
		masters:       masters,
		users:         users,
		instanceLinks: links,
		masterLinks:   masterLinks,
		relatedExists: userExistsFunc(users),
		notifier:      notifier,
		addedMsg:      teamMemberAddedMessage,
		removedMsg:    teamMemberRemovedMessage,
	}
}

func NewPMAssigneeRelationService(db *gorm.DB, log *logger.Logger, pms repos.PreventiveMaintenanceRepo, masters repos.MasterPreventiveMaintenanceRepo, users repos.UserRepo, links repos.PreventiveMaintenanceAssigneeRepo, masterLinks repos.MasterPreventiveMaintenanceAssigneeRepo, notifier NotificationService) PMRelationService {
	return &relationService{
		db:            db,
		log:           log.With("service", "PMAssigneeRelationService"),
		label:         "assignee",
		pms:           pms,
		masters:       masters,
		users:         users,
		instanceLinks: links,
		masterLinks:   masterLinks,
		relatedExists: userExistsFunc(users),
		notifier:      notifier,
		addedMsg:      assigneeAddedMessage,
		removedMsg:    assigneeRemovedMessage,
	}
}

func userExistsFunc(users repos.UserRepo) func(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
	return func(ctx context.Context, tx *gorm.DB, id uuid.UUID) (bool, error) {
		user, err := users.GetByID(ctx, tx, id)
		return user != nil, err
	}
}

func (s *relationService) Link(ctx context.Context, actorID, pmID, relatedID uuid.UUID) error {
	pm, err := s.loadMutablePM(ctx, pmID)
	if err != nil {
		return err
	}
	if err := s.requireRelated(ctx, nil, relatedID); err != nil {
		return err
	}
	has, err := s.instanceLinks.HasLink(ctx, nil, pmID, relatedID)
	if err != nil {
		return apierr.Unexpected("checking existing link", err)
	}
	if has {
		return apierr.Conflict(s.label + " already linked")
	}
	if err := s.insertInstanceLinks(ctx, nil, pmID, []uuid.UUID{relatedID}); err != nil {
		return err
	}
	s.notify(ctx, actorID, pm, relatedID, true)
	return nil
}

func (s *relationService) Unlink(ctx context.Context, actorID, pmID, relatedID uuid.UUID) error {
	pm, err := s.loadMutablePM(ctx, pmID)
	if err != nil {
		return err
	}
	has, err := s.instanceLinks.HasLink(ctx, nil, pmID, relatedID)
	if err != nil {
		return apierr.Unexpected("checking existing link", err)
	}
	if !has {
		return apierr.NotFound(s.label + " link not found")
	}
	if err := s.instanceLinks.DeleteLinks(ctx, nil, pmID, []uuid.UUID{relatedID}); err != nil {
		return apierr.Unexpected("deleting link", err)
	}
	s.notify(ctx, actorID, pm, relatedID, false)
	return nil
}

func (s *relationService) Reconcile(ctx context.Context, actorID, pmID uuid.UUID, desired []uuid.UUID) (LinkDiff, error) {
	pm, err := s.loadMutablePM(ctx, pmID)
	if err != nil {
		return LinkDiff{}, err
	}
	if err := s.requireRelatedAll(ctx, desired); err != nil {
		return LinkDiff{}, err
	}
	var diff LinkDiff
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var txErr error
		diff, txErr = ReconcileLinks(ctx, tx, s.instanceLinks, pmID, desired)
		return txErr
	})
	if err != nil {
		return LinkDiff{}, s.translate(err)
	}
	for _, id := range diff.Added {
		s.notify(ctx, actorID, pm, id, true)
	}
	for _, id := range diff.Removed {
		s.notify(ctx, actorID, pm, id, false)
	}
	return diff, nil
}

func (s *relationService) LinkForMaster(ctx context.Context, actorID, masterID, relatedID uuid.UUID) error {
	if _, err := s.loadMaster(ctx, masterID); err != nil {
		return err
	}
	if err := s.requireRelated(ctx, nil, relatedID); err != nil {
		return err
	}
	has, err := s.masterLinks.HasLink(ctx, nil, masterID, relatedID)
	if err != nil {
		return apierr.Unexpected("checking existing master link", err)
	}
	if has {
		return apierr.Conflict(s.label + " already linked to template")
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.fanOutAdd(ctx, tx, masterID, relatedID)
	})
	if err != nil {
		return s.translate(err)
	}
	s.notifyForMaster(ctx, actorID, masterID, relatedID, true)
	return nil
}

func (s *relationService) UnlinkForMaster(ctx context.Context, actorID, masterID, relatedID uuid.UUID) error {
	if _, err := s.loadMaster(ctx, masterID); err != nil {
		return err
	}
	has, err := s.masterLinks.HasLink(ctx, nil, masterID, relatedID)
	if err != nil {
		return apierr.Unexpected("checking existing master link", err)
	}
	if !has {
		return apierr.NotFound(s.label + " link not found")
	}
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.fanOutRemove(ctx, tx, masterID, relatedID)
	})
	if err != nil {
		return s.translate(err)
	}
	s.notifyForMaster(ctx, actorID, masterID, relatedID, false)
	return nil
}

func (s *relationService) ReconcileForMaster(ctx context.Context, actorID, masterID uuid.UUID, desired []uuid.UUID) (LinkDiff, error) {
	if _, err := s.loadMaster(ctx, masterID); err != nil {
		return LinkDiff{}, err
	}
	if err := s.requireRelatedAll(ctx, desired); err != nil {
		return LinkDiff{}, err
	}

	want := make(map[uuid.UUID]struct{}, len(desired))
	for _, id := range desired {
		if id == uuid.Nil {
			continue
		}
		want[id] = struct{}{}
	}

	var diff LinkDiff
	err := s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.masterLinks.ExistingIDs(ctx, tx, masterID)
		if err != nil {
			return err
		}
		have := make(map[uuid.UUID]struct{}, len(existing))
		for _, id := range existing {
			have[id] = struct{}{}
		}

		for id := range want {
			if _, ok := have[id]; ok {
				continue
			}
			if err := s.fanOutAdd(ctx, tx, masterID, id); err != nil {
				return err
			}
			diff.Added = append(diff.Added, id)
		}
		for id := range have {
			if _, ok := want[id]; ok {
				continue
			}
			if err := s.fanOutRemove(ctx, tx, masterID, id); err != nil {
				return err
			}
			diff.Removed = append(diff.Removed, id)
		}
		return nil
	})
	if err != nil {
		return LinkDiff{}, s.translate(err)
	}
	for _, id := range diff.Added {
		s.notifyForMaster(ctx, actorID, masterID, id, true)
	}
	for _, id := range diff.Removed {
		s.notifyForMaster(ctx, actorID, masterID, id, false)
	}
	return diff, nil
}

// fanOutAdd links relatedID to every FUTURE and CURRENT instance that
// does not already carry it, then records the template link. Running
// it again for the same pair is harmless up to the master link insert,
// which the unique index rejects.
func (s *relationService) fanOutAdd(ctx context.Context, tx *gorm.DB, masterID, relatedID uuid.UUID) error {
	instances, err := s.pms.FindFutureAndCurrentByMasterID(ctx, tx, masterID)
	if err != nil {
		return err
	}
	for _, pm := range instances {
		has, err := s.instanceLinks.HasLink(ctx, tx, pm.ID, relatedID)
		if err != nil {
			return err
		}
		if has {
			continue
		}
		if err := s.instanceLinks.InsertLinks(ctx, tx, pm.ID, []uuid.UUID{relatedID}); err != nil {
			return err
		}
	}
	return s.masterLinks.InsertLinks(ctx, tx, masterID, []uuid.UUID{relatedID})
}

// fanOutRemove drops the link from every FUTURE and CURRENT instance
// and from the template. Completed history keeps its links.
func (s *relationService) fanOutRemove(ctx context.Context, tx *gorm.DB, masterID, relatedID uuid.UUID) error {
	instances, err := s.pms.FindFutureAndCurrentByMasterID(ctx, tx, masterID)
	if err != nil {
		return err
	}
	if len(instances) > 0 {
		ids := make([]uuid.UUID, 0, len(instances))
		for _, pm := range instances {
			ids = append(ids, pm.ID)
		}
		if err := s.instanceLinks.DeleteForParents(ctx, tx, ids, relatedID); err != nil {
			return err
		}
	}
	return s.masterLinks.DeleteLinks(ctx, tx, masterID, []uuid.UUID{relatedID})
}

func (s *relationService) loadMutablePM(ctx context.Context, pmID uuid.UUID) (*types.PreventiveMaintenance, error) {
	pm, err := s.pms.GetByID(ctx, nil, pmID)
	if err != nil {
		return nil, apierr.Unexpected("loading preventive maintenance", err)
	}
	if pm == nil {
		return nil, apierr.NotFound("preventive maintenance not found")
	}
	if !pm.Mutable() {
		return nil, apierr.Invalid("preventive maintenance is no longer editable")
	}
	return pm, nil
}

func (s *relationService) loadMaster(ctx context.Context, masterID uuid.UUID) (*types.MasterPreventiveMaintenance, error) {
	master, err := s.masters.GetByID(ctx, nil, masterID)
	if err != nil {
		return nil, apierr.Unexpected("loading master preventive maintenance", err)
	}
	if master == nil {
		return nil, apierr.NotFound("master preventive maintenance not found")
	}
	return master, nil
}

func (s *relationService) requireRelated(ctx context.Context, tx *gorm.DB, relatedID uuid.UUID) error {
	ok, err := s.relatedExists(ctx, tx, relatedID)
	if err != nil {
		return apierr.Unexpected("loading "+s.label, err)
	}
	if !ok {
		return apierr.NotFound(s.label + " not found")
	}
	return nil
}

func (s *relationService) requireRelatedAll(ctx context.Context, ids []uuid.UUID) error {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if id == uuid.Nil {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		if err := s.requireRelated(ctx, nil, id); err != nil {
			return err
		}
	}
	return nil
}

func (s *relationService) insertInstanceLinks(ctx context.Context, tx *gorm.DB, pmID uuid.UUID, relatedIDs []uuid.UUID) error {
	if err := s.instanceLinks.InsertLinks(ctx, tx, pmID, relatedIDs); err != nil {
		return s.translate(err)
	}
	return nil
}

// translate maps constraint violations surfaced by the driver onto
// the API error taxonomy. Concurrent writers racing past the
// read-then-insert checks land here.
func (s *relationService) translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apierr.Conflict(s.label + " already linked")
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return apierr.NotFound(s.label + " not found")
	default:
		if apierr.KindOf(err) != apierr.KindUnexpected {
			return err
		}
		return apierr.Unexpected("applying link change", err)
	}
}

func (s *relationService) notify(ctx context.Context, actorID uuid.UUID, pm *types.PreventiveMaintenance, affectedUserID uuid.UUID, added bool) {
	if s.notifier == nil || pm == nil {
		return
	}
	if actorID == uuid.Nil || actorID == affectedUserID {
		return
	}
	actor, err := s.users.GetByID(ctx, nil, actorID)
	if err != nil || actor == nil {
		s.log.Warn("skipping notification, actor lookup failed", "actor_id", actorID, "error", err)
		return
	}
	build := s.removedMsg
	if added {
		build = s.addedMsg
	}
	s.notifier.Notify(Notice{
		UserID:                  affectedUserID,
		ActorID:                 actorID,
		PreventiveMaintenanceID: &pm.ID,
		Title:                   taskLabel(pm.TaskCategory) + " " + pm.WorkID,
		Message:                 build(actor, pm),
		Data: map[string]string{
			"preventive_maintenance_id": pm.ID.String(),
			"work_id":                   pm.WorkID,
			"task_category":             pm.TaskCategory,
		},
	})
}

// notifyForMaster targets the CURRENT instance when the master has
// one; template edits with no live occurrence stay silent.
func (s *relationService) notifyForMaster(ctx context.Context, actorID, masterID, affectedUserID uuid.UUID, added bool) {
	if s.notifier == nil {
		return
	}
	current, err := s.pms.FindCurrentByMasterID(ctx, nil, masterID)
	if err != nil {
		s.log.Warn("skipping notification, current instance lookup failed", "master_id", masterID, "error", err)
		return
	}
	if current == nil {
		return
	}
	s.notify(ctx, actorID, current, affectedUserID, added)
}
