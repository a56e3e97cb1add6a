package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/steadyops/facilities-backend/internal/pkg/logger"
	"github.com/steadyops/facilities-backend/internal/types"
)

type PreventiveMaintenanceTeamMemberRepo interface {
	GetByPMIDs(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID) ([]*types.PreventiveMaintenanceTeamMember, error)
	ExistingIDs(ctx context.Context, tx *gorm.DB, pmID uuid.UUID) ([]uuid.UUID, error)
	HasLink(ctx context.Context, tx *gorm.DB, pmID, userID uuid.UUID) (bool, error)
	InsertLinks(ctx context.Context, tx *gorm.DB, pmID uuid.UUID, userIDs []uuid.UUID) error
	DeleteLinks(ctx context.Context, tx *gorm.DB, pmID uuid.UUID, userIDs []uuid.UUID) error
	DeleteForParents(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID, userID uuid.UUID) error
	DeleteByParentIDs(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID) error
}

type pmTeamMemberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPreventiveMaintenanceTeamMemberRepo(db *gorm.DB, baseLog *logger.Logger) PreventiveMaintenanceTeamMemberRepo {
	return &pmTeamMemberRepo{db: db, log: baseLog.With("repo", "PreventiveMaintenanceTeamMemberRepo")}
}

func (r *pmTeamMemberRepo) GetByPMIDs(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID) ([]*types.PreventiveMaintenanceTeamMember, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.PreventiveMaintenanceTeamMember
	if len(pmIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("preventive_maintenance_id IN ?", pmIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *pmTeamMemberRepo) ExistingIDs(ctx context.Context, tx *gorm.DB, pmID uuid.UUID) ([]uuid.UUID, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var ids []uuid.UUID
	if pmID == uuid.Nil {
		return ids, nil
	}
	if err := t.WithContext(ctx).
		Model(&types.PreventiveMaintenanceTeamMember{}).
		Where("preventive_maintenance_id = ?", pmID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *pmTeamMemberRepo) HasLink(ctx context.Context, tx *gorm.DB, pmID, userID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).
		Model(&types.PreventiveMaintenanceTeamMember{}).
		Where("preventive_maintenance_id = ? AND user_id = ?", pmID, userID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *pmTeamMemberRepo) InsertLinks(ctx context.Context, tx *gorm.DB, pmID uuid.UUID, userIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(userIDs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]*types.PreventiveMaintenanceTeamMember, 0, len(userIDs))
	for _, userID := range userIDs {
		rows = append(rows, &types.PreventiveMaintenanceTeamMember{
			ID:                      uuid.New(),
			PreventiveMaintenanceID: pmID,
			UserID:                  userID,
			CreatedAt:               now,
			UpdatedAt:               now,
		})
	}
	return t.WithContext(ctx).Create(&rows).Error
}

func (r *pmTeamMemberRepo) DeleteLinks(ctx context.Context, tx *gorm.DB, pmID uuid.UUID, userIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(userIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("preventive_maintenance_id = ? AND user_id IN ?", pmID, userIDs).
		Delete(&types.PreventiveMaintenanceTeamMember{}).Error
}

func (r *pmTeamMemberRepo) DeleteForParents(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID, userID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(pmIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("preventive_maintenance_id IN ? AND user_id = ?", pmIDs, userID).
		Delete(&types.PreventiveMaintenanceTeamMember{}).Error
}

func (r *pmTeamMemberRepo) DeleteByParentIDs(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(pmIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("preventive_maintenance_id IN ?", pmIDs).
		Delete(&types.PreventiveMaintenanceTeamMember{}).Error
}

type MasterPreventiveMaintenanceTeamMemberRepo interface {
	GetByMasterIDs(ctx context.Context, tx *gorm.DB, masterIDs []uuid.UUID) ([]*types.MasterPreventiveMaintenanceTeamMember, error)
	ExistingIDs(ctx context.Context, tx *gorm.DB, masterID uuid.UUID) ([]uuid.UUID, error)
	HasLink(ctx context.Context, tx *gorm.DB, masterID, userID uuid.UUID) (bool, error)
	InsertLinks(ctx context.Context, tx *gorm.DB, masterID uuid.UUID, userIDs []uuid.UUID) error
	DeleteLinks(ctx context.Context, tx *gorm.DB, masterID uuid.UUID, userIDs []uuid.UUID) error
	DeleteForParents(ctx context.Context, tx *gorm.DB, masterIDs []uuid.UUID, userID uuid.UUID) error
}

type masterPMTeamMemberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMasterPreventiveMaintenanceTeamMemberRepo(db *gorm.DB, baseLog *logger.Logger) MasterPreventiveMaintenanceTeamMemberRepo {
	return &masterPMTeamMemberRepo{db: db, log: baseLog.With("repo", "MasterPreventiveMaintenanceTeamMemberRepo")}
}

func (r *masterPMTeamMemberRepo) GetByMasterIDs(ctx context.Context, tx *gorm.DB, masterIDs []uuid.UUID) ([]*types.MasterPreventiveMaintenanceTeamMember, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.MasterPreventiveMaintenanceTeamMember
	if len(masterIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("master_preventive_maintenance_id IN ?", masterIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *masterPMTeamMemberRepo) ExistingIDs(ctx context.Context, tx *gorm.DB, masterID uuid.UUID) ([]uuid.UUID, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var ids []uuid.UUID
	if masterID == uuid.Nil {
		return ids, nil
	}
	if err := t.WithContext(ctx).
		Model(&types.MasterPreventiveMaintenanceTeamMember{}).
		Where("master_preventive_maintenance_id = ?", masterID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *masterPMTeamMemberRepo) HasLink(ctx context.Context, tx *gorm.DB, masterID, userID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).
		Model(&types.MasterPreventiveMaintenanceTeamMember{}).
		Where("master_preventive_maintenance_id = ? AND user_id = ?", masterID, userID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *masterPMTeamMemberRepo) InsertLinks(ctx context.Context, tx *gorm.DB, masterID uuid.UUID, userIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(userIDs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]*types.MasterPreventiveMaintenanceTeamMember, 0, len(userIDs))
	for _, userID := range userIDs {
		rows = append(rows, &types.MasterPreventiveMaintenanceTeamMember{
			ID:                            uuid.New(),
			MasterPreventiveMaintenanceID: masterID,
			UserID:                        userID,
			CreatedAt:                     now,
			UpdatedAt:                     now,
		})
	}
	return t.WithContext(ctx).Create(&rows).Error
}

func (r *masterPMTeamMemberRepo) DeleteLinks(ctx context.Context, tx *gorm.DB, masterID uuid.UUID, userIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(userIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("master_preventive_maintenance_id = ? AND user_id IN ?", masterID, userIDs).
		Delete(&types.MasterPreventiveMaintenanceTeamMember{}).Error
}

func (r *masterPMTeamMemberRepo) DeleteForParents(ctx context.Context, tx *gorm.DB, masterIDs []uuid.UUID, userID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(masterIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("master_preventive_maintenance_id IN ? AND user_id = ?", masterIDs, userID).
		Delete(&types.MasterPreventiveMaintenanceTeamMember{}).Error
}
