package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/steadyops/facilities-backend/internal/pkg/logger"
	"github.com/steadyops/facilities-backend/internal/types"
)

type PreventiveMaintenanceAssigneeRepo interface {
	GetByPMIDs(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID) ([]*types.PreventiveMaintenanceAssignee, error)
	ExistingIDs(ctx context.Context, tx *gorm.DB, pmID uuid.UUID) ([]uuid.UUID, error)
	HasLink(ctx context.Context, tx *gorm.DB, pmID, userID uuid.UUID) (bool, error)
	InsertLinks(ctx context.Context, tx *gorm.DB, pmID uuid.UUID, userIDs []uuid.UUID) error
	DeleteLinks(ctx context.Context, tx *gorm.DB, pmID uuid.UUID, userIDs []uuid.UUID) error
	DeleteForParents(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID, userID uuid.UUID) error
	DeleteByParentIDs(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID) error
}

type pmAssigneeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPreventiveMaintenanceAssigneeRepo(db *gorm.DB, baseLog *logger.Logger) PreventiveMaintenanceAssigneeRepo {
	return &pmAssigneeRepo{db: db, log: baseLog.With("repo", "PreventiveMaintenanceAssigneeRepo")}
}

func (r *pmAssigneeRepo) GetByPMIDs(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID) ([]*types.PreventiveMaintenanceAssignee, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.PreventiveMaintenanceAssignee
	if len(pmIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("preventive_maintenance_id IN ?", pmIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *pmAssigneeRepo) ExistingIDs(ctx context.Context, tx *gorm.DB, pmID uuid.UUID) ([]uuid.UUID, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var ids []uuid.UUID
	if pmID == uuid.Nil {
		return ids, nil
	}
	if err := t.WithContext(ctx).
		Model(&types.PreventiveMaintenanceAssignee{}).
		Where("preventive_maintenance_id = ?", pmID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *pmAssigneeRepo) HasLink(ctx context.Context, tx *gorm.DB, pmID, userID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).
		Model(&types.PreventiveMaintenanceAssignee{}).
		Where("preventive_maintenance_id = ? AND user_id = ?", pmID, userID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *pmAssigneeRepo) InsertLinks(ctx context.Context, tx *gorm.DB, pmID uuid.UUID, userIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(userIDs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]*types.PreventiveMaintenanceAssignee, 0, len(userIDs))
	for _, userID := range userIDs {
		rows = append(rows, &types.PreventiveMaintenanceAssignee{
			ID:                      uuid.New(),
			PreventiveMaintenanceID: pmID,
			UserID:                  userID,
			CreatedAt:               now,
			UpdatedAt:               now,
		})
	}
	return t.WithContext(ctx).Create(&rows).Error
}

func (r *pmAssigneeRepo) DeleteLinks(ctx context.Context, tx *gorm.DB, pmID uuid.UUID, userIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(userIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("preventive_maintenance_id = ? AND user_id IN ?", pmID, userIDs).
		Delete(&types.PreventiveMaintenanceAssignee{}).Error
}

func (r *pmAssigneeRepo) DeleteForParents(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID, userID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(pmIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("preventive_maintenance_id IN ? AND user_id = ?", pmIDs, userID).
		Delete(&types.PreventiveMaintenanceAssignee{}).Error
}

func (r *pmAssigneeRepo) DeleteByParentIDs(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(pmIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("preventive_maintenance_id IN ?", pmIDs).
		Delete(&types.PreventiveMaintenanceAssignee{}).Error
}

type MasterPreventiveMaintenanceAssigneeRepo interface {
	GetByMasterIDs(ctx context.Context, tx *gorm.DB, masterIDs []uuid.UUID) ([]*types.MasterPreventiveMaintenanceAssignee, error)
	ExistingIDs(ctx context.Context, tx *gorm.DB, masterID uuid.UUID) ([]uuid.UUID, error)
	HasLink(ctx context.Context, tx *gorm.DB, masterID, userID uuid.UUID) (bool, error)
	InsertLinks(ctx context.Context, tx *gorm.DB, masterID uuid.UUID, userIDs []uuid.UUID) error
	DeleteLinks(ctx context.Context, tx *gorm.DB, masterID uuid.UUID, userIDs []uuid.UUID) error
	DeleteForParents(ctx context.Context, tx *gorm.DB, masterIDs []uuid.UUID, userID uuid.UUID) error
}

type masterPMAssigneeRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMasterPreventiveMaintenanceAssigneeRepo(db *gorm.DB, baseLog *logger.Logger) MasterPreventiveMaintenanceAssigneeRepo {
	return &masterPMAssigneeRepo{db: db, log: baseLog.With("repo", "MasterPreventiveMaintenanceAssigneeRepo")}
}

func (r *masterPMAssigneeRepo) GetByMasterIDs(ctx context.Context, tx *gorm.DB, masterIDs []uuid.UUID) ([]*types.MasterPreventiveMaintenanceAssignee, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.MasterPreventiveMaintenanceAssignee
	if len(masterIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("master_preventive_maintenance_id IN ?", masterIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *masterPMAssigneeRepo) ExistingIDs(ctx context.Context, tx *gorm.DB, masterID uuid.UUID) ([]uuid.UUID, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var ids []uuid.UUID
	if masterID == uuid.Nil {
		return ids, nil
	}
	if err := t.WithContext(ctx).
		Model(&types.MasterPreventiveMaintenanceAssignee{}).
		Where("master_preventive_maintenance_id = ?", masterID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *masterPMAssigneeRepo) HasLink(ctx context.Context, tx *gorm.DB, masterID, userID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).
		Model(&types.MasterPreventiveMaintenanceAssignee{}).
		Where("master_preventive_maintenance_id = ? AND user_id = ?", masterID, userID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *masterPMAssigneeRepo) InsertLinks(ctx context.Context, tx *gorm.DB, masterID uuid.UUID, userIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(userIDs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]*types.MasterPreventiveMaintenanceAssignee, 0, len(userIDs))
	for _, userID := range userIDs {
		rows = append(rows, &types.MasterPreventiveMaintenanceAssignee{
			ID:                            uuid.New(),
			MasterPreventiveMaintenanceID: masterID,
			UserID:                        userID,
			CreatedAt:                     now,
			UpdatedAt:                     now,
		})
	}
	return t.WithContext(ctx).Create(&rows).Error
}

func (r *masterPMAssigneeRepo) DeleteLinks(ctx context.Context, tx *gorm.DB, masterID uuid.UUID, userIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(userIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("master_preventive_maintenance_id = ? AND user_id IN ?", masterID, userIDs).
		Delete(&types.MasterPreventiveMaintenanceAssignee{}).Error
}

func (r *masterPMAssigneeRepo) DeleteForParents(ctx context.Context, tx *gorm.DB, masterIDs []uuid.UUID, userID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(masterIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("master_preventive_maintenance_id IN ? AND user_id = ?", masterIDs, userID).
		Delete(&types.MasterPreventiveMaintenanceAssignee{}).Error
}
