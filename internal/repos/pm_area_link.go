package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/steadyops/facilities-backend/internal/pkg/logger"
	"github.com/steadyops/facilities-backend/internal/types"
)

type PreventiveMaintenanceAreaRepo interface {
	GetByPMIDs(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID) ([]*types.PreventiveMaintenanceArea, error)
	ExistingIDs(ctx context.Context, tx *gorm.DB, pmID uuid.UUID) ([]uuid.UUID, error)
	HasLink(ctx context.Context, tx *gorm.DB, pmID, areaID uuid.UUID) (bool, error)
	InsertLinks(ctx context.Context, tx *gorm.DB, pmID uuid.UUID, areaIDs []uuid.UUID) error
	DeleteLinks(ctx context.Context, tx *gorm.DB, pmID uuid.UUID, areaIDs []uuid.UUID) error
	DeleteForParents(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID, areaID uuid.UUID) error
	DeleteByParentIDs(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID) error
}

type pmAreaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPreventiveMaintenanceAreaRepo(db *gorm.DB, baseLog *logger.Logger) PreventiveMaintenanceAreaRepo {
	return &pmAreaRepo{db: db, log: baseLog.With("repo", "PreventiveMaintenanceAreaRepo")}
}

func (r *pmAreaRepo) GetByPMIDs(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID) ([]*types.PreventiveMaintenanceArea, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.PreventiveMaintenanceArea
	if len(pmIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("preventive_maintenance_id IN ?", pmIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *pmAreaRepo) ExistingIDs(ctx context.Context, tx *gorm.DB, pmID uuid.UUID) ([]uuid.UUID, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var ids []uuid.UUID
	if pmID == uuid.Nil {
		return ids, nil
	}
	if err := t.WithContext(ctx).
		Model(&types.PreventiveMaintenanceArea{}).
		Where("preventive_maintenance_id = ?", pmID).
		Pluck("area_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *pmAreaRepo) HasLink(ctx context.Context, tx *gorm.DB, pmID, areaID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).
		Model(&types.PreventiveMaintenanceArea{}).
		Where("preventive_maintenance_id = ? AND area_id = ?", pmID, areaID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *pmAreaRepo) InsertLinks(ctx context.Context, tx *gorm.DB, pmID uuid.UUID, areaIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(areaIDs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]*types.PreventiveMaintenanceArea, 0, len(areaIDs))
	for _, areaID := range areaIDs {
		rows = append(rows, &types.PreventiveMaintenanceArea{
			ID:                      uuid.New(),
			PreventiveMaintenanceID: pmID,
			AreaID:                  areaID,
			CreatedAt:               now,
			UpdatedAt:               now,
		})
	}
	return t.WithContext(ctx).Create(&rows).Error
}

func (r *pmAreaRepo) DeleteLinks(ctx context.Context, tx *gorm.DB, pmID uuid.UUID, areaIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(areaIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("preventive_maintenance_id = ? AND area_id IN ?", pmID, areaIDs).
		Delete(&types.PreventiveMaintenanceArea{}).Error
}

func (r *pmAreaRepo) DeleteForParents(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID, areaID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(pmIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("preventive_maintenance_id IN ? AND area_id = ?", pmIDs, areaID).
		Delete(&types.PreventiveMaintenanceArea{}).Error
}

func (r *pmAreaRepo) DeleteByParentIDs(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(pmIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("preventive_maintenance_id IN ?", pmIDs).
		Delete(&types.PreventiveMaintenanceArea{}).Error
}

type MasterPreventiveMaintenanceAreaRepo interface {
	GetByMasterIDs(ctx context.Context, tx *gorm.DB, masterIDs []uuid.UUID) ([]*types.MasterPreventiveMaintenanceArea, error)
	ExistingIDs(ctx context.Context, tx *gorm.DB, masterID uuid.UUID) ([]uuid.UUID, error)
	HasLink(ctx context.Context, tx *gorm.DB, masterID, areaID uuid.UUID) (bool, error)
	InsertLinks(ctx context.Context, tx *gorm.DB, masterID uuid.UUID, areaIDs []uuid.UUID) error
	DeleteLinks(ctx context.Context, tx *gorm.DB, masterID uuid.UUID, areaIDs []uuid.UUID) error
	DeleteForParents(ctx context.Context, tx *gorm.DB, masterIDs []uuid.UUID, areaID uuid.UUID) error
}

type masterPMAreaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMasterPreventiveMaintenanceAreaRepo(db *gorm.DB, baseLog *logger.Logger) MasterPreventiveMaintenanceAreaRepo {
	return &masterPMAreaRepo{db: db, log: baseLog.With("repo", "MasterPreventiveMaintenanceAreaRepo")}
}

func (r *masterPMAreaRepo) GetByMasterIDs(ctx context.Context, tx *gorm.DB, masterIDs []uuid.UUID) ([]*types.MasterPreventiveMaintenanceArea, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.MasterPreventiveMaintenanceArea
	if len(masterIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("master_preventive_maintenance_id IN ?", masterIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *masterPMAreaRepo) ExistingIDs(ctx context.Context, tx *gorm.DB, masterID uuid.UUID) ([]uuid.UUID, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var ids []uuid.UUID
	if masterID == uuid.Nil {
		return ids, nil
	}
	if err := t.WithContext(ctx).
		Model(&types.MasterPreventiveMaintenanceArea{}).
		Where("master_preventive_maintenance_id = ?", masterID).
		Pluck("area_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *masterPMAreaRepo) HasLink(ctx context.Context, tx *gorm.DB, masterID, areaID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).
		Model(&types.MasterPreventiveMaintenanceArea{}).
		Where("master_preventive_maintenance_id = ? AND area_id = ?", masterID, areaID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *masterPMAreaRepo) InsertLinks(ctx context.Context, tx *gorm.DB, masterID uuid.UUID, areaIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(areaIDs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]*types.MasterPreventiveMaintenanceArea, 0, len(areaIDs))
	for _, areaID := range areaIDs {
		rows = append(rows, &types.MasterPreventiveMaintenanceArea{
			ID:                            uuid.New(),
			MasterPreventiveMaintenanceID: masterID,
			AreaID:                        areaID,
			CreatedAt:                     now,
			UpdatedAt:                     now,
		})
	}
	return t.WithContext(ctx).Create(&rows).Error
}

func (r *masterPMAreaRepo) DeleteLinks(ctx context.Context, tx *gorm.DB, masterID uuid.UUID, areaIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(areaIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("master_preventive_maintenance_id = ? AND area_id IN ?", masterID, areaIDs).
		Delete(&types.MasterPreventiveMaintenanceArea{}).Error
}

func (r *masterPMAreaRepo) DeleteForParents(ctx context.Context, tx *gorm.DB, masterIDs []uuid.UUID, areaID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(masterIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("master_preventive_maintenance_id IN ? AND area_id = ?", masterIDs, areaID).
		Delete(&types.MasterPreventiveMaintenanceArea{}).Error
}
