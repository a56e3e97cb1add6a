package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/steadyops/facilities-backend/internal/pkg/logger"
	"github.com/steadyops/facilities-backend/internal/types"
)

// PreventiveMaintenanceAssetRepo manages instance-level PM↔asset link
// rows. Link rows are only ever created or deleted, never edited.
type PreventiveMaintenanceAssetRepo interface {
	GetByPMIDs(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID) ([]*types.PreventiveMaintenanceAsset, error)
	ExistingIDs(ctx context.Context, tx *gorm.DB, pmID uuid.UUID) ([]uuid.UUID, error)
	HasLink(ctx context.Context, tx *gorm.DB, pmID, assetID uuid.UUID) (bool, error)
	InsertLinks(ctx context.Context, tx *gorm.DB, pmID uuid.UUID, assetIDs []uuid.UUID) error
	DeleteLinks(ctx context.Context, tx *gorm.DB, pmID uuid.UUID, assetIDs []uuid.UUID) error
	DeleteForParents(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID, assetID uuid.UUID) error
	DeleteByParentIDs(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID) error
}

type pmAssetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPreventiveMaintenanceAssetRepo(db *gorm.DB, baseLog *logger.Logger) PreventiveMaintenanceAssetRepo {
	return &pmAssetRepo{db: db, log: baseLog.With("repo", "PreventiveMaintenanceAssetRepo")}
}

func (r *pmAssetRepo) GetByPMIDs(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID) ([]*types.PreventiveMaintenanceAsset, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.PreventiveMaintenanceAsset
	if len(pmIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("preventive_maintenance_id IN ?", pmIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *pmAssetRepo) ExistingIDs(ctx context.Context, tx *gorm.DB, pmID uuid.UUID) ([]uuid.UUID, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var ids []uuid.UUID
	if pmID == uuid.Nil {
		return ids, nil
	}
	if err := t.WithContext(ctx).
		Model(&types.PreventiveMaintenanceAsset{}).
		Where("preventive_maintenance_id = ?", pmID).
		Pluck("asset_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *pmAssetRepo) HasLink(ctx context.Context, tx *gorm.DB, pmID, assetID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).
		Model(&types.PreventiveMaintenanceAsset{}).
		Where("preventive_maintenance_id = ? AND asset_id = ?", pmID, assetID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *pmAssetRepo) InsertLinks(ctx context.Context, tx *gorm.DB, pmID uuid.UUID, assetIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(assetIDs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]*types.PreventiveMaintenanceAsset, 0, len(assetIDs))
	for _, assetID := range assetIDs {
		rows = append(rows, &types.PreventiveMaintenanceAsset{
			ID:                      uuid.New(),
			PreventiveMaintenanceID: pmID,
			AssetID:                 assetID,
			CreatedAt:               now,
			UpdatedAt:               now,
		})
	}
	return t.WithContext(ctx).Create(&rows).Error
}

func (r *pmAssetRepo) DeleteLinks(ctx context.Context, tx *gorm.DB, pmID uuid.UUID, assetIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(assetIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("preventive_maintenance_id = ? AND asset_id IN ?", pmID, assetIDs).
		Delete(&types.PreventiveMaintenanceAsset{}).Error
}

func (r *pmAssetRepo) DeleteForParents(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID, assetID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(pmIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("preventive_maintenance_id IN ? AND asset_id = ?", pmIDs, assetID).
		Delete(&types.PreventiveMaintenanceAsset{}).Error
}

func (r *pmAssetRepo) DeleteByParentIDs(ctx context.Context, tx *gorm.DB, pmIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(pmIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("preventive_maintenance_id IN ?", pmIDs).
		Delete(&types.PreventiveMaintenanceAsset{}).Error
}

// MasterPreventiveMaintenanceAssetRepo manages master-level PM↔asset
// links; same shape as the instance repo so both satisfy the
// reconciler's LinkStore contract.
type MasterPreventiveMaintenanceAssetRepo interface {
	GetByMasterIDs(ctx context.Context, tx *gorm.DB, masterIDs []uuid.UUID) ([]*types.MasterPreventiveMaintenanceAsset, error)
	ExistingIDs(ctx context.Context, tx *gorm.DB, masterID uuid.UUID) ([]uuid.UUID, error)
	HasLink(ctx context.Context, tx *gorm.DB, masterID, assetID uuid.UUID) (bool, error)
	InsertLinks(ctx context.Context, tx *gorm.DB, masterID uuid.UUID, assetIDs []uuid.UUID) error
	DeleteLinks(ctx context.Context, tx *gorm.DB, masterID uuid.UUID, assetIDs []uuid.UUID) error
	DeleteForParents(ctx context.Context, tx *gorm.DB, masterIDs []uuid.UUID, assetID uuid.UUID) error
}

type masterPMAssetRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMasterPreventiveMaintenanceAssetRepo(db *gorm.DB, baseLog *logger.Logger) MasterPreventiveMaintenanceAssetRepo {
	return &masterPMAssetRepo{db: db, log: baseLog.With("repo", "MasterPreventiveMaintenanceAssetRepo")}
}

func (r *masterPMAssetRepo) GetByMasterIDs(ctx context.Context, tx *gorm.DB, masterIDs []uuid.UUID) ([]*types.MasterPreventiveMaintenanceAsset, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.MasterPreventiveMaintenanceAsset
	if len(masterIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("master_preventive_maintenance_id IN ?", masterIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *masterPMAssetRepo) ExistingIDs(ctx context.Context, tx *gorm.DB, masterID uuid.UUID) ([]uuid.UUID, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var ids []uuid.UUID
	if masterID == uuid.Nil {
		return ids, nil
	}
	if err := t.WithContext(ctx).
		Model(&types.MasterPreventiveMaintenanceAsset{}).
		Where("master_preventive_maintenance_id = ?", masterID).
		Pluck("asset_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *masterPMAssetRepo) HasLink(ctx context.Context, tx *gorm.DB, masterID, assetID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).
		Model(&types.MasterPreventiveMaintenanceAsset{}).
		Where("master_preventive_maintenance_id = ? AND asset_id = ?", masterID, assetID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *masterPMAssetRepo) InsertLinks(ctx context.Context, tx *gorm.DB, masterID uuid.UUID, assetIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(assetIDs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]*types.MasterPreventiveMaintenanceAsset, 0, len(assetIDs))
	for _, assetID := range assetIDs {
		rows = append(rows, &types.MasterPreventiveMaintenanceAsset{
			ID:                            uuid.New(),
			MasterPreventiveMaintenanceID: masterID,
			AssetID:                       assetID,
			CreatedAt:                     now,
			UpdatedAt:                     now,
		})
	}
	return t.WithContext(ctx).Create(&rows).Error
}

func (r *masterPMAssetRepo) DeleteLinks(ctx context.Context, tx *gorm.DB, masterID uuid.UUID, assetIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(assetIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("master_preventive_maintenance_id = ? AND asset_id IN ?", masterID, assetIDs).
		Delete(&types.MasterPreventiveMaintenanceAsset{}).Error
}

func (r *masterPMAssetRepo) DeleteForParents(ctx context.Context, tx *gorm.DB, masterIDs []uuid.UUID, assetID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(masterIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("master_preventive_maintenance_id IN ? AND asset_id = ?", masterIDs, assetID).
		Delete(&types.MasterPreventiveMaintenanceAsset{}).Error
}
