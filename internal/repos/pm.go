package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/steadyops/facilities-backend/internal/pkg/logger"
	"github.com/steadyops/facilities-backend/internal/types"
)

type PreventiveMaintenanceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, pms []*types.PreventiveMaintenance) ([]*types.PreventiveMaintenance, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.PreventiveMaintenance, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.PreventiveMaintenance, error)

	// FindCurrentByMasterID returns the single CURRENT instance for the
	// master, or nil when the master has none.
	FindCurrentByMasterID(ctx context.Context, tx *gorm.DB, masterID uuid.UUID) (*types.PreventiveMaintenance, error)
	// FindFutureAndCurrentByMasterID returns every instance still
	// eligible for template propagation, oldest due date first.
	FindFutureAndCurrentByMasterID(ctx context.Context, tx *gorm.DB, masterID uuid.UUID) ([]*types.PreventiveMaintenance, error)
	// FindLastByProjectID returns the newest instance created for the
	// project, soft-deleted rows included, or nil when none exists.
	FindLastByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.PreventiveMaintenance, error)

	Save(ctx context.Context, tx *gorm.DB, pm *types.PreventiveMaintenance) error
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type pmRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPreventiveMaintenanceRepo(db *gorm.DB, baseLog *logger.Logger) PreventiveMaintenanceRepo {
	return &pmRepo{db: db, log: baseLog.With("repo", "PreventiveMaintenanceRepo")}
}

func (r *pmRepo) Create(ctx context.Context, tx *gorm.DB, pms []*types.PreventiveMaintenance) ([]*types.PreventiveMaintenance, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(pms) == 0 {
		return []*types.PreventiveMaintenance{}, nil
	}
	if err := t.WithContext(ctx).Create(&pms).Error; err != nil {
		return nil, err
	}
	return pms, nil
}

func (r *pmRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.PreventiveMaintenance, error) {
	if id == uuid.Nil {
		return nil, nil
	}
	rows, err := r.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

func (r *pmRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.PreventiveMaintenance, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.PreventiveMaintenance
	if len(ids) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("id IN ?", ids).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *pmRepo) FindCurrentByMasterID(ctx context.Context, tx *gorm.DB, masterID uuid.UUID) (*types.PreventiveMaintenance, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if masterID == uuid.Nil {
		return nil, nil
	}
	var out []*types.PreventiveMaintenance
	if err := t.WithContext(ctx).
		Where("master_preventive_maintenance_id = ? AND status = ?", masterID, types.PMStatusCurrent).
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *pmRepo) FindFutureAndCurrentByMasterID(ctx context.Context, tx *gorm.DB, masterID uuid.UUID) ([]*types.PreventiveMaintenance, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.PreventiveMaintenance
	if masterID == uuid.Nil {
		return out, nil
	}
	if err := t.WithContext(ctx).
		Where("master_preventive_maintenance_id = ? AND status IN ?", masterID,
			[]string{types.PMStatusFuture, types.PMStatusCurrent}).
		Order("due_date ASC, created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *pmRepo) FindLastByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.PreventiveMaintenance, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if projectID == uuid.Nil {
		return nil, nil
	}
	var out []*types.PreventiveMaintenance
	if err := t.WithContext(ctx).
		Unscoped().
		Where("project_id = ?", projectID).
		Order("created_at DESC").
		Limit(1).
		Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *pmRepo) Save(ctx context.Context, tx *gorm.DB, pm *types.PreventiveMaintenance) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if pm == nil {
		return nil
	}
	return t.WithContext(ctx).Save(pm).Error
}

func (r *pmRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil
	}
	if updates == nil {
		updates = map[string]interface{}{}
	}
	if _, ok := updates["updated_at"]; !ok {
		updates["updated_at"] = time.Now().UTC()
	}
	return t.WithContext(ctx).
		Model(&types.PreventiveMaintenance{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *pmRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(ctx).Where("id IN ?", ids).Delete(&types.PreventiveMaintenance{}).Error
}
