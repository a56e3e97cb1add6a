package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/steadyops/facilities-backend/internal/pkg/logger"
	"github.com/steadyops/facilities-backend/internal/types"
)

type MasterPreventiveMaintenanceRepo interface {
	Create(ctx context.Context, tx *gorm.DB, masters []*types.MasterPreventiveMaintenance) ([]*types.MasterPreventiveMaintenance, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MasterPreventiveMaintenance, error)
	// FindAllRecurring returns every active recurring template.
	FindAllRecurring(ctx context.Context, tx *gorm.DB) ([]*types.MasterPreventiveMaintenance, error)
	// FindLastByProjectID returns the newest template created for the
	// project, soft-deleted rows included, or nil when none exists.
	FindLastByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.MasterPreventiveMaintenance, error)
	Save(ctx context.Context, tx *gorm.DB, master *types.MasterPreventiveMaintenance) error
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type masterPMRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMasterPreventiveMaintenanceRepo(db *gorm.DB, baseLog *logger.Logger) MasterPreventiveMaintenanceRepo {
	return &masterPMRepo{db: db, log: baseLog.With("repo", "MasterPreventiveMaintenanceRepo")}
}

func (r *masterPMRepo) Create(ctx context.Context, tx *gorm.DB, masters []*types.MasterPreventiveMaintenance) ([]*types.MasterPreventiveMaintenance, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(masters) == 0 {
		return []*types.MasterPreventiveMaintenance{}, nil
	}
	if err := t.WithContext(ctx).Create(&masters).Error; err != nil {
		return nil, err
	}
	return masters, nil
}

func (r *masterPMRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.MasterPreventiveMaintenance, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.MasterPreventiveMaintenance
	if err := t.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *masterPMRepo) FindAllRecurring(ctx context.Context, tx *gorm.DB) ([]*types.MasterPreventiveMaintenance, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.MasterPreventiveMaintenance
	if err := t.WithContext(ctx).
		Where("is_recurring = true AND is_active = true").
		Order("created_at ASC").
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *masterPMRepo) FindLastByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.MasterPreventiveMaintenance, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if projectID == uuid.Nil {
		return nil, nil
	}
	var out []*types.MasterPreventiveMaintenance
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

func (r *masterPMRepo) Save(ctx context.Context, tx *gorm.DB, master *types.MasterPreventiveMaintenance) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if master == nil {
		return nil
	}
	return t.WithContext(ctx).Save(master).Error
}

func (r *masterPMRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.MasterPreventiveMaintenance{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *masterPMRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(ctx).Where("id IN ?", ids).Delete(&types.MasterPreventiveMaintenance{}).Error
}
