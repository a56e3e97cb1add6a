package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/steadyops/facilities-backend/internal/pkg/logger"
	"github.com/steadyops/facilities-backend/internal/types"
)

type IncidentReportRepo interface {
	Create(ctx context.Context, tx *gorm.DB, reports []*types.IncidentReport) ([]*types.IncidentReport, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.IncidentReport, error)
	// FindLastByProjectID returns the newest report for the project,
	// soft-deleted rows included, or nil when none exists.
	FindLastByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.IncidentReport, error)
	UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
	SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error
}

type incidentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIncidentReportRepo(db *gorm.DB, baseLog *logger.Logger) IncidentReportRepo {
	return &incidentRepo{db: db, log: baseLog.With("repo", "IncidentReportRepo")}
}

func (r *incidentRepo) Create(ctx context.Context, tx *gorm.DB, reports []*types.IncidentReport) ([]*types.IncidentReport, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(reports) == 0 {
		return []*types.IncidentReport{}, nil
	}
	if err := t.WithContext(ctx).Create(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *incidentRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.IncidentReport, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.IncidentReport
	if err := t.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}

func (r *incidentRepo) FindLastByProjectID(ctx context.Context, tx *gorm.DB, projectID uuid.UUID) (*types.IncidentReport, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if projectID == uuid.Nil {
		return nil, nil
	}
	var out []*types.IncidentReport
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

func (r *incidentRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
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
		Model(&types.IncidentReport{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *incidentRepo) SoftDeleteByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(ids) == 0 {
		return nil
	}
	return t.WithContext(ctx).Where("id IN ?", ids).Delete(&types.IncidentReport{}).Error
}
