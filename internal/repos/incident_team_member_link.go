package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/steadyops/facilities-backend/internal/pkg/logger"
	"github.com/steadyops/facilities-backend/internal/types"
)

type IncidentReportTeamMemberRepo interface {
	GetByIncidentIDs(ctx context.Context, tx *gorm.DB, incidentIDs []uuid.UUID) ([]*types.IncidentReportTeamMember, error)
	ExistingIDs(ctx context.Context, tx *gorm.DB, incidentID uuid.UUID) ([]uuid.UUID, error)
	HasLink(ctx context.Context, tx *gorm.DB, incidentID, userID uuid.UUID) (bool, error)
	InsertLinks(ctx context.Context, tx *gorm.DB, incidentID uuid.UUID, userIDs []uuid.UUID) error
	DeleteLinks(ctx context.Context, tx *gorm.DB, incidentID uuid.UUID, userIDs []uuid.UUID) error
	DeleteForParents(ctx context.Context, tx *gorm.DB, incidentIDs []uuid.UUID, userID uuid.UUID) error
	DeleteByParentIDs(ctx context.Context, tx *gorm.DB, incidentIDs []uuid.UUID) error
}

type incidentTeamMemberRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIncidentReportTeamMemberRepo(db *gorm.DB, baseLog *logger.Logger) IncidentReportTeamMemberRepo {
	return &incidentTeamMemberRepo{db: db, log: baseLog.With("repo", "IncidentReportTeamMemberRepo")}
}

func (r *incidentTeamMemberRepo) GetByIncidentIDs(ctx context.Context, tx *gorm.DB, incidentIDs []uuid.UUID) ([]*types.IncidentReportTeamMember, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var out []*types.IncidentReportTeamMember
	if len(incidentIDs) == 0 {
		return out, nil
	}
	if err := t.WithContext(ctx).Where("incident_report_id IN ?", incidentIDs).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *incidentTeamMemberRepo) ExistingIDs(ctx context.Context, tx *gorm.DB, incidentID uuid.UUID) ([]uuid.UUID, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var ids []uuid.UUID
	if incidentID == uuid.Nil {
		return ids, nil
	}
	if err := t.WithContext(ctx).
		Model(&types.IncidentReportTeamMember{}).
		Where("incident_report_id = ?", incidentID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *incidentTeamMemberRepo) HasLink(ctx context.Context, tx *gorm.DB, incidentID, userID uuid.UUID) (bool, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var n int64
	if err := t.WithContext(ctx).
		Model(&types.IncidentReportTeamMember{}).
		Where("incident_report_id = ? AND user_id = ?", incidentID, userID).
		Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *incidentTeamMemberRepo) InsertLinks(ctx context.Context, tx *gorm.DB, incidentID uuid.UUID, userIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(userIDs) == 0 {
		return nil
	}
	now := time.Now().UTC()
	rows := make([]*types.IncidentReportTeamMember, 0, len(userIDs))
	for _, userID := range userIDs {
		rows = append(rows, &types.IncidentReportTeamMember{
			ID:               uuid.New(),
			IncidentReportID: incidentID,
			UserID:           userID,
			CreatedAt:        now,
			UpdatedAt:        now,
		})
	}
	return t.WithContext(ctx).Create(&rows).Error
}

func (r *incidentTeamMemberRepo) DeleteLinks(ctx context.Context, tx *gorm.DB, incidentID uuid.UUID, userIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(userIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("incident_report_id = ? AND user_id IN ?", incidentID, userIDs).
		Delete(&types.IncidentReportTeamMember{}).Error
}

func (r *incidentTeamMemberRepo) DeleteForParents(ctx context.Context, tx *gorm.DB, incidentIDs []uuid.UUID, userID uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(incidentIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("incident_report_id IN ? AND user_id = ?", incidentIDs, userID).
		Delete(&types.IncidentReportTeamMember{}).Error
}

func (r *incidentTeamMemberRepo) DeleteByParentIDs(ctx context.Context, tx *gorm.DB, incidentIDs []uuid.UUID) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(incidentIDs) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("incident_report_id IN ?", incidentIDs).
		Delete(&types.IncidentReportTeamMember{}).Error
}
