package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/steadyops/facilities-backend/internal/pkg/logger"
	"github.com/steadyops/facilities-backend/internal/types"
)

type AreaRepo interface {
	Create(ctx context.Context, tx *gorm.DB, areas []*types.Area) ([]*types.Area, error)
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Area, error)
}

type areaRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAreaRepo(db *gorm.DB, baseLog *logger.Logger) AreaRepo {
	return &areaRepo{db: db, log: baseLog.With("repo", "AreaRepo")}
}

func (r *areaRepo) Create(ctx context.Context, tx *gorm.DB, areas []*types.Area) ([]*types.Area, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(areas) == 0 {
		return []*types.Area{}, nil
	}
	if err := t.WithContext(ctx).Create(&areas).Error; err != nil {
		return nil, err
	}
	return areas, nil
}

func (r *areaRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Area, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var out []*types.Area
	if err := t.WithContext(ctx).Where("id = ?", id).Limit(1).Find(&out).Error; err != nil {
		return nil, err
	}
	if len(out) == 0 {
		return nil, nil
	}
	return out[0], nil
}
