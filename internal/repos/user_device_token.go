package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/steadyops/facilities-backend/internal/pkg/logger"
	"github.com/steadyops/facilities-backend/internal/types"
)

type UserDeviceTokenRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.UserDeviceToken) ([]*types.UserDeviceToken, error)
	TokensByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]string, error)
	DeleteByTokens(ctx context.Context, tx *gorm.DB, tokens []string) error
}

type userDeviceTokenRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserDeviceTokenRepo(db *gorm.DB, baseLog *logger.Logger) UserDeviceTokenRepo {
	return &userDeviceTokenRepo{db: db, log: baseLog.With("repo", "UserDeviceTokenRepo")}
}

func (r *userDeviceTokenRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.UserDeviceToken) ([]*types.UserDeviceToken, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(rows) == 0 {
		return []*types.UserDeviceToken{}, nil
	}
	if err := t.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *userDeviceTokenRepo) TokensByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) ([]string, error) {
	t := tx
	if t == nil {
		t = r.db
	}
	var tokens []string
	if len(userIDs) == 0 {
		return tokens, nil
	}
	if err := t.WithContext(ctx).
		Model(&types.UserDeviceToken{}).
		Where("user_id IN ?", userIDs).
		Pluck("token", &tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}

func (r *userDeviceTokenRepo) DeleteByTokens(ctx context.Context, tx *gorm.DB, tokens []string) error {
	t := tx
	if t == nil {
		t = r.db
	}
	if len(tokens) == 0 {
		return nil
	}
	return t.WithContext(ctx).
		Where("token IN ?", tokens).
		Delete(&types.UserDeviceToken{}).Error
}
