package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/steadyops/facilities-backend/internal/pkg/apierr"
	"github.com/steadyops/facilities-backend/internal/pkg/logger"
	"github.com/steadyops/facilities-backend/internal/repos"
	"github.com/steadyops/facilities-backend/internal/types"
)

// DirectoryService manages the reference entities the maintenance
// records hang off: projects, users, assets and areas.
type DirectoryService interface {
	CreateProject(ctx context.Context, name string, workIDPrefix *string) (*types.Project, error)
	CreateUser(ctx context.Context, email, firstName, lastName string) (*types.User, error)
	CreateAsset(ctx context.Context, projectID uuid.UUID, name string) (*types.Asset, error)
	CreateArea(ctx context.Context, projectID uuid.UUID, name string) (*types.Area, error)
	RegisterDeviceToken(ctx context.Context, userID uuid.UUID, token string) (*types.UserDeviceToken, error)
}

type directoryService struct {
	db           *gorm.DB
	log          *logger.Logger
	projects     repos.ProjectRepo
	users        repos.UserRepo
	assets       repos.AssetRepo
	areas        repos.AreaRepo
	deviceTokens repos.UserDeviceTokenRepo
}

func NewDirectoryService(db *gorm.DB, log *logger.Logger, projects repos.ProjectRepo, users repos.UserRepo, assets repos.AssetRepo, areas repos.AreaRepo, deviceTokens repos.UserDeviceTokenRepo) DirectoryService {
	return &directoryService{
		db:           db,
		log:          log.With("service", "DirectoryService"),
		projects:     projects,
		users:        users,
		assets:       assets,
		areas:        areas,
		deviceTokens: deviceTokens,
	}
}

func (s *directoryService) CreateProject(ctx context.Context, name string, workIDPrefix *string) (*types.Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.Invalid("project name is required")
	}
	project := &types.Project{
		ID:           uuid.New(),
		Name:         name,
		WorkIDPrefix: workIDPrefix,
	}
	if _, err := s.projects.Create(ctx, nil, []*types.Project{project}); err != nil {
		return nil, apierr.Unexpected("creating project", err)
	}
	return project, nil
}

func (s *directoryService) CreateUser(ctx context.Context, email, firstName, lastName string) (*types.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" {
		return nil, apierr.Invalid("email is required")
	}
	user := &types.User{
		ID:        uuid.New(),
		Email:     email,
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
	}
	if _, err := s.users.Create(ctx, nil, []*types.User{user}); err != nil {
		if errorsIsDuplicate(err) {
			return nil, apierr.Conflict("email already registered")
		}
		return nil, apierr.Unexpected("creating user", err)
	}
	return user, nil
}

func (s *directoryService) CreateAsset(ctx context.Context, projectID uuid.UUID, name string) (*types.Asset, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.Invalid("asset name is required")
	}
	asset := &types.Asset{
		ID:        uuid.New(),
		ProjectID: projectID,
		Name:      name,
	}
	if _, err := s.assets.Create(ctx, nil, []*types.Asset{asset}); err != nil {
		return nil, apierr.Unexpected("creating asset", err)
	}
	return asset, nil
}

func (s *directoryService) CreateArea(ctx context.Context, projectID uuid.UUID, name string) (*types.Area, error) {
	if err := s.requireProject(ctx, projectID); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apierr.Invalid("area name is required")
	}
	area := &types.Area{
		ID:        uuid.New(),
		ProjectID: projectID,
		Name:      name,
	}
	if _, err := s.areas.Create(ctx, nil, []*types.Area{area}); err != nil {
		return nil, apierr.Unexpected("creating area", err)
	}
	return area, nil
}

func (s *directoryService) RegisterDeviceToken(ctx context.Context, userID uuid.UUID, token string) (*types.UserDeviceToken, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, apierr.Invalid("token is required")
	}
	user, err := s.users.GetByID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Unexpected("loading user", err)
	}
	if user == nil {
		return nil, apierr.NotFound("user not found")
	}
	row := &types.UserDeviceToken{
		ID:     uuid.New(),
		UserID: userID,
		Token:  token,
	}
	if _, err := s.deviceTokens.Create(ctx, nil, []*types.UserDeviceToken{row}); err != nil {
		if errorsIsDuplicate(err) {
			return nil, apierr.Conflict("device token already registered")
		}
		return nil, apierr.Unexpected("registering device token", err)
	}
	return row, nil
}

func errorsIsDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func (s *directoryService) requireProject(ctx context.Context, projectID uuid.UUID) error {
	project, err := s.projects.GetByID(ctx, nil, projectID)
	if err != nil {
		return apierr.Unexpected("loading project", err)
	}
	if project == nil {
		return apierr.NotFound("project not found")
	}
	return nil
}
