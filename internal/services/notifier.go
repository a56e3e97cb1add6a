package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gorm.io/datatypes"

	redisclient "github.com/steadyops/facilities-backend/internal/clients/redis"
	"github.com/steadyops/facilities-backend/internal/pkg/logger"
	"github.com/steadyops/facilities-backend/internal/repos"
	"github.com/steadyops/facilities-backend/internal/types"
)

const notifyTimeout = 10 * time.Second

// Notice is one user-facing event emitted by a domain operation.
type Notice struct {
	UserID                  uuid.UUID
	ActorID                 uuid.UUID
	PreventiveMaintenanceID *uuid.UUID
	Title                   string
	Message                 string
	Data                    map[string]string
}

// NotificationService persists an in-app notification row and fans a
// push message out to the user's registered devices. Delivery is
// best-effort: Notify returns immediately and failures are logged,
// never surfaced to the operation that triggered them.
type NotificationService interface {
	Notify(n Notice)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.Notification, error)
	MarkRead(ctx context.Context, ids []uuid.UUID) error
}

type notificationService struct {
	log           *logger.Logger
	notifications repos.NotificationRepo
	deviceTokens  repos.UserDeviceTokenRepo
	pushBus       redisclient.PushBus
}

func NewNotificationService(log *logger.Logger, notifications repos.NotificationRepo, deviceTokens repos.UserDeviceTokenRepo, pushBus redisclient.PushBus) NotificationService {
	return &notificationService{
		log:           log.With("service", "NotificationService"),
		notifications: notifications,
		deviceTokens:  deviceTokens,
		pushBus:       pushBus,
	}
}

func (s *notificationService) ListForUser(ctx context.Context, userID uuid.UUID) ([]*types.Notification, error) {
	rows, err := s.notifications.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *notificationService) MarkRead(ctx context.Context, ids []uuid.UUID) error {
	return s.notifications.MarkRead(ctx, nil, ids)
}

func (s *notificationService) Notify(n Notice) {
	if n.UserID == uuid.Nil || n.Message == "" {
		return
	}
	go s.deliver(n)
}

func (s *notificationService) deliver(n Notice) {
	ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.persist(ctx, n) })
	g.Go(func() error { return s.push(ctx, n) })
	if err := g.Wait(); err != nil {
		s.log.Warn("notification delivery failed",
			"user_id", n.UserID,
			"actor_id", n.ActorID,
			"error", err)
	}
}

func (s *notificationService) persist(ctx context.Context, n Notice) error {
	var payload datatypes.JSON
	if len(n.Data) > 0 {
		raw, err := json.Marshal(n.Data)
		if err != nil {
			return err
		}
		payload = datatypes.JSON(raw)
	}
	_, err := s.notifications.Create(ctx, nil, []*types.Notification{{
		ID:                      uuid.New(),
		UserID:                  n.UserID,
		ActorID:                 n.ActorID,
		PreventiveMaintenanceID: n.PreventiveMaintenanceID,
		Message:                 n.Message,
		Payload:                 payload,
	}})
	return err
}

func (s *notificationService) push(ctx context.Context, n Notice) error {
	if s.pushBus == nil {
		return nil
	}
	tokens, err := s.deviceTokens.TokensByUserIDs(ctx, nil, []uuid.UUID{n.UserID})
	if err != nil {
		return err
	}
	if len(tokens) == 0 {
		return nil
	}
	title := n.Title
	if title == "" {
		title = "Maintenance update"
	}
	return s.pushBus.Publish(ctx, redisclient.PushMessage{
		Tokens: tokens,
		Title:  title,
		Body:   n.Message,
		Data:   n.Data,
	})
}
