package app

import (
	"gorm.io/gorm"

	redisclient "github.com/steadyops/facilities-backend/internal/clients/redis"
	"github.com/steadyops/facilities-backend/internal/pkg/logger"
	"github.com/steadyops/facilities-backend/internal/services"
)

type Services struct {
	Directory    services.DirectoryService
	WorkID       services.WorkIDService
	Notification services.NotificationService
	PM           services.PreventiveMaintenanceService
	Incident     services.IncidentReportService

	PMAssets      services.PMRelationService
	PMAreas       services.PMRelationService
	PMTeamMembers services.PMRelationService
	PMAssignees   services.PMRelationService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) (Services, error) {
	log.Info("Wiring services...")

	var pushBus redisclient.PushBus
	if cfg.PushEnabled {
		bus, err := redisclient.NewPushBus(log)
		if err != nil {
			return Services{}, err
		}
		pushBus = bus
	}

	workIDService := services.NewWorkIDService(log, r.Project, r.PM, r.MasterPM, r.IncidentReport)
	notificationService := services.NewNotificationService(log, r.Notification, r.UserDeviceToken, pushBus)

	copier := services.NewInstanceLinkCopier(
		r.MasterPMAsset, r.PMAsset,
		r.MasterPMArea, r.PMArea,
		r.MasterPMTeamMember, r.PMTeamMember,
		r.MasterPMAssignee, r.PMAssignee,
	)
	pmService := services.NewPreventiveMaintenanceService(db, log, workIDService, r.PM, r.MasterPM, copier)
	incidentService := services.NewIncidentReportService(db, log, workIDService, r.IncidentReport, r.IncidentReportTeamMember, r.User, notificationService)

	return Services{
		Directory:    services.NewDirectoryService(db, log, r.Project, r.User, r.Asset, r.Area, r.UserDeviceToken),
		WorkID:       workIDService,
		Notification: notificationService,
		PM:           pmService,
		Incident:     incidentService,

		PMAssets:      services.NewPMAssetRelationService(db, log, r.PM, r.MasterPM, r.Asset, r.PMAsset, r.MasterPMAsset),
		PMAreas:       services.NewPMAreaRelationService(db, log, r.PM, r.MasterPM, r.Area, r.PMArea, r.MasterPMArea),
		PMTeamMembers: services.NewPMTeamMemberRelationService(db, log, r.PM, r.MasterPM, r.User, r.PMTeamMember, r.MasterPMTeamMember, notificationService),
		PMAssignees:   services.NewPMAssigneeRelationService(db, log, r.PM, r.MasterPM, r.User, r.PMAssignee, r.MasterPMAssignee, notificationService),
	}, nil
}
