package app

import (
	"github.com/steadyops/facilities-backend/internal/handlers"
	"github.com/steadyops/facilities-backend/internal/pkg/logger"
)

type Handlers struct {
	Directory    *handlers.DirectoryHandler
	MasterPM     *handlers.MasterPMHandler
	PM           *handlers.PMHandler
	Incident     *handlers.IncidentHandler
	Notification *handlers.NotificationHandler
}

func wireHandlers(log *logger.Logger, s Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Directory:    handlers.NewDirectoryHandler(s.Directory),
		MasterPM:     handlers.NewMasterPMHandler(s.PM, s.PMAssets, s.PMAreas, s.PMTeamMembers, s.PMAssignees),
		PM:           handlers.NewPMHandler(s.PM, s.PMAssets, s.PMAreas, s.PMTeamMembers, s.PMAssignees),
		Incident:     handlers.NewIncidentHandler(s.Incident),
		Notification: handlers.NewNotificationHandler(s.Notification),
	}
}
