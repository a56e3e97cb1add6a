package app

import (
	"gorm.io/gorm"

	"github.com/steadyops/facilities-backend/internal/pkg/logger"
	"github.com/steadyops/facilities-backend/internal/repos"
)

type Repos struct {
	Project         repos.ProjectRepo
	User            repos.UserRepo
	UserDeviceToken repos.UserDeviceTokenRepo
	Asset           repos.AssetRepo
	Area            repos.AreaRepo

	MasterPM repos.MasterPreventiveMaintenanceRepo
	PM       repos.PreventiveMaintenanceRepo

	PMAsset            repos.PreventiveMaintenanceAssetRepo
	PMArea             repos.PreventiveMaintenanceAreaRepo
	PMTeamMember       repos.PreventiveMaintenanceTeamMemberRepo
	PMAssignee         repos.PreventiveMaintenanceAssigneeRepo
	MasterPMAsset      repos.MasterPreventiveMaintenanceAssetRepo
	MasterPMArea       repos.MasterPreventiveMaintenanceAreaRepo
	MasterPMTeamMember repos.MasterPreventiveMaintenanceTeamMemberRepo
	MasterPMAssignee   repos.MasterPreventiveMaintenanceAssigneeRepo

	IncidentReport           repos.IncidentReportRepo
	IncidentReportTeamMember repos.IncidentReportTeamMemberRepo
	Notification             repos.NotificationRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Project:         repos.NewProjectRepo(db, log),
		User:            repos.NewUserRepo(db, log),
		UserDeviceToken: repos.NewUserDeviceTokenRepo(db, log),
		Asset:           repos.NewAssetRepo(db, log),
		Area:            repos.NewAreaRepo(db, log),

		MasterPM: repos.NewMasterPreventiveMaintenanceRepo(db, log),
		PM:       repos.NewPreventiveMaintenanceRepo(db, log),

		PMAsset:            repos.NewPreventiveMaintenanceAssetRepo(db, log),
		PMArea:             repos.NewPreventiveMaintenanceAreaRepo(db, log),
		PMTeamMember:       repos.NewPreventiveMaintenanceTeamMemberRepo(db, log),
		PMAssignee:         repos.NewPreventiveMaintenanceAssigneeRepo(db, log),
		MasterPMAsset:      repos.NewMasterPreventiveMaintenanceAssetRepo(db, log),
		MasterPMArea:       repos.NewMasterPreventiveMaintenanceAreaRepo(db, log),
		MasterPMTeamMember: repos.NewMasterPreventiveMaintenanceTeamMemberRepo(db, log),
		MasterPMAssignee:   repos.NewMasterPreventiveMaintenanceAssigneeRepo(db, log),

		IncidentReport:           repos.NewIncidentReportRepo(db, log),
		IncidentReportTeamMember: repos.NewIncidentReportTeamMemberRepo(db, log),
		Notification:             repos.NewNotificationRepo(db, log),
	}
}
