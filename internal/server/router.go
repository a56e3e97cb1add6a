package server

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/steadyops/facilities-backend/internal/handlers"
)

type RouterConfig struct {
	ServiceName         string
	AllowOrigins        []string
	DirectoryHandler    *handlers.DirectoryHandler
	MasterPMHandler     *handlers.MasterPMHandler
	PMHandler           *handlers.PMHandler
	IncidentHandler     *handlers.IncidentHandler
	NotificationHandler *handlers.NotificationHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	origins := cfg.AllowOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-Actor-ID"},
		AllowCredentials: true,
	}))

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "facilities-backend"
	}
	router.Use(otelgin.Middleware(serviceName))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Directory
		api.POST("/projects", cfg.DirectoryHandler.CreateProject)
		api.POST("/users", cfg.DirectoryHandler.CreateUser)
		api.POST("/projects/:projectID/assets", cfg.DirectoryHandler.CreateAsset)
		api.POST("/projects/:projectID/areas", cfg.DirectoryHandler.CreateArea)
		api.POST("/users/:userID/device-tokens", cfg.DirectoryHandler.RegisterDeviceToken)

		// Templates
		masters := api.Group("/master-preventive-maintenances")
		masters.POST("", cfg.MasterPMHandler.Create)
		masters.GET("/:id", cfg.MasterPMHandler.Get)
		masters.POST("/:id/deactivate", cfg.MasterPMHandler.Deactivate)
		masters.DELETE("/:id", cfg.MasterPMHandler.Delete)
		masters.PUT("/:id/relations/:kind", cfg.MasterPMHandler.ReconcileRelation)
		masters.POST("/:id/relations/:kind/:relatedID", cfg.MasterPMHandler.AddRelation)
		masters.DELETE("/:id/relations/:kind/:relatedID", cfg.MasterPMHandler.RemoveRelation)

		// Occurrences
		pms := api.Group("/preventive-maintenances")
		pms.POST("", cfg.PMHandler.Create)
		pms.POST("/generate-due", cfg.PMHandler.GenerateDue)
		pms.GET("/:id", cfg.PMHandler.Get)
		pms.POST("/:id/complete", cfg.PMHandler.Complete)
		pms.POST("/:id/cancel", cfg.PMHandler.Cancel)
		pms.PUT("/:id/relations/:kind", cfg.PMHandler.ReconcileRelation)
		pms.POST("/:id/relations/:kind/:relatedID", cfg.PMHandler.AddRelation)
		pms.DELETE("/:id/relations/:kind/:relatedID", cfg.PMHandler.RemoveRelation)

		// Incidents
		incidents := api.Group("/incident-reports")
		incidents.POST("", cfg.IncidentHandler.Create)
		incidents.GET("/:id", cfg.IncidentHandler.Get)
		incidents.PATCH("/:id/status", cfg.IncidentHandler.UpdateStatus)
		incidents.PUT("/:id/team", cfg.IncidentHandler.ReconcileTeam)
		incidents.DELETE("/:id", cfg.IncidentHandler.Delete)

		// Notifications
		api.GET("/users/:userID/notifications", cfg.NotificationHandler.ListForUser)
		api.POST("/notifications/mark-read", cfg.NotificationHandler.MarkRead)
	}

	return router
}
