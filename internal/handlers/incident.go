package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/steadyops/facilities-backend/internal/services"
)

type IncidentHandler struct {
	incidentService services.IncidentReportService
}

func NewIncidentHandler(incidentService services.IncidentReportService) *IncidentHandler {
	return &IncidentHandler{incidentService: incidentService}
}

type createIncidentRequest struct {
	ProjectID   uuid.UUID   `json:"project_id" binding:"required"`
	Title       string      `json:"title" binding:"required"`
	Description string      `json:"description"`
	Priority    string      `json:"priority"`
	TeamUserIDs []uuid.UUID `json:"team_user_ids"`
}

func (h *IncidentHandler) Create(c *gin.Context) {
	var req createIncidentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "invalid", err)
		return
	}
	report, err := h.incidentService.Create(c.Request.Context(), services.CreateIncidentInput{
		ProjectID:   req.ProjectID,
		CreatedByID: actorID(c),
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		TeamUserIDs: req.TeamUserIDs,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"incident_report": report})
}

func (h *IncidentHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	report, err := h.incidentService.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"incident_report": report})
}

type updateIncidentStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *IncidentHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req updateIncidentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "invalid", err)
		return
	}
	if err := h.incidentService.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"updated": true})
}

type reconcileTeamRequest struct {
	UserIDs []uuid.UUID `json:"user_ids"`
}

func (h *IncidentHandler) ReconcileTeam(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req reconcileTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "invalid", err)
		return
	}
	diff, err := h.incidentService.ReconcileTeam(c.Request.Context(), actorID(c), id, req.UserIDs)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"added": diff.Added, "removed": diff.Removed})
}

func (h *IncidentHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.incidentService.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}
