package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/steadyops/facilities-backend/internal/pkg/apierr"
	"github.com/steadyops/facilities-backend/internal/services"
)

type MasterPMHandler struct {
	pmService   services.PreventiveMaintenanceService
	assets      services.PMRelationService
	areas       services.PMRelationService
	teamMembers services.PMRelationService
	assignees   services.PMRelationService
}

func NewMasterPMHandler(pmService services.PreventiveMaintenanceService, assets, areas, teamMembers, assignees services.PMRelationService) *MasterPMHandler {
	return &MasterPMHandler{
		pmService:   pmService,
		assets:      assets,
		areas:       areas,
		teamMembers: teamMembers,
		assignees:   assignees,
	}
}

type createMasterRequest struct {
	ProjectID     uuid.UUID  `json:"project_id" binding:"required"`
	SubProjectID  *uuid.UUID `json:"sub_project_id"`
	TaskCategory  string     `json:"task_category" binding:"required"`
	PMType        string     `json:"pm_type"`
	WorkTitle     string     `json:"work_title" binding:"required"`
	IsRecurring   bool       `json:"is_recurring"`
	FrequencyDays int        `json:"frequency_days"`
	DueDate       time.Time  `json:"due_date" binding:"required"`
}

func (h *MasterPMHandler) Create(c *gin.Context) {
	var req createMasterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "invalid", err)
		return
	}
	master, err := h.pmService.CreateMaster(c.Request.Context(), services.CreateMasterInput{
		ProjectID:     req.ProjectID,
		SubProjectID:  req.SubProjectID,
		TaskCategory:  req.TaskCategory,
		PMType:        req.PMType,
		WorkTitle:     req.WorkTitle,
		IsRecurring:   req.IsRecurring,
		FrequencyDays: req.FrequencyDays,
		DueDate:       req.DueDate,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"master_preventive_maintenance": master})
}

func (h *MasterPMHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	master, err := h.pmService.GetMaster(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"master_preventive_maintenance": master})
}

func (h *MasterPMHandler) Deactivate(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.pmService.DeactivateMaster(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deactivated": true})
}

func (h *MasterPMHandler) Delete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.pmService.DeleteMaster(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"deleted": true})
}

func (h *MasterPMHandler) relationFor(kind string) services.PMRelationService {
	switch kind {
	case "assets":
		return h.assets
	case "areas":
		return h.areas
	case "team-members":
		return h.teamMembers
	case "assignees":
		return h.assignees
	default:
		return nil
	}
}

func (h *MasterPMHandler) AddRelation(c *gin.Context) {
	rel := h.relationFor(c.Param("kind"))
	if rel == nil {
		RespondError(c, http.StatusNotFound, "not_found", apierr.NotFound("unknown relation kind"))
		return
	}
	masterID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	relatedID, ok := pathUUID(c, "relatedID")
	if !ok {
		return
	}
	if err := rel.LinkForMaster(c.Request.Context(), actorID(c), masterID, relatedID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"linked": true})
}

func (h *MasterPMHandler) RemoveRelation(c *gin.Context) {
	rel := h.relationFor(c.Param("kind"))
	if rel == nil {
		RespondError(c, http.StatusNotFound, "not_found", apierr.NotFound("unknown relation kind"))
		return
	}
	masterID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	relatedID, ok := pathUUID(c, "relatedID")
	if !ok {
		return
	}
	if err := rel.UnlinkForMaster(c.Request.Context(), actorID(c), masterID, relatedID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"unlinked": true})
}

type reconcileRelationRequest struct {
	IDs []uuid.UUID `json:"ids"`
}

func (h *MasterPMHandler) ReconcileRelation(c *gin.Context) {
	rel := h.relationFor(c.Param("kind"))
	if rel == nil {
		RespondError(c, http.StatusNotFound, "not_found", apierr.NotFound("unknown relation kind"))
		return
	}
	masterID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req reconcileRelationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "invalid", err)
		return
	}
	diff, err := rel.ReconcileForMaster(c.Request.Context(), actorID(c), masterID, req.IDs)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"added": diff.Added, "removed": diff.Removed})
}
