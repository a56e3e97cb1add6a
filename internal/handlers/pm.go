package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/steadyops/facilities-backend/internal/pkg/apierr"
	"github.com/steadyops/facilities-backend/internal/services"
)

type PMHandler struct {
	pmService   services.PreventiveMaintenanceService
	assets      services.PMRelationService
	areas       services.PMRelationService
	teamMembers services.PMRelationService
	assignees   services.PMRelationService
}

func NewPMHandler(pmService services.PreventiveMaintenanceService, assets, areas, teamMembers, assignees services.PMRelationService) *PMHandler {
	return &PMHandler{
		pmService:   pmService,
		assets:      assets,
		areas:       areas,
		teamMembers: teamMembers,
		assignees:   assignees,
	}
}

type createPMRequest struct {
	ProjectID    uuid.UUID  `json:"project_id" binding:"required"`
	SubProjectID *uuid.UUID `json:"sub_project_id"`
	TaskCategory string     `json:"task_category" binding:"required"`
	PMType       string     `json:"pm_type"`
	WorkTitle    string     `json:"work_title" binding:"required"`
	DueDate      time.Time  `json:"due_date" binding:"required"`
}

func (h *PMHandler) Create(c *gin.Context) {
	var req createPMRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "invalid", err)
		return
	}
	pm, err := h.pmService.Create(c.Request.Context(), services.CreatePMInput{
		ProjectID:    req.ProjectID,
		SubProjectID: req.SubProjectID,
		TaskCategory: req.TaskCategory,
		PMType:       req.PMType,
		WorkTitle:    req.WorkTitle,
		DueDate:      req.DueDate,
	})
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"preventive_maintenance": pm})
}

func (h *PMHandler) Get(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	pm, err := h.pmService.Get(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"preventive_maintenance": pm})
}

func (h *PMHandler) Complete(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	pm, err := h.pmService.Complete(c.Request.Context(), id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"preventive_maintenance": pm})
}

func (h *PMHandler) Cancel(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	if err := h.pmService.Cancel(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"cancelled": true})
}

// GenerateDue triggers the occurrence sweep. Deployments usually call
// it from a scheduler.
func (h *PMHandler) GenerateDue(c *gin.Context) {
	activated, err := h.pmService.GenerateDueInstances(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"activated": activated})
}

func (h *PMHandler) relationFor(kind string) services.PMRelationService {
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

func (h *PMHandler) AddRelation(c *gin.Context) {
	rel := h.relationFor(c.Param("kind"))
	if rel == nil {
		RespondError(c, http.StatusNotFound, "not_found", apierr.NotFound("unknown relation kind"))
		return
	}
	pmID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	relatedID, ok := pathUUID(c, "relatedID")
	if !ok {
		return
	}
	if err := rel.Link(c.Request.Context(), actorID(c), pmID, relatedID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"linked": true})
}

func (h *PMHandler) RemoveRelation(c *gin.Context) {
	rel := h.relationFor(c.Param("kind"))
	if rel == nil {
		RespondError(c, http.StatusNotFound, "not_found", apierr.NotFound("unknown relation kind"))
		return
	}
	pmID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	relatedID, ok := pathUUID(c, "relatedID")
	if !ok {
		return
	}
	if err := rel.Unlink(c.Request.Context(), actorID(c), pmID, relatedID); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"unlinked": true})
}

func (h *PMHandler) ReconcileRelation(c *gin.Context) {
	rel := h.relationFor(c.Param("kind"))
	if rel == nil {
		RespondError(c, http.StatusNotFound, "not_found", apierr.NotFound("unknown relation kind"))
		return
	}
	pmID, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	var req reconcileRelationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "invalid", err)
		return
	}
	diff, err := rel.Reconcile(c.Request.Context(), actorID(c), pmID, req.IDs)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"added": diff.Added, "removed": diff.Removed})
}
