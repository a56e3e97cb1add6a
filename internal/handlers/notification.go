package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/steadyops/facilities-backend/internal/services"
)

type NotificationHandler struct {
	notificationService services.NotificationService
}

func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) ListForUser(c *gin.Context) {
	userID, ok := pathUUID(c, "userID")
	if !ok {
		return
	}
	rows, err := h.notificationService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"notifications": rows})
}

type markReadRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required"`
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	var req markReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "invalid", err)
		return
	}
	if err := h.notificationService.MarkRead(c.Request.Context(), req.IDs); err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"updated": true})
}
