package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/steadyops/facilities-backend/internal/services"
)

type DirectoryHandler struct {
	directoryService services.DirectoryService
}

func NewDirectoryHandler(directoryService services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{directoryService: directoryService}
}

type createProjectRequest struct {
	Name         string  `json:"name" binding:"required"`
	WorkIDPrefix *string `json:"work_id_prefix"`
}

func (h *DirectoryHandler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "invalid", err)
		return
	}
	project, err := h.directoryService.CreateProject(c.Request.Context(), req.Name, req.WorkIDPrefix)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"project": project})
}

type createUserRequest struct {
	Email     string `json:"email" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

func (h *DirectoryHandler) CreateUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "invalid", err)
		return
	}
	user, err := h.directoryService.CreateUser(c.Request.Context(), req.Email, req.FirstName, req.LastName)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"user": user})
}

type createNamedRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *DirectoryHandler) CreateAsset(c *gin.Context) {
	projectID, ok := pathUUID(c, "projectID")
	if !ok {
		return
	}
	var req createNamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "invalid", err)
		return
	}
	asset, err := h.directoryService.CreateAsset(c.Request.Context(), projectID, req.Name)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"asset": asset})
}

func (h *DirectoryHandler) CreateArea(c *gin.Context) {
	projectID, ok := pathUUID(c, "projectID")
	if !ok {
		return
	}
	var req createNamedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "invalid", err)
		return
	}
	area, err := h.directoryService.CreateArea(c.Request.Context(), projectID, req.Name)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"area": area})
}

type registerDeviceTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

func (h *DirectoryHandler) RegisterDeviceToken(c *gin.Context) {
	userID, ok := pathUUID(c, "userID")
	if !ok {
		return
	}
	var req registerDeviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "invalid", err)
		return
	}
	row, err := h.directoryService.RegisterDeviceToken(c.Request.Context(), userID, req.Token)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, gin.H{"device_token": row})
}
