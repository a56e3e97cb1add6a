package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/steadyops/facilities-backend/internal/pkg/apierr"
)

// actorHeader carries the acting user for endpoints that emit
// notifications. Auth middleware is expected to set it upstream.
const actorHeader = "X-Actor-ID"

func pathUUID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, http.StatusUnprocessableEntity, "invalid", apierr.Invalid("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

func actorID(c *gin.Context) uuid.UUID {
	raw := c.GetHeader(actorHeader)
	if raw == "" {
		return uuid.Nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil
	}
	return id
}
