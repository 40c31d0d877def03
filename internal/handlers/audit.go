package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/octavertex/workhub/internal/errors"
	"github.com/octavertex/workhub/internal/services"
)

// AuditHandler serves the audit trail.
type AuditHandler struct {
	auditService *services.AuditService
}

// NewAuditHandler creates a new AuditHandler.
func NewAuditHandler(auditService *services.AuditService) *AuditHandler {
	return &AuditHandler{auditService: auditService}
}

// Trail lists the audit entries recorded against one entity.
func (h *AuditHandler) Trail(c *gin.Context) {
	entity := c.Query("entity")
	entityID := c.Query("entity_id")
	if entity == "" || entityID == "" {
		apierrors.BadRequest(c, "entity and entity_id are required")
		return
	}

	entries, err := h.auditService.Trail(entity, entityID)
	if err != nil {
		apierrors.InternalError(c, "Internal server error")
		return
	}

	c.JSON(http.StatusOK, gin.H{"entries": entries})
}
