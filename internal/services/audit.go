package services

import (
	"encoding/json"
	"fmt"

	"github.com/octavertex/workhub/internal/logger"
	"github.com/octavertex/workhub/internal/models"
	"github.com/octavertex/workhub/internal/repository"
	"go.uber.org/zap"
)

// writeAudit records an audit entry after the business operation committed.
// Failures are logged, not propagated, so the trail never undoes real work.
func writeAudit(repo repository.AuditLogRepository, actorID uint64, action, entity string, entityID uint64, changes map[string]interface{}) {
	if repo == nil {
		return
	}
	payload, _ := json.Marshal(changes)
	entry := &models.AuditLog{
		UserID:   actorID,
		Action:   action,
		Entity:   entity,
		EntityID: fmt.Sprintf("%d", entityID),
		Changes:  string(payload),
	}
	if err := repo.Create(entry); err != nil {
		logger.L().Error("audit write failed",
			zap.String("action", action),
			zap.String("entity", entity),
			zap.Error(err),
		)
	}
}
