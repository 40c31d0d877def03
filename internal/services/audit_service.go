package services

import (
	"fmt"

	"github.com/octavertex/workhub/internal/models"
	"github.com/octavertex/workhub/internal/repository"
)

// AuditService exposes the audit trail for administrative review.
type AuditService struct {
	auditRepo repository.AuditLogRepository
}

// NewAuditService creates a new AuditService.
func NewAuditService(auditRepo repository.AuditLogRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// Trail returns the entries recorded against one entity, newest first.
func (s *AuditService) Trail(entity, entityID string) ([]models.AuditLog, error) {
	entries, err := s.auditRepo.ListByEntity(entity, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	return entries, nil
}
