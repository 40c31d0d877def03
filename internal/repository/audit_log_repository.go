package repository

import (
	"github.com/google/uuid"
	"github.com/octavertex/workhub/internal/models"
	"gorm.io/gorm"
)

// GormAuditLogRepository is a GORM implementation of AuditLogRepository
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewAuditLogRepository creates a new AuditLogRepository
func NewAuditLogRepository(db *gorm.DB) AuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Create creates an audit entry, assigning its UUID when absent
func (r *GormAuditLogRepository) Create(entry *models.AuditLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	return r.db.Create(entry).Error
}

// ListByEntity lists the audit trail of one entity, newest first
func (r *GormAuditLogRepository) ListByEntity(entity, entityID string) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	err := r.db.Where("entity = ? AND entity_id = ?", entity, entityID).
		Order("created_at DESC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
