package models

import (
	"time"
)

// AuditLog records privileged and money-like mutations. IDs are UUIDs so
// entries can be referenced across systems without exposing row counts.
type AuditLog struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID    uint64    `gorm:"not null;index" json:"user_id"`
	Action    string    `gorm:"type:varchar(100);not null;index" json:"action"`
	Entity    string    `gorm:"type:varchar(100);not null" json:"entity"`
	EntityID  string    `gorm:"type:varchar(100);not null" json:"entity_id"`
	Changes   string    `gorm:"type:text" json:"changes"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
