package models

import (
	"time"
)

type NotificationType string

const (
	NotificationMention       NotificationType = "mention"
	NotificationTaskAssigned  NotificationType = "task_assigned"
	NotificationLeaveDecided  NotificationType = "leave_decided"
	NotificationLeaveRequest  NotificationType = "leave_request"
	NotificationRoleChanged   NotificationType = "role_changed"
	NotificationStatusChanged NotificationType = "status_changed"
)

type Notification struct {
	ID        uint64           `gorm:"primarykey" json:"id"`
	UserID    uint64           `gorm:"not null;index" json:"user_id"`
	Type      NotificationType `gorm:"type:varchar(30);not null" json:"type"`
	Title     string           `gorm:"type:varchar(255);not null" json:"title"`
	Message   string           `gorm:"type:text" json:"message"`
	ActionURL string           `gorm:"type:varchar(500)" json:"action_url"`
	Read      bool             `gorm:"not null;default:false;index" json:"read"`
	ReadAt    *time.Time       `json:"read_at"`
	CreatedAt time.Time        `gorm:"index" json:"created_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
