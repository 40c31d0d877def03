package models

import (
	"time"
)

type UserStatus string

const (
	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

// User accounts are never hard-deleted; deactivation is a status change.
type User struct {
	ID           uint64     `gorm:"primarykey" json:"id"`
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string     `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName     string     `gorm:"type:varchar(100);not null" json:"last_name"`
	Role         Role       `gorm:"type:varchar(20);not null;default:'employee'" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`

	OrganizationID *uint64 `gorm:"index" json:"organization_id"`
	DepartmentID   *uint64 `gorm:"index" json:"department_id"`
	ManagerID      *uint64 `gorm:"index" json:"manager_id"`

	// Persisted UI preferences; ephemeral view state never reaches the server.
	Theme            string `gorm:"type:varchar(10);not null;default:'system'" json:"theme"`
	SidebarCollapsed bool   `gorm:"not null;default:false" json:"sidebar_collapsed"`

	LastLoginAt *time.Time `json:"last_login_at"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	// Relations
	Organization *Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Department   *Department   `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Manager      *User         `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
