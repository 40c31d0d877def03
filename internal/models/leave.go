package models

import (
	"time"

	"gorm.io/gorm"
)

type LeaveStatus string

const (
	LeaveStatusPending   LeaveStatus = "pending"
	LeaveStatusApproved  LeaveStatus = "approved"
	LeaveStatusRejected  LeaveStatus = "rejected"
	LeaveStatusCancelled LeaveStatus = "cancelled"
)

// LeaveType is an organization-scoped leave policy.
type LeaveType struct {
	ID               uint64         `gorm:"primarykey" json:"id"`
	OrganizationID   uint64         `gorm:"not null;index" json:"organization_id"`
	Name             string         `gorm:"type:varchar(100);not null" json:"name"`
	Description      string         `gorm:"type:text" json:"description"`
	DefaultDays      float64        `gorm:"not null;default:0" json:"default_days"`
	CarryForward     bool           `gorm:"not null;default:false" json:"carry_forward"`
	MaxCarryForward  float64        `gorm:"not null;default:0" json:"max_carry_forward"`
	Paid             bool           `gorm:"not null;default:true" json:"paid"`
	RequiresApproval bool           `gorm:"not null;default:true" json:"requires_approval"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}

// LeaveBalance tracks entitlement and consumption per (user, type, year).
// Invariant: Available() = Entitled + CarriedOver - Used - Pending and it
// never goes negative through a request transition.
type LeaveBalance struct {
	ID          uint64    `gorm:"primarykey" json:"id"`
	UserID      uint64    `gorm:"not null;uniqueIndex:idx_balance_user_type_year" json:"user_id"`
	LeaveTypeID uint64    `gorm:"not null;uniqueIndex:idx_balance_user_type_year" json:"leave_type_id"`
	Year        int       `gorm:"not null;uniqueIndex:idx_balance_user_type_year" json:"year"`
	Entitled    float64   `gorm:"not null;default:0" json:"entitled"`
	Used        float64   `gorm:"not null;default:0" json:"used"`
	Pending     float64   `gorm:"not null;default:0" json:"pending"`
	CarriedOver float64   `gorm:"not null;default:0" json:"carried_over"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	LeaveType LeaveType `gorm:"foreignKey:LeaveTypeID" json:"leave_type,omitempty"`
}

// Available returns the days still open to new requests.
func (b *LeaveBalance) Available() float64 {
	return b.Entitled + b.CarriedOver - b.Used - b.Pending
}

type LeaveRequest struct {
	ID          uint64      `gorm:"primarykey" json:"id"`
	UserID      uint64      `gorm:"not null;index" json:"user_id"`
	LeaveTypeID uint64      `gorm:"not null;index" json:"leave_type_id"`
	StartDate   time.Time   `gorm:"not null" json:"start_date"`
	EndDate     time.Time   `gorm:"not null" json:"end_date"`
	Days        float64     `gorm:"not null" json:"days"`
	HalfDay     bool        `gorm:"not null;default:false" json:"half_day"`
	Reason      string      `gorm:"type:text" json:"reason"`
	Status      LeaveStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`

	ApproverID      *uint64    `json:"approver_id"`
	DecidedAt       *time.Time `json:"decided_at"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User      User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	LeaveType LeaveType `gorm:"foreignKey:LeaveTypeID" json:"leave_type,omitempty"`
	Approver  *User     `gorm:"foreignKey:ApproverID" json:"approver,omitempty"`
}
