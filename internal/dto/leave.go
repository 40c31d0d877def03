package dto

import (
	"time"

	"github.com/octavertex/workhub/internal/models"
)

// LeaveTypeDTO represents a leave policy in API responses
type LeaveTypeDTO struct {
	ID              uint64  `json:"id"`
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	DefaultDays     float64 `json:"default_days"`
	CarryForward    bool    `json:"carry_forward"`
	MaxCarryForward float64 `json:"max_carry_forward"`
	Paid            bool    `json:"paid"`
}

// LeaveBalanceDTO represents a balance row with the derived available figure
type LeaveBalanceDTO struct {
	LeaveTypeID uint64  `json:"leave_type_id"`
	LeaveType   string  `json:"leave_type,omitempty"`
	Year        int     `json:"year"`
	Entitled    float64 `json:"entitled"`
	Used        float64 `json:"used"`
	Pending     float64 `json:"pending"`
	CarriedOver float64 `json:"carried_over"`
	Available   float64 `json:"available"`
}

// LeaveRequestDTO represents a leave request in API responses
type LeaveRequestDTO struct {
	ID              uint64             `json:"id"`
	UserID          uint64             `json:"user_id"`
	LeaveTypeID     uint64             `json:"leave_type_id"`
	StartDate       time.Time          `json:"start_date"`
	EndDate         time.Time          `json:"end_date"`
	Days            float64            `json:"days"`
	HalfDay         bool               `json:"half_day"`
	Reason          string             `json:"reason"`
	Status          models.LeaveStatus `json:"status"`
	ApproverID      *uint64            `json:"approver_id"`
	DecidedAt       *time.Time         `json:"decided_at"`
	RejectionReason string             `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time          `json:"created_at"`
	User            *UserDTO           `json:"user,omitempty"`
}

// LeaveRequestListResponse represents a paginated list of requests
type LeaveRequestListResponse struct {
	Requests   []LeaveRequestDTO `json:"requests"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalCount int64             `json:"total_count"`
}

// ToLeaveTypeDTO converts a leave type to DTO
func ToLeaveTypeDTO(t models.LeaveType) LeaveTypeDTO {
	return LeaveTypeDTO{
		ID:              t.ID,
		Name:            t.Name,
		Description:     t.Description,
		DefaultDays:     t.DefaultDays,
		CarryForward:    t.CarryForward,
		MaxCarryForward: t.MaxCarryForward,
		Paid:            t.Paid,
	}
}

// ToLeaveBalanceDTO converts a balance to DTO
func ToLeaveBalanceDTO(b models.LeaveBalance) LeaveBalanceDTO {
	return LeaveBalanceDTO{
		LeaveTypeID: b.LeaveTypeID,
		LeaveType:   b.LeaveType.Name,
		Year:        b.Year,
		Entitled:    b.Entitled,
		Used:        b.Used,
		Pending:     b.Pending,
		CarriedOver: b.CarriedOver,
		Available:   b.Available(),
	}
}

// ToLeaveRequestDTO converts a request to DTO
func ToLeaveRequestDTO(r models.LeaveRequest) LeaveRequestDTO {
	d := LeaveRequestDTO{
		ID:              r.ID,
		UserID:          r.UserID,
		LeaveTypeID:     r.LeaveTypeID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		Days:            r.Days,
		HalfDay:         r.HalfDay,
		Reason:          r.Reason,
		Status:          r.Status,
		ApproverID:      r.ApproverID,
		DecidedAt:       r.DecidedAt,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
	}
	if r.User.ID != 0 {
		user := ToUserDTO(r.User)
		d.User = &user
	}
	return d
}

// ToLeaveRequestListResponse converts requests to a paginated response
func ToLeaveRequestListResponse(requests []models.LeaveRequest, page, pageSize int, total int64) LeaveRequestListResponse {
	items := make([]LeaveRequestDTO, len(requests))
	for i, r := range requests {
		items[i] = ToLeaveRequestDTO(r)
	}
	return LeaveRequestListResponse{
		Requests:   items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
	}
}
