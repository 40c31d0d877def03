package dto

import (
	"time"

	"github.com/octavertex/workhub/internal/models"
)

// AttendanceRecordDTO represents a day's attendance in API responses
type AttendanceRecordDTO struct {
	ID            uint64                  `json:"id"`
	UserID        uint64                  `json:"user_id"`
	Date          time.Time               `json:"date"`
	Status        models.AttendanceStatus `json:"status"`
	ClockIn       *time.Time              `json:"clock_in"`
	ClockOut      *time.Time              `json:"clock_out"`
	OnBreak       bool                    `json:"on_break"`
	BreakMinutes  int64                   `json:"break_minutes"`
	WorkHours     float64                 `json:"work_hours"`
	OvertimeHours float64                 `json:"overtime_hours"`
	Notes         string                  `json:"notes,omitempty"`
	Locked        bool                    `json:"locked"`
}

// ToAttendanceRecordDTO converts a record to DTO
func ToAttendanceRecordDTO(r models.AttendanceRecord) AttendanceRecordDTO {
	return AttendanceRecordDTO{
		ID:            r.ID,
		UserID:        r.UserID,
		Date:          r.Date,
		Status:        r.Status,
		ClockIn:       r.ClockIn,
		ClockOut:      r.ClockOut,
		OnBreak:       r.OnBreak(),
		BreakMinutes:  r.TotalBreakSecs / 60,
		WorkHours:     r.WorkHours,
		OvertimeHours: r.OvertimeHours,
		Notes:         r.Notes,
		Locked:        r.Locked,
	}
}

// ToAttendanceRecordDTOs converts records to DTOs
func ToAttendanceRecordDTOs(records []models.AttendanceRecord) []AttendanceRecordDTO {
	dtos := make([]AttendanceRecordDTO, len(records))
	for i, r := range records {
		dtos[i] = ToAttendanceRecordDTO(r)
	}
	return dtos
}
