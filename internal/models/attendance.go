package models

import (
	"time"
)

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceHalfDay AttendanceStatus = "half_day"
	AttendanceOnLeave AttendanceStatus = "on_leave"
	AttendanceHoliday AttendanceStatus = "holiday"
	AttendanceWeekend AttendanceStatus = "weekend"
)

// Shift is an organization-level attendance policy. Times are "HH:MM" in the
// organization's local time.
type Shift struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	OrganizationID uint64    `gorm:"not null;index" json:"organization_id"`
	Name           string    `gorm:"type:varchar(100);not null" json:"name"`
	StartTime      string    `gorm:"type:varchar(5);not null" json:"start_time"`
	EndTime        string    `gorm:"type:varchar(5);not null" json:"end_time"`
	BreakDuration  int       `gorm:"not null;default:60" json:"break_duration"`
	GraceMinutes   int       `gorm:"not null;default:15" json:"grace_minutes"`
	StandardHours  float64   `gorm:"not null;default:8" json:"standard_hours"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
}

// AttendanceRecord holds one row per user per calendar date. Date is the day
// at midnight in the record's location.
type AttendanceRecord struct {
	ID     uint64           `gorm:"primarykey" json:"id"`
	UserID uint64           `gorm:"not null;uniqueIndex:idx_attendance_user_date" json:"user_id"`
	Date   time.Time        `gorm:"not null;uniqueIndex:idx_attendance_user_date" json:"date"`
	Status AttendanceStatus `gorm:"type:varchar(20);not null" json:"status"`

	ClockIn        *time.Time `json:"clock_in"`
	ClockOut       *time.Time `json:"clock_out"`
	BreakStart     *time.Time `json:"break_start"`
	TotalBreakSecs int64      `gorm:"not null;default:0" json:"total_break_secs"`
	WorkHours      float64    `gorm:"not null;default:0" json:"work_hours"`
	OvertimeHours  float64    `gorm:"not null;default:0" json:"overtime_hours"`
	Notes          string     `gorm:"type:text" json:"notes"`
	Locked         bool       `gorm:"not null;default:false" json:"locked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Open reports whether the user is currently clocked in on this record.
func (r *AttendanceRecord) Open() bool {
	return r.ClockIn != nil && r.ClockOut == nil
}

// OnBreak reports whether a break is in progress.
func (r *AttendanceRecord) OnBreak() bool {
	return r.Open() && r.BreakStart != nil
}

// Finalized reports whether the record may no longer be edited without an
// administrative override: the day is clocked out and the date has passed.
func (r *AttendanceRecord) Finalized(now time.Time) bool {
	if r.Locked {
		return true
	}
	if r.ClockOut == nil {
		return false
	}
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	return r.Date.Before(today)
}
