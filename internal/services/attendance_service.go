package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/octavertex/workhub/internal/models"
	"github.com/octavertex/workhub/internal/repository"
	"github.com/octavertex/workhub/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrAlreadyClockedIn  = errors.New("already clocked in today")
	ErrNotClockedIn      = errors.New("not clocked in")
	ErrAlreadyClockedOut = errors.New("already clocked out")
	ErrAlreadyOnBreak    = errors.New("a break is already in progress")
	ErrNotOnBreak        = errors.New("no break in progress")
	ErrRecordFinalized   = errors.New("record is finalized and cannot be edited")
	ErrRecordNotFound    = errors.New("attendance record not found")
)

// AttendanceService drives the daily clock-in/break/clock-out cycle. One
// record exists per user per calendar date; once the day is clocked out and
// past, the record is finalized and only an administrative override may touch
// it.
type AttendanceService struct {
	attendanceRepo repository.AttendanceRepository
	auditRepo      repository.AuditLogRepository
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(attendanceRepo repository.AttendanceRepository, auditRepo repository.AuditLogRepository) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		auditRepo:      auditRepo,
	}
}

// ClockIn opens today's record. Arrival after the shift's grace window marks
// the day late.
func (s *AttendanceService) ClockIn(userID uint64, orgID uint64, now time.Time) (*models.AttendanceRecord, error) {
	date := utils.StartOfDay(now)

	status := models.AttendancePresent
	if shift, err := s.attendanceRepo.FindShiftByOrganization(orgID); err == nil {
		if shiftStart, perr := utils.ParseClock(date, shift.StartTime); perr == nil {
			deadline := shiftStart.Add(time.Duration(shift.GraceMinutes) * time.Minute)
			if now.After(deadline) {
				status = models.AttendanceLate
			}
		}
	}

	record := &models.AttendanceRecord{
		UserID:  userID,
		Date:    date,
		Status:  status,
		ClockIn: &now,
	}

	if err := s.attendanceRepo.CreateClockIn(record); err != nil {
		if errors.Is(err, repository.ErrDuplicateAttendance) {
			return nil, ErrAlreadyClockedIn
		}
		return nil, fmt.Errorf("failed to clock in: %w", err)
	}
	return record, nil
}

// today fetches the user's record for the day, mapping absence to a sentinel.
func (s *AttendanceService) today(userID uint64, now time.Time) (*models.AttendanceRecord, error) {
	record, err := s.attendanceRepo.FindByUserAndDate(userID, utils.StartOfDay(now))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotClockedIn
		}
		return nil, fmt.Errorf("failed to find attendance record: %w", err)
	}
	return record, nil
}

// StartBreak begins a break on the open record.
func (s *AttendanceService) StartBreak(userID uint64, now time.Time) (*models.AttendanceRecord, error) {
	record, err := s.today(userID, now)
	if err != nil {
		return nil, err
	}
	if !record.Open() {
		if record.ClockOut != nil {
			return nil, ErrAlreadyClockedOut
		}
		return nil, ErrNotClockedIn
	}
	if record.OnBreak() {
		return nil, ErrAlreadyOnBreak
	}

	record.BreakStart = &now
	if err := s.attendanceRepo.Update(record); err != nil {
		return nil, fmt.Errorf("failed to start break: %w", err)
	}
	return record, nil
}

// EndBreak closes the open break and accumulates its duration.
func (s *AttendanceService) EndBreak(userID uint64, now time.Time) (*models.AttendanceRecord, error) {
	record, err := s.today(userID, now)
	if err != nil {
		return nil, err
	}
	if !record.OnBreak() {
		return nil, ErrNotOnBreak
	}

	record.TotalBreakSecs += int64(now.Sub(*record.BreakStart).Seconds())
	record.BreakStart = nil
	if err := s.attendanceRepo.Update(record); err != nil {
		return nil, fmt.Errorf("failed to end break: %w", err)
	}
	return record, nil
}

// ClockOut closes the day. An open break ends implicitly, and worked and
// overtime hours are computed against the shift's standard hours.
func (s *AttendanceService) ClockOut(userID uint64, orgID uint64, now time.Time) (*models.AttendanceRecord, error) {
	record, err := s.today(userID, now)
	if err != nil {
		return nil, err
	}
	if record.ClockOut != nil {
		return nil, ErrAlreadyClockedOut
	}
	if record.ClockIn == nil {
		return nil, ErrNotClockedIn
	}

	if record.OnBreak() {
		record.TotalBreakSecs += int64(now.Sub(*record.BreakStart).Seconds())
		record.BreakStart = nil
	}

	record.ClockOut = &now

	worked := now.Sub(*record.ClockIn) - time.Duration(record.TotalBreakSecs)*time.Second
	if worked < 0 {
		worked = 0
	}
	record.WorkHours = worked.Hours()

	standard := 8.0
	if shift, serr := s.attendanceRepo.FindShiftByOrganization(orgID); serr == nil && shift.StandardHours > 0 {
		standard = shift.StandardHours
	}
	if record.WorkHours > standard {
		record.OvertimeHours = record.WorkHours - standard
	} else {
		record.OvertimeHours = 0
	}
	if record.WorkHours < standard/2 && record.Status == models.AttendancePresent {
		record.Status = models.AttendanceHalfDay
	}

	if err := s.attendanceRepo.Update(record); err != nil {
		return nil, fmt.Errorf("failed to clock out: %w", err)
	}
	return record, nil
}

// Today returns today's record, if any.
func (s *AttendanceService) Today(userID uint64, now time.Time) (*models.AttendanceRecord, error) {
	return s.today(userID, now)
}

// ListMonth returns a user's records for a calendar month, oldest first.
func (s *AttendanceService) ListMonth(userID uint64, year int, month time.Month) ([]models.AttendanceRecord, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	records, err := s.attendanceRepo.ListByUserBetween(userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}
	return records, nil
}

// MonthlySummary aggregates a user's month.
type MonthlySummary struct {
	Year          int     `json:"year"`
	Month         int     `json:"month"`
	DaysPresent   int     `json:"days_present"`
	DaysLate      int     `json:"days_late"`
	HalfDays      int     `json:"half_days"`
	DaysAbsent    int     `json:"days_absent"`
	DaysOnLeave   int     `json:"days_on_leave"`
	WorkHours     float64 `json:"work_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

// Summarize computes the monthly attendance summary for a user.
func (s *AttendanceService) Summarize(userID uint64, year int, month time.Month) (*MonthlySummary, error) {
	records, err := s.ListMonth(userID, year, month)
	if err != nil {
		return nil, err
	}

	summary := &MonthlySummary{Year: year, Month: int(month)}
	for _, r := range records {
		switch r.Status {
		case models.AttendancePresent:
			summary.DaysPresent++
		case models.AttendanceLate:
			summary.DaysPresent++
			summary.DaysLate++
		case models.AttendanceHalfDay:
			summary.HalfDays++
		case models.AttendanceAbsent:
			summary.DaysAbsent++
		case models.AttendanceOnLeave:
			summary.DaysOnLeave++
		}
		summary.WorkHours += r.WorkHours
		summary.OvertimeHours += r.OvertimeHours
	}
	return summary, nil
}

// OverrideInput is an administrative correction to a record.
type OverrideInput struct {
	RecordID uint64
	ActorID  uint64
	Status   *models.AttendanceStatus
	ClockIn  *time.Time
	ClockOut *time.Time
	Notes    *string
	Lock     *bool
}

// Override edits a record regardless of finalization. Worked hours are
// recomputed when both clock times are present, and every override is
// audited.
func (s *AttendanceService) Override(input OverrideInput) (*models.AttendanceRecord, error) {
	record, err := s.attendanceRepo.FindByID(input.RecordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find attendance record: %w", err)
	}

	changes := map[string]interface{}{}
	if input.Status != nil {
		changes["status"] = map[string]interface{}{"from": record.Status, "to": *input.Status}
		record.Status = *input.Status
	}
	if input.ClockIn != nil {
		record.ClockIn = input.ClockIn
		changes["clock_in"] = input.ClockIn
	}
	if input.ClockOut != nil {
		record.ClockOut = input.ClockOut
		changes["clock_out"] = input.ClockOut
	}
	if input.Notes != nil {
		record.Notes = *input.Notes
	}
	if input.Lock != nil {
		record.Locked = *input.Lock
		changes["locked"] = *input.Lock
	}

	if record.ClockIn != nil && record.ClockOut != nil {
		worked := record.ClockOut.Sub(*record.ClockIn) - time.Duration(record.TotalBreakSecs)*time.Second
		if worked < 0 {
			worked = 0
		}
		record.WorkHours = worked.Hours()
	}

	if err := s.attendanceRepo.Update(record); err != nil {
		return nil, fmt.Errorf("failed to override record: %w", err)
	}

	writeAudit(s.auditRepo, input.ActorID, "ATTENDANCE_OVERRIDE", "AttendanceRecord", record.ID, changes)

	return record, nil
}

// UpdateNotes lets a user annotate their own record. Finalized records are
// read-only for self-service; corrections go through Override.
func (s *AttendanceService) UpdateNotes(userID, recordID uint64, notes string, now time.Time) (*models.AttendanceRecord, error) {
	record, err := s.attendanceRepo.FindByID(recordID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to find attendance record: %w", err)
	}
	if record.UserID != userID {
		return nil, ErrRecordNotFound
	}
	if record.Finalized(now) {
		return nil, ErrRecordFinalized
	}

	record.Notes = notes
	if err := s.attendanceRepo.Update(record); err != nil {
		return nil, fmt.Errorf("failed to update notes: %w", err)
	}
	return record, nil
}
