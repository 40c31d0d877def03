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
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrInvalidDateRange     = errors.New("end date must not precede start date")
	ErrHalfDayRange         = errors.New("half-day requests must cover a single day")
	ErrRangeSpansYears      = errors.New("a request must fall within a single year")
	ErrInsufficientBalance  = errors.New("insufficient leave balance")
	ErrAlreadyDecided       = errors.New("request has already been decided")
	ErrReasonRequired       = errors.New("a rejection reason is required")
	ErrNotRequestOwner      = errors.New("only the requester can cancel a request")
	ErrCannotApproveOwn     = errors.New("cannot decide your own leave request")
	ErrApproverRank         = errors.New("insufficient rank to decide this request")
	ErrInvalidOutcome       = errors.New("outcome must be approved or rejected")
)

// LeaveService is the leave ledger: applications reserve days, decisions
// consume or release them, and the balance identity
// available = entitled + carriedOver - used - pending holds throughout.
type LeaveService struct {
	leaveRepo        repository.LeaveRepository
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	auditRepo        repository.AuditLogRepository
}

// NewLeaveService creates a new LeaveService.
func NewLeaveService(leaveRepo repository.LeaveRepository, userRepo repository.UserRepository, notificationRepo repository.NotificationRepository, auditRepo repository.AuditLogRepository) *LeaveService {
	return &LeaveService{
		leaveRepo:        leaveRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		auditRepo:        auditRepo,
	}
}

// ApplyInput represents a leave application.
type ApplyInput struct {
	UserID      uint64
	LeaveTypeID uint64
	StartDate   time.Time
	EndDate     time.Time
	HalfDay     bool
	Reason      string
}

/// RequestedDays computes the day count for a date range: the inclusive
// calendar span, halved for half-day requests.
func RequestedDays(start, end time.Time, halfDay bool) float64 {
	days := float64(utils.InclusiveDays(start, end))
	if halfDay {
		days = days / 2
	}
	return days
}

// Apply validates the request and reserves the days. The request row and the
// pending increment commit in one transaction; a shortfall leaves the ledger
// untouched.
func (s *LeaveService) Apply(input ApplyInput) (*models.LeaveRequest, error) {
	start := utils.StartOfDay(input.StartDate)
	end := utils.StartOfDay(input.EndDate)

	if end.Before(start) {
		return nil, ErrInvalidDateRange
	}
	if input.HalfDay && !utils.SameDay(start, end) {
		return nil, ErrHalfDayRange
	}
	if start.Year() != end.Year() {
		return nil, ErrRangeSpansYears
	}

	leaveType, err := s.leaveRepo.FindTypeByID(input.LeaveTypeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveTypeNotFound
		}
		return nil, fmt.Errorf("failed to find leave type: %w", err)
	}

	req := &models.LeaveRequest{
		UserID:      input.UserID,
		LeaveTypeID: leaveType.ID,
		StartDate:   start,
		EndDate:     end,
		Days:        RequestedDays(start, end, input.HalfDay),
		HalfDay:     input.HalfDay,
		Reason:      input.Reason,
	}

	if err := s.leaveRepo.ReserveRequest(req, leaveType.DefaultDays); err != nil {
		if errors.Is(err, repository.ErrInsufficientBalance) {
			return nil, ErrInsufficientBalance
		}
		return nil, fmt.Errorf("failed to reserve leave: %w", err)
	}

	return req, nil
}

// DecideInput represents an approval or rejection by a manager.
type DecideInput struct {
	RequestID  uint64
	ApproverID uint64
	Outcome    models.LeaveStatus
	Reason     string
}

// Decide approves or rejects a pending request. The approver must strictly
// outrank the requester and cannot decide their own request.
func (s *LeaveService) Decide(input DecideInput) (*models.LeaveRequest, error) {
	if input.Outcome != models.LeaveStatusApproved && input.Outcome != models.LeaveStatusRejected {
		return nil, ErrInvalidOutcome
	}
	if input.Outcome == models.LeaveStatusRejected && input.Reason == "" {
		return nil, ErrReasonRequired
	}

	req, err := s.leaveRepo.FindRequestByID(input.RequestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveRequestNotFound
		}
		return nil, fmt.Errorf("failed to find request: %w", err)
	}

	if req.UserID == input.ApproverID {
		return nil, ErrCannotApproveOwn
	}

	approver, err := s.userRepo.FindByID(input.ApproverID)
	if err != nil {
		return nil, fmt.Errorf("failed to find approver: %w", err)
	}
	requester, err := s.userRepo.FindByID(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find requester: %w", err)
	}
	if !models.CanManage(approver.Role, requester.Role) {
		return nil, ErrApproverRank
	}

	decided, err := s.leaveRepo.DecideRequest(input.RequestID, input.Outcome, &input.ApproverID, input.Reason)
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotPending) {
			return nil, ErrAlreadyDecided
		}
		return nil, fmt.Errorf("failed to decide request: %w", err)
	}

	writeAudit(s.auditRepo, input.ApproverID, "LEAVE_DECIDED", "LeaveRequest", decided.ID, map[string]interface{}{
		"outcome": decided.Status,
		"days":    decided.Days,
	})

	if s.notificationRepo != nil {
		_ = s.notificationRepo.Create(&models.Notification{
			UserID:  decided.UserID,
			Type:    models.NotificationLeaveDecided,
			Title:   fmt.Sprintf("Leave request %s", decided.Status),
			Message: fmt.Sprintf("Your leave request for %.1f day(s) was %s", decided.Days, decided.Status),
		})
	}

	return decided, nil
}

// Cancel releases a pending request. Only the requester may cancel, and only
// while the request is still pending.
func (s *LeaveService) Cancel(requestID, userID uint64) (*models.LeaveRequest, error) {
	req, err := s.leaveRepo.FindRequestByID(requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeaveRequestNotFound
		}
		return nil, fmt.Errorf("failed to find request: %w", err)
	}

	if req.UserID != userID {
		return nil, ErrNotRequestOwner
	}

	cancelled, err := s.leaveRepo.DecideRequest(requestID, models.LeaveStatusCancelled, nil, "")
	if err != nil {
		if errors.Is(err, repository.ErrRequestNotPending) {
			return nil, ErrAlreadyDecided
		}
		return nil, fmt.Errorf("failed to cancel request: %w", err)
	}

	return cancelled, nil
}

// Balances lists the user's balances for a year.
func (s *LeaveService) Balances(userID uint64, year int) ([]models.LeaveBalance, error) {
	balances, err := s.leaveRepo.ListBalances(userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list balances: %w", err)
	}
	return balances, nil
}

// ListRequests lists the user's requests for a year.
func (s *LeaveService) ListRequests(userID uint64, year int) ([]models.LeaveRequest, error) {
	requests, err := s.leaveRepo.ListRequestsByUser(userID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}
	return requests, nil
}

// ListPending lists the organization's pending requests for review.
func (s *LeaveService) ListPending(orgID uint64, page, pageSize int) ([]models.LeaveRequest, int64, error) {
	requests, total, err := s.leaveRepo.ListPendingByOrganization(orgID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return requests, total, nil
}

// ListTypes lists the organization's leave types.
func (s *LeaveService) ListTypes(orgID uint64) ([]models.LeaveType, error) {
	types, err := s.leaveRepo.ListTypesByOrganization(orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	return types, nil
}

// Rollover seeds next-year balances for the organization, carrying forward
// capped unused days where the leave type allows it.
func (s *LeaveService) Rollover(actorID, orgID uint64, fromYear int) (int, error) {
	created, err := s.leaveRepo.RolloverYear(orgID, fromYear)
	if err != nil {
		return 0, fmt.Errorf("failed to roll over balances: %w", err)
	}

	writeAudit(s.auditRepo, actorID, "LEAVE_YEAR_ROLLOVER", "Organization", orgID, map[string]interface{}{
		"from_year": fromYear,
		"created":   created,
	})

	return created, nil
}
