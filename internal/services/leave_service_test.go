package services

import (
	"testing"
	"time"

	"github.com/octavertex/workhub/internal/models"
	"github.com/octavertex/workhub/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newLeaveService(db *gorm.DB) *LeaveService {
	return NewLeaveService(
		repository.NewLeaveRepository(db),
		repository.NewUserRepository(db),
		repository.NewNotificationRepository(db),
		repository.NewAuditLogRepository(db),
	)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestRequestedDays(t *testing.T) {
	require.Equal(t, 1.0, RequestedDays(date(2025, 3, 10), date(2025, 3, 10), false))
	require.Equal(t, 4.0, RequestedDays(date(2025, 3, 10), date(2025, 3, 13), false))
	require.Equal(t, 0.5, RequestedDays(date(2025, 3, 10), date(2025, 3, 10), true))
}

func TestLeaveApplyReservesDays(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	user := createTestUser(t, db, org.ID, models.RoleEmployee)
	lt := createTestLeaveType(t, db, org.ID, "Casual Leave", 12)
	svc := newLeaveService(db)

	req, err := svc.Apply(ApplyInput{
		UserID:      user.ID,
		LeaveTypeID: lt.ID,
		StartDate:   date(2025, 6, 2),
		EndDate:     date(2025, 6, 5),
		Reason:      "family visit",
	})
	require.NoError(t, err)
	require.Equal(t, models.LeaveStatusPending, req.Status)
	require.Equal(t, 4.0, req.Days)

	balances, err := svc.Balances(user.ID, 2025)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	require.Equal(t, 12.0, balances[0].Entitled)
	require.Equal(t, 4.0, balances[0].Pending)
	require.Equal(t, 8.0, balances[0].Available())
}

func TestLeaveApproveConsumesPending(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	employee := createTestUser(t, db, org.ID, models.RoleEmployee)
	lead := createTestUser(t, db, org.ID, models.RoleTeamLead)
	lt := createTestLeaveType(t, db, org.ID, "Casual Leave", 12)
	svc := newLeaveService(db)

	req, err := svc.Apply(ApplyInput{
		UserID:      employee.ID,
		LeaveTypeID: lt.ID,
		StartDate:   date(2025, 6, 2),
		EndDate:     date(2025, 6, 5),
	})
	require.NoError(t, err)

	decided, err := svc.Decide(DecideInput{
		RequestID:  req.ID,
		ApproverID: lead.ID,
		Outcome:    models.LeaveStatusApproved,
	})
	require.NoError(t, err)
	require.Equal(t, models.LeaveStatusApproved, decided.Status)
	require.NotNil(t, decided.DecidedAt)

	// Approved days move from pending to used; a follow-up single-day
	// request leaves 7 available.
	_, err = svc.Apply(ApplyInput{
		UserID:      employee.ID,
		LeaveTypeID: lt.ID,
		StartDate:   date(2025, 7, 1),
		EndDate:     date(2025, 7, 1),
	})
	require.NoError(t, err)

	balances, err := svc.Balances(employee.ID, 2025)
	require.NoError(t, err)
	require.Len(t, balances, 1)
	require.Equal(t, 4.0, balances[0].Used)
	require.Equal(t, 1.0, balances[0].Pending)
	require.Equal(t, 7.0, balances[0].Available())
}

func TestLeaveRejectReleasesPending(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	employee := createTestUser(t, db, org.ID, models.RoleEmployee)
	lead := createTestUser(t, db, org.ID, models.RoleTeamLead)
	lt := createTestLeaveType(t, db, org.ID, "Casual Leave", 12)
	svc := newLeaveService(db)

	req, err := svc.Apply(ApplyInput{
		UserID:      employee.ID,
		LeaveTypeID: lt.ID,
		StartDate:   date(2025, 6, 2),
		EndDate:     date(2025, 6, 3),
	})
	require.NoError(t, err)

	// Rejection without a reason is refused.
	_, err = svc.Decide(DecideInput{
		RequestID:  req.ID,
		ApproverID: lead.ID,
		Outcome:    models.LeaveStatusRejected,
	})
	require.ErrorIs(t, err, ErrReasonRequired)

	decided, err := svc.Decide(DecideInput{
		RequestID:  req.ID,
		ApproverID: lead.ID,
		Outcome:    models.LeaveStatusRejected,
		Reason:     "coverage gap",
	})
	require.NoError(t, err)
	require.Equal(t, "coverage gap", decided.RejectionReason)

	balances, err := svc.Balances(employee.ID, 2025)
	require.NoError(t, err)
	require.Equal(t, 0.0, balances[0].Pending)
	require.Equal(t, 0.0, balances[0].Used)
	require.Equal(t, 12.0, balances[0].Available())
}

func TestLeaveInsufficientBalance(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	user := createTestUser(t, db, org.ID, models.RoleEmployee)
	lt := createTestLeaveType(t, db, org.ID, "Casual Leave", 3)
	svc := newLeaveService(db)

	_, err := svc.Apply(ApplyInput{
		UserID:      user.ID,
		LeaveTypeID: lt.ID,
		StartDate:   date(2025, 6, 2),
		EndDate:     date(2025, 6, 6),
	})
	require.ErrorIs(t, err, ErrInsufficientBalance)

	// The failed reservation leaves no request row behind.
	requests, err := svc.ListRequests(user.ID, 2025)
	require.NoError(t, err)
	require.Empty(t, requests)
}

func TestLeaveApplyValidation(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	user := createTestUser(t, db, org.ID, models.RoleEmployee)
	lt := createTestLeaveType(t, db, org.ID, "Casual Leave", 12)
	svc := newLeaveService(db)

	_, err := svc.Apply(ApplyInput{
		UserID:      user.ID,
		LeaveTypeID: lt.ID,
		StartDate:   date(2025, 6, 5),
		EndDate:     date(2025, 6, 2),
	})
	require.ErrorIs(t, err, ErrInvalidDateRange)

	_, err = svc.Apply(ApplyInput{
		UserID:      user.ID,
		LeaveTypeID: lt.ID,
		StartDate:   date(2025, 6, 2),
		EndDate:     date(2025, 6, 3),
		HalfDay:     true,
	})
	require.ErrorIs(t, err, ErrHalfDayRange)

	_, err = svc.Apply(ApplyInput{
		UserID:      user.ID,
		LeaveTypeID: lt.ID,
		StartDate:   date(2025, 12, 30),
		EndDate:     date(2026, 1, 2),
	})
	require.ErrorIs(t, err, ErrRangeSpansYears)

	_, err = svc.Apply(ApplyInput{
		UserID:      user.ID,
		LeaveTypeID: 9999,
		StartDate:   date(2025, 6, 2),
		EndDate:     date(2025, 6, 2),
	})
	require.ErrorIs(t, err, ErrLeaveTypeNotFound)
}

func TestLeaveDecideGates(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	employee := createTestUser(t, db, org.ID, models.RoleEmployee)
	peer := createTestUser(t, db, org.ID, models.RoleEmployee)
	lead := createTestUser(t, db, org.ID, models.RoleTeamLead)
	lt := createTestLeaveType(t, db, org.ID, "Casual Leave", 12)
	svc := newLeaveService(db)

	req, err := svc.Apply(ApplyInput{
		UserID:      employee.ID,
		LeaveTypeID: lt.ID,
		StartDate:   date(2025, 6, 2),
		EndDate:     date(2025, 6, 3),
	})
	require.NoError(t, err)

	// No self-approval.
	_, err = svc.Decide(DecideInput{RequestID: req.ID, ApproverID: employee.ID, Outcome: models.LeaveStatusApproved})
	require.ErrorIs(t, err, ErrCannotApproveOwn)

	// Equal rank cannot decide.
	_, err = svc.Decide(DecideInput{RequestID: req.ID, ApproverID: peer.ID, Outcome: models.LeaveStatusApproved})
	require.ErrorIs(t, err, ErrApproverRank)

	// Unknown outcome.
	_, err = svc.Decide(DecideInput{RequestID: req.ID, ApproverID: lead.ID, Outcome: models.LeaveStatus("maybe")})
	require.ErrorIs(t, err, ErrInvalidOutcome)

	// Settled requests cannot be decided twice.
	_, err = svc.Decide(DecideInput{RequestID: req.ID, ApproverID: lead.ID, Outcome: models.LeaveStatusApproved})
	require.NoError(t, err)
	_, err = svc.Decide(DecideInput{RequestID: req.ID, ApproverID: lead.ID, Outcome: models.LeaveStatusApproved})
	require.ErrorIs(t, err, ErrAlreadyDecided)
}

func TestLeaveCancel(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	employee := createTestUser(t, db, org.ID, models.RoleEmployee)
	other := createTestUser(t, db, org.ID, models.RoleEmployee)
	lt := createTestLeaveType(t, db, org.ID, "Casual Leave", 12)
	svc := newLeaveService(db)

	req, err := svc.Apply(ApplyInput{
		UserID:      employee.ID,
		LeaveTypeID: lt.ID,
		StartDate:   date(2025, 6, 2),
		EndDate:     date(2025, 6, 3),
	})
	require.NoError(t, err)

	_, err = svc.Cancel(req.ID, other.ID)
	require.ErrorIs(t, err, ErrNotRequestOwner)

	cancelled, err := svc.Cancel(req.ID, employee.ID)
	require.NoError(t, err)
	require.Equal(t, models.LeaveStatusCancelled, cancelled.Status)

	balances, err := svc.Balances(employee.ID, 2025)
	require.NoError(t, err)
	require.Equal(t, 0.0, balances[0].Pending)
	require.Equal(t, 12.0, balances[0].Available())
}

func TestLeaveRolloverCarriesForwardCapped(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	user := createTestUser(t, db, org.ID, models.RoleEmployee)
	hr := createTestUser(t, db, org.ID, models.RoleHRAdmin)

	carry := &models.LeaveType{
		OrganizationID:  org.ID,
		Name:            "Earned Leave",
		DefaultDays:     15,
		CarryForward:    true,
		MaxCarryForward: 5,
		Paid:            true,
	}
	require.NoError(t, db.Create(carry).Error)
	noCarry := createTestLeaveType(t, db, org.ID, "Casual Leave", 12)

	require.NoError(t, db.Create(&models.LeaveBalance{
		UserID: user.ID, LeaveTypeID: carry.ID, Year: 2025, Entitled: 15, Used: 2,
	}).Error)
	require.NoError(t, db.Create(&models.LeaveBalance{
		UserID: user.ID, LeaveTypeID: noCarry.ID, Year: 2025, Entitled: 12, Used: 1,
	}).Error)

	svc := newLeaveService(db)
	created, err := svc.Rollover(hr.ID, org.ID, 2025)
	require.NoError(t, err)
	require.Equal(t, 2, created)

	balances, err := svc.Balances(user.ID, 2026)
	require.NoError(t, err)
	require.Len(t, balances, 2)

	byType := map[uint64]models.LeaveBalance{}
	for _, b := range balances {
		byType[b.LeaveTypeID] = b
	}

	// 13 unused days capped at 5.
	require.Equal(t, 5.0, byType[carry.ID].CarriedOver)
	require.Equal(t, 15.0, byType[carry.ID].Entitled)

	// Non-carry types start fresh.
	require.Equal(t, 0.0, byType[noCarry.ID].CarriedOver)
	require.Equal(t, 12.0, byType[noCarry.ID].Entitled)

	// Idempotent: existing next-year rows are kept.
	created, err = svc.Rollover(hr.ID, org.ID, 2025)
	require.NoError(t, err)
	require.Equal(t, 0, created)
}
