package repository

import (
	"errors"
	"time"

	"github.com/octavertex/workhub/internal/database"
	"github.com/octavertex/workhub/internal/models"
	"github.com/octavertex/workhub/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	// ErrInsufficientBalance is returned when a reservation would drive the
	// available balance negative.
	ErrInsufficientBalance = errors.New("leave repository: insufficient balance")
	// ErrRequestNotPending is returned when deciding a request that has
	// already been settled.
	ErrRequestNotPending = errors.New("leave repository: request is not pending")
	// ErrReasonRequired is returned when a rejection carries no reason.
	ErrReasonRequired = errors.New("leave repository: rejection reason required")
)

// GormLeaveRepository is a GORM implementation of LeaveRepository
type GormLeaveRepository struct {
	db *gorm.DB
}

// NewLeaveRepository creates a new LeaveRepository
func NewLeaveRepository(db *gorm.DB) LeaveRepository {
	return &GormLeaveRepository{db: db}
}

// forUpdate adds a row lock on server databases. SQLite serializes writers
// and rejects the FOR UPDATE syntax, so the in-memory test database skips it.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// FindTypeByID finds a leave type by ID
func (r *GormLeaveRepository) FindTypeByID(id uint64) (*models.LeaveType, error) {
	var lt models.LeaveType
	if err := r.db.First(&lt, id).Error; err != nil {
		return nil, err
	}
	return &lt, nil
}

// ListTypesByOrganization lists the organization's leave types
func (r *GormLeaveRepository) ListTypesByOrganization(orgID uint64) ([]models.LeaveType, error) {
	var types []models.LeaveType
	if err := r.db.Where("organization_id = ?", orgID).Order("id ASC").Find(&types).Error; err != nil {
		return nil, err
	}
	return types, nil
}

// lockedBalance fetches the (user, type, year) balance row under lock,
// creating it from the entitled default on first use.
func lockedBalance(tx *gorm.DB, userID, typeID uint64, year int, entitled float64) (*models.LeaveBalance, error) {
	var balance models.LeaveBalance
	err := forUpdate(tx).
		Where("user_id = ? AND leave_type_id = ? AND year = ?", userID, typeID, year).
		First(&balance).Error
	if err == nil {
		return &balance, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	balance = models.LeaveBalance{
		UserID:      userID,
		LeaveTypeID: typeID,
		Year:        year,
		Entitled:    entitled,
	}
	if err := tx.Create(&balance).Error; err != nil {
		return nil, err
	}
	return &balance, nil
}

// ReserveRequest creates a pending request and reserves its days atomically.
func (r *GormLeaveRepository) ReserveRequest(req *models.LeaveRequest, defaultEntitled float64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		balance, err := lockedBalance(tx, req.UserID, req.LeaveTypeID, req.StartDate.Year(), defaultEntitled)
		if err != nil {
			return err
		}

		if balance.Available() < req.Days {
			return ErrInsufficientBalance
		}

		req.Status = models.LeaveStatusPending
		if err := tx.Create(req).Error; err != nil {
			return err
		}

		balance.Pending += req.Days
		return tx.Save(balance).Error
	})
}

// DecideRequest settles a pending request and adjusts the balance in the same
// transaction. Approval consumes the reserved days; rejection and
// cancellation release them without touching used.
func (r *GormLeaveRepository) DecideRequest(requestID uint64, outcome models.LeaveStatus, approverID *uint64, reason string) (*models.LeaveRequest, error) {
	if outcome == models.LeaveStatusRejected && reason == "" {
		return nil, ErrReasonRequired
	}

	var req models.LeaveRequest
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := forUpdate(tx).First(&req, requestID).Error; err != nil {
			return err
		}
		if req.Status != models.LeaveStatusPending {
			return ErrRequestNotPending
		}

		balance, err := lockedBalance(tx, req.UserID, req.LeaveTypeID, req.StartDate.Year(), 0)
		if err != nil {
			return err
		}

		now := time.Now()
		req.Status = outcome
		req.DecidedAt = &now
		req.ApproverID = approverID

		balance.Pending -= req.Days
		switch outcome {
		case models.LeaveStatusApproved:
			balance.Used += req.Days
		case models.LeaveStatusRejected:
			req.RejectionReason = reason
		}

		if err := tx.Save(&req).Error; err != nil {
			return err
		}
		return tx.Save(balance).Error
	})
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// FindRequestByID finds a leave request by ID with optional preloading
func (r *GormLeaveRepository) FindRequestByID(id uint64, preload ...string) (*models.LeaveRequest, error) {
	var req models.LeaveRequest
	query := r.db
	for _, p := range preload {
		query = query.Preload(p)
	}
	if err := query.First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// ListRequestsByUser lists a user's requests for a year, newest first
func (r *GormLeaveRepository) ListRequestsByUser(userID uint64, year int) ([]models.LeaveRequest, error) {
	var requests []models.LeaveRequest
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(1, 0, 0)

	err := r.db.Preload("LeaveType").
		Where("user_id = ? AND start_date >= ? AND start_date < ?", userID, start, end).
		Order("created_at DESC").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

// ListPendingByOrganization lists pending requests across the organization
func (r *GormLeaveRepository) ListPendingByOrganization(orgID uint64, page, pageSize int) ([]models.LeaveRequest, int64, error) {
	var requests []models.LeaveRequest

	query := r.db.Model(&models.LeaveRequest{}).
		Joins("JOIN users ON users.id = leave_requests.user_id").
		Where("users.organization_id = ? AND leave_requests.status = ?", orgID, models.LeaveStatusPending)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page > 0 && pageSize > 0 {
		query = query.Scopes(database.Paginate(utils.PaginationParams{
			Offset: (page - 1) * pageSize,
			Limit:  pageSize,
		}))
	}

	err := query.Preload("User").Preload("LeaveType").
		Order("leave_requests.created_at ASC").
		Find(&requests).Error
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// ListBalances lists a user's balances for a year
func (r *GormLeaveRepository) ListBalances(userID uint64, year int) ([]models.LeaveBalance, error) {
	var balances []models.LeaveBalance
	err := r.db.Preload("LeaveType").
		Where("user_id = ? AND year = ?", userID, year).
		Order("leave_type_id ASC").
		Find(&balances).Error
	if err != nil {
		return nil, err
	}
	return balances, nil
}

// RolloverYear seeds next-year balances for every member of the organization.
// Carry-forward types credit min(previous available, cap); the rest start at
// the type's default entitlement only. Existing next-year rows are kept.
func (r *GormLeaveRepository) RolloverYear(orgID uint64, fromYear int) (int, error) {
	created := 0
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var balances []models.LeaveBalance
		err := tx.Preload("LeaveType").
			Joins("JOIN users ON users.id = leave_balances.user_id").
			Where("users.organization_id = ? AND leave_balances.year = ?", orgID, fromYear).
			Find(&balances).Error
		if err != nil {
			return err
		}

		for _, prev := range balances {
			var existing models.LeaveBalance
			err := tx.Where("user_id = ? AND leave_type_id = ? AND year = ?",
				prev.UserID, prev.LeaveTypeID, fromYear+1).
				First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			carried := 0.0
			if prev.LeaveType.CarryForward {
				carried = prev.Available()
				if carried > prev.LeaveType.MaxCarryForward {
					carried = prev.LeaveType.MaxCarryForward
				}
				if carried < 0 {
					carried = 0
				}
			}

			next := models.LeaveBalance{
				UserID:      prev.UserID,
				LeaveTypeID: prev.LeaveTypeID,
				Year:        fromYear + 1,
				Entitled:    prev.LeaveType.DefaultDays,
				CarriedOver: carried,
			}
			if err := tx.Create(&next).Error; err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}
