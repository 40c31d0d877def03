package repository

import (
	"time"

	"github.com/octavertex/workhub/internal/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// RegisterWithOrganization creates the organization, its default leave
	// types and shift, and the founding user within a single transaction.
	RegisterWithOrganization(user *models.User, org *models.Organization, leaveTypes []models.LeaveType, shift *models.Shift) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(email string) (*models.User, error)

	// Update persists user mutations
	Update(user *models.User) error

	// ListByOrganization lists users of an organization with pagination
	ListByOrganization(orgID uint64, page, pageSize int) ([]models.User, int64, error)
}

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	Create(project *models.Project) error
	FindByID(id uint64) (*models.Project, error)
	Update(project *models.Project) error
	ListByOrganization(orgID uint64, page, pageSize int) ([]models.Project, int64, error)
}

// TaskFilter holds filtering options for listing tasks
type TaskFilter struct {
	OrganizationID uint64
	ProjectID      *uint64
	Status         *models.TaskStatus
	CreatorID      *uint64
	AssignedUserID *uint64
	DueDateFrom    *time.Time
	DueDateTo      *time.Time
	Page           int
	PageSize       int
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Create(task *models.Task) error

	// FindByID finds a task by ID with optional preloading
	FindByID(id uint64, preload ...string) (*models.Task, error)

	List(filter TaskFilter) ([]models.Task, int64, error)
	Update(task *models.Task) error

	// Delete soft deletes a task and its assignments
	Delete(id uint64) error

	AssignUsers(taskID uint64, userIDs []uint64) error
	UnassignUsers(taskID uint64, userIDs []uint64) error

	// CountOrganizationMembers counts how many of the given user IDs belong
	// to the organization
	CountOrganizationMembers(userIDs []uint64, organizationID uint64) (int64, error)
}

// LeaveRepository defines the interface for leave ledger data access. The
// request/balance mutations are transactional: a request row never exists
// without its matching balance reservation.
type LeaveRepository interface {
	FindTypeByID(id uint64) (*models.LeaveType, error)
	ListTypesByOrganization(orgID uint64) ([]models.LeaveType, error)

	// ReserveRequest creates a pending request and reserves its days on the
	// (user, type, year) balance in one transaction. The balance row is
	// created from defaultEntitled on first use and locked for the check.
	ReserveRequest(req *models.LeaveRequest, defaultEntitled float64) error

	// DecideRequest settles a pending request. Approval moves the reserved
	// days from pending to used; rejection and cancellation release them.
	DecideRequest(requestID uint64, outcome models.LeaveStatus, approverID *uint64, reason string) (*models.LeaveRequest, error)

	FindRequestByID(id uint64, preload ...string) (*models.LeaveRequest, error)
	ListRequestsByUser(userID uint64, year int) ([]models.LeaveRequest, error)
	ListPendingByOrganization(orgID uint64, page, pageSize int) ([]models.LeaveRequest, int64, error)

	ListBalances(userID uint64, year int) ([]models.LeaveBalance, error)

	// RolloverYear seeds next-year balances for every user of the
	// organization, carrying forward capped unused days where the type
	// permits. Existing next-year rows are left untouched.
	RolloverYear(orgID uint64, fromYear int) (int, error)
}

// AttendanceRepository defines the interface for attendance data access
type AttendanceRepository interface {
	FindByID(id uint64) (*models.AttendanceRecord, error)
	FindByUserAndDate(userID uint64, date time.Time) (*models.AttendanceRecord, error)

	// CreateClockIn inserts the day's record; the (user_id, date) uniqueness
	// check runs inside the creating transaction.
	CreateClockIn(record *models.AttendanceRecord) error

	Update(record *models.AttendanceRecord) error
	ListByUserBetween(userID uint64, from, to time.Time) ([]models.AttendanceRecord, error)

	// FindShiftByOrganization returns the organization's shift policy
	FindShiftByOrganization(orgID uint64) (*models.Shift, error)
}

// ChatRepository defines the interface for channel and message data access
type ChatRepository interface {
	CreateChannel(channel *models.Channel, creatorID uint64) error
	FindChannelByID(id uint64) (*models.Channel, error)
	ListChannelsByUser(userID uint64) ([]models.Channel, error)

	AddMember(member *models.ChannelMember) error
	FindMember(channelID, userID uint64) (*models.ChannelMember, error)
	TouchLastRead(channelID, userID uint64, at time.Time) error

	CreateMessage(msg *models.ChatMessage) error

	// ListMessages pages newest-first from the message identified by cursor
	// (exclusive), or from the head when cursor is empty.
	ListMessages(channelID uint64, cursor string, limit int) ([]models.ChatMessage, error)
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Create(n *models.Notification) error
	CreateBatch(ns []models.Notification) error
	ListByUser(userID uint64, unreadOnly bool, page, pageSize int) ([]models.Notification, int64, error)
	MarkRead(id, userID uint64) error
	MarkAllRead(userID uint64) error
}

// AuditLogRepository defines the interface for audit trail writes
type AuditLogRepository interface {
	Create(entry *models.AuditLog) error
	ListByEntity(entity, entityID string) ([]models.AuditLog, error)
}
