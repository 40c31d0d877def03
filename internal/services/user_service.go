package services

import (
	"errors"
	"fmt"

	"github.com/octavertex/workhub/internal/models"
	"github.com/octavertex/workhub/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrInvalidRole        = errors.New("invalid role")
	ErrInvalidStatus      = errors.New("invalid status")
	ErrCannotManageUser   = errors.New("insufficient rank to manage this user")
	ErrCannotGrantRole    = errors.New("cannot grant a role at or above your own")
	ErrDifferentOrg       = errors.New("target user belongs to a different organization")
	ErrTargetNotFound     = errors.New("target user not found")
	ErrSelfAdministration = errors.New("cannot administer your own account")
)

// UserService covers user administration: listing, role and status changes.
// Every mutation is gated by the strict role order.
type UserService struct {
	userRepo         repository.UserRepository
	notificationRepo repository.NotificationRepository
	auditRepo        repository.AuditLogRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, notificationRepo repository.NotificationRepository, auditRepo repository.AuditLogRepository) *UserService {
	return &UserService{
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
		auditRepo:        auditRepo,
	}
}

// ListUsers lists the organization's users with pagination.
func (s *UserService) ListUsers(orgID uint64, page, pageSize int) ([]models.User, int64, error) {
	users, total, err := s.userRepo.ListByOrganization(orgID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// loadPair fetches actor and target and verifies the actor may act on the
// target at all: same organization, strictly higher rank, never self.
func (s *UserService) loadPair(actorID, targetID uint64) (*models.User, *models.User, error) {
	if actorID == targetID {
		return nil, nil, ErrSelfAdministration
	}

	actor, err := s.userRepo.FindByID(actorID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find actor: %w", err)
	}

	target, err := s.userRepo.FindByID(targetID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrTargetNotFound
		}
		return nil, nil, fmt.Errorf("failed to find target: %w", err)
	}

	if actor.OrganizationID == nil || target.OrganizationID == nil ||
		*actor.OrganizationID != *target.OrganizationID {
		return nil, nil, ErrDifferentOrg
	}

	if !models.CanManage(actor.Role, target.Role) {
		return nil, nil, ErrCannotManageUser
	}

	return actor, target, nil
}

// ChangeRole moves the target to a new role. The actor must outrank both the
// target's current role and the role being granted.
func (s *UserService) ChangeRole(actorID, targetID uint64, newRole models.Role) (*models.User, error) {
	if !newRole.Valid() {
		return nil, ErrInvalidRole
	}

	actor, target, err := s.loadPair(actorID, targetID)
	if err != nil {
		return nil, err
	}

	if !models.CanManage(actor.Role, newRole) {
		return nil, ErrCannotGrantRole
	}

	oldRole := target.Role
	target.Role = newRole
	if err := s.userRepo.Update(target); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	writeAudit(s.auditRepo, actorID, "USER_ROLE_CHANGED", "User", targetID, map[string]interface{}{
		"from": oldRole,
		"to":   newRole,
	})

	if s.notificationRepo != nil {
		_ = s.notificationRepo.Create(&models.Notification{
			UserID:  targetID,
			Type:    models.NotificationRoleChanged,
			Title:   "Your role has changed",
			Message: fmt.Sprintf("Your role is now %s", newRole),
		})
	}

	return target, nil
}

// ChangeStatus moves the target between active, inactive and suspended.
// Accounts are never deleted; this is the whole lifecycle.
func (s *UserService) ChangeStatus(actorID, targetID uint64, status models.UserStatus) (*models.User, error) {
	switch status {
	case models.UserStatusActive, models.UserStatusInactive, models.UserStatusSuspended:
	default:
		return nil, ErrInvalidStatus
	}

	_, target, err := s.loadPair(actorID, targetID)
	if err != nil {
		return nil, err
	}

	oldStatus := target.Status
	target.Status = status
	if err := s.userRepo.Update(target); err != nil {
		return nil, fmt.Errorf("failed to update status: %w", err)
	}

	writeAudit(s.auditRepo, actorID, "USER_STATUS_CHANGED", "User", targetID, map[string]interface{}{
		"from": oldStatus,
		"to":   status,
	})

	return target, nil
}
