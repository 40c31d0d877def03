package services

import (
	"testing"

	"github.com/octavertex/workhub/internal/models"
	"github.com/octavertex/workhub/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newUserService(db *gorm.DB) *UserService {
	return NewUserService(
		repository.NewUserRepository(db),
		repository.NewNotificationRepository(db),
		repository.NewAuditLogRepository(db),
	)
}

func TestChangeRole(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	admin := createTestUser(t, db, org.ID, models.RoleHRAdmin)
	employee := createTestUser(t, db, org.ID, models.RoleEmployee)
	svc := newUserService(db)

	updated, err := svc.ChangeRole(admin.ID, employee.ID, models.RoleTeamLead)
	require.NoError(t, err)
	require.Equal(t, models.RoleTeamLead, updated.Role)

	// The promotion notified the target.
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", employee.ID, models.NotificationRoleChanged).
		Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestChangeRoleGates(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	admin := createTestUser(t, db, org.ID, models.RoleHRAdmin)
	peer := createTestUser(t, db, org.ID, models.RoleHRAdmin)
	employee := createTestUser(t, db, org.ID, models.RoleEmployee)
	svc := newUserService(db)

	// No self-administration.
	_, err := svc.ChangeRole(admin.ID, admin.ID, models.RoleEmployee)
	require.ErrorIs(t, err, ErrSelfAdministration)

	// Equal rank cannot be managed.
	_, err = svc.ChangeRole(admin.ID, peer.ID, models.RoleEmployee)
	require.ErrorIs(t, err, ErrCannotManageUser)

	// A role at or above the actor's own cannot be granted.
	_, err = svc.ChangeRole(admin.ID, employee.ID, models.RoleHRAdmin)
	require.ErrorIs(t, err, ErrCannotGrantRole)
	_, err = svc.ChangeRole(admin.ID, employee.ID, models.RoleSuperAdmin)
	require.ErrorIs(t, err, ErrCannotGrantRole)

	// Unknown role.
	_, err = svc.ChangeRole(admin.ID, employee.ID, models.Role("czar"))
	require.ErrorIs(t, err, ErrInvalidRole)
}

func TestChangeRoleAcrossOrganizations(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	otherOrg := &models.Organization{Name: "Rival", Slug: "rival"}
	require.NoError(t, db.Create(otherOrg).Error)

	admin := createTestUser(t, db, org.ID, models.RoleSuperAdmin)
	outsider := createTestUser(t, db, otherOrg.ID, models.RoleEmployee)
	svc := newUserService(db)

	_, err := svc.ChangeRole(admin.ID, outsider.ID, models.RoleTeamLead)
	require.ErrorIs(t, err, ErrDifferentOrg)
}

func TestChangeStatus(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	admin := createTestUser(t, db, org.ID, models.RoleHRAdmin)
	employee := createTestUser(t, db, org.ID, models.RoleEmployee)
	svc := newUserService(db)

	updated, err := svc.ChangeStatus(admin.ID, employee.ID, models.UserStatusSuspended)
	require.NoError(t, err)
	require.Equal(t, models.UserStatusSuspended, updated.Status)

	updated, err = svc.ChangeStatus(admin.ID, employee.ID, models.UserStatusActive)
	require.NoError(t, err)
	require.Equal(t, models.UserStatusActive, updated.Status)

	_, err = svc.ChangeStatus(admin.ID, employee.ID, models.UserStatus("banned"))
	require.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.ChangeStatus(admin.ID, 9999, models.UserStatusActive)
	require.ErrorIs(t, err, ErrTargetNotFound)
}

func TestListUsers(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	for i := 0; i < 3; i++ {
		createTestUser(t, db, org.ID, models.RoleEmployee)
	}
	svc := newUserService(db)

	users, total, err := svc.ListUsers(org.ID, 1, 2)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)
	require.Len(t, users, 2)
}
