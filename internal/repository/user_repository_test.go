package repository

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/octavertex/workhub/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

func registrationFixture() (*models.User, *models.Organization, []models.LeaveType, *models.Shift) {
	user := &models.User{
		Email:        "founder@example.com",
		PasswordHash: "hash",
		FirstName:    "Ada",
		LastName:     "Founder",
		Role:         models.RoleSuperAdmin,
		Status:       models.UserStatusActive,
		Theme:        "system",
	}
	org := &models.Organization{Name: "Acme", Slug: "acme"}
	leaveTypes := []models.LeaveType{
		{Name: "Casual Leave", DefaultDays: 12},
		{Name: "Sick Leave", DefaultDays: 12},
	}
	shift := &models.Shift{
		Name: "Standard", StartTime: "09:00", EndTime: "18:00",
		BreakDuration: 60, GraceMinutes: 15, StandardHours: 8,
	}
	return user, org, leaveTypes, shift
}

func TestRegisterWithOrganizationCommits(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	user, org, leaveTypes, shift := registrationFixture()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `organizations`").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO `leave_types`").WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectExec("INSERT INTO `shifts`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `users`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := repo.RegisterWithOrganization(user, org, leaveTypes, shift)
	require.NoError(t, err)

	// The generated organization ID fans out to every dependent row.
	require.Equal(t, uint64(7), org.ID)
	require.NotNil(t, user.OrganizationID)
	require.Equal(t, org.ID, *user.OrganizationID)
	require.Equal(t, org.ID, shift.OrganizationID)
	for _, lt := range leaveTypes {
		require.Equal(t, org.ID, lt.OrganizationID)
	}

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterWithOrganizationRollsBackOnUserFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	user, org, leaveTypes, shift := registrationFixture()

	dbErr := errors.New("duplicate entry")

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `organizations`").WillReturnResult(sqlmock.NewResult(7, 1))
	mock.ExpectExec("INSERT INTO `leave_types`").WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectExec("INSERT INTO `shifts`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO `users`").WillReturnError(dbErr)
	mock.ExpectRollback()

	err := repo.RegisterWithOrganization(user, org, leaveTypes, shift)
	require.ErrorIs(t, err, ErrCreateUser)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterWithOrganizationRollsBackOnOrgFailure(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewUserRepository(db)
	user, org, leaveTypes, shift := registrationFixture()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `organizations`").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.RegisterWithOrganization(user, org, leaveTypes, shift)
	require.ErrorIs(t, err, ErrCreateOrganization)

	require.NoError(t, mock.ExpectationsWereMet())
}
