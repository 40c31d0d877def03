package services

import (
	"testing"

	"github.com/octavertex/workhub/internal/models"
	"github.com/octavertex/workhub/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	return NewAuthService(
		repository.NewUserRepository(db),
		repository.NewAuditLogRepository(db),
	)
}

func TestRegisterWithOrganization(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user, err := svc.Register(RegisterInput{
		Email:            "Founder@Example.com",
		Password:         "supersecret",
		FirstName:        "Ada",
		LastName:         "Founder",
		OrganizationName: "Acme Rockets",
	})
	require.NoError(t, err)

	// Email is normalized, the founder gets the top role.
	require.Equal(t, "founder@example.com", user.Email)
	require.Equal(t, models.RoleSuperAdmin, user.Role)
	require.NotNil(t, user.OrganizationID)

	var org models.Organization
	require.NoError(t, db.First(&org, *user.OrganizationID).Error)
	require.Equal(t, "Acme Rockets", org.Name)
	require.Equal(t, "acme-rockets", org.Slug)

	// The organization starts with its default leave policies and shift.
	var leaveTypes []models.LeaveType
	require.NoError(t, db.Where("organization_id = ?", org.ID).Find(&leaveTypes).Error)
	require.Len(t, leaveTypes, 4)

	var shift models.Shift
	require.NoError(t, db.Where("organization_id = ?", org.ID).First(&shift).Error)
	require.Equal(t, "09:00", shift.StartTime)
}

func TestRegisterWithoutOrganization(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user, err := svc.Register(RegisterInput{
		Email:     "solo@example.com",
		Password:  "supersecret",
		FirstName: "Solo",
		LastName:  "User",
	})
	require.NoError(t, err)
	require.Equal(t, models.RoleEmployee, user.Role)
	require.Nil(t, user.OrganizationID)
}

func TestRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	_, err := svc.Register(RegisterInput{
		Email: "a@example.com", Password: "short", FirstName: "A", LastName: "B",
	})
	require.ErrorIs(t, err, ErrPasswordTooShort)

	_, err = svc.Register(RegisterInput{
		Email: "a@example.com", Password: "supersecret", FirstName: "", LastName: "B",
	})
	require.ErrorIs(t, err, ErrNameRequired)

	_, err = svc.Register(RegisterInput{
		Email: "not-an-email", Password: "supersecret", FirstName: "A", LastName: "B",
	})
	require.Error(t, err)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	input := RegisterInput{
		Email: "dup@example.com", Password: "supersecret", FirstName: "A", LastName: "B",
	}
	_, err := svc.Register(input)
	require.NoError(t, err)

	_, err = svc.Register(input)
	require.ErrorIs(t, err, ErrEmailTaken)

	// Case differences don't dodge the check.
	input.Email = "DUP@example.com"
	_, err = svc.Register(input)
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	registered, err := svc.Register(RegisterInput{
		Email: "login@example.com", Password: "supersecret", FirstName: "A", LastName: "B",
	})
	require.NoError(t, err)

	user, err := svc.Login(LoginInput{Email: "login@example.com", Password: "supersecret"})
	require.NoError(t, err)
	require.Equal(t, registered.ID, user.ID)
	require.NotNil(t, user.LastLoginAt)

	_, err = svc.Login(LoginInput{Email: "login@example.com", Password: "wrongpass"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown accounts fail exactly like wrong passwords.
	_, err = svc.Login(LoginInput{Email: "ghost@example.com", Password: "supersecret"})
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginBlockedStatuses(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user, err := svc.Register(RegisterInput{
		Email: "blocked@example.com", Password: "supersecret", FirstName: "A", LastName: "B",
	})
	require.NoError(t, err)

	user.Status = models.UserStatusSuspended
	require.NoError(t, db.Save(user).Error)
	_, err = svc.Login(LoginInput{Email: "blocked@example.com", Password: "supersecret"})
	require.ErrorIs(t, err, ErrAccountSuspended)

	// The wrong password still wins over the status, so responses never
	// reveal account state to an unauthenticated caller.
	_, err = svc.Login(LoginInput{Email: "blocked@example.com", Password: "wrongpass"})
	require.ErrorIs(t, err, ErrInvalidCredentials)

	user.Status = models.UserStatusInactive
	require.NoError(t, db.Save(user).Error)
	_, err = svc.Login(LoginInput{Email: "blocked@example.com", Password: "supersecret"})
	require.ErrorIs(t, err, ErrAccountInactive)
}

func TestUpdatePreferences(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user, err := svc.Register(RegisterInput{
		Email: "prefs@example.com", Password: "supersecret", FirstName: "A", LastName: "B",
	})
	require.NoError(t, err)

	theme := "dark"
	collapsed := true
	updated, err := svc.UpdatePreferences(user.ID, PreferencesInput{
		Theme:            &theme,
		SidebarCollapsed: &collapsed,
	})
	require.NoError(t, err)
	require.Equal(t, "dark", updated.Theme)
	require.True(t, updated.SidebarCollapsed)

	bogus := "neon"
	_, err = svc.UpdatePreferences(user.ID, PreferencesInput{Theme: &bogus})
	require.ErrorIs(t, err, ErrInvalidTheme)
}
