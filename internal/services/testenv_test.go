package services

import (
	"fmt"
	"testing"

	"github.com/octavertex/workhub/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.Organization{},
		&models.Department{},
		&models.User{},
		&models.Project{},
		&models.Task{},
		&models.TaskAssignment{},
		&models.Shift{},
		&models.AttendanceRecord{},
		&models.LeaveType{},
		&models.LeaveBalance{},
		&models.LeaveRequest{},
		&models.Channel{},
		&models.ChannelMember{},
		&models.ChatMessage{},
		&models.Notification{},
		&models.AuditLog{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

func createTestOrg(t *testing.T, db *gorm.DB) *models.Organization {
	t.Helper()
	org := &models.Organization{Name: "Acme", Slug: "acme"}
	require.NoError(t, db.Create(org).Error)
	return org
}

var testUserSeq int

func createTestUser(t *testing.T, db *gorm.DB, orgID uint64, role models.Role) *models.User {
	t.Helper()
	testUserSeq++
	user := &models.User{
		Email:        fmt.Sprintf("user%d@example.com", testUserSeq),
		PasswordHash: "x",
		FirstName:    "Test",
		LastName:     fmt.Sprintf("User%d", testUserSeq),
		Role:         role,
		Status:       models.UserStatusActive,
		Theme:        "system",
	}
	if orgID != 0 {
		user.OrganizationID = &orgID
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestLeaveType(t *testing.T, db *gorm.DB, orgID uint64, name string, defaultDays float64) *models.LeaveType {
	t.Helper()
	lt := &models.LeaveType{
		OrganizationID: orgID,
		Name:           name,
		DefaultDays:    defaultDays,
		Paid:           true,
	}
	require.NoError(t, db.Create(lt).Error)
	return lt
}

func createTestProject(t *testing.T, db *gorm.DB, orgID, creatorID uint64) *models.Project {
	t.Helper()
	project := &models.Project{
		OrganizationID: orgID,
		Name:           "Platform",
		Slug:           "platform",
		Status:         models.ProjectStatusActive,
		CreatedByID:    creatorID,
	}
	require.NoError(t, db.Create(project).Error)
	return project
}
