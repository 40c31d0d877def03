package services

import (
	"testing"

	"github.com/octavertex/workhub/internal/models"
	"github.com/octavertex/workhub/internal/repository"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTaskService(db *gorm.DB) *TaskService {
	return NewTaskService(
		repository.NewTaskRepository(db),
		repository.NewProjectRepository(db),
		repository.NewNotificationRepository(db),
	)
}

func TestCreateTask(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	user := createTestUser(t, db, org.ID, models.RoleEmployee)
	project := createTestProject(t, db, org.ID, user.ID)
	svc := newTaskService(db)

	task, err := svc.CreateTask(CreateTaskInput{
		ProjectID:      project.ID,
		OrganizationID: org.ID,
		Title:          "Write onboarding docs",
		CreatorID:      user.ID,
	})
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusBacklog, task.Status)
	require.Equal(t, models.PriorityMedium, task.Priority)

	_, err = svc.CreateTask(CreateTaskInput{
		ProjectID:      project.ID,
		OrganizationID: org.ID,
		CreatorID:      user.ID,
	})
	require.ErrorIs(t, err, ErrTitleRequired)

	_, err = svc.CreateTask(CreateTaskInput{
		ProjectID:      9999,
		OrganizationID: org.ID,
		Title:          "Orphan",
		CreatorID:      user.ID,
	})
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestCreateTaskWithAssigneesStartsInTodo(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	creator := createTestUser(t, db, org.ID, models.RoleTeamLead)
	assignee := createTestUser(t, db, org.ID, models.RoleEmployee)
	project := createTestProject(t, db, org.ID, creator.ID)
	svc := newTaskService(db)

	task, err := svc.CreateTask(CreateTaskInput{
		ProjectID:      project.ID,
		OrganizationID: org.ID,
		Title:          "Review quarterly report",
		CreatorID:      creator.ID,
		AssigneeIDs:    []uint64{assignee.ID},
	})
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusTodo, task.Status)
	require.Len(t, task.Assignments, 1)
	require.Equal(t, assignee.ID, task.Assignments[0].UserID)

	// Assignment produced a notification for the assignee.
	var count int64
	require.NoError(t, db.Model(&models.Notification{}).
		Where("user_id = ? AND type = ?", assignee.ID, models.NotificationTaskAssigned).
		Count(&count).Error)
	require.Equal(t, int64(1), count)
}

func TestTaskTransitions(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	user := createTestUser(t, db, org.ID, models.RoleEmployee)
	project := createTestProject(t, db, org.ID, user.ID)
	svc := newTaskService(db)

	task, err := svc.CreateTask(CreateTaskInput{
		ProjectID:      project.ID,
		OrganizationID: org.ID,
		Title:          "Ship the release",
		CreatorID:      user.ID,
	})
	require.NoError(t, err)

	task, err = svc.Transition(task.ID, models.TaskStatusInProgress)
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusInProgress, task.Status)

	task, err = svc.Transition(task.ID, models.TaskStatusInReview)
	require.NoError(t, err)

	// Same-state moves are refused.
	_, err = svc.Transition(task.ID, models.TaskStatusInReview)
	require.ErrorIs(t, err, ErrSameStatus)

	// Entering done stamps the completion time.
	task, err = svc.Transition(task.ID, models.TaskStatusDone)
	require.NoError(t, err)
	require.NotNil(t, task.CompletedAt)

	// Terminal states only leave via reopen.
	_, err = svc.Transition(task.ID, models.TaskStatusTodo)
	require.ErrorIs(t, err, ErrTerminalState)

	task, err = svc.Reopen(task.ID)
	require.NoError(t, err)
	require.Equal(t, models.TaskStatusTodo, task.Status)
	require.Nil(t, task.CompletedAt)

	// Reopening a live task is refused.
	_, err = svc.Reopen(task.ID)
	require.ErrorIs(t, err, ErrNotReopenable)
}

func TestTaskAssignRejectsOutsiders(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	otherOrg := &models.Organization{Name: "Rival", Slug: "rival"}
	require.NoError(t, db.Create(otherOrg).Error)

	creator := createTestUser(t, db, org.ID, models.RoleEmployee)
	outsider := createTestUser(t, db, otherOrg.ID, models.RoleEmployee)
	project := createTestProject(t, db, org.ID, creator.ID)
	svc := newTaskService(db)

	task, err := svc.CreateTask(CreateTaskInput{
		ProjectID:      project.ID,
		OrganizationID: org.ID,
		Title:          "Internal cleanup",
		CreatorID:      creator.ID,
	})
	require.NoError(t, err)

	err = svc.AssignUsers(AssignUsersInput{
		TaskID:  task.ID,
		ActorID: creator.ID,
		UserIDs: []uint64{outsider.ID},
	})
	require.ErrorIs(t, err, ErrInvalidTaskAssignee)
}

func TestTaskDeletePermission(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	creator := createTestUser(t, db, org.ID, models.RoleEmployee)
	other := createTestUser(t, db, org.ID, models.RoleEmployee)
	admin := createTestUser(t, db, org.ID, models.RoleProjectAdmin)
	project := createTestProject(t, db, org.ID, creator.ID)
	svc := newTaskService(db)

	task, err := svc.CreateTask(CreateTaskInput{
		ProjectID:      project.ID,
		OrganizationID: org.ID,
		Title:          "Temporary task",
		CreatorID:      creator.ID,
	})
	require.NoError(t, err)

	require.ErrorIs(t, svc.DeleteTask(task.ID, other.ID, other.Role), ErrNotTaskCreator)
	require.NoError(t, svc.DeleteTask(task.ID, admin.ID, admin.Role))

	_, err = svc.GetTask(task.ID)
	require.ErrorIs(t, err, ErrTaskNotFound)
}

func TestTaskCreateRejectsForeignProject(t *testing.T) {
	db := newTestDB(t)
	org := createTestOrg(t, db)
	otherOrg := &models.Organization{Name: "Rival", Slug: "rival"}
	require.NoError(t, db.Create(otherOrg).Error)

	user := createTestUser(t, db, org.ID, models.RoleEmployee)
	foreignProject := createTestProject(t, db, otherOrg.ID, user.ID)
	svc := newTaskService(db)

	_, err := svc.CreateTask(CreateTaskInput{
		ProjectID:      foreignProject.ID,
		OrganizationID: org.ID,
		Title:          "Cross-org task",
		CreatorID:      user.ID,
	})
	require.ErrorIs(t, err, ErrProjectWrongOrg)
}
