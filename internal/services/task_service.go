package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/octavertex/workhub/internal/models"
	"github.com/octavertex/workhub/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound         = errors.New("task not found")
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectWrongOrg      = errors.New("project belongs to a different organization")
	ErrTitleRequired        = errors.New("title is required")
	ErrTitleEmpty           = errors.New("title cannot be empty")
	ErrInvalidStatusValue   = errors.New("invalid task status")
	ErrInvalidPriorityValue = errors.New("invalid task priority")
	ErrTerminalState        = errors.New("a finished task must be reopened before changing state")
	ErrNotReopenable        = errors.New("only done or cancelled tasks can be reopened")
	ErrSameStatus           = errors.New("task is already in that state")
	ErrNotTaskCreator       = errors.New("only the task creator can perform this action")
	ErrNoUserIDsProvided    = errors.New("at least one user ID is required")
	ErrInvalidTaskAssignee  = errors.New("one or more users are not members of the organization")
)

// TaskService handles the task workflow.
type TaskService struct {
	taskRepo         repository.TaskRepository
	projectRepo      repository.ProjectRepository
	notificationRepo repository.NotificationRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, notificationRepo repository.NotificationRepository) *TaskService {
	return &TaskService{
		taskRepo:         taskRepo,
		projectRepo:      projectRepo,
		notificationRepo: notificationRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	ProjectID      uint64
	OrganizationID uint64
	Title          string
	Description    string
	Priority       models.Priority
	DueDate        *time.Time
	CreatorID      uint64
	AssigneeIDs    []uint64
}

// CreateTask creates a task in the backlog, or directly in todo when it is
// created with assignees.
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	if input.Title == "" {
		return nil, ErrTitleRequired
	}

	project, err := s.projectRepo.FindByID(input.ProjectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	if project.OrganizationID != input.OrganizationID {
		return nil, ErrProjectWrongOrg
	}

	priority := input.Priority
	if priority == "" {
		priority = models.PriorityMedium
	}
	if !models.ValidPriority(priority) {
		return nil, ErrInvalidPriorityValue
	}

	status := models.TaskStatusBacklog
	if len(input.AssigneeIDs) > 0 {
		status = models.TaskStatusTodo
	}

	task := &models.Task{
		ProjectID:      project.ID,
		OrganizationID: project.OrganizationID,
		Title:          input.Title,
		Description:    input.Description,
		Status:         status,
		Priority:       priority,
		DueDate:        input.DueDate,
		CreatorID:      input.CreatorID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if len(input.AssigneeIDs) > 0 {
		if err := s.AssignUsers(AssignUsersInput{
			TaskID:  task.ID,
			ActorID: input.CreatorID,
			UserIDs: input.AssigneeIDs,
		}); err != nil {
			return nil, err
		}
	}

	return s.taskRepo.FindByID(task.ID, "Creator", "Project", "Assignments", "Assignments.User")
}

// ListTasksInput represents filters for listing tasks.
type ListTasksInput struct {
	OrganizationID uint64
	ProjectID      *uint64
	Status         *models.TaskStatus
	AssignedUserID *uint64
	DueToday       bool
	Page           int
	PageSize       int
}

// ListTasks returns the organization's tasks matching the filters.
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, int64, error) {
	filter := repository.TaskFilter{
		OrganizationID: input.OrganizationID,
		ProjectID:      input.ProjectID,
		Status:         input.Status,
		AssignedUserID: input.AssignedUserID,
		Page:           input.Page,
		PageSize:       input.PageSize,
	}

	if input.Status != nil && !models.ValidTaskStatus(*input.Status) {
		return nil, 0, ErrInvalidStatusValue
	}

	if input.DueToday {
		now := time.Now()
		startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		endOfDay := startOfDay.Add(24 * time.Hour)
		filter.DueDateFrom = &startOfDay
		filter.DueDateTo = &endOfDay
	}

	tasks, total, err := s.taskRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, total, nil
}

// GetTask returns a task with related data.
func (s *TaskService) GetTask(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID, "Creator", "Project", "Assignments", "Assignments.User")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// UpdateTaskInput represents input for updating task fields. Status moves
// through Transition, not here.
type UpdateTaskInput struct {
	Title        *string
	Description  *string
	Priority     *models.Priority
	DueDate      *time.Time
	ClearDueDate bool
}

// UpdateTask updates a task's editable fields.
func (s *TaskService) UpdateTask(taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, ErrTitleEmpty
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Priority != nil {
		if !models.ValidPriority(*input.Priority) {
			return nil, ErrInvalidPriorityValue
		}
		task.Priority = *input.Priority
	}
	if input.ClearDueDate {
		task.DueDate = nil
	} else if input.DueDate != nil {
		task.DueDate = input.DueDate
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return s.taskRepo.FindByID(task.ID, "Creator", "Project", "Assignments", "Assignments.User")
}

// Transition moves a task to a new workflow state. Movement between
// non-terminal states is unrestricted; done and cancelled only leave via
// Reopen. Entering done stamps the completion time.
func (s *TaskService) Transition(taskID uint64, to models.TaskStatus) (*models.Task, error) {
	if !models.ValidTaskStatus(to) {
		return nil, ErrInvalidStatusValue
	}

	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !task.Status.CanTransition(to) {
		if task.Status.IsTerminal() {
			return nil, ErrTerminalState
		}
		return nil, ErrSameStatus
	}

	task.Status = to
	if to == models.TaskStatusDone {
		now := time.Now()
		task.CompletedAt = &now
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to transition task: %w", err)
	}
	return task, nil
}

// Reopen moves a done or cancelled task back to todo and clears the
// completion stamp.
func (s *TaskService) Reopen(taskID uint64) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	if !task.Status.IsTerminal() {
		return nil, ErrNotReopenable
	}

	task.Status = models.TaskStatusTodo
	task.CompletedAt = nil

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to reopen task: %w", err)
	}
	return task, nil
}

// DeleteTask deletes a task. The creator may always delete; callers enforce
// any broader role-based permission before calling.
func (s *TaskService) DeleteTask(taskID, actorID uint64, actorRole models.Role) error {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if task.CreatorID != actorID && !models.HasMinimumRole(actorRole, models.RoleProjectAdmin) {
		return ErrNotTaskCreator
	}

	if err := s.taskRepo.Delete(taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

// AssignUsersInput represents input for assigning users to a task.
type AssignUsersInput struct {
	TaskID  uint64
	ActorID uint64
	UserIDs []uint64
}

// AssignUsers assigns users to a task after verifying they belong to the
// task's organization. Each assignee gets a notification.
func (s *TaskService) AssignUsers(input AssignUsersInput) error {
	if len(input.UserIDs) == 0 {
		return ErrNoUserIDsProvided
	}

	task, err := s.taskRepo.FindByID(input.TaskID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	userIDs := uniqueUint64(input.UserIDs)

	count, err := s.taskRepo.CountOrganizationMembers(userIDs, task.OrganizationID)
	if err != nil {
		return fmt.Errorf("failed to verify users: %w", err)
	}
	if int(count) != len(userIDs) {
		return ErrInvalidTaskAssignee
	}

	if err := s.taskRepo.AssignUsers(task.ID, userIDs); err != nil {
		return fmt.Errorf("failed to assign users: %w", err)
	}

	if s.notificationRepo != nil {
		notifications := make([]models.Notification, 0, len(userIDs))
		for _, id := range userIDs {
			if id == input.ActorID {
				continue
			}
			notifications = append(notifications, models.Notification{
				UserID:  id,
				Type:    models.NotificationTaskAssigned,
				Title:   "You were assigned a task",
				Message: task.Title,
			})
		}
		_ = s.notificationRepo.CreateBatch(notifications)
	}

	return nil
}

// UnassignUsers removes user assignments from a task.
func (s *TaskService) UnassignUsers(taskID uint64, userIDs []uint64) error {
	if len(userIDs) == 0 {
		return ErrNoUserIDsProvided
	}

	if _, err := s.taskRepo.FindByID(taskID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.UnassignUsers(taskID, uniqueUint64(userIDs)); err != nil {
		return fmt.Errorf("failed to unassign users: %w", err)
	}
	return nil
}

// uniqueUint64 removes duplicate values from a slice of uint64.
func uniqueUint64(values []uint64) []uint64 {
	seen := make(map[uint64]struct{}, len(values))
	result := make([]uint64, 0, len(values))
	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
