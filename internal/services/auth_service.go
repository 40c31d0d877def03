package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/octavertex/workhub/internal/constants"
	"github.com/octavertex/workhub/internal/models"
	"github.com/octavertex/workhub/internal/repository"
	"github.com/octavertex/workhub/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrEmailTaken           = errors.New("account already exists")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrAccountSuspended     = errors.New("your account has been suspended")
	ErrAccountInactive      = errors.New("your account is inactive")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrNameRequired         = errors.New("first and last name are required")
	ErrUserNotFound         = errors.New("user not found")
	ErrInvalidTheme         = errors.New("theme must be light, dark or system")
	ErrFailedToHashPassword = errors.New("failed to hash password")
	ErrFailedToCreateUser   = errors.New("failed to create user")
	ErrFailedToCreateOrg    = errors.New("failed to create organization")
)

// AuthService handles registration and credential authentication.
type AuthService struct {
	userRepo  repository.UserRepository
	auditRepo repository.AuditLogRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, auditRepo repository.AuditLogRepository) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
	}
}

// RegisterInput represents the required information to create an account.
// OrganizationName, when set, makes the new user the founding super admin of
// a fresh organization seeded with default leave types and a standard shift.
type RegisterInput struct {
	Email            string
	Password         string
	FirstName        string
	LastName         string
	OrganizationName string
}

// defaultLeaveTypes returns the leave policies a new organization starts with.
func defaultLeaveTypes() []models.LeaveType {
	return []models.LeaveType{
		{Name: "Casual Leave", Description: "General time off", DefaultDays: 12},
		{Name: "Sick Leave", Description: "Medical leave", DefaultDays: 12},
		{Name: "Earned Leave", Description: "Vacation and personal time", DefaultDays: 15, CarryForward: true, MaxCarryForward: 30},
		{Name: "Unpaid Leave", Description: "Leave without pay", DefaultDays: 0, Paid: false},
	}
}

// defaultShift returns the standard shift a new organization starts with.
func defaultShift() *models.Shift {
	return &models.Shift{
		Name:          "Standard",
		StartTime:     "09:00",
		EndTime:       "18:00",
		BreakDuration: 60,
		GraceMinutes:  15,
		StandardHours: 8,
	}
}

// Register creates a new user, and the organization when a name is given.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return nil, ErrNameRequired
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		FirstName:    strings.TrimSpace(input.FirstName),
		LastName:     strings.TrimSpace(input.LastName),
		Role:         models.RoleEmployee,
		Status:       models.UserStatusActive,
		Theme:        "system",
	}

	orgName := strings.TrimSpace(input.OrganizationName)
	if orgName != "" {
		user.Role = models.RoleSuperAdmin
		org := &models.Organization{
			Name: orgName,
			Slug: utils.Slugify(orgName),
		}
		err = s.userRepo.RegisterWithOrganization(user, org, defaultLeaveTypes(), defaultShift())
		if err != nil {
			switch {
			case errors.Is(err, repository.ErrCreateOrganization),
				errors.Is(err, repository.ErrCreateLeaveTypes),
				errors.Is(err, repository.ErrCreateShift):
				return nil, ErrFailedToCreateOrg
			case errors.Is(err, repository.ErrCreateUser):
				return nil, ErrFailedToCreateUser
			default:
				return nil, fmt.Errorf("failed to complete registration: %w", err)
			}
		}
	} else {
		if err := s.userRepo.Create(user); err != nil {
			return nil, ErrFailedToCreateUser
		}
	}

	writeAudit(s.auditRepo, user.ID, "USER_REGISTERED", "User", user.ID, map[string]interface{}{
		"email": user.Email,
		"role":  user.Role,
	})

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the authenticated user. Missing
// accounts and wrong passwords fail identically, and account status is only
// inspected after the hash comparison, so responses never betray whether an
// email is registered.
func (s *AuthService) Login(input LoginInput) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	switch user.Status {
	case models.UserStatusSuspended:
		return nil, ErrAccountSuspended
	case models.UserStatusInactive:
		return nil, ErrAccountInactive
	}

	now := time.Now()
	user.LastLoginAt = &now
	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// PreferencesInput holds the persisted UI preferences.
type PreferencesInput struct {
	Theme            *string
	SidebarCollapsed *bool
}

// UpdatePreferences stores the user's persisted UI preferences.
func (s *AuthService) UpdatePreferences(userID uint64, input PreferencesInput) (*models.User, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		return nil, err
	}

	if input.Theme != nil {
		switch *input.Theme {
		case "light", "dark", "system":
			user.Theme = *input.Theme
		default:
			return nil, ErrInvalidTheme
		}
	}
	if input.SidebarCollapsed != nil {
		user.SidebarCollapsed = *input.SidebarCollapsed
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update preferences: %w", err)
	}
	return user, nil
}

