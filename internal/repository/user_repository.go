package repository

import (
	"errors"
	"fmt"

	"github.com/octavertex/workhub/internal/database"
	"github.com/octavertex/workhub/internal/models"
	"github.com/octavertex/workhub/internal/utils"
	"gorm.io/gorm"
)

var (
	// ErrCreateOrganization is returned when creating the organization fails inside the registration transaction.
	ErrCreateOrganization = errors.New("user repository: create organization failed")
	// ErrCreateLeaveTypes is returned when seeding default leave types fails inside the registration transaction.
	ErrCreateLeaveTypes = errors.New("user repository: create leave types failed")
	// ErrCreateShift is returned when creating the default shift fails inside the registration transaction.
	ErrCreateShift = errors.New("user repository: create shift failed")
	// ErrCreateUser is returned when creating the user fails inside the registration transaction.
	ErrCreateUser = errors.New("user repository: create user failed")
)

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user
func (r *GormUserRepository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// RegisterWithOrganization creates the organization, its default leave types
// and shift, and the founding user atomically.
func (r *GormUserRepository) RegisterWithOrganization(user *models.User, org *models.Organization, leaveTypes []models.LeaveType, shift *models.Shift) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(org).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateOrganization, err)
		}

		for i := range leaveTypes {
			leaveTypes[i].OrganizationID = org.ID
		}
		if len(leaveTypes) > 0 {
			if err := tx.Create(&leaveTypes).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrCreateLeaveTypes, err)
			}
		}

		if shift != nil {
			shift.OrganizationID = org.ID
			if err := tx.Create(shift).Error; err != nil {
				return fmt.Errorf("%w: %v", ErrCreateShift, err)
			}
		}

		user.OrganizationID = &org.ID
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("%w: %v", ErrCreateUser, err)
		}

		return nil
	})
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(id uint64) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by normalized email
func (r *GormUserRepository) FindByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update persists user mutations
func (r *GormUserRepository) Update(user *models.User) error {
	return r.db.Save(user).Error
}

// ListByOrganization lists users of an organization with pagination
func (r *GormUserRepository) ListByOrganization(orgID uint64, page, pageSize int) ([]models.User, int64, error) {
	var users []models.User

	query := r.db.Model(&models.User{}).Where("organization_id = ?", orgID)

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

	if err := query.Order("users.created_at ASC").Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
