package dto

import (
	"time"

	"github.com/octavertex/workhub/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID        uint64            `json:"id"`
	Email     string            `json:"email"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Role      models.Role       `json:"role"`
	Status    models.UserStatus `json:"status"`
}

// UserDetailDTO represents full user information for profile views
type UserDetailDTO struct {
	UserDTO
	OrganizationID   *uint64    `json:"organization_id"`
	DepartmentID     *uint64    `json:"department_id"`
	ManagerID        *uint64    `json:"manager_id"`
	Theme            string     `json:"theme"`
	SidebarCollapsed bool       `json:"sidebar_collapsed"`
	LastLoginAt      *time.Time `json:"last_login_at"`
	CreatedAt        time.Time  `json:"created_at"`
}

// UserListResponse represents a paginated list of users
type UserListResponse struct {
	Users      []UserDTO `json:"users"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalCount int64     `json:"total_count"`
}

// ToUserDTO converts a user to DTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:        user.ID,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		Status:    user.Status,
	}
}

// ToUserDetailDTO converts a user to the detailed DTO
func ToUserDetailDTO(user models.User) UserDetailDTO {
	return UserDetailDTO{
		UserDTO:          ToUserDTO(user),
		OrganizationID:   user.OrganizationID,
		DepartmentID:     user.DepartmentID,
		ManagerID:        user.ManagerID,
		Theme:            user.Theme,
		SidebarCollapsed: user.SidebarCollapsed,
		LastLoginAt:      user.LastLoginAt,
		CreatedAt:        user.CreatedAt,
	}
}

// ToUserListResponse converts users to a paginated response
func ToUserListResponse(users []models.User, page, pageSize int, total int64) UserListResponse {
	dtos := make([]UserDTO, len(users))
	for i, u := range users {
		dtos[i] = ToUserDTO(u)
	}
	return UserListResponse{
		Users:      dtos,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
	}
}
