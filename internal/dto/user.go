package dto

import (
	"time"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
)

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID        string    `json:"userID"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	BaseCurrency  string    `json:"baseCurrency"`
	AuthProvider  string    `json:"authProvider"`
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Pointers distinguish zero-value updates from fields not provided.
type UpdateUserRequest struct {
	Name         *string `json:"name"`
	BaseCurrency *string `json:"baseCurrency" binding:"omitempty,currencycode"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:        u.UserID,
		Name:          u.Name,
		Email:         u.Email,
		BaseCurrency:  u.BaseCurrency,
		AuthProvider:  u.AuthProvider,
		CreatedAt:     u.CreatedAt,
		LastUpdatedAt: u.LastUpdatedAt,
	}
}
