package services

import (
	"context"
	"time"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	"github.com/finkeeper/personal_finance_app/internal/dto"
)

// UserSvcFacade defines the operations for managing users.
type UserSvcFacade interface {
	// CreateUser persists a new user; the password arrives already hashed.
	CreateUser(ctx context.Context, user domain.User) (*domain.User, error)

	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindOrCreateGoogleUser resolves the local user for a verified Google
	// identity, creating one on first sign-in.
	FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error)

	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string) error

	// SetRefreshToken stores the hashed refresh token for a user; ClearRefreshToken removes it.
	SetRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
}
