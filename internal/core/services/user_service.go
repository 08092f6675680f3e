package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finkeeper/personal_finance_app/internal/apperrors"
	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	portsrepo "github.com/finkeeper/personal_finance_app/internal/core/ports/repositories"
	portssvc "github.com/finkeeper/personal_finance_app/internal/core/ports/services"
	"github.com/finkeeper/personal_finance_app/internal/dto"
)

const defaultBaseCurrency = "USD"

// userService implements the UserSvcFacade interface
type userService struct {
	BaseService
	userRepo portsrepo.UserRepository
	now      func() time.Time
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// Ensure userService implements the UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser persists a new user. The password hash is already computed by
// the auth layer.
func (s *userService) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	if user.UserID == "" {
		user.UserID = uuid.NewString()
	}
	if user.BaseCurrency == "" {
		user.BaseCurrency = defaultBaseCurrency
	}
	if user.AuthProvider == "" {
		user.AuthProvider = "local"
	}
	now := s.now().UTC()
	user.CreatedAt = now
	user.LastUpdatedAt = now

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email %s is already registered", apperrors.ErrDuplicate, user.Email)
		}
		s.LogError(ctx, err, "Failed to save user", slog.String("email", user.Email))
		return nil, err
	}

	s.LogInfo(ctx, "User created", slog.String("user_id", user.UserID))
	return &user, nil
}

func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, fmt.Errorf("%w: user %s", apperrors.ErrNotFound, userID)
	}
	return user, nil
}

func (s *userService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user.IsDeleted {
		return nil, fmt.Errorf("%w: user with email %s", apperrors.ErrNotFound, email)
	}
	return user, nil
}

// FindOrCreateGoogleUser resolves the local user for a verified Google
// identity. An existing user with the same email is linked rather than
// duplicated.
func (s *userService) FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProviderID(ctx, "google", info.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	existing, err := s.userRepo.FindUserByEmail(ctx, info.Email)
	if err == nil && !existing.IsDeleted {
		existing.AuthProvider = "google"
		existing.ProviderUserID = &info.ID
		existing.LastUpdatedAt = s.now().UTC()
		if err := s.userRepo.UpdateUser(ctx, *existing); err != nil {
			return nil, err
		}
		s.LogInfo(ctx, "Linked Google identity to existing user", slog.String("user_id", existing.UserID))
		return existing, nil
	}
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	return s.CreateUser(ctx, domain.User{
		Name:           info.Name,
		Email:          info.Email,
		AuthProvider:   "google",
		ProviderUserID: &info.ID,
	})
}

func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.BaseCurrency != nil {
		user.BaseCurrency = *req.BaseCurrency
	}
	user.LastUpdatedAt = s.now().UTC()

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, userID string) error {
	if _, err := s.GetUserByID(ctx, userID); err != nil {
		return err
	}
	if err := s.userRepo.DeleteUser(ctx, userID, s.now().UTC()); err != nil {
		s.LogError(ctx, err, "Failed to delete user", slog.String("user_id", userID))
		return err
	}
	s.LogInfo(ctx, "User deleted", slog.String("user_id", userID))
	return nil
}

func (s *userService) SetRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, refreshTokenHash, &expiry)
}

func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, "", nil)
}
