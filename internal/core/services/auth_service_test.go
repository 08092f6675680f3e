package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"google.golang.org/api/idtoken"

	"github.com/finkeeper/personal_finance_app/internal/apperrors"
	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	portssvc "github.com/finkeeper/personal_finance_app/internal/core/ports/services"
	"github.com/finkeeper/personal_finance_app/internal/core/services"
	"github.com/finkeeper/personal_finance_app/internal/dto"
	"github.com/finkeeper/personal_finance_app/internal/utils"
)

// --- Mock UserSvcFacade ---

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) CreateUser(ctx context.Context, user domain.User) (*domain.User, error) {
	args := m.Called(ctx, user)
	var created *domain.User
	if args.Get(0) != nil {
		created = args.Get(0).(*domain.User)
	}
	return created, args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	args := m.Called(ctx, info)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) SetRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiry time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiry)
	return args.Error(0)
}

func (m *MockUserService) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock TokenSvcFacade ---

type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockTokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	args := m.Called(ctx, userID, refreshTokenString)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

// --- Test Suite ---

type AuthServiceTestSuite struct {
	suite.Suite
	mockUserService  *MockUserService
	mockTokenService *MockTokenService
	service          portssvc.AuthSvcFacade
	user             *domain.User
	accessExp        time.Time
	refreshExp       time.Time
}

func (suite *AuthServiceTestSuite) SetupTest() {
	suite.mockUserService = new(MockUserService)
	suite.mockTokenService = new(MockTokenService)
	suite.service = services.NewAuthService(suite.mockUserService, suite.mockTokenService)
	suite.user = &domain.User{
		UserID:       "user-1",
		Name:         "Test User",
		Email:        "test@example.com",
		BaseCurrency: "USD",
		AuthProvider: "local",
	}
	suite.accessExp = time.Now().Add(15 * time.Minute)
	suite.refreshExp = time.Now().Add(720 * time.Hour)
}

func (suite *AuthServiceTestSuite) expectTokenIssue(rawRefreshToken string) {
	suite.mockTokenService.On("GenerateAccessToken", mock.Anything, mock.AnythingOfType("*domain.User")).
		Return("access-token", suite.accessExp, nil).Once()
	suite.mockTokenService.On("GenerateRefreshToken", mock.Anything, mock.AnythingOfType("*domain.User")).
		Return(rawRefreshToken, suite.refreshExp, nil).Once()
	suite.mockUserService.On("SetRefreshToken", mock.Anything, "user-1", utils.HashRefreshToken(rawRefreshToken), suite.refreshExp).
		Return(nil).Once()
}

// --- Login ---

func (suite *AuthServiceTestSuite) TestLogin_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct horse")
	suite.Require().NoError(err)
	suite.user.PasswordHash = hash

	suite.mockUserService.On("GetUserByEmail", ctx, "test@example.com").Return(suite.user, nil).Once()
	suite.expectTokenIssue("raw-refresh")

	result, err := suite.service.Login(ctx, dto.LoginRequest{Email: "test@example.com", Password: "correct horse"})

	suite.Require().NoError(err)
	suite.Equal("access-token", result.AccessToken)
	suite.Equal("raw-refresh", result.RefreshToken)
	suite.Equal("user-1", result.User.UserID)
	suite.mockUserService.AssertExpectations(suite.T())
	suite.mockTokenService.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLogin_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("correct horse")
	suite.Require().NoError(err)
	suite.user.PasswordHash = hash

	suite.mockUserService.On("GetUserByEmail", ctx, "test@example.com").Return(suite.user, nil).Once()

	_, err = suite.service.Login(ctx, dto.LoginRequest{Email: "test@example.com", Password: "wrong"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockTokenService.AssertNotCalled(suite.T(), "GenerateAccessToken", mock.Anything, mock.Anything)
}

func (suite *AuthServiceTestSuite) TestLogin_UnknownEmailMapsToUnauthorized() {
	ctx := context.Background()
	suite.mockUserService.On("GetUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *AuthServiceTestSuite) TestLogin_GoogleOnlyUserHasNoPassword() {
	ctx := context.Background()
	suite.user.PasswordHash = ""
	suite.mockUserService.On("GetUserByEmail", ctx, "test@example.com").Return(suite.user, nil).Once()

	_, err := suite.service.Login(ctx, dto.LoginRequest{Email: "test@example.com", Password: "anything"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- Register ---

func (suite *AuthServiceTestSuite) TestRegister_HashesPasswordBeforePersisting() {
	ctx := context.Background()

	suite.mockUserService.On("CreateUser", ctx, mock.MatchedBy(func(user domain.User) bool {
		return user.Email == "new@example.com" &&
			user.AuthProvider == "local" &&
			user.PasswordHash != "s3cret" &&
			utils.CheckPasswordHash("s3cret", user.PasswordHash)
	})).Return(suite.user, nil).Once()
	suite.expectTokenIssue("raw-refresh")

	result, err := suite.service.Register(ctx, dto.RegisterRequest{
		Name:         "New User",
		Email:        "new@example.com",
		Password:     "s3cret",
		BaseCurrency: "USD",
	})

	suite.Require().NoError(err)
	suite.NotEmpty(result.AccessToken)
	suite.mockUserService.AssertExpectations(suite.T())
}

// --- Refresh ---

func (suite *AuthServiceTestSuite) TestRefresh_RotatesTokens() {
	ctx := context.Background()

	suite.mockTokenService.On("ValidateAndParseRefreshToken", ctx, "user-1", "old-refresh").Return(suite.user, nil).Once()
	suite.expectTokenIssue("new-refresh")

	result, err := suite.service.Refresh(ctx, "user-1", "old-refresh")

	suite.Require().NoError(err)
	suite.Equal("new-refresh", result.RefreshToken)
	suite.mockTokenService.AssertExpectations(suite.T())
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestRefresh_ExpiredTokenSurfaces() {
	ctx := context.Background()

	suite.mockTokenService.On("ValidateAndParseRefreshToken", ctx, "user-1", "stale").Return(nil, apperrors.ErrRefreshTokenExpired).Once()

	_, err := suite.service.Refresh(ctx, "user-1", "stale")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRefreshTokenExpired)
	suite.mockTokenService.AssertNotCalled(suite.T(), "GenerateAccessToken", mock.Anything, mock.Anything)
}

// --- LoginWithGoogle ---

func (suite *AuthServiceTestSuite) TestLoginWithGoogle_Success() {
	ctx := context.Background()
	payload := &idtoken.Payload{
		Subject: "google-sub-123",
		Claims: map[string]interface{}{
			"email": "test@example.com",
			"name":  "Test User",
		},
	}

	suite.mockUserService.On("FindOrCreateGoogleUser", ctx, mock.MatchedBy(func(info *domain.GoogleUserInfo) bool {
		return info.ID == "google-sub-123" && info.Email == "test@example.com"
	})).Return(suite.user, nil).Once()
	suite.expectTokenIssue("raw-refresh")

	result, err := suite.service.LoginWithGoogle(ctx, payload)

	suite.Require().NoError(err)
	suite.Equal("user-1", result.User.UserID)
	suite.mockUserService.AssertExpectations(suite.T())
}

func (suite *AuthServiceTestSuite) TestLoginWithGoogle_MissingEmail() {
	ctx := context.Background()
	payload := &idtoken.Payload{Subject: "google-sub-123", Claims: map[string]interface{}{}}

	_, err := suite.service.LoginWithGoogle(ctx, payload)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
	suite.mockUserService.AssertNotCalled(suite.T(), "FindOrCreateGoogleUser", mock.Anything, mock.Anything)
}

// --- Logout ---

func (suite *AuthServiceTestSuite) TestLogout_ClearsStoredRefreshToken() {
	ctx := context.Background()
	suite.mockUserService.On("ClearRefreshToken", ctx, "user-1").Return(nil).Once()

	err := suite.service.Logout(ctx, "user-1")

	suite.Require().NoError(err)
	suite.mockUserService.AssertExpectations(suite.T())
}

func TestAuthService(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
