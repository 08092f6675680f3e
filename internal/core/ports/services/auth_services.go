package services

import (
	"context"
	"time"

	"github.com/finkeeper/personal_finance_app/internal/core/domain"
	"github.com/finkeeper/personal_finance_app/internal/dto"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// AuthResult bundles the tokens issued on a successful authentication.
type AuthResult struct {
	User            *domain.User
	AccessToken     string
	AccessTokenExp  time.Time
	RefreshToken    string
	RefreshTokenExp time.Time
}

// AuthSvcFacade defines register/login/refresh flows.
type AuthSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*AuthResult, error)
	Login(ctx context.Context, req dto.LoginRequest) (*AuthResult, error)

	// Refresh validates the presented refresh token and rotates it.
	Refresh(ctx context.Context, userID string, refreshToken string) (*AuthResult, error)

	// Logout invalidates the stored refresh token.
	Logout(ctx context.Context, userID string) error

	// LoginWithGoogle completes a Google sign-in from a validated ID token payload.
	LoginWithGoogle(ctx context.Context, payload *idtoken.Payload) (*AuthResult, error)
}

// TokenSvcFacade defines token generation and validation.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error)
}

// GoogleOAuthSvcFacade defines the Google OAuth flow operations.
type GoogleOAuthSvcFacade interface {
	GenerateStateString(ctx context.Context) (string, error)
	GetGoogleLoginURL(ctx context.Context, state string) string
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
