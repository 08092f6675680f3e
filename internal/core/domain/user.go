package domain

import "time"

// User represents an application user within the core domain.
type User struct {
	UserID       string `json:"userID"` // Primary Key (UUID)
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never serialized
	BaseCurrency string `json:"baseCurrency"`
	IsDeleted    bool   `json:"isDeleted"`
	AuditFields

	// Refresh token state, stored hashed.
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`

	// AuthProvider identifies how the user signs in ("local" or "google").
	AuthProvider   string  `json:"authProvider"`
	ProviderUserID *string `json:"-"`
}

// GoogleUserInfo holds the fields we read from Google's userinfo endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}
