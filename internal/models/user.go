package models

import "time"

// User represents a row in the users table.
type User struct {
	UserID                 string     `db:"user_id"`
	Name                   string     `db:"name"`
	Email                  string     `db:"email"`
	PasswordHash           string     `db:"password_hash"`
	BaseCurrency           string     `db:"base_currency"`
	IsDeleted              bool       `db:"is_deleted"`
	RefreshTokenHash       string     `db:"refresh_token_hash"`
	RefreshTokenExpiryTime *time.Time `db:"refresh_token_expiry_time"`
	AuthProvider           string     `db:"auth_provider"`
	ProviderUserID         *string    `db:"provider_user_id"`
	AuditFields
}
