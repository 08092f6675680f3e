package dto

import "time"

// RegisterRequest defines the data needed to register a new user.
type RegisterRequest struct {
	Name         string `json:"name" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Password     string `json:"password" binding:"required,min=8"`
	BaseCurrency string `json:"baseCurrency" binding:"omitempty,currencycode"`
}

// LoginRequest defines the credentials for a local login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse is returned on successful register/login/refresh. The refresh
// token itself travels in an HTTP-only cookie, not in the body.
type AuthResponse struct {
	AccessToken    string       `json:"accessToken"`
	AccessTokenExp time.Time    `json:"accessTokenExpiresAt"`
	User           UserResponse `json:"user"`
}

// ExchangeCodeRequest defines the body for the Google code-exchange endpoint.
type ExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}
