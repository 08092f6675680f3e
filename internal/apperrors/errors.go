package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller does not own the requested resource.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrRefreshTokenExpired indicates the stored refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrInvalidRange indicates an invalid date range or an unsupported granularity
// on a reporting request. Rejected before any data is loaded.
var ErrInvalidRange = errors.New("invalid range")

// ErrConversion indicates the currency converter has no rate for the requested
// currency pair and date. Balances are never silently reported 1:1.
var ErrConversion = errors.New("currency conversion failed")
