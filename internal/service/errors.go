package service

import "errors"

// Sentinel errors shared across services. Handlers translate them into
// HTTP status codes through the error middleware.
var (
	ErrNotFound            = errors.New("record not found")
	ErrForbidden           = errors.New("operation not allowed for this account")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrAccountInactive     = errors.New("account is not active")
	ErrUsernameTaken       = errors.New("username is already taken")
	ErrEmailTaken          = errors.New("email is already in use")
	ErrSessionExpired      = errors.New("session has expired")
	ErrInvalidToken        = errors.New("invalid access token")
	ErrInvalidTransition   = errors.New("status transition not allowed")
	ErrDocumentsIncomplete = errors.New("application documents are incomplete")
	ErrInvalidDocument     = errors.New("invalid document upload")
	ErrDuplicateApplication = errors.New("an application for this scholarship already exists")
	ErrAmountTooSmall      = errors.New("withdrawal amount is below the minimum")
	ErrInsufficientBalance = errors.New("withdrawal amount exceeds the available balance")
	ErrReasonRequired      = errors.New("a reason is required")
	ErrMissingFields       = errors.New("required fields are missing")
)
