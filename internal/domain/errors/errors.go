package errors

import (
	"net/http"

	"panel/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// Wrap attaches an underlying cause, keeping the classified error in the
// chain so errors.As still recovers the AppError.
func (e *BaseError) Wrap(err error) error {
	return errors.Wrap(e, err.Error())
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// WithMessage returns a copy carrying a specific user-visible reason.
// Used by business-rule refusals where the reason string is part of the
// contract.
func (e *BaseError) WithMessage(message string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   message,
		details:   e.details,
	}
}

// Predefined error types.
//
// System errors carry a generic user message; the detail stays in the
// server-side log. Business-rule refusals (REJECTED, INVALID_SETTINGS)
// carry the specific reason, since the user is meant to see it.
var (
	// OAuth / identity-provider errors
	ErrAuthExchangeFailed = NewBaseError(
		http.StatusBadGateway,
		"AUTH_EXCHANGE_FAILED",
		"Could not complete the Discord login. Please try again.",
		"",
	)

	ErrIdentityFetchFailed = NewBaseError(
		http.StatusBadGateway,
		"IDENTITY_FETCH_FAILED",
		"Could not load your Discord profile. Please try again.",
		"",
	)

	ErrUpstreamListFailed = NewBaseError(
		http.StatusBadGateway,
		"UPSTREAM_LIST_FAILED",
		"Could not load your server list from Discord. Please try again.",
		"",
	)

	ErrGuildNotAccessible = NewBaseError(
		http.StatusNotFound,
		"GUILD_NOT_ACCESSIBLE",
		"This server is not accessible. Make sure the bot is invited to it.",
		"",
	)

	// Session errors
	ErrSessionRequired = NewBaseError(
		http.StatusUnauthorized,
		"SESSION_REQUIRED",
		"You must be logged in to do that.",
		"",
	)

	// Settings errors
	ErrInvalidSettings = NewBaseError(
		http.StatusBadRequest,
		"INVALID_SETTINGS",
		"Invalid settings.",
		"",
	)

	// Entitlement business-rule refusal, not a system error
	ErrRejected = NewBaseError(
		http.StatusConflict,
		"REJECTED",
		"Request refused.",
		"",
	)

	// Payment provider errors
	ErrWebhookVerificationFailed = NewBaseError(
		http.StatusBadRequest,
		"WEBHOOK_VERIFICATION_FAILED",
		"webhook verification failed",
		"",
	)

	ErrPaymentFailed = NewBaseError(
		http.StatusBadGateway,
		"PAYMENT_FAILED",
		"The payment could not be processed. Please try again.",
		"",
	)

	// Storage errors
	ErrStorageUnavailable = NewBaseError(
		http.StatusServiceUnavailable,
		"STORAGE_UNAVAILABLE",
		"Service temporarily unavailable. Please try again shortly.",
		"",
	)

	// General errors
	ErrInternalError = NewBaseError(
		http.StatusInternalServerError,
		"INTERNAL_ERROR",
		"Internal server error.",
		"",
	)

	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found.",
		"",
	)
)

// Response is the JSON body rendered for any handler error.
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Error   *ErrorInfo `json:"error,omitempty"`
}

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g., "INVALID_SETTINGS"
	Details string `json:"details,omitempty"` // Detailed error information (optional)
}
