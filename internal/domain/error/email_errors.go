// Package error defines domain-specific errors for the analytics service.
package error

import "errors"

// Alert email errors.
var (
	// ErrAlertRecipientMissing is returned when a digest is requested but no recipient is configured.
	ErrAlertRecipientMissing = errors.New("alert recipient is not configured")

	// ErrInvalidTemplate is returned when the digest template fails to render.
	ErrInvalidTemplate = errors.New("invalid email template")

	// ErrEmailSendFailed is returned once every delivery attempt has failed.
	ErrEmailSendFailed = errors.New("failed to send email")
)

// EmailErrorCode defines error codes for alert email errors.
// Format: EMAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Setup errors (01XXXX)
	ErrCodeAlertRecipientMissing EmailErrorCode = "EMAIL-010001"
	ErrCodeInvalidTemplate       EmailErrorCode = "EMAIL-010002"

	// Delivery errors (02XXXX)
	ErrCodeEmailSendFailed       EmailErrorCode = "EMAIL-020001"
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020003"
)

// EmailError is a coded error raised while rendering or delivering alert emails.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

func (e *EmailError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *EmailError) Unwrap() error {
	return e.Err
}

// NewEmailError creates a new EmailError.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{Code: code, Message: message, Err: err}
}

// Retryable reports whether another delivery attempt may succeed.
func (e *EmailError) Retryable() bool {
	return e.Code == ErrCodeTemporaryEmailFailure
}
