// Package error defines domain-specific errors for the analytics service.
package error

import "errors"

// Analytics domain errors.
var (
	// ErrInvalidRange is returned when a date range is inverted or cannot be parsed.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrInvalidRangeDays is returned when a relative window is not a positive day count.
	ErrInvalidRangeDays = errors.New("range must be a positive number of days or \"custom\"")

	// ErrMissingCustomRange is returned when "custom" is requested without explicit bounds.
	ErrMissingCustomRange = errors.New("custom range requires start_date and end_date")

	// ErrInvalidDateFormat is returned when date format is invalid.
	ErrInvalidDateFormat = errors.New("invalid date format, expected YYYY-MM-DD")

	// ErrInvalidGranularity is returned when granularity is not valid.
	ErrInvalidGranularity = errors.New("granularity must be: daily, weekly, monthly, or quarterly")

	// ErrInvalidAmountRange is returned when the amount range minimum exceeds the maximum.
	ErrInvalidAmountRange = errors.New("amount range minimum must not exceed maximum")

	// ErrInvalidQueryArgument is returned when a query parameter cannot be parsed.
	ErrInvalidQueryArgument = errors.New("invalid query argument")
)

// AnalyticsErrorCode defines error codes for analytics errors.
// Format: ANL-XXYYYY where XX is category and YYYY is specific error.
type AnalyticsErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidRange         AnalyticsErrorCode = "ANL-010001"
	ErrCodeInvalidRangeDays     AnalyticsErrorCode = "ANL-010002"
	ErrCodeMissingCustomRange   AnalyticsErrorCode = "ANL-010003"
	ErrCodeInvalidDateFormat    AnalyticsErrorCode = "ANL-010004"
	ErrCodeInvalidGranularity   AnalyticsErrorCode = "ANL-010005"
	ErrCodeInvalidAmountRange   AnalyticsErrorCode = "ANL-010006"
	ErrCodeInvalidQueryArgument AnalyticsErrorCode = "ANL-010007"

	// Internal errors (99XXXX)
	ErrCodeAnalyticsInternalError AnalyticsErrorCode = "ANL-990001"
)

// AnalyticsError represents an analytics error with code and message.
type AnalyticsError struct {
	Code    AnalyticsErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AnalyticsError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AnalyticsError) Unwrap() error {
	return e.Err
}

// NewAnalyticsError creates a new AnalyticsError with the given code and message.
func NewAnalyticsError(code AnalyticsErrorCode, message string, err error) *AnalyticsError {
	return &AnalyticsError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewInvalidRangeError creates the error surfaced for malformed or inverted date ranges.
func NewInvalidRangeError(message string) *AnalyticsError {
	return NewAnalyticsError(ErrCodeInvalidRange, message, ErrInvalidRange)
}

// IsInvalidRange reports whether err was caused by an invalid date range.
func IsInvalidRange(err error) bool {
	return errors.Is(err, ErrInvalidRange) ||
		errors.Is(err, ErrInvalidRangeDays) ||
		errors.Is(err, ErrMissingCustomRange) ||
		errors.Is(err, ErrInvalidDateFormat)
}
