// Package error defines domain-specific errors for the analytics service.
package error

// RequestErrorCode defines error codes raised by the HTTP layer itself.
type RequestErrorCode string

const (
	ErrCodeRateLimited    RequestErrorCode = "REQ-020001"
	ErrCodeInvalidPayload RequestErrorCode = "REQ-010001"
)
