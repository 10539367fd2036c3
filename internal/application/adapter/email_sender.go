// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"
)

// SendEmailInput represents the input for sending an email.
type SendEmailInput struct {
	To      string
	Name    string
	Subject string
	HTML    string
	Text    string
}

// SendEmailResult represents the result of sending an email.
type SendEmailResult struct {
	ResendID string
}

// EmailSender defines the interface for sending emails via an external provider.
type EmailSender interface {
	// Send sends an email via the email provider (e.g., Resend).
	Send(ctx context.Context, input SendEmailInput) (*SendEmailResult, error)
}

// BudgetAlertItem is one alert line of a digest.
type BudgetAlertItem struct {
	Category   string
	Severity   string
	Message    string
	Budgeted   string
	Spent      string
	Percentage string
}

// BudgetAlertDigest is the content of a budget alert notification.
type BudgetAlertDigest struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Alerts      []BudgetAlertItem
}

// AlertNotifier delivers budget alert digests.
type AlertNotifier interface {
	// NotifyBudgetAlerts sends the digest and returns the provider message ID.
	NotifyBudgetAlerts(ctx context.Context, digest BudgetAlertDigest) (string, error)
}
