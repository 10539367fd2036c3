// Package email provides email sending functionality.
package email

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/finance-tracker/insights/internal/application/adapter"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
	"github.com/finance-tracker/insights/internal/integration/email/templates"
)

const budgetAlertTemplate = "budget_alert_digest"

// NotifierConfig holds configuration for the budget alert notifier.
type NotifierConfig struct {
	Recipient     string
	RecipientName string
	MaxAttempts   int
	RetryBackoff  time.Duration
}

// DefaultNotifierConfig returns the default notifier configuration for a recipient.
func DefaultNotifierConfig(recipient string) NotifierConfig {
	return NotifierConfig{
		Recipient:    recipient,
		MaxAttempts:  3,
		RetryBackoff: 2 * time.Second,
	}
}

// Notifier renders budget alert digests and delivers them to a single recipient.
type Notifier struct {
	sender   adapter.EmailSender
	renderer *templates.Renderer
	config   NotifierConfig
}

// NewNotifier creates a new budget alert notifier.
func NewNotifier(sender adapter.EmailSender, renderer *templates.Renderer, config NotifierConfig) *Notifier {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	return &Notifier{
		sender:   sender,
		renderer: renderer,
		config:   config,
	}
}

// NotifyBudgetAlerts renders the digest and sends it, retrying temporary failures.
func (n *Notifier) NotifyBudgetAlerts(ctx context.Context, digest adapter.BudgetAlertDigest) (string, error) {
	if n.config.Recipient == "" {
		return "", domainerror.NewEmailError(
			domainerror.ErrCodeAlertRecipientMissing,
			"alert recipient is not configured",
			domainerror.ErrAlertRecipientMissing,
		)
	}

	data := templates.NewBudgetAlertDigestData(n.config.RecipientName, digest)
	html, text, err := n.renderer.Render(budgetAlertTemplate, data)
	if err != nil {
		return "", domainerror.NewEmailError(
			domainerror.ErrCodeInvalidTemplate,
			"failed to render budget alert digest",
			errors.Join(domainerror.ErrInvalidTemplate, err),
		)
	}

	input := adapter.SendEmailInput{
		To:      n.config.Recipient,
		Name:    n.config.RecipientName,
		Subject: data.Subject,
		HTML:    html,
		Text:    text,
	}

	logger := slog.With("template", budgetAlertTemplate, "recipient", n.config.Recipient)

	var lastErr error
	for attempt := 1; attempt <= n.config.MaxAttempts; attempt++ {
		result, err := n.sender.Send(ctx, input)
		if err == nil {
			logger.Info("Email sent successfully", "resend_id", result.ResendID, "attempt", attempt)
			return result.ResendID, nil
		}
		lastErr = err

		var emailErr *domainerror.EmailError
		if errors.As(err, &emailErr) && !emailErr.Retryable() {
			logger.Warn("Email permanently failed", "error", err)
			return "", err
		}

		if attempt == n.config.MaxAttempts {
			break
		}

		logger.Info("Email scheduled for retry", "attempt", attempt, "error", err)
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(n.config.RetryBackoff * time.Duration(attempt)):
		}
	}

	return "", domainerror.NewEmailError(
		domainerror.ErrCodeEmailSendFailed,
		fmt.Sprintf("budget alert digest not delivered after %d attempts", n.config.MaxAttempts),
		errors.Join(domainerror.ErrEmailSendFailed, lastErr),
	)
}

// Ensure Notifier implements adapter.AlertNotifier.
var _ adapter.AlertNotifier = (*Notifier)(nil)
