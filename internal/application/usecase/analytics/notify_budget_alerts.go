package analytics

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/finance-tracker/insights/internal/application/adapter"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
	"github.com/finance-tracker/insights/internal/domain/valueobject"
)

// NotifyBudgetAlertsInput represents the input for sending an alert digest.
type NotifyBudgetAlertsInput struct {
	Filter valueobject.FilterSpec
}

// NotifyBudgetAlertsOutput reports whether a digest was sent.
type NotifyBudgetAlertsOutput struct {
	Sent       bool   `json:"sent"`
	AlertCount int    `json:"alert_count"`
	MessageID  string `json:"message_id,omitempty"`
}

// NotifyBudgetAlertsUseCase emails a digest of the current budget alerts.
type NotifyBudgetAlertsUseCase struct {
	alerts   *GetAlertsUseCase
	notifier adapter.AlertNotifier
}

// NewNotifyBudgetAlertsUseCase creates a new NotifyBudgetAlertsUseCase instance.
// A nil notifier disables delivery.
func NewNotifyBudgetAlertsUseCase(alerts *GetAlertsUseCase, notifier adapter.AlertNotifier) *NotifyBudgetAlertsUseCase {
	return &NotifyBudgetAlertsUseCase{
		alerts:   alerts,
		notifier: notifier,
	}
}

// Execute evaluates budgets and sends a digest when any warning or over alert exists.
func (uc *NotifyBudgetAlertsUseCase) Execute(ctx context.Context, input NotifyBudgetAlertsInput) (*NotifyBudgetAlertsOutput, error) {
	if uc.notifier == nil {
		return nil, domainerror.NewEmailError(
			domainerror.ErrCodeAlertRecipientMissing,
			"alert notifications are not configured",
			domainerror.ErrAlertRecipientMissing,
		)
	}

	evaluated, err := uc.alerts.Execute(ctx, GetAlertsInput(input))
	if err != nil {
		return nil, err
	}

	if len(evaluated.Alerts) == 0 {
		slog.Debug("No budget alerts to notify", "period", evaluated.Period)
		return &NotifyBudgetAlertsOutput{}, nil
	}

	digest := adapter.BudgetAlertDigest{
		PeriodStart: evaluated.Period.StartDate,
		PeriodEnd:   evaluated.Period.EndDate,
		Alerts:      make([]adapter.BudgetAlertItem, 0, len(evaluated.Alerts)),
	}

	lines := make(map[string]BudgetLine, len(evaluated.Budgets))
	for _, line := range evaluated.Budgets {
		lines[line.Category] = line
	}

	for _, alert := range evaluated.Alerts {
		line := lines[alert.Category]
		percentage := "n/a"
		if alert.Percentage != nil {
			percentage = fmt.Sprintf("%.2f%%", *alert.Percentage)
		}
		digest.Alerts = append(digest.Alerts, adapter.BudgetAlertItem{
			Category:   alert.Category,
			Severity:   string(alert.Severity),
			Message:    alert.Message,
			Budgeted:   line.Budgeted.StringFixed(2),
			Spent:      line.Spent.StringFixed(2),
			Percentage: percentage,
		})
	}

	messageID, err := uc.notifier.NotifyBudgetAlerts(ctx, digest)
	if err != nil {
		return nil, fmt.Errorf("failed to send budget alert digest: %w", err)
	}

	slog.Info("Budget alert digest sent", "alerts", len(digest.Alerts), "messageID", messageID)

	return &NotifyBudgetAlertsOutput{
		Sent:       true,
		AlertCount: len(digest.Alerts),
		MessageID:  messageID,
	}, nil
}
