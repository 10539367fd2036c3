package email

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/finance-tracker/insights/internal/application/adapter"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
	"github.com/finance-tracker/insights/internal/integration/email/templates"
)

func testDigest() adapter.BudgetAlertDigest {
	return adapter.BudgetAlertDigest{
		PeriodStart: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
		Alerts: []adapter.BudgetAlertItem{
			{
				Category:   "Food",
				Severity:   "over",
				Message:    "Food is over budget by 50.00 (125.00% used)",
				Budgeted:   "200.00",
				Spent:      "250.00",
				Percentage: "125.00%",
			},
			{
				Category:   "Transport",
				Severity:   "warning",
				Message:    "Transport has used 85.00% of its budget",
				Budgeted:   "100.00",
				Spent:      "85.00",
				Percentage: "85.00%",
			},
		},
	}
}

func newTestNotifier(t *testing.T, sender adapter.EmailSender, recipient string) *Notifier {
	t.Helper()

	renderer, err := templates.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}

	config := DefaultNotifierConfig(recipient)
	config.RecipientName = "Alex"
	config.RetryBackoff = 0
	return NewNotifier(sender, renderer, config)
}

func TestNotifier_NotifyBudgetAlerts(t *testing.T) {
	sender := NewMockEmailSender()
	notifier := newTestNotifier(t, sender, "alex@example.com")

	id, err := notifier.NotifyBudgetAlerts(context.Background(), testDigest())
	if err != nil {
		t.Fatalf("NotifyBudgetAlerts() error = %v", err)
	}
	if id != "mock-1" {
		t.Errorf("message id = %q, want mock-1", id)
	}

	if len(sender.SentEmails) != 1 {
		t.Fatalf("sent %d emails, want 1", len(sender.SentEmails))
	}
	sent := sender.SentEmails[0]
	if sent.To != "alex@example.com" {
		t.Errorf("To = %q", sent.To)
	}
	if sent.Subject != "1 budget(s) exceeded - Finance Insights" {
		t.Errorf("Subject = %q", sent.Subject)
	}
	for _, want := range []string{"Food", "Transport", "250.00", "Mar 1, 2024"} {
		if !strings.Contains(sent.HTML, want) {
			t.Errorf("HTML body missing %q", want)
		}
		if !strings.Contains(sent.Text, want) {
			t.Errorf("text body missing %q", want)
		}
	}
}

func TestNotifier_Failures(t *testing.T) {
	tests := []struct {
		name      string
		recipient string
		permanent    bool
		wantCode     domainerror.EmailErrorCode
		wantAttempts int
	}{
		{name: "missing recipient", recipient: "", wantCode: domainerror.ErrCodeAlertRecipientMissing},
		{name: "permanent failure", recipient: "alex@example.com", permanent: true, wantCode: domainerror.ErrCodePermanentEmailFailure, wantAttempts: 1},
		{name: "temporary failure exhausts attempts", recipient: "alex@example.com", wantCode: domainerror.ErrCodeEmailSendFailed, wantAttempts: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := NewMockEmailSender()
			sender.SetFailure(errors.New("provider unavailable"), tt.permanent)
			notifier := newTestNotifier(t, sender, tt.recipient)

			_, err := notifier.NotifyBudgetAlerts(context.Background(), testDigest())
			if err == nil {
				t.Fatal("expected error")
			}

			var emailErr *domainerror.EmailError
			if !errors.As(err, &emailErr) {
				t.Fatalf("expected EmailError, got %T", err)
			}
			if emailErr.Code != tt.wantCode {
				t.Errorf("error code = %s, want %s", emailErr.Code, tt.wantCode)
			}
			if len(sender.SentEmails) != 0 {
				t.Errorf("sent %d emails, want 0", len(sender.SentEmails))
			}
			if sender.Attempts != tt.wantAttempts {
				t.Errorf("attempts = %d, want %d", sender.Attempts, tt.wantAttempts)
			}
		})
	}
}

func TestBudgetAlertDigestData_Subject(t *testing.T) {
	digest := testDigest()
	digest.Alerts = digest.Alerts[1:]

	data := templates.NewBudgetAlertDigestData("", digest)
	if data.Subject != "1 budget(s) close to the limit - Finance Insights" {
		t.Errorf("Subject = %q", data.Subject)
	}
	if data.OverCount != 0 || data.WarningCount != 1 {
		t.Errorf("counts = %d over, %d warning", data.OverCount, data.WarningCount)
	}
}

func TestClassifySendError(t *testing.T) {
	tests := []struct {
		err  string
		want domainerror.EmailErrorCode
	}{
		{err: "[ERROR]: 422 validation_error: invalid `to` field", want: domainerror.ErrCodePermanentEmailFailure},
		{err: "401 unauthorized: API key is invalid", want: domainerror.ErrCodePermanentEmailFailure},
		{err: "429 rate limit exceeded", want: domainerror.ErrCodeTemporaryEmailFailure},
		{err: "503 invalid upstream response", want: domainerror.ErrCodeTemporaryEmailFailure},
		{err: "dial tcp: connection refused", want: domainerror.ErrCodeTemporaryEmailFailure},
	}

	for _, tt := range tests {
		t.Run(tt.err, func(t *testing.T) {
			got := classifySendError(errors.New(tt.err))
			if got.Code != tt.want {
				t.Errorf("classifySendError(%q) = %s, want %s", tt.err, got.Code, tt.want)
			}
			if !strings.Contains(got.Error(), tt.err) {
				t.Errorf("error %q does not wrap provider message", got.Error())
			}
		})
	}
}
