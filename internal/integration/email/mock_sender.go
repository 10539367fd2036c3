package email

import (
	"context"
	"fmt"
	"sync"

	"github.com/finance-tracker/insights/internal/application/adapter"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
)

// MockEmailSender records emails instead of sending them.
// It backs local runs without a Resend API key and the notifier tests.
type MockEmailSender struct {
	mu         sync.Mutex
	SentEmails []adapter.SendEmailInput
	Attempts   int

	failErr   error
	permanent bool
}

// NewMockEmailSender creates an empty mock sender.
func NewMockEmailSender() *MockEmailSender {
	return &MockEmailSender{}
}

// Send implements adapter.EmailSender.
func (m *MockEmailSender) Send(_ context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Attempts++
	if m.failErr != nil {
		code := domainerror.ErrCodeTemporaryEmailFailure
		if m.permanent {
			code = domainerror.ErrCodePermanentEmailFailure
		}
		return nil, domainerror.NewEmailError(code, "mock delivery failure", m.failErr)
	}

	m.SentEmails = append(m.SentEmails, input)
	return &adapter.SendEmailResult{ResendID: fmt.Sprintf("mock-%d", len(m.SentEmails))}, nil
}

// SetFailure makes every following Send fail with err.
func (m *MockEmailSender) SetFailure(err error, permanent bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failErr = err
	m.permanent = permanent
}

// Reset forgets sent emails and any configured failure.
func (m *MockEmailSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SentEmails = nil
	m.Attempts = 0
	m.failErr = nil
	m.permanent = false
}

var _ adapter.EmailSender = (*MockEmailSender)(nil)
