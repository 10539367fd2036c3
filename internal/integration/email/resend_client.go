package email

import (
	"context"
	"fmt"
	"net/mail"
	"net/url"
	"strings"

	"github.com/resend/resend-go/v2"

	"github.com/finance-tracker/insights/internal/application/adapter"
	domainerror "github.com/finance-tracker/insights/internal/domain/error"
)

// ResendClient delivers alert emails through the Resend API.
type ResendClient struct {
	client *resend.Client
	from   string
}

// NewResendClient creates a client for the public Resend API.
func NewResendClient(apiKey, fromName, fromEmail string) *ResendClient {
	sender := mail.Address{Name: fromName, Address: fromEmail}
	return &ResendClient{
		client: resend.NewClient(apiKey),
		from:   sender.String(),
	}
}

// NewResendClientWithBaseURL points the client at another Resend-compatible endpoint.
// An empty baseURL keeps the default.
func NewResendClientWithBaseURL(apiKey, fromName, fromEmail, baseURL string) (*ResendClient, error) {
	c := NewResendClient(apiKey, fromName, fromEmail)
	if baseURL == "" {
		return c, nil
	}

	endpoint, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid resend base url: %w", err)
	}
	c.client.BaseURL = endpoint
	return c, nil
}

// Send implements adapter.EmailSender.
func (c *ResendClient) Send(ctx context.Context, input adapter.SendEmailInput) (*adapter.SendEmailResult, error) {
	to := input.To
	if input.Name != "" {
		to = (&mail.Address{Name: input.Name, Address: input.To}).String()
	}

	resp, err := c.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{to},
		Subject: input.Subject,
		Html:    input.HTML,
		Text:    input.Text,
	})
	if err != nil {
		return nil, classifySendError(err)
	}

	return &adapter.SendEmailResult{ResendID: resp.Id}, nil
}

// Resend reports failures as plain errors carrying the status and message,
// so the classification works on the error text.
var (
	retryableMarkers = []string{"429", "rate limit", "too many requests", "500", "502", "503", "504", "timeout"}
	rejectedMarkers  = []string{"400", "401", "403", "422", "unauthorized", "forbidden", "validation", "invalid", "bad request"}
)

// classifySendError wraps a provider error as permanent when retrying cannot help.
// Throttling and server errors stay temporary even if the message mentions a rejected field.
func classifySendError(err error) *domainerror.EmailError {
	msg := strings.ToLower(err.Error())

	if !containsAny(msg, retryableMarkers) && containsAny(msg, rejectedMarkers) {
		return domainerror.NewEmailError(
			domainerror.ErrCodePermanentEmailFailure,
			"email rejected by provider",
			err,
		)
	}
	return domainerror.NewEmailError(
		domainerror.ErrCodeTemporaryEmailFailure,
		"email provider unavailable",
		err,
	)
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

var _ adapter.EmailSender = (*ResendClient)(nil)
