// Package templates provides email template rendering functionality.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"

	"github.com/finance-tracker/insights/internal/application/adapter"
)

//go:embed *.html *.txt
var templateFS embed.FS

const dateLayout = "Jan 2, 2006"

// Renderer handles email template rendering.
type Renderer struct {
	htmlTemplates *htmltemplate.Template
	textTemplates *texttemplate.Template
}

// NewRenderer creates a new template renderer.
func NewRenderer() (*Renderer, error) {
	htmlTmpl, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}

	textTmpl, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}

	return &Renderer{
		htmlTemplates: htmlTmpl,
		textTemplates: textTmpl,
	}, nil
}

// Render renders both HTML and text versions of a template.
func (r *Renderer) Render(templateName string, data any) (html string, text string, err error) {
	var htmlBuf bytes.Buffer
	if err := r.htmlTemplates.ExecuteTemplate(&htmlBuf, templateName+".html", data); err != nil {
		return "", "", fmt.Errorf("failed to render HTML template %s: %w", templateName, err)
	}

	var textBuf bytes.Buffer
	if err := r.textTemplates.ExecuteTemplate(&textBuf, templateName+".txt", data); err != nil {
		// Fall back to empty text if no text template exists
		return htmlBuf.String(), "", nil
	}

	return htmlBuf.String(), textBuf.String(), nil
}

// BudgetAlertDigestData contains data for the budget alert digest template.
type BudgetAlertDigestData struct {
	RecipientName string
	Subject       string
	PeriodStart   string
	PeriodEnd     string
	OverCount     int
	WarningCount  int
	Alerts        []adapter.BudgetAlertItem
}

// NewBudgetAlertDigestData prepares the digest for rendering.
func NewBudgetAlertDigestData(recipientName string, digest adapter.BudgetAlertDigest) BudgetAlertDigestData {
	data := BudgetAlertDigestData{
		RecipientName: recipientName,
		PeriodStart:   digest.PeriodStart.Format(dateLayout),
		PeriodEnd:     digest.PeriodEnd.Format(dateLayout),
		Alerts:        digest.Alerts,
	}

	for _, alert := range digest.Alerts {
		if alert.Severity == "over" {
			data.OverCount++
		} else {
			data.WarningCount++
		}
	}

	switch {
	case data.OverCount > 0:
		data.Subject = fmt.Sprintf("%d budget(s) exceeded - Finance Insights", data.OverCount)
	default:
		data.Subject = fmt.Sprintf("%d budget(s) close to the limit - Finance Insights", data.WarningCount)
	}

	return data
}
