package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"
	"github.com/systemstart/deployctl/pkg/api"
)

// Notifier delivers the terminal outcome of a run to an external sink.
// Delivery is best-effort: callers log a failed delivery but never let it
// change the run's own outcome.
type Notifier interface {
	Notify(ctx context.Context, event api.NotificationEvent) error
}

const successTemplate = `{{ if eq .BuildMode "CICD" }}Build and Deploy Done{{ else }}Build Done{{ end }}: {{ .JobName }} #{{ .BuildNumber }} for {{ .Repo }} ({{ if .Projects }}projects {{ join ", " .Projects }}{{ else }}all projects{{ end }}).`

const failureTemplate = `{{ if eq .BuildMode "CICD" }}Build and deploy failed{{ else }}Build failed{{ end }}: {{ .JobName }} #{{ .BuildNumber }} for {{ .Repo }}.
{{ .ErrorDetail }}
Console output: {{ .ConsoleURL }}`

var messageTemplates = template.Must(template.Must(
	template.New("success").Funcs(sprig.FuncMap()).Parse(successTemplate),
).New("failure").Parse(failureTemplate))

// Message renders the human-readable summary for an event. Wording depends
// on the build mode and, on failure, points at the detailed console output.
func Message(event api.NotificationEvent) (string, error) {
	name := "success"
	if event.Outcome != api.OutcomeSuccess {
		name = "failure"
	}

	var buf bytes.Buffer
	if err := messageTemplates.Lookup(name).Execute(&buf, event); err != nil {
		return "", fmt.Errorf("rendering %s message: %w", name, err)
	}
	return buf.String(), nil
}

// payload is the wire format of the notification sink.
type payload struct {
	Message string `json:"message"`
	Outcome string `json:"outcome"`
	Color   string `json:"color"`
}

// Webhook posts notification events to an HTTP sink.
type Webhook struct {
	URL    string
	Client *http.Client
}

// NewWebhook creates a webhook notifier for url.
func NewWebhook(url string) *Webhook {
	return &Webhook{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *Webhook) Notify(ctx context.Context, event api.NotificationEvent) error {
	msg, err := Message(event)
	if err != nil {
		return err
	}

	color := "green"
	if event.Outcome != api.OutcomeSuccess {
		color = "red"
	}

	body, err := json.Marshal(payload{
		Message: msg,
		Outcome: string(event.Outcome),
		Color:   color,
	})
	if err != nil {
		return fmt.Errorf("encoding notification: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("building notification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.Client.Do(req)
	if err != nil {
		return fmt.Errorf("posting notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("notification sink returned %s", resp.Status)
	}
	return nil
}
