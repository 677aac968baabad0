package notify

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/systemstart/deployctl/pkg/api"
)

func TestMessage(t *testing.T) {
	tests := []struct {
		name        string
		event       api.NotificationEvent
		contains    []string
		notContains []string
	}{
		{
			name: "CICD success",
			event: api.NotificationEvent{
				Outcome:     api.OutcomeSuccess,
				JobName:     "pois-staging",
				BuildNumber: "87",
				Repo:        "pois",
				BuildMode:   api.BuildModeCICD,
			},
			contains:    []string{"Build and Deploy Done", "pois-staging", "#87", "all projects"},
			notContains: []string{"Console output"},
		},
		{
			name: "CI success mentions build only",
			event: api.NotificationEvent{
				Outcome:     api.OutcomeSuccess,
				JobName:     "pois-staging",
				BuildNumber: "88",
				Repo:        "pois",
				Projects:    []string{"api", "worker"},
				BuildMode:   api.BuildModeCI,
			},
			contains:    []string{"Build Done", "projects api, worker"},
			notContains: []string{"Deploy"},
		},
		{
			name: "CICD failure points at console output",
			event: api.NotificationEvent{
				Outcome:     api.OutcomeFailure,
				JobName:     "pois-staging",
				BuildNumber: "89",
				Repo:        "pois",
				BuildMode:   api.BuildModeCICD,
				ErrorDetail: "build script failed",
				ConsoleURL:  "https://ci.example.com/job/pois-staging/89/console",
			},
			contains:    []string{"Build and deploy failed", "build script failed", "https://ci.example.com/job/pois-staging/89/console"},
			notContains: []string{"Done"},
		},
		{
			name: "CI failure wording",
			event: api.NotificationEvent{
				Outcome:     api.OutcomeFailure,
				JobName:     "pois-staging",
				BuildNumber: "90",
				Repo:        "pois",
				BuildMode:   api.BuildModeCI,
				ErrorDetail: "clone failed",
				ConsoleURL:  "https://ci.example.com/console",
			},
			contains: []string{"Build failed", "clone failed"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := Message(tt.event)
			if err != nil {
				t.Fatalf("Message() error = %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(msg, want) {
					t.Errorf("message %q should contain %q", msg, want)
				}
			}
			for _, avoid := range tt.notContains {
				if strings.Contains(msg, avoid) {
					t.Errorf("message %q should not contain %q", msg, avoid)
				}
			}
		})
	}
}

func TestWebhookNotify(t *testing.T) {
	t.Run("posts payload", func(t *testing.T) {
		var got payload
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				t.Errorf("method = %s, want POST", r.Method)
			}
			if ct := r.Header.Get("Content-Type"); ct != "application/json" {
				t.Errorf("content type = %q", ct)
			}
			body, _ := io.ReadAll(r.Body)
			if err := json.Unmarshal(body, &got); err != nil {
				t.Errorf("invalid payload: %v", err)
			}
		}))
		defer srv.Close()

		event := api.NotificationEvent{
			Outcome:     api.OutcomeSuccess,
			JobName:     "pois-staging",
			BuildNumber: "87",
			Repo:        "pois",
			BuildMode:   api.BuildModeCICD,
		}
		if err := NewWebhook(srv.URL).Notify(context.Background(), event); err != nil {
			t.Fatalf("Notify() error = %v", err)
		}

		if got.Outcome != "Success" {
			t.Errorf("outcome = %q, want Success", got.Outcome)
		}
		if got.Color != "green" {
			t.Errorf("color = %q, want green", got.Color)
		}
		if !strings.Contains(got.Message, "Build and Deploy Done") {
			t.Errorf("message = %q", got.Message)
		}
	})

	t.Run("failure event is red", func(t *testing.T) {
		var got payload
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &got)
		}))
		defer srv.Close()

		event := api.NotificationEvent{
			Outcome:   api.OutcomeFailure,
			BuildMode: api.BuildModeCICD,
		}
		if err := NewWebhook(srv.URL).Notify(context.Background(), event); err != nil {
			t.Fatalf("Notify() error = %v", err)
		}
		if got.Color != "red" || got.Outcome != "Fail" {
			t.Errorf("payload = %+v, want red/Fail", got)
		}
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusBadGateway)
		}))
		defer srv.Close()

		err := NewWebhook(srv.URL).Notify(context.Background(), api.NotificationEvent{BuildMode: api.BuildModeCI})
		if err == nil {
			t.Error("expected error for non-2xx response")
		}
	})

	t.Run("unreachable sink is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		err := NewWebhook(srv.URL).Notify(context.Background(), api.NotificationEvent{BuildMode: api.BuildModeCI})
		if err == nil {
			t.Error("expected error for unreachable sink")
		}
	})
}
