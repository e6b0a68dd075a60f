package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mockuniversity/mocku-backend/internal/pkg/logger"
	"github.com/mockuniversity/mocku-backend/internal/utils"
)

// Notification is a simulated outbound email. Delivery is a side effect
// only; failures never propagate into request handling.
type Notification struct {
	To       string
	Subject  string
	Template string
	Data     map[string]any
}

type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// NewNotifierFromEnv returns the SendGrid-backed notifier when an API
// key is configured, otherwise the log-only notifier the demo runs with.
func NewNotifierFromEnv(log *logger.Logger) Notifier {
	apiKey := strings.TrimSpace(utils.GetEnv("SENDGRID_API_KEY", "", log))
	if apiKey == "" {
		return NewLogNotifier(log)
	}
	return newSendgridNotifier(log, apiKey)
}

type logNotifier struct {
	log *logger.Logger
}

func NewLogNotifier(log *logger.Logger) Notifier {
	return &logNotifier{log: log.With("service", "LogNotifier")}
}

func (n *logNotifier) Notify(_ context.Context, msg Notification) {
	n.log.Info("Notification queued",
		"to", msg.To,
		"subject", msg.Subject,
		"template", msg.Template,
		"data", msg.Data,
	)
}

type sendgridNotifier struct {
	log       *logger.Logger
	apiKey    string
	baseURL   string
	fromEmail string
	fromName  string
	client    *http.Client
}

func newSendgridNotifier(log *logger.Logger, apiKey string) Notifier {
	timeoutSec := utils.GetEnvAsInt("SENDGRID_TIMEOUT_SECONDS", 30, log)
	return &sendgridNotifier{
		log:       log.With("service", "SendgridNotifier"),
		apiKey:    apiKey,
		baseURL:   utils.GetEnv("SENDGRID_BASE_URL", "https://api.sendgrid.com", log),
		fromEmail: utils.GetEnv("SENDGRID_FROM_EMAIL", "no-reply@mockuniversity.edu", log),
		fromName:  utils.GetEnv("SENDGRID_FROM_NAME", "MockUniversity", log),
		client:    &http.Client{Timeout: time.Duration(timeoutSec) * time.Second},
	}
}

func (n *sendgridNotifier) Notify(ctx context.Context, msg Notification) {
	if strings.TrimSpace(msg.To) == "" {
		n.log.Warn("Notification skipped; empty recipient", "subject", msg.Subject)
		return
	}
	body := map[string]any{
		"personalizations": []map[string]any{
			{"to": []map[string]string{{"email": msg.To}}},
		},
		"from":    map[string]string{"email": n.fromEmail, "name": n.fromName},
		"subject": msg.Subject,
		"content": []map[string]string{
			{"type": "text/plain", "value": renderNotification(msg)},
		},
	}
	raw, err := json.Marshal(body)
	if err != nil {
		n.log.Warn("Notification encode failed", "error", err)
		return
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+"/v3/mail/send", bytes.NewReader(raw))
	if err != nil {
		n.log.Warn("Notification request build failed", "error", err)
		return
	}
	req.Header.Set("Authorization", "Bearer "+n.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		n.log.Warn("Notification send failed", "to", msg.To, "error", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		n.log.Warn("Notification rejected", "to", msg.To, "status", resp.StatusCode)
		return
	}
	n.log.Info("Notification sent", "to", msg.To, "subject", msg.Subject)
}

func renderNotification(msg Notification) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Template: %s\n\n", msg.Template)
	for k, v := range msg.Data {
		fmt.Fprintf(&b, "%s: %v\n", k, v)
	}
	return b.String()
}
