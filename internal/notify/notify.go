// Package notify posts release messages to a Slack incoming webhook.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/slack-go/slack"

	"github.com/wahlandcase/attuned.relnotes/internal/models"
)

// Notifier posts messages to one webhook URL
type Notifier struct {
	webhookURL  string
	unfurlLinks bool
	unfurlMedia bool
	httpClient  *http.Client
	logger      *slog.Logger
}

// Config holds the webhook settings
type Config struct {
	WebhookURL  string
	UnfurlLinks bool
	UnfurlMedia bool

	// HTTPClient defaults to http.DefaultClient
	HTTPClient *http.Client

	// Logger defaults to slog.Default()
	Logger *slog.Logger
}

// New creates a Notifier. An empty webhook URL yields a Notifier whose
// Post is a logged no-op.
func New(config Config) *Notifier {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		webhookURL:  config.WebhookURL,
		unfurlLinks: config.UnfurlLinks,
		unfurlMedia: config.UnfurlMedia,
		httpClient:  httpClient,
		logger:      logger,
	}
}

// Enabled reports whether a webhook URL is configured
func (n *Notifier) Enabled() bool {
	return n.webhookURL != ""
}

// Post sends text to the webhook
func (n *Notifier) Post(ctx context.Context, text string) error {
	if !n.Enabled() {
		n.logger.Debug("slack webhook not configured, skipping post")
		return nil
	}

	message := &slack.WebhookMessage{
		Text:        text,
		UnfurlLinks: n.unfurlLinks,
		UnfurlMedia: n.unfurlMedia,
	}
	if err := slack.PostWebhookCustomHTTPContext(ctx, n.webhookURL, n.httpClient, message); err != nil {
		return fmt.Errorf("slack: posting webhook: %w", err)
	}
	n.logger.Info("posted slack message", "bytes", len(text))
	return nil
}

// PostBestEffort sends text and logs a failure instead of returning it
func (n *Notifier) PostBestEffort(ctx context.Context, text string) {
	if err := n.Post(ctx, text); err != nil {
		n.logger.Warn("slack notification failed", "error", err)
	}
}

// MismatchMessage summarizes a failed ticket check for Slack
func MismatchMessage(releaseName, fixVersion string, onlyInRelease, onlyInTracker []models.Ticket) string {
	var builder strings.Builder

	title := releaseName
	if title == "" {
		title = "fix version " + fixVersion
	}
	fmt.Fprintf(&builder, ":warning: *Ticket mismatch for %s*\n", title)

	writeSection(&builder, "In release notes but not in the fix version", onlyInRelease)
	writeSection(&builder, "In the fix version but not in release notes", onlyInTracker)

	return strings.TrimRight(builder.String(), "\n")
}

func writeSection(builder *strings.Builder, heading string, tickets []models.Ticket) {
	if len(tickets) == 0 {
		return
	}
	fmt.Fprintf(builder, "\n*%s* (%d)\n", heading, len(tickets))
	for _, ticket := range tickets {
		fmt.Fprintf(builder, "- %s: %s\n", ticket.Key, ticket.Title)
	}
}
