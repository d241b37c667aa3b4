// Package slack delivers the end-of-run summary to a Slack-compatible incoming webhook.
package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/casereport/testrail-reporter/logging"
	"github.com/casereport/testrail-reporter/reporter"

	"github.com/pkg/errors"
)

const defaultHTTPTimeout = time.Second * 10

type message struct {
	Attachments []attachment `json:"attachments"`
	IconEmoji   string       `json:"icon_emoji"`
}

type attachment struct {
	Color     string `json:"color"`
	Title     string `json:"title"`
	TitleLink string `json:"title_link,omitempty"`
	Text      string `json:"text"`
}

// Webhook implements reporter.Notifier.
type Webhook struct {
	url        string
	httpClient *http.Client
	logger     logging.Logger
}

// NewWebhook creates a Webhook that posts to url. If httpClient is nil, a client with a
// 10-second timeout is used.
func NewWebhook(url string, httpClient *http.Client, logger logging.Logger) *Webhook {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if logger == nil {
		logger = logging.NullLogger()
	}
	return &Webhook{url: url, httpClient: httpClient, logger: logger}
}

// Send posts the notification as a single message attachment.
func (w *Webhook) Send(ctx context.Context, n reporter.Notification) error {
	data, err := json.Marshal(messageFor(n))
	if err != nil {
		return err
	}
	w.logger.Printf("Sending notification: %s", string(data))
	req, err := http.NewRequestWithContext(ctx, "POST", w.url, bytes.NewBuffer(data))
	if err != nil {
		return errors.Wrap(err, "invalid webhook URL")
	}
	req.Header.Add("Content-Type", "application/json")
	resp, err := w.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "webhook request failed")
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "webhook returned HTTP status %d", resp.StatusCode)
	}
	return errors.Errorf("webhook returned HTTP status %d: %s",
		resp.StatusCode, strings.TrimSpace(string(body)))
}

func messageFor(n reporter.Notification) message {
	return message{
		Attachments: []attachment{{
			Color:     n.Color,
			Title:     n.Title,
			TitleLink: n.Link,
			Text:      n.Text,
		}},
		IconEmoji: n.Icon,
	}
}
