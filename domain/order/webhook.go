package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/GitDDAN/padel-palms-proposal/pkg/logger"
	"github.com/GitDDAN/padel-palms-proposal/pkg/tracing"
)

// ErrNoWebhook is returned by Submit when no webhook URL is configured.
var ErrNoWebhook = errors.New("order webhook is not configured")

// StatusError is returned when the webhook answers outside 2xx.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("webhook returned status %d", e.StatusCode)
}

// WebhookOptions configures a WebhookClient.
type WebhookOptions struct {
	URL        string
	Timeout    time.Duration
	RetryCount int
}

// WebhookClient posts submissions to the workflow webhook.
type WebhookClient struct {
	url    string
	client *resty.Client
	log    *slog.Logger
}

// NewWebhookClient creates a client. Retries happen only on transport errors
// and 5xx responses, and only when RetryCount > 0.
func NewWebhookClient(opts WebhookOptions, log *slog.Logger) *WebhookClient {
	client := resty.New().
		SetTimeout(opts.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if opts.RetryCount > 0 {
		client.
			SetRetryCount(opts.RetryCount).
			SetRetryWaitTime(500 * time.Millisecond).
			SetRetryMaxWaitTime(5 * time.Second).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				return err != nil || (r != nil && r.StatusCode() >= http.StatusInternalServerError)
			})
	}

	return &WebhookClient{
		url:    opts.URL,
		client: client,
		log:    log.With(logger.Scope("order.webhook")),
	}
}

// Configured reports whether a webhook URL is set.
func (w *WebhookClient) Configured() bool {
	return w.url != ""
}

// Submit posts sub. Any 2xx is success; everything else is an error.
func (w *WebhookClient) Submit(ctx context.Context, sub Submission) error {
	if !w.Configured() {
		return ErrNoWebhook
	}

	ctx, span := tracing.Start(ctx, "order.webhook_submit",
		attribute.String("order.submission_id", sub.SubmissionID),
	)
	defer span.End()

	resp, err := w.client.R().
		SetContext(ctx).
		SetBody(sub).
		Post(w.url)
	if err != nil {
		tracing.Fail(span, err)
		w.log.Error("webhook request failed",
			slog.String("submission_id", sub.SubmissionID),
			logger.Error(err),
		)
		return fmt.Errorf("posting submission: %w", err)
	}

	if !resp.IsSuccess() {
		statusErr := &StatusError{StatusCode: resp.StatusCode(), Body: truncate(resp.String(), 512)}
		tracing.Fail(span, statusErr)
		w.log.Warn("webhook rejected submission",
			slog.String("submission_id", sub.SubmissionID),
			slog.Int("status", resp.StatusCode()),
		)
		return statusErr
	}

	w.log.Info("submission delivered",
		slog.String("submission_id", sub.SubmissionID),
		slog.Int("status", resp.StatusCode()),
		slog.Int("services", countItems(sub)),
	)
	return nil
}

func countItems(sub Submission) int {
	n := 0
	for _, g := range sub.Services {
		n += len(g.Items)
	}
	return n
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
