package notify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/GitDDAN/padel-palms-proposal/internal/config"
	"github.com/GitDDAN/padel-palms-proposal/pkg/logger"
)

// Sender delivers one email.
type Sender interface {
	Send(ctx context.Context, to string, msg *Rendered) (string, error)
}

// MailgunSender sends emails via the Mailgun API.
type MailgunSender struct {
	cfg    config.EmailConfig
	log    *slog.Logger
	client *mailgun.MailgunImpl
}

// NewMailgunSender returns nil when Mailgun is not configured.
func NewMailgunSender(cfg config.EmailConfig, log *slog.Logger) *MailgunSender {
	if !cfg.IsConfigured() {
		return nil
	}
	return &MailgunSender{
		cfg:    cfg,
		log:    log.With(logger.Scope("notify.mailgun")),
		client: mailgun.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey),
	}
}

// Send sends msg to the given address and returns the Mailgun message id.
func (s *MailgunSender) Send(ctx context.Context, to string, msg *Rendered) (string, error) {
	from := fmt.Sprintf("%s <%s>", s.cfg.FromName, s.cfg.FromEmail)

	message := s.client.NewMessage(from, msg.Subject, msg.Text, to)
	if msg.HTML != "" {
		message.SetHtml(msg.HTML)
	}

	sendCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, id, err := s.client.Send(sendCtx, message)
	if err != nil {
		return "", fmt.Errorf("mailgun send: %w", err)
	}
	return id, nil
}
