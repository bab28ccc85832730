package notify

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/GitDDAN/padel-palms-proposal/internal/config"
	"github.com/GitDDAN/padel-palms-proposal/pkg/logger"
)

var Module = fx.Module("notify",
	fx.Provide(NewNotifierFromConfig),
)

// Notifier emails the sales inbox about new submissions.
// A nil *Notifier is valid and does nothing.
type Notifier struct {
	sender    Sender
	templates *Templates
	inbox     string
	log       *slog.Logger
}

// NewNotifier creates a notifier delivering to inbox through sender.
func NewNotifier(sender Sender, templates *Templates, inbox string, log *slog.Logger) *Notifier {
	return &Notifier{
		sender:    sender,
		templates: templates,
		inbox:     inbox,
		log:       log.With(logger.Scope("notify")),
	}
}

// NewNotifierFromConfig returns nil when email is not configured.
func NewNotifierFromConfig(cfg *config.Config, log *slog.Logger) (*Notifier, error) {
	sender := NewMailgunSender(cfg.Email, log)
	if sender == nil {
		log.Info("submission emails disabled")
		return nil, nil
	}
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}
	return NewNotifier(sender, templates, cfg.Email.SalesInbox, log), nil
}

// NotifySubmission emails a summary of form. Failures are logged and
// returned; callers treat them as non-fatal.
func (n *Notifier) NotifySubmission(ctx context.Context, form map[string]any) error {
	if n == nil {
		return nil
	}

	msg, err := n.templates.Render(form)
	if err != nil {
		n.log.Error("render submission email", logger.Error(err))
		return err
	}

	id, err := n.sender.Send(ctx, n.inbox, msg)
	if err != nil {
		n.log.Error("send submission email", slog.String("to", n.inbox), logger.Error(err))
		return err
	}

	n.log.Info("submission email sent", slog.String("to", n.inbox), slog.String("message_id", id))
	return nil
}
