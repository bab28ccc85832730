package website

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/GitDDAN/padel-palms-proposal/domain/catalog"
	"github.com/GitDDAN/padel-palms-proposal/domain/configurator"
	"github.com/GitDDAN/padel-palms-proposal/domain/order"
	"github.com/GitDDAN/padel-palms-proposal/domain/quote"
	"github.com/GitDDAN/padel-palms-proposal/internal/website/components"
	"github.com/GitDDAN/padel-palms-proposal/pkg/apperror"
	"github.com/GitDDAN/padel-palms-proposal/pkg/logger"
)

// Submitter delivers an order submission.
type Submitter interface {
	Submit(ctx context.Context, sub order.Submission) error
}

// Handler serves the landing page and its form posts.
type Handler struct {
	cat        *catalog.Catalog
	builder    *order.Builder
	submitter  Submitter
	apiBaseURL string
	now        func() time.Time
	log        *slog.Logger
}

func NewHandler(cat *catalog.Catalog, submitter Submitter, apiBaseURL string, log *slog.Logger) *Handler {
	return &Handler{
		cat:        cat,
		builder:    order.NewBuilder(cat),
		submitter:  submitter,
		apiBaseURL: apiBaseURL,
		now:        time.Now,
		log:        log.With(logger.Scope("website")),
	}
}

// Home renders the landing page from the empty state.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, h.page(configurator.NewState()))
}

// Configurator applies one buyer action to the posted state.
func (h *Handler) Configurator(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	state, err := configurator.DecodeState(r.PostForm.Get("state"))
	if err != nil {
		h.log.Warn("discarding unreadable state", logger.Error(err))
		p := h.page(configurator.NewState())
		p.ConfigError = "Your selection expired. Please start again."
		h.render(w, http.StatusBadRequest, p)
		return
	}

	ev := configurator.Event{
		Type:     configurator.EventType(r.PostForm.Get("action")),
		ID:       r.PostForm.Get("id"),
		Text:     r.PostForm.Get("text"),
		Currency: r.PostForm.Get("currency"),
	}
	next, err := configurator.Apply(h.cat, state, ev)
	if err != nil {
		p := h.page(state)
		p.ConfigError = "That change could not be applied."
		h.log.Debug("rejected configurator event", slog.String("type", string(ev.Type)), logger.Error(err))
		h.render(w, http.StatusBadRequest, p)
		return
	}

	h.render(w, http.StatusOK, h.page(next))
}

// Order validates the contact details and delivers the configured package.
func (h *Handler) Order(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	state, err := configurator.DecodeState(r.PostForm.Get("state"))
	if err != nil {
		p := h.page(configurator.NewState())
		p.ConfigError = "Your selection expired. Please start again."
		h.render(w, http.StatusBadRequest, p)
		return
	}

	contact := order.Contact{
		Email:  r.PostForm.Get("email"),
		Phone:  r.PostForm.Get("phone"),
		Name:   r.PostForm.Get("name"),
		Resort: r.PostForm.Get("resort"),
	}.Normalize()

	p := h.page(state)
	p.Contact = contact

	if err := order.ValidateContact(contact); err != nil {
		p.FieldErrors = fieldErrors(err)
		h.render(w, http.StatusUnprocessableEntity, p)
		return
	}

	sub := h.builder.Build(state, contact, h.now())
	if err := h.submitter.Submit(r.Context(), sub); err != nil {
		status := http.StatusBadGateway
		message := "We couldn't send your request. Please try again or message us on WhatsApp."
		if errors.Is(err, order.ErrNoWebhook) {
			status = http.StatusServiceUnavailable
			message = "Online orders are not set up yet. Please message us on WhatsApp."
		}
		h.log.Error("order submission failed", slog.String("submission_id", sub.SubmissionID), logger.Error(err))
		p.Outcome = &components.OrderOutcome{Message: message}
		h.render(w, status, p)
		return
	}

	h.log.Info("order submitted", slog.String("submission_id", sub.SubmissionID))
	p.Outcome = &components.OrderOutcome{
		Success: true,
		Message: "Thank you! We'll be in touch within 24 hours.",
	}
	h.render(w, http.StatusOK, p)
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}

func (h *Handler) page(state configurator.State) components.Page {
	token, err := configurator.EncodeState(state)
	if err != nil {
		h.log.Error("encoding state", logger.Error(err))
	}
	return components.Page{
		Catalog:    h.cat,
		State:      state,
		Token:      token,
		Quote:      quote.Build(h.cat, state),
		APIBaseURL: h.apiBaseURL,
	}
}

func (h *Handler) render(w http.ResponseWriter, status int, p components.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := components.HomePage(p).Render(w); err != nil {
		h.log.Error("rendering page", logger.Error(err))
	}
}

// fieldErrors flattens a validation error into per-field messages.
func fieldErrors(err error) map[string]string {
	out := make(map[string]string)
	appErr, ok := apperror.As(err)
	if !ok {
		out["email"] = err.Error()
		return out
	}
	for field, problem := range appErr.Details {
		if msg, ok := problem.(string); ok {
			out[field] = msg
		}
	}
	return out
}
