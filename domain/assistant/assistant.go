package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel/attribute"

	"github.com/GitDDAN/padel-palms-proposal/pkg/apperror"
	"github.com/GitDDAN/padel-palms-proposal/pkg/logger"
	"github.com/GitDDAN/padel-palms-proposal/pkg/tracing"
)

const (
	// Greeting is the first message shown in the chat widget.
	Greeting = "Welcome to Padel & Palms! I'm your AI concierge. How can I help you today?"

	// DemoReply is returned when no AI credentials are configured.
	DemoReply = "I'm sorry, I'm currently running in demo mode without an active API key. " +
		"However, in the live version, I would check the inventory and confirm that we can " +
		"bring a fresh towel to your court immediately!"

	// ErrorReply is returned when the model call fails.
	ErrorReply = "I'm having trouble connecting to the reception desk right now. Please try again in a moment."

	// SystemInstruction sets the receptionist persona.
	SystemInstruction = "You are the smart AI Receptionist for 'Padel & Palms', a luxury padel resort. " +
		"You are helpful, energetic, and concise. Your goal is to assist guests with bookings, " +
		"amenities, and requests like towels or drinks. If a user asks for a towel, confirm it " +
		"will be sent. Keep answers short and friendly."

	MaxMessageLength = 4000
	MaxHistoryTurns  = 50
)

// QuickActions are suggested prompts shown under the chat input.
var QuickActions = []string{
	"Can I order a towel for my next game?",
	"Reserve a court for 5 PM",
}

// Role is who said a turn.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Turn is one message of the conversation so far.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// Request is a chat call: the conversation so far plus the new message.
type Request struct {
	History []Turn `json:"history"`
	Message string `json:"message"`
}

// Response is the assistant's answer. Fallback marks canned replies.
type Response struct {
	Reply    string `json:"reply"`
	Fallback bool   `json:"fallback"`
}

// Generator produces a reply from the model.
type Generator interface {
	Generate(ctx context.Context, history []Turn, message string) (string, error)
}

// Recorder counts chat outcomes.
type Recorder interface {
	RecordChat(outcome string)
}

// Service answers guest chat messages.
type Service struct {
	gen      Generator
	timeout  time.Duration
	recorder Recorder
	log      *slog.Logger
}

// NewService creates the chat service. A nil gen means demo mode.
func NewService(gen Generator, timeout time.Duration, recorder Recorder, log *slog.Logger) *Service {
	return &Service{
		gen:      gen,
		timeout:  timeout,
		recorder: recorder,
		log:      log.With(logger.Scope("assistant")),
	}
}

// Validate checks a request before any model call.
func Validate(req Request) error {
	problems := map[string]string{}

	msg := strings.TrimSpace(req.Message)
	switch {
	case msg == "":
		problems["message"] = "Message is required"
	case utf8.RuneCountInString(msg) > MaxMessageLength:
		problems["message"] = fmt.Sprintf("Message must be at most %d characters", MaxMessageLength)
	}

	if len(req.History) > MaxHistoryTurns {
		problems["history"] = fmt.Sprintf("History must have at most %d turns", MaxHistoryTurns)
	} else {
		for i, t := range req.History {
			if t.Role != RoleUser && t.Role != RoleModel {
				problems["history"] = fmt.Sprintf("Turn %d has unknown role %q", i, t.Role)
				break
			}
		}
	}

	if len(problems) > 0 {
		return apperror.NewValidation(problems)
	}
	return nil
}

// Reply answers req. Model failures become a friendly fallback reply rather
// than an error; only invalid requests return an error.
func (s *Service) Reply(ctx context.Context, req Request) (Response, error) {
	if err := Validate(req); err != nil {
		return Response{}, err
	}

	if s.gen == nil {
		s.record("demo")
		return Response{Reply: DemoReply, Fallback: true}, nil
	}

	ctx, span := tracing.Start(ctx, "assistant.reply", attribute.Int("assistant.history_turns", len(req.History)))
	defer span.End()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	text, err := s.gen.Generate(ctx, req.History, strings.TrimSpace(req.Message))
	if err != nil {
		tracing.Fail(span, err)
		s.record("error")
		s.log.Error("chat generation failed", logger.Error(err))
		return Response{Reply: ErrorReply, Fallback: true}, nil
	}

	s.record("success")
	return Response{Reply: text}, nil
}

func (s *Service) record(outcome string) {
	if s.recorder != nil {
		s.recorder.RecordChat(outcome)
	}
}
