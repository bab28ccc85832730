package relay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"go.opentelemetry.io/otel/attribute"

	"github.com/GitDDAN/padel-palms-proposal/pkg/logger"
	"github.com/GitDDAN/padel-palms-proposal/pkg/tracing"
)

// DefaultToolName is used when neither configuration nor discovery names a tool.
const DefaultToolName = "submit_form"

// ErrNotConfigured is returned when no upstream is configured.
var ErrNotConfigured = errors.New("workflow MCP upstream is not configured")

// ToolError is returned when the tool ran but reported failure.
type ToolError struct {
	Tool    string
	Message string
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("tool %q reported an error: %s", e.Tool, e.Message)
}

// Caller is the upstream as seen by the service.
type Caller interface {
	ListTools(ctx context.Context) ([]string, error)
	CallTool(ctx context.Context, name string, args map[string]any) (*mcpgo.CallToolResult, error)
}

// Notifier is told about every successfully forwarded form.
type Notifier interface {
	NotifySubmission(ctx context.Context, form map[string]any) error
}

// Recorder counts relay outcomes.
type Recorder interface {
	RecordSubmission(outcome string)
}

// Service forwards form submissions to the workflow tool.
type Service struct {
	upstream   Caller
	toolName   string
	notifier   Notifier
	recorder   Recorder
	log        *slog.Logger
	mu         sync.Mutex
	discovered string
}

// NewService creates the relay service. toolName may be empty to discover it.
func NewService(upstream Caller, toolName string, notifier Notifier, recorder Recorder, log *slog.Logger) *Service {
	return &Service{
		upstream: upstream,
		toolName: toolName,
		notifier: notifier,
		recorder: recorder,
		log:      log.With(logger.Scope("relay")),
	}
}

// Result is what the tool returned.
type Result struct {
	Tool    string                `json:"tool"`
	Text    string                `json:"text,omitempty"`
	Content []mcpgo.Content       `json:"content"`
	Raw     *mcpgo.CallToolResult `json:"-"`
}

// Submit forwards form as the tool arguments. It makes exactly one call.
func (s *Service) Submit(ctx context.Context, form map[string]any) (*Result, error) {
	tool := s.resolveTool(ctx)

	ctx, span := tracing.Start(ctx, "relay.submit_form", attribute.String("relay.tool", tool))
	defer span.End()

	res, err := s.upstream.CallTool(ctx, tool, form)
	if err != nil {
		s.forgetTool()
		tracing.Fail(span, err)
		s.record("error")
		s.log.Error("form relay failed", slog.String("tool", tool), logger.Error(err))
		return nil, err
	}

	text := textOf(res)
	if res.IsError {
		err := &ToolError{Tool: tool, Message: text}
		tracing.Fail(span, err)
		s.record("tool_error")
		s.log.Warn("workflow tool rejected form", slog.String("tool", tool), slog.String("message", text))
		return nil, err
	}

	s.record("success")
	s.log.Info("form relayed", slog.String("tool", tool))

	if s.notifier != nil {
		// Email failures never fail the submission.
		_ = s.notifier.NotifySubmission(context.WithoutCancel(ctx), form)
	}

	return &Result{Tool: tool, Text: text, Content: res.Content, Raw: res}, nil
}

// resolveTool picks the configured tool, else the first discovered tool,
// else DefaultToolName.
func (s *Service) resolveTool(ctx context.Context) string {
	if s.toolName != "" {
		return s.toolName
	}

	s.mu.Lock()
	cached := s.discovered
	s.mu.Unlock()
	if cached != "" {
		return cached
	}

	names, err := s.upstream.ListTools(ctx)
	if err != nil {
		s.log.Warn("tool discovery failed, using default",
			slog.String("tool", DefaultToolName),
			logger.Error(err),
		)
		return DefaultToolName
	}
	if len(names) == 0 {
		return DefaultToolName
	}

	s.mu.Lock()
	s.discovered = names[0]
	s.mu.Unlock()
	return names[0]
}

func (s *Service) forgetTool() {
	s.mu.Lock()
	s.discovered = ""
	s.mu.Unlock()
}

func (s *Service) record(outcome string) {
	if s.recorder != nil {
		s.recorder.RecordSubmission(outcome)
	}
}

func textOf(res *mcpgo.CallToolResult) string {
	var parts []string
	for _, c := range res.Content {
		if tc, ok := mcpgo.AsTextContent(c); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "\n")
}
