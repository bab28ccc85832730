package relay

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/client/transport"
	mcpgo "github.com/mark3labs/mcp-go/mcp"

	"github.com/GitDDAN/padel-palms-proposal/internal/config"
	"github.com/GitDDAN/padel-palms-proposal/internal/version"
	"github.com/GitDDAN/padel-palms-proposal/pkg/logger"
)

// session is the subset of *mcpclient.Client the relay uses.
type session interface {
	ListTools(ctx context.Context, req mcpgo.ListToolsRequest) (*mcpgo.ListToolsResult, error)
	CallTool(ctx context.Context, req mcpgo.CallToolRequest) (*mcpgo.CallToolResult, error)
	Ping(ctx context.Context) error
	Close() error
}

// dialFunc opens and initializes a new upstream session.
type dialFunc func(ctx context.Context) (session, error)

// Upstream holds one lazily-established connection to the workflow tool's
// MCP server. A failed call evicts the connection so the next use reconnects.
type Upstream struct {
	dial dialFunc
	log  *slog.Logger

	mu          sync.Mutex // guards conn and connect
	conn        session
	connectedAt time.Time
}

// NewUpstream creates an upstream for the configured transport.
func NewUpstream(cfg config.RelayConfig, log *slog.Logger) *Upstream {
	return newUpstream(dialerFor(cfg), log)
}

func newUpstream(dial dialFunc, log *slog.Logger) *Upstream {
	return &Upstream{
		dial: dial,
		log:  log.With(logger.Scope("relay.upstream")),
	}
}

// Connected reports whether a live session is held.
func (u *Upstream) Connected() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.conn != nil
}

// get returns the current session, connecting if needed. Concurrent callers
// wait for a single connect attempt.
func (u *Upstream) get(ctx context.Context) (session, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.conn != nil {
		return u.conn, nil
	}

	conn, err := u.dial(ctx)
	if err != nil {
		return nil, err
	}
	u.conn = conn
	u.connectedAt = time.Now()
	u.log.Info("connected to workflow MCP server")
	return conn, nil
}

// evict drops conn if it is still the current session.
func (u *Upstream) evict(conn session) {
	u.mu.Lock()
	if u.conn != conn {
		u.mu.Unlock()
		return
	}
	u.conn = nil
	u.mu.Unlock()

	if err := conn.Close(); err != nil {
		u.log.Warn("error closing evicted MCP connection", logger.Error(err))
	}
	u.log.Info("evicted MCP connection")
}

// ListTools returns the names of the tools the upstream exposes.
func (u *Upstream) ListTools(ctx context.Context) ([]string, error) {
	conn, err := u.get(ctx)
	if err != nil {
		return nil, err
	}
	res, err := conn.ListTools(ctx, mcpgo.ListToolsRequest{})
	if err != nil {
		u.evict(conn)
		return nil, fmt.Errorf("listing tools: %w", err)
	}
	names := make([]string, 0, len(res.Tools))
	for _, t := range res.Tools {
		names = append(names, t.Name)
	}
	return names, nil
}

// CallTool invokes name with args.
func (u *Upstream) CallTool(ctx context.Context, name string, args map[string]any) (*mcpgo.CallToolResult, error) {
	conn, err := u.get(ctx)
	if err != nil {
		return nil, err
	}
	res, err := conn.CallTool(ctx, mcpgo.CallToolRequest{
		Params: mcpgo.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	})
	if err != nil {
		u.evict(conn)
		return nil, fmt.Errorf("calling tool %q: %w", name, err)
	}
	return res, nil
}

// Ping checks the upstream, connecting first if needed.
func (u *Upstream) Ping(ctx context.Context) error {
	conn, err := u.get(ctx)
	if err != nil {
		return err
	}
	if err := conn.Ping(ctx); err != nil {
		u.evict(conn)
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Close closes the current session, if any.
func (u *Upstream) Close() error {
	u.mu.Lock()
	conn := u.conn
	u.conn = nil
	u.mu.Unlock()

	if conn == nil {
		return nil
	}
	u.log.Info("closing workflow MCP connection")
	return conn.Close()
}

func dialerFor(cfg config.RelayConfig) dialFunc {
	if !cfg.IsConfigured() {
		return func(context.Context) (session, error) {
			return nil, ErrNotConfigured
		}
	}
	if cfg.Transport == "stdio" {
		return func(ctx context.Context) (session, error) {
			return connectStdio(ctx, cfg)
		}
	}
	return func(ctx context.Context) (session, error) {
		return connectHTTP(ctx, cfg)
	}
}

// connectStdio launches the configured gateway command.
func connectStdio(ctx context.Context, cfg config.RelayConfig) (session, error) {
	c, err := mcpclient.NewStdioMCPClient(cfg.Command, nil, cfg.Args...)
	if err != nil {
		return nil, fmt.Errorf("creating stdio client: %w", err)
	}
	if err := initialize(ctx, c); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

// connectHTTP creates a Streamable HTTP client.
func connectHTTP(ctx context.Context, cfg config.RelayConfig) (session, error) {
	var opts []transport.StreamableHTTPCOption
	if cfg.Token != "" {
		opts = append(opts, transport.WithHTTPHeaders(map[string]string{
			"Authorization": "Bearer " + cfg.Token,
		}))
	}

	t, err := transport.NewStreamableHTTP(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP transport: %w", err)
	}

	c := mcpclient.NewClient(t)
	if err := c.Start(ctx); err != nil {
		c.Close()
		return nil, fmt.Errorf("starting HTTP client: %w", err)
	}
	if err := initialize(ctx, c); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func initialize(ctx context.Context, c *mcpclient.Client) error {
	_, err := c.Initialize(ctx, mcpgo.InitializeRequest{
		Params: mcpgo.InitializeParams{
			ProtocolVersion: mcpgo.LATEST_PROTOCOL_VERSION,
			ClientInfo: mcpgo.Implementation{
				Name:    "padel-palms-relay",
				Version: version.Version,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("initializing MCP session: %w", err)
	}
	return nil
}
