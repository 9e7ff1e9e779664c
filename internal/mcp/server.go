// Package mcp exposes the OCI IoT operations as Model Context Protocol
// tools. Every tool is a direct pass-through: one identifier in, one SDK
// call, the raw payload back. The only state behind the tools is the
// memoized client handle owned by the iot.Factory.
package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/oracle-samples/oci-iot-mcp-server/internal/iot"
)

// ClientProvider supplies the memoized IoT client handle. *iot.Factory is
// the production implementation.
type ClientProvider interface {
	Client(profile string) (iot.API, error)
}

// Server wraps the MCP SDK server and the IoT client factory.
type Server struct {
	mcpServer *mcp.Server
	clients   ClientProvider
	logger    *slog.Logger
	tracer    trace.Tracer
	profile   string
	name      string
	version   string
}

// Config holds MCP server configuration.
type Config struct {
	Name    string
	Version string

	// Profile is handed to the factory on every tool call. The factory
	// only honors it for the call that constructs the client.
	Profile string

	Clients ClientProvider
	Logger  *slog.Logger

	// Tracer is optional; when nil the global tracer provider is used,
	// which is a no-op unless tracing was set up.
	Tracer trace.Tracer
}

// NewServer creates a new MCP server with all tools registered.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Name == "" {
		return nil, fmt.Errorf("server name is required")
	}
	if cfg.Version == "" {
		return nil, fmt.Errorf("server version is required")
	}
	if cfg.Clients == nil {
		return nil, fmt.Errorf("client factory is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Tracer == nil {
		cfg.Tracer = otel.Tracer(cfg.Name)
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, nil)

	s := &Server{
		mcpServer: mcpServer,
		clients:   cfg.Clients,
		logger:    cfg.Logger,
		tracer:    cfg.Tracer,
		profile:   cfg.Profile,
		name:      cfg.Name,
		version:   cfg.Version,
	}

	if err := s.registerTools(); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	return s, nil
}

// Run starts the MCP server on the given transport. This is a blocking call
// that handles all MCP protocol communication.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	return s.mcpServer.Run(ctx, transport)
}
