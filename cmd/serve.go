package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	mcpSdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/oracle-samples/oci-iot-mcp-server/internal/config"
	"github.com/oracle-samples/oci-iot-mcp-server/internal/iot"
	"github.com/oracle-samples/oci-iot-mcp-server/internal/log"
	"github.com/oracle-samples/oci-iot-mcp-server/internal/mcp"
	"github.com/oracle-samples/oci-iot-mcp-server/internal/observability"
	"github.com/oracle-samples/oci-iot-mcp-server/internal/version"
)

// HTTP server timeout configuration.
const (
	readHeaderTimeout = 10 * time.Second
	idleTimeout       = 2 * time.Minute
	shutdownTimeout   = 30 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// runServe loads configuration, applies flag overrides, and runs the MCP
// server until the context is canceled. Any startup or run failure is
// logged and returned; the process exits non-zero.
func runServe(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	applyFlagOverrides(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("parsing log level: %w", err)
	}
	logger := log.New(log.Config{Level: level, JSON: cfg.LogJSON})
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Otel.Enabled {
		shutdown, err := observability.Setup(ctx, observability.Config{
			Endpoint:    cfg.Otel.Endpoint,
			Environment: cfg.Otel.Environment,
			ServiceName: version.Service,
		})
		if err != nil {
			return fmt.Errorf("setting up tracing: %w", err)
		}
		defer func() {
			shutdownCtx, c := context.WithTimeout(context.Background(), shutdownTimeout)
			defer c()
			if err := shutdown(shutdownCtx); err != nil {
				logger.Warn("tracing shutdown error", "error", err)
			}
		}()
	}

	clients := iot.NewFactory(cfg.ConfigFile, logger.With("component", "iot"))

	server, err := mcp.NewServer(mcp.Config{
		Name:    version.Service,
		Version: version.Version,
		Profile: cfg.Profile,
		Clients: clients,
		Logger:  logger.With("component", "mcp"),
	})
	if err != nil {
		return fmt.Errorf("creating MCP server: %w", err)
	}

	switch cfg.Transport {
	case config.TransportHTTP:
		return serveHTTP(ctx, server, cfg.HTTPAddr, logger)
	default:
		logger.Info("MCP server ready",
			"name", version.Service, "version", version.Version, "transport", "stdio")
		if err := server.Run(ctx, &mcpSdk.StdioTransport{}); err != nil {
			logger.Error("MCP server error", "error", err)
			return err
		}
		logger.Info("MCP server shut down gracefully")
		return nil
	}
}

// serveHTTP runs the streamable HTTP transport with graceful shutdown.
func serveHTTP(ctx context.Context, server *mcp.Server, addr string, logger log.Logger) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		IdleTimeout:       idleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("MCP server ready",
			"name", version.Service, "version", version.Version,
			"transport", "http", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "error", err)
			return err
		}
		logger.Info("MCP server shut down gracefully")
		return nil
	}
}

// applyFlagOverrides lets command-line flags win over file and environment
// configuration.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if v, _ := cmd.Flags().GetString("profile"); v != "" {
		cfg.Profile = v
	}
	if v, _ := cmd.Flags().GetString("transport"); v != "" {
		cfg.Transport = v
	}
	if v, _ := cmd.Flags().GetString("listen"); v != "" {
		cfg.HTTPAddr = v
	}
}
