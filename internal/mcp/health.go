package mcp

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oracle-samples/oci-iot-mcp-server/internal/version"
)

// HealthInput is the (empty) input of the health_check tool.
type HealthInput struct{}

// healthStatus is the constant liveness payload. It never depends on the
// client factory, so the health check succeeds even when no OCI
// configuration is present.
type healthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}

func currentHealth() healthStatus {
	return healthStatus{
		Status:  "healthy",
		Service: version.Service,
		Version: version.Version,
	}
}

// registerHealthCheck registers the health_check tool.
func (s *Server) registerHealthCheck() error {
	schema, err := jsonschema.For[HealthInput](nil)
	if err != nil {
		return fmt.Errorf("schema for health_check: %w", err)
	}

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "health_check",
		Description: "Health check endpoint for the OCI IoT MCP server.",
		InputSchema: schema,
	}, func(_ context.Context, _ *mcp.CallToolRequest, _ HealthInput) (*mcp.CallToolResult, any, error) {
		return jsonResult(currentHealth()), nil, nil
	})

	return nil
}
