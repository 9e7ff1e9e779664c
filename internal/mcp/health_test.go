package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oracle-samples/oci-iot-mcp-server/internal/version"
)

func TestHealthCheck_ReportsHealthy(t *testing.T) {
	session := connectServer(t, testConfig(t, &stubProvider{api: &stubAPI{}}, nil))

	text := callToolText(t, session, "health_check", nil)

	var got healthStatus
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("parsing health payload: %v\ntext: %s", err, text)
	}

	want := healthStatus{
		Status:  "healthy",
		Service: version.Service,
		Version: version.Version,
	}
	if got != want {
		t.Errorf("health_check payload = %+v, want %+v", got, want)
	}
}

// The health check must not depend on service connectivity, so it stays
// green even when no client can be constructed.
func TestHealthCheck_IndependentOfClientFactory(t *testing.T) {
	provider := &stubProvider{err: errors.New("no usable config")}
	session := connectServer(t, testConfig(t, provider, nil))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "health_check",
	})
	if err != nil {
		t.Fatalf("CallTool(health_check) unexpected error: %v", err)
	}
	if result.IsError {
		t.Fatalf("CallTool(health_check) returned error result: %v", result.Content)
	}
	if len(provider.profiles) != 0 {
		t.Errorf("health_check requested a client for profiles %v, want none", provider.profiles)
	}
}
