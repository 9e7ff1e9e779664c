package mcp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/oracle-samples/oci-iot-mcp-server/internal/log"
)

// connectServer creates an MCP server from the given config and an SDK
// client connected via in-memory transports. Returns the client session for
// making protocol calls. Both sessions are cleaned up via t.Cleanup.
func connectServer(t *testing.T, cfg Config) *mcp.ClientSession {
	t.Helper()

	server, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer() unexpected error: %v", err)
	}

	ctx := context.Background()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serverSession, err := server.mcpServer.Connect(ctx, serverTransport, nil)
	if err != nil {
		t.Fatalf("server.Connect() unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	clientSession, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		t.Fatalf("client.Connect() unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = clientSession.Close() })

	return clientSession
}

// allTools is the complete expected tool surface.
var allTools = []string{
	"get_digital_twin_adapter",
	"get_digital_twin_instance",
	"get_digital_twin_instance_content",
	"get_digital_twin_model",
	"get_digital_twin_model_spec",
	"get_digital_twin_relationship",
	"get_iot_domain",
	"get_iot_domain_group",
	"get_work_request",
	"health_check",
	"list_digital_twin_adapters",
	"list_digital_twin_instances",
	"list_digital_twin_models",
	"list_digital_twin_relationships",
	"list_iot_domain_groups",
	"list_iot_domains",
	"list_work_request_errors",
	"list_work_request_logs",
	"list_work_requests",
}

func TestProtocol_ListTools(t *testing.T) {
	session := connectServer(t, testConfig(t, &stubProvider{api: &stubAPI{}}, nil))

	result, err := session.ListTools(context.Background(), nil)
	if err != nil {
		t.Fatalf("ListTools() unexpected error: %v", err)
	}

	var names []string
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		if tool.Description == "" {
			t.Errorf("ListTools() tool %q has empty description", tool.Name)
		}
	}
	sort.Strings(names)

	if !reflect.DeepEqual(names, allTools) {
		t.Errorf("ListTools() names = %v, want %v", names, allTools)
	}
}

// callToolText invokes a tool and returns the text of the first content item.
func callToolText(t *testing.T, session *mcp.ClientSession, name string, args map[string]any) string {
	t.Helper()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	if err != nil {
		t.Fatalf("CallTool(%s) unexpected error: %v", name, err)
	}
	if result.IsError {
		t.Fatalf("CallTool(%s) returned error result: %v", name, result.Content)
	}
	if len(result.Content) == 0 {
		t.Fatalf("CallTool(%s) returned empty content", name)
	}
	textContent, ok := result.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("CallTool(%s) content[0] type = %T, want *mcp.TextContent", name, result.Content[0])
	}
	return textContent.Text
}

func TestProtocol_GetTool_PassesPayloadThrough(t *testing.T) {
	payload := map[string]any{
		"id":             "ocid1.iotdomain.oc1..example",
		"displayName":    "factory-floor",
		"lifecycleState": "ACTIVE",
	}
	api := &stubAPI{payload: payload}
	session := connectServer(t, testConfig(t, &stubProvider{api: api}, nil))

	text := callToolText(t, session, "get_iot_domain", map[string]any{
		"iot_domain_id": "ocid1.iotdomain.oc1..example",
	})

	var got map[string]any
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("parsing result JSON: %v\ntext: %s", err, text)
	}
	if !reflect.DeepEqual(got, payload) {
		t.Errorf("payload altered in transit: got %v, want %v", got, payload)
	}

	wantCall := "GetIotDomain:ocid1.iotdomain.oc1..example"
	if len(api.calls) != 1 || api.calls[0] != wantCall {
		t.Errorf("api.calls = %v, want [%s]", api.calls, wantCall)
	}
}

func TestProtocol_ListTool_PreservesOrder(t *testing.T) {
	payload := map[string]any{
		"items": []any{
			map[string]any{"id": "ocid1.iotdomain.oc1..a"},
			map[string]any{"id": "ocid1.iotdomain.oc1..b"},
			map[string]any{"id": "ocid1.iotdomain.oc1..c"},
		},
	}
	api := &stubAPI{payload: payload}
	session := connectServer(t, testConfig(t, &stubProvider{api: api}, nil))

	text := callToolText(t, session, "list_iot_domains", map[string]any{
		"compartment_id": "ocid1.compartment.oc1..example",
	})

	var got map[string]any
	if err := json.Unmarshal([]byte(text), &got); err != nil {
		t.Fatalf("parsing result JSON: %v\ntext: %s", err, text)
	}
	if !reflect.DeepEqual(got, payload) {
		t.Errorf("collection altered in transit: got %v, want %v", got, payload)
	}
}

func TestProtocol_EveryTool_DispatchesOneCall(t *testing.T) {
	tests := []struct {
		tool    string
		argName string
		wantOp  string
	}{
		{"get_digital_twin_adapter", "digital_twin_adapter_id", "GetDigitalTwinAdapter"},
		{"get_digital_twin_instance", "digital_twin_instance_id", "GetDigitalTwinInstance"},
		{"get_digital_twin_instance_content", "digital_twin_instance_id", "GetDigitalTwinInstanceContent"},
		{"get_digital_twin_model", "digital_twin_model_id", "GetDigitalTwinModel"},
		{"get_digital_twin_model_spec", "digital_twin_model_id", "GetDigitalTwinModelSpec"},
		{"get_digital_twin_relationship", "digital_twin_relationship_id", "GetDigitalTwinRelationship"},
		{"get_iot_domain", "iot_domain_id", "GetIotDomain"},
		{"get_iot_domain_group", "iot_domain_group_id", "GetIotDomainGroup"},
		{"get_work_request", "work_request_id", "GetWorkRequest"},
		{"list_digital_twin_adapters", "iot_domain_id", "ListDigitalTwinAdapters"},
		{"list_digital_twin_models", "iot_domain_id", "ListDigitalTwinModels"},
		{"list_digital_twin_instances", "iot_domain_id", "ListDigitalTwinInstances"},
		{"list_digital_twin_relationships", "iot_domain_id", "ListDigitalTwinRelationships"},
		{"list_iot_domain_groups", "compartment_id", "ListIotDomainGroups"},
		{"list_iot_domains", "compartment_id", "ListIotDomains"},
		{"list_work_request_errors", "work_request_id", "ListWorkRequestErrors"},
		{"list_work_request_logs", "work_request_id", "ListWorkRequestLogs"},
		{"list_work_requests", "compartment_id", "ListWorkRequests"},
	}

	for _, tt := range tests {
		t.Run(tt.tool, func(t *testing.T) {
			api := &stubAPI{payload: map[string]any{"ok": true}}
			session := connectServer(t, testConfig(t, &stubProvider{api: api}, nil))

			callToolText(t, session, tt.tool, map[string]any{tt.argName: "test-id"})

			want := tt.wantOp + ":test-id"
			if len(api.calls) != 1 || api.calls[0] != want {
				t.Errorf("api.calls = %v, want [%s]", api.calls, want)
			}
		})
	}
}

func TestProtocol_RemoteErrorSurfacesAndLogsOnce(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithWriter(&buf, log.Config{})

	api := &stubAPI{err: errors.New("NotAuthorizedOrNotFound")}
	session := connectServer(t, testConfig(t, &stubProvider{api: api}, logger))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "get_digital_twin_model",
		Arguments: map[string]any{
			"digital_twin_model_id": "ocid1.digitaltwinmodel.oc1..broken",
		},
	})
	if err == nil && !result.IsError {
		t.Fatal("CallTool() expected an error result")
	}
	if err == nil {
		// The original error content must survive to the caller.
		text, ok := result.Content[0].(*mcp.TextContent)
		if !ok || !strings.Contains(text.Text, "NotAuthorizedOrNotFound") {
			t.Errorf("error content = %v, want to contain service error", result.Content)
		}
	}

	logLines := strings.Count(buf.String(), "tool call failed")
	if logLines != 1 {
		t.Errorf("failure logged %d times, want exactly 1\nlog: %s", logLines, buf.String())
	}
	if !strings.Contains(buf.String(), "ocid1.digitaltwinmodel.oc1..broken") {
		t.Errorf("failure log missing identifier, got: %s", buf.String())
	}
}

func TestProtocol_ClientAcquisitionErrorSurfaces(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithWriter(&buf, log.Config{})

	provider := &stubProvider{err: errors.New("config file not found")}
	session := connectServer(t, testConfig(t, provider, logger))

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "get_iot_domain",
		Arguments: map[string]any{"iot_domain_id": "ocid1.iotdomain.oc1..x"},
	})
	if err == nil && !result.IsError {
		t.Fatal("CallTool() expected an error result")
	}

	if !strings.Contains(buf.String(), "ocid1.iotdomain.oc1..x") {
		t.Errorf("failure log missing identifier, got: %s", buf.String())
	}
}

func TestProtocol_UnknownTool(t *testing.T) {
	session := connectServer(t, testConfig(t, &stubProvider{api: &stubAPI{}}, nil))

	_, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "nonexistent_tool",
	})
	if err == nil {
		t.Fatal("CallTool(nonexistent_tool) expected error, got nil")
	}
	if !strings.Contains(err.Error(), "nonexistent_tool") {
		t.Errorf("error = %q, want to contain tool name", err.Error())
	}
}
