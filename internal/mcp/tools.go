package mcp

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/oracle-samples/oci-iot-mcp-server/internal/iot"
)

// Tool inputs. The jsonschema tags surface as field descriptions in the
// tool's MCP input schema.

// AdapterInput identifies a digital twin adapter.
type AdapterInput struct {
	DigitalTwinAdapterID string `json:"digital_twin_adapter_id" jsonschema:"The digital twin adapter identifier"`
}

// InstanceInput identifies a digital twin instance.
type InstanceInput struct {
	DigitalTwinInstanceID string `json:"digital_twin_instance_id" jsonschema:"The digital twin instance identifier"`
}

// ModelInput identifies a digital twin model.
type ModelInput struct {
	DigitalTwinModelID string `json:"digital_twin_model_id" jsonschema:"The digital twin model identifier"`
}

// RelationshipInput identifies a digital twin relationship.
type RelationshipInput struct {
	DigitalTwinRelationshipID string `json:"digital_twin_relationship_id" jsonschema:"The digital twin relationship identifier"`
}

// DomainInput identifies an IoT domain.
type DomainInput struct {
	IotDomainID string `json:"iot_domain_id" jsonschema:"The IoT domain identifier"`
}

// DomainGroupInput identifies an IoT domain group.
type DomainGroupInput struct {
	IotDomainGroupID string `json:"iot_domain_group_id" jsonschema:"The IoT domain group identifier"`
}

// WorkRequestInput identifies an asynchronous work request.
type WorkRequestInput struct {
	WorkRequestID string `json:"work_request_id" jsonschema:"The work request identifier"`
}

// CompartmentInput identifies the compartment that scopes a list operation.
type CompartmentInput struct {
	CompartmentID string `json:"compartment_id" jsonschema:"The compartment identifier"`
}

// addTool registers one pass-through tool. Every tool shares the same
// contract: obtain the cached client handle, issue exactly one remote call,
// return the payload as JSON text. On any failure, whether client
// acquisition or the remote call, exactly one log entry is emitted with the
// tool name and the offending identifier, and the error is returned to the
// caller unmodified. No retries, no fallbacks, no partial results.
func addTool[In any](s *Server, name, desc string, ident func(In) string, call func(context.Context, iot.API, In) (any, error)) error {
	schema, err := jsonschema.For[In](nil)
	if err != nil {
		return fmt.Errorf("schema for %s: %w", name, err)
	}

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        name,
		Description: desc,
		InputSchema: schema,
	}, func(ctx context.Context, _ *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
		id := ident(in)

		ctx, span := s.tracer.Start(ctx, name,
			trace.WithAttributes(attribute.String("oci.resource_id", id)))
		defer span.End()

		api, err := s.clients.Client(s.profile)
		if err == nil {
			var out any
			out, err = call(ctx, api, in)
			if err == nil {
				span.SetStatus(codes.Ok, "")
				return jsonResult(out), nil, nil
			}
		}

		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.logger.Error("tool call failed", "tool", name, "id", id, "error", err)
		return nil, nil, err
	})

	return nil
}

// registerTools registers the full pass-through tool surface plus the
// health check.
func (s *Server) registerTools() error {
	if err := addTool(s, "get_digital_twin_adapter",
		"Retrieves a specific digital twin adapter by its identifier.",
		func(in AdapterInput) string { return in.DigitalTwinAdapterID },
		func(ctx context.Context, api iot.API, in AdapterInput) (any, error) {
			return api.GetDigitalTwinAdapter(ctx, in.DigitalTwinAdapterID)
		}); err != nil {
		return err
	}

	if err := addTool(s, "get_digital_twin_instance",
		"Retrieves a specific digital twin instance by its identifier.",
		func(in InstanceInput) string { return in.DigitalTwinInstanceID },
		func(ctx context.Context, api iot.API, in InstanceInput) (any, error) {
			return api.GetDigitalTwinInstance(ctx, in.DigitalTwinInstanceID)
		}); err != nil {
		return err
	}

	if err := addTool(s, "get_digital_twin_instance_content",
		"Retrieves the content of a specific digital twin instance by its identifier.",
		func(in InstanceInput) string { return in.DigitalTwinInstanceID },
		func(ctx context.Context, api iot.API, in InstanceInput) (any, error) {
			return api.GetDigitalTwinInstanceContent(ctx, in.DigitalTwinInstanceID)
		}); err != nil {
		return err
	}

	if err := addTool(s, "get_digital_twin_model",
		"Retrieves a specific digital twin model by its identifier.",
		func(in ModelInput) string { return in.DigitalTwinModelID },
		func(ctx context.Context, api iot.API, in ModelInput) (any, error) {
			return api.GetDigitalTwinModel(ctx, in.DigitalTwinModelID)
		}); err != nil {
		return err
	}

	if err := addTool(s, "get_digital_twin_model_spec",
		"Retrieves the specification of a specific digital twin model by its identifier.",
		func(in ModelInput) string { return in.DigitalTwinModelID },
		func(ctx context.Context, api iot.API, in ModelInput) (any, error) {
			return api.GetDigitalTwinModelSpec(ctx, in.DigitalTwinModelID)
		}); err != nil {
		return err
	}

	if err := addTool(s, "get_digital_twin_relationship",
		"Retrieves a specific digital twin relationship by its identifier.",
		func(in RelationshipInput) string { return in.DigitalTwinRelationshipID },
		func(ctx context.Context, api iot.API, in RelationshipInput) (any, error) {
			return api.GetDigitalTwinRelationship(ctx, in.DigitalTwinRelationshipID)
		}); err != nil {
		return err
	}

	if err := addTool(s, "get_iot_domain",
		"Retrieves a specific IoT domain by its identifier.",
		func(in DomainInput) string { return in.IotDomainID },
		func(ctx context.Context, api iot.API, in DomainInput) (any, error) {
			return api.GetIotDomain(ctx, in.IotDomainID)
		}); err != nil {
		return err
	}

	if err := addTool(s, "get_iot_domain_group",
		"Retrieves a specific IoT domain group by its identifier.",
		func(in DomainGroupInput) string { return in.IotDomainGroupID },
		func(ctx context.Context, api iot.API, in DomainGroupInput) (any, error) {
			return api.GetIotDomainGroup(ctx, in.IotDomainGroupID)
		}); err != nil {
		return err
	}

	if err := addTool(s, "get_work_request",
		"Retrieves a specific work request by its identifier.",
		func(in WorkRequestInput) string { return in.WorkRequestID },
		func(ctx context.Context, api iot.API, in WorkRequestInput) (any, error) {
			return api.GetWorkRequest(ctx, in.WorkRequestID)
		}); err != nil {
		return err
	}

	if err := addTool(s, "list_digital_twin_adapters",
		"Lists digital twin adapters in a specified IoT domain.",
		func(in DomainInput) string { return in.IotDomainID },
		func(ctx context.Context, api iot.API, in DomainInput) (any, error) {
			return api.ListDigitalTwinAdapters(ctx, in.IotDomainID)
		}); err != nil {
		return err
	}

	if err := addTool(s, "list_digital_twin_models",
		"Lists digital twin models in a specified IoT domain.",
		func(in DomainInput) string { return in.IotDomainID },
		func(ctx context.Context, api iot.API, in DomainInput) (any, error) {
			return api.ListDigitalTwinModels(ctx, in.IotDomainID)
		}); err != nil {
		return err
	}

	if err := addTool(s, "list_digital_twin_instances",
		"Lists digital twin instances in a specified IoT domain.",
		func(in DomainInput) string { return in.IotDomainID },
		func(ctx context.Context, api iot.API, in DomainInput) (any, error) {
			return api.ListDigitalTwinInstances(ctx, in.IotDomainID)
		}); err != nil {
		return err
	}

	if err := addTool(s, "list_digital_twin_relationships",
		"Lists digital twin relationships in a specified IoT domain.",
		func(in DomainInput) string { return in.IotDomainID },
		func(ctx context.Context, api iot.API, in DomainInput) (any, error) {
			return api.ListDigitalTwinRelationships(ctx, in.IotDomainID)
		}); err != nil {
		return err
	}

	if err := addTool(s, "list_iot_domain_groups",
		"Lists IoT domain groups in a specified compartment.",
		func(in CompartmentInput) string { return in.CompartmentID },
		func(ctx context.Context, api iot.API, in CompartmentInput) (any, error) {
			return api.ListIotDomainGroups(ctx, in.CompartmentID)
		}); err != nil {
		return err
	}

	if err := addTool(s, "list_iot_domains",
		"Lists IoT domains in a specified compartment.",
		func(in CompartmentInput) string { return in.CompartmentID },
		func(ctx context.Context, api iot.API, in CompartmentInput) (any, error) {
			return api.ListIotDomains(ctx, in.CompartmentID)
		}); err != nil {
		return err
	}

	if err := addTool(s, "list_work_request_errors",
		"Lists errors for a specific work request.",
		func(in WorkRequestInput) string { return in.WorkRequestID },
		func(ctx context.Context, api iot.API, in WorkRequestInput) (any, error) {
			return api.ListWorkRequestErrors(ctx, in.WorkRequestID)
		}); err != nil {
		return err
	}

	if err := addTool(s, "list_work_request_logs",
		"Lists logs for a specific work request.",
		func(in WorkRequestInput) string { return in.WorkRequestID },
		func(ctx context.Context, api iot.API, in WorkRequestInput) (any, error) {
			return api.ListWorkRequestLogs(ctx, in.WorkRequestID)
		}); err != nil {
		return err
	}

	if err := addTool(s, "list_work_requests",
		"Lists work requests in a specified compartment.",
		func(in CompartmentInput) string { return in.CompartmentID },
		func(ctx context.Context, api iot.API, in CompartmentInput) (any, error) {
			return api.ListWorkRequests(ctx, in.CompartmentID)
		}); err != nil {
		return err
	}

	return s.registerHealthCheck()
}
