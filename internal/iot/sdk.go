package iot

import (
	"context"
	"fmt"

	"github.com/oracle/oci-go-sdk/v65/common"
	ociiot "github.com/oracle/oci-go-sdk/v65/iot"

	"github.com/oracle-samples/oci-iot-mcp-server/internal/version"
)

// dialSDK builds the authenticated SDK client for a profile. The
// session-token configuration provider reads the key_file and
// security_token_file entries from the profile and binds the resulting
// signer into the client; any error from missing or invalid configuration
// surfaces here unchanged.
func dialSDK(configFile, profile string) (API, error) {
	provider, err := common.ConfigurationProviderForSessionTokenWithProfile(configFile, profile, "")
	if err != nil {
		return nil, err
	}

	client, err := ociiot.NewIotClientWithConfigurationProvider(provider)
	if err != nil {
		return nil, err
	}
	client.UserAgent = fmt.Sprintf("%s %s/%s", client.UserAgent, version.UserAgent, version.Version)

	return &sdkClient{client: client}, nil
}

// sdkClient is the only place generated SDK request and response types
// appear. Each method unwraps the response down to the payload the service
// returned so callers never see transport details.
type sdkClient struct {
	client ociiot.IotClient
}

var _ API = (*sdkClient)(nil)

func (c *sdkClient) GetDigitalTwinAdapter(ctx context.Context, adapterID string) (any, error) {
	resp, err := c.client.GetDigitalTwinAdapter(ctx, ociiot.GetDigitalTwinAdapterRequest{
		DigitalTwinAdapterId: common.String(adapterID),
	})
	if err != nil {
		return nil, err
	}
	return resp.DigitalTwinAdapter, nil
}

func (c *sdkClient) GetDigitalTwinInstance(ctx context.Context, instanceID string) (any, error) {
	resp, err := c.client.GetDigitalTwinInstance(ctx, ociiot.GetDigitalTwinInstanceRequest{
		DigitalTwinInstanceId: common.String(instanceID),
	})
	if err != nil {
		return nil, err
	}
	return resp.DigitalTwinInstance, nil
}

func (c *sdkClient) GetDigitalTwinInstanceContent(ctx context.Context, instanceID string) (any, error) {
	resp, err := c.client.GetDigitalTwinInstanceContent(ctx, ociiot.GetDigitalTwinInstanceContentRequest{
		DigitalTwinInstanceId: common.String(instanceID),
	})
	if err != nil {
		return nil, err
	}
	return resp.Object, nil
}

func (c *sdkClient) GetDigitalTwinModel(ctx context.Context, modelID string) (any, error) {
	resp, err := c.client.GetDigitalTwinModel(ctx, ociiot.GetDigitalTwinModelRequest{
		DigitalTwinModelId: common.String(modelID),
	})
	if err != nil {
		return nil, err
	}
	return resp.DigitalTwinModel, nil
}

func (c *sdkClient) GetDigitalTwinModelSpec(ctx context.Context, modelID string) (any, error) {
	resp, err := c.client.GetDigitalTwinModelSpec(ctx, ociiot.GetDigitalTwinModelSpecRequest{
		DigitalTwinModelId: common.String(modelID),
	})
	if err != nil {
		return nil, err
	}
	return resp.Object, nil
}

func (c *sdkClient) GetDigitalTwinRelationship(ctx context.Context, relationshipID string) (any, error) {
	resp, err := c.client.GetDigitalTwinRelationship(ctx, ociiot.GetDigitalTwinRelationshipRequest{
		DigitalTwinRelationshipId: common.String(relationshipID),
	})
	if err != nil {
		return nil, err
	}
	return resp.DigitalTwinRelationship, nil
}

func (c *sdkClient) GetIotDomain(ctx context.Context, domainID string) (any, error) {
	resp, err := c.client.GetIotDomain(ctx, ociiot.GetIotDomainRequest{
		IotDomainId: common.String(domainID),
	})
	if err != nil {
		return nil, err
	}
	return resp.IotDomain, nil
}

func (c *sdkClient) GetIotDomainGroup(ctx context.Context, domainGroupID string) (any, error) {
	resp, err := c.client.GetIotDomainGroup(ctx, ociiot.GetIotDomainGroupRequest{
		IotDomainGroupId: common.String(domainGroupID),
	})
	if err != nil {
		return nil, err
	}
	return resp.IotDomainGroup, nil
}

func (c *sdkClient) GetWorkRequest(ctx context.Context, workRequestID string) (any, error) {
	resp, err := c.client.GetWorkRequest(ctx, ociiot.GetWorkRequestRequest{
		WorkRequestId: common.String(workRequestID),
	})
	if err != nil {
		return nil, err
	}
	return resp.WorkRequest, nil
}

func (c *sdkClient) ListDigitalTwinAdapters(ctx context.Context, domainID string) (any, error) {
	resp, err := c.client.ListDigitalTwinAdapters(ctx, ociiot.ListDigitalTwinAdaptersRequest{
		IotDomainId: common.String(domainID),
	})
	if err != nil {
		return nil, err
	}
	return resp.DigitalTwinAdapterCollection, nil
}

func (c *sdkClient) ListDigitalTwinInstances(ctx context.Context, domainID string) (any, error) {
	resp, err := c.client.ListDigitalTwinInstances(ctx, ociiot.ListDigitalTwinInstancesRequest{
		IotDomainId: common.String(domainID),
	})
	if err != nil {
		return nil, err
	}
	return resp.DigitalTwinInstanceCollection, nil
}

func (c *sdkClient) ListDigitalTwinModels(ctx context.Context, domainID string) (any, error) {
	resp, err := c.client.ListDigitalTwinModels(ctx, ociiot.ListDigitalTwinModelsRequest{
		IotDomainId: common.String(domainID),
	})
	if err != nil {
		return nil, err
	}
	return resp.DigitalTwinModelCollection, nil
}

func (c *sdkClient) ListDigitalTwinRelationships(ctx context.Context, domainID string) (any, error) {
	resp, err := c.client.ListDigitalTwinRelationships(ctx, ociiot.ListDigitalTwinRelationshipsRequest{
		IotDomainId: common.String(domainID),
	})
	if err != nil {
		return nil, err
	}
	return resp.DigitalTwinRelationshipCollection, nil
}

func (c *sdkClient) ListIotDomainGroups(ctx context.Context, compartmentID string) (any, error) {
	resp, err := c.client.ListIotDomainGroups(ctx, ociiot.ListIotDomainGroupsRequest{
		CompartmentId: common.String(compartmentID),
	})
	if err != nil {
		return nil, err
	}
	return resp.IotDomainGroupCollection, nil
}

func (c *sdkClient) ListIotDomains(ctx context.Context, compartmentID string) (any, error) {
	resp, err := c.client.ListIotDomains(ctx, ociiot.ListIotDomainsRequest{
		CompartmentId: common.String(compartmentID),
	})
	if err != nil {
		return nil, err
	}
	return resp.IotDomainCollection, nil
}

func (c *sdkClient) ListWorkRequestErrors(ctx context.Context, workRequestID string) (any, error) {
	resp, err := c.client.ListWorkRequestErrors(ctx, ociiot.ListWorkRequestErrorsRequest{
		WorkRequestId: common.String(workRequestID),
	})
	if err != nil {
		return nil, err
	}
	return resp.WorkRequestErrorCollection, nil
}

func (c *sdkClient) ListWorkRequestLogs(ctx context.Context, workRequestID string) (any, error) {
	resp, err := c.client.ListWorkRequestLogs(ctx, ociiot.ListWorkRequestLogsRequest{
		WorkRequestId: common.String(workRequestID),
	})
	if err != nil {
		return nil, err
	}
	return resp.WorkRequestLogEntryCollection, nil
}

func (c *sdkClient) ListWorkRequests(ctx context.Context, compartmentID string) (any, error) {
	resp, err := c.client.ListWorkRequests(ctx, ociiot.ListWorkRequestsRequest{
		CompartmentId: common.String(compartmentID),
	})
	if err != nil {
		return nil, err
	}
	return resp.WorkRequestSummaryCollection, nil
}
