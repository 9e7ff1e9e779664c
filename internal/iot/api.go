// Package iot wraps the OCI IoT control-plane SDK client behind a narrow
// facade. The server treats every resource payload as opaque: tools pass an
// identifier in and hand the service's response back unmodified, so the
// interface deals in identifiers and untyped payloads. Authentication,
// request signing, retries, and pagination all live inside the SDK.
package iot

import "context"

// API is the set of remote operations the server exposes. One method per
// tool; each issues exactly one service call. Get operations return a single
// resource object, list operations return the collection exactly as the
// service sends it.
type API interface {
	GetDigitalTwinAdapter(ctx context.Context, adapterID string) (any, error)
	GetDigitalTwinInstance(ctx context.Context, instanceID string) (any, error)
	GetDigitalTwinInstanceContent(ctx context.Context, instanceID string) (any, error)
	GetDigitalTwinModel(ctx context.Context, modelID string) (any, error)
	GetDigitalTwinModelSpec(ctx context.Context, modelID string) (any, error)
	GetDigitalTwinRelationship(ctx context.Context, relationshipID string) (any, error)
	GetIotDomain(ctx context.Context, domainID string) (any, error)
	GetIotDomainGroup(ctx context.Context, domainGroupID string) (any, error)
	GetWorkRequest(ctx context.Context, workRequestID string) (any, error)

	ListDigitalTwinAdapters(ctx context.Context, domainID string) (any, error)
	ListDigitalTwinInstances(ctx context.Context, domainID string) (any, error)
	ListDigitalTwinModels(ctx context.Context, domainID string) (any, error)
	ListDigitalTwinRelationships(ctx context.Context, domainID string) (any, error)
	ListIotDomainGroups(ctx context.Context, compartmentID string) (any, error)
	ListIotDomains(ctx context.Context, compartmentID string) (any, error)
	ListWorkRequestErrors(ctx context.Context, workRequestID string) (any, error)
	ListWorkRequestLogs(ctx context.Context, workRequestID string) (any, error)
	ListWorkRequests(ctx context.Context, compartmentID string) (any, error)
}
