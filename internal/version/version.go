// Package version carries the service identity constants shared by the
// health check, the CLI, and the SDK user agent.
package version

const (
	// Service is the MCP server name advertised to clients and reported
	// by the health check.
	Service = "oci-iot-mcp-server"

	// UserAgent is the client identifier fragment appended to the OCI SDK
	// user agent, derived from the service name.
	UserAgent = "oci-iot-mcp"
)

// Version is the release version. Overridable at build time via
// -ldflags "-X .../internal/version.Version=...".
var Version = "1.0.0"
