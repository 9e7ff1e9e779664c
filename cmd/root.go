// Package cmd provides the CLI for the OCI IoT MCP server.
//
// Commands:
//   - serve: start the MCP server (stdio by default, streamable HTTP optional)
//   - version: print version information
//
// Running the bare binary serves on stdio, which is what MCP hosts such as
// Claude Desktop or an IDE expect to exec.
package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/oracle-samples/oci-iot-mcp-server/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   version.Service,
	Short: "MCP server for the OCI IoT domain-management service",
	Long: `oci-iot-mcp-server exposes read-only MCP tools over the OCI IoT
domain-management service: IoT domains and domain groups, digital twin
models, instances, adapters and relationships, and asynchronous work
requests.

Authentication uses session-token profiles from the OCI config file
(~/.oci/config); select a profile with --profile or OCI_CONFIG_PROFILE.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Bare invocation serves on stdio.
		return runServe(cmd)
	},
}

// Execute is the main entry point for the CLI.
func Execute() error {
	// Optional .env for local development; missing file is fine.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("profile", "", "OCI config profile (overrides config and OCI_CONFIG_PROFILE)")
	rootCmd.PersistentFlags().String("transport", "", "MCP transport: stdio or http")
	rootCmd.PersistentFlags().String("listen", "", "listen address for the http transport")
}
