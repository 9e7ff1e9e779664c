package cmd

import (
	"testing"

	"github.com/oracle-samples/oci-iot-mcp-server/internal/version"
)

func TestRootCmd_Properties(t *testing.T) {
	if rootCmd.Use != version.Service {
		t.Errorf("rootCmd.Use = %q, want %q", rootCmd.Use, version.Service)
	}
	if rootCmd.Short == "" {
		t.Error("expected non-empty Short description")
	}
	if rootCmd.Long == "" {
		t.Error("expected non-empty Long description")
	}
	if rootCmd.RunE == nil {
		t.Error("expected bare invocation to serve, RunE is nil")
	}
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	for _, name := range []string{"profile", "transport", "listen"} {
		if rootCmd.PersistentFlags().Lookup(name) == nil {
			t.Errorf("missing persistent flag %q", name)
		}
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	want := map[string]bool{"serve": false, "version": false}
	for _, sub := range rootCmd.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}
