package iot

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

const (
	// EnvConfigProfile selects the OCI config profile when no explicit
	// profile is configured.
	EnvConfigProfile = "OCI_CONFIG_PROFILE"

	// EnvConfigFile overrides the OCI config file location.
	EnvConfigFile = "OCI_CONFIG_FILE"

	// DefaultProfile is the profile used when neither an explicit profile
	// nor OCI_CONFIG_PROFILE is set.
	DefaultProfile = "DEFAULT"
)

// Factory builds and memoizes a single authenticated IoT client for the
// process lifetime. The first successful construction wins: later calls get
// the cached handle back regardless of the profile they ask for. Handles are
// stateless and interchangeable, so the cached one is never replaced or torn
// down before process exit.
type Factory struct {
	logger     *slog.Logger
	configFile string

	mu      sync.Mutex
	api     API
	profile string

	// dial is swapped out in tests to avoid touching the real SDK.
	dial func(configFile, profile string) (API, error)
}

// NewFactory creates a Factory. configFile may be empty, in which case the
// OCI_CONFIG_FILE environment variable and then ~/.oci/config are used.
func NewFactory(configFile string, logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Factory{
		logger:     logger,
		configFile: configFile,
		dial:       dialSDK,
	}
}

// Client returns the process-wide IoT client, creating it on first use.
//
// The profile argument only matters for the call that actually constructs
// the client; once a handle exists it is returned unconditionally, so a
// caller requesting a different profile still gets the first profile's
// handle. Construction failures are logged with the resolved profile and
// returned unchanged, and leave the factory uninitialized so a later call
// can retry.
func (f *Factory) Client(profile string) (API, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.api != nil {
		return f.api, nil
	}

	name := ResolveProfile(profile)
	f.logger.Info("creating IoT client", "profile", name)

	api, err := f.dial(f.resolveConfigFile(), name)
	if err != nil {
		f.logger.Error("creating IoT client failed", "profile", name, "error", err)
		return nil, err
	}

	f.api = api
	f.profile = name
	f.logger.Info("IoT client created", "profile", name)
	return api, nil
}

// Profile reports the profile the cached client was built with, or the empty
// string if no client has been constructed yet.
func (f *Factory) Profile() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.profile
}

// ResolveProfile applies the profile fallback chain:
// explicit argument, then OCI_CONFIG_PROFILE, then DefaultProfile.
func ResolveProfile(profile string) string {
	if profile != "" {
		return profile
	}
	if env := os.Getenv(EnvConfigProfile); env != "" {
		return env
	}
	return DefaultProfile
}

func (f *Factory) resolveConfigFile() string {
	if f.configFile != "" {
		return f.configFile
	}
	if env := os.Getenv(EnvConfigFile); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Let the SDK report the missing file with its own error.
		return ""
	}
	return filepath.Join(home, ".oci", "config")
}
