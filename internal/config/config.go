// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"strings"

	"github.com/easyrx/rxmvvm/internal/scan"
)

// Route behaviours accepted by defaultRouteBehavior.
const (
	RouteAsk      = "ask"
	RouteNone     = "none"
	RouteBuiltin  = "builtin"
	RouteExternal = "external"
)

// RouteBehaviors returns every accepted route behaviour.
func RouteBehaviors() []string {
	return []string{RouteAsk, RouteNone, RouteBuiltin, RouteExternal}
}

// ScanConfig controls project-wide file scans.
type ScanConfig struct {
	// Exclude lists doublestar patterns pruned from every scan.
	// Env: RXMVVM_SCAN_EXCLUDE (comma separated)
	Exclude []string `mapstructure:"exclude" yaml:"exclude,omitempty"`

	// MaxResults caps name-conflict scans.
	MaxResults int `mapstructure:"maxResults" yaml:"maxResults,omitempty"`

	// LifecycleMaxResults caps lifecycle candidate scans.
	LifecycleMaxResults int `mapstructure:"lifecycleMaxResults" yaml:"lifecycleMaxResults,omitempty"`
}

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: true. Override with --timestamps flag.
	Timestamps *bool `mapstructure:"timestamps" yaml:"timestamps,omitempty"`
}

// Config represents the rxmvvm configuration, loaded from
// ~/.rxmvvm/config.yaml and RXMVVM_* environment variables.
type Config struct {
	// GlobalDuplicateCheckEnabled turns on the project-wide name conflict scan.
	GlobalDuplicateCheckEnabled bool `mapstructure:"globalDuplicateCheckEnabled" yaml:"globalDuplicateCheckEnabled"`

	// GlobalDuplicateCheckRoutesOnly restricts global checking to lifecycle
	// files, skipping the page and view-model conflict scan.
	GlobalDuplicateCheckRoutesOnly bool `mapstructure:"globalDuplicateCheckRoutesOnly" yaml:"globalDuplicateCheckRoutesOnly"`

	// DefaultRouteBehavior applies when generate is run without --route.
	DefaultRouteBehavior string `mapstructure:"defaultRouteBehavior" yaml:"defaultRouteBehavior"`

	// DefaultExternalRoutePath is the lifecycle file used by the external
	// behaviour when --external is not given.
	DefaultExternalRoutePath string `mapstructure:"defaultExternalRoutePath" yaml:"defaultExternalRoutePath,omitempty"`

	// AutoUpdateTemplatesOnUpgrade backs up and refreshes the template cache
	// the first time a new version runs.
	AutoUpdateTemplatesOnUpgrade bool `mapstructure:"autoUpdateTemplatesOnUpgrade" yaml:"autoUpdateTemplatesOnUpgrade"`

	Scan ScanConfig `mapstructure:"scan" yaml:"scan,omitempty"`

	Log LogConfig `mapstructure:"log" yaml:"log,omitempty"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `rxmvvm config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		GlobalDuplicateCheckEnabled:    true,
		GlobalDuplicateCheckRoutesOnly: false,
		DefaultRouteBehavior:           RouteAsk,
		AutoUpdateTemplatesOnUpgrade:   true,
		Scan: ScanConfig{
			Exclude:             append([]string(nil), scan.DefaultExclude...),
			MaxResults:          scan.DefaultMaxResults,
			LifecycleMaxResults: scan.DefaultLifecycleMaxResults,
		},
	}
}

// Validate checks values that the loader cannot type-check.
func (c *Config) Validate() error {
	valid := false
	for _, b := range RouteBehaviors() {
		if c.DefaultRouteBehavior == b {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("defaultRouteBehavior %q must be one of %s",
			c.DefaultRouteBehavior, strings.Join(RouteBehaviors(), ", "))
	}
	if c.Scan.MaxResults <= 0 {
		return fmt.Errorf("scan.maxResults must be positive, got %d", c.Scan.MaxResults)
	}
	if c.Scan.LifecycleMaxResults <= 0 {
		return fmt.Errorf("scan.lifecycleMaxResults must be positive, got %d", c.Scan.LifecycleMaxResults)
	}
	return nil
}
