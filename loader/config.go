package loader

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/synapsehq/extension-host/errors"
	"github.com/synapsehq/extension-host/registry"
)

// ExtensionConfig describes one extension binary to load.
type ExtensionConfig struct {
	// Path is the extension binary on disk.
	Path string `yaml:"path"`
	// Manifest optionally points to a sidecar manifest. When empty the
	// manifest is read from the binary's custom section.
	Manifest string `yaml:"manifest,omitempty"`
}

// Config is the YAML host configuration.
type Config struct {
	Extensions []ExtensionConfig `yaml:"extensions"`
	// OnDuplicate is "overwrite" (default) or "reject".
	OnDuplicate string `yaml:"on_duplicate,omitempty"`
	// SemverMatching defaults to true when omitted.
	SemverMatching *bool `yaml:"semver_matching,omitempty"`
	// HookName overrides the registry hook's name.
	HookName string `yaml:"hook_name,omitempty"`
}

// ParseConfig parses and validates YAML configuration data.
func ParseConfig(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Config("unmarshal config", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig reads and parses a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Config("read config", err)
	}
	return ParseConfig(data)
}

// Validate checks the configuration for structural problems.
func (c *Config) Validate() error {
	switch c.OnDuplicate {
	case "", "overwrite", "reject":
	default:
		return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Detail("on_duplicate must be %q or %q, got %q", "overwrite", "reject", c.OnDuplicate).
			Build()
	}
	for i, ext := range c.Extensions {
		if ext.Path == "" {
			return errors.New(errors.PhaseConfig, errors.KindInvalidInput).
				Detail("extensions[%d]: path is required", i).
				Build()
		}
	}
	return nil
}

// RegistryOptions converts the configuration to registry options.
func (c *Config) RegistryOptions() registry.Options {
	opts := registry.DefaultOptions()
	if c.OnDuplicate == "reject" {
		opts.OnDuplicate = registry.DuplicateReject
	}
	if c.SemverMatching != nil {
		opts.SemverMatching = *c.SemverMatching
	}
	return opts
}

// LoaderOptions converts the configuration to loader options.
func (c *Config) LoaderOptions() Options {
	opts := DefaultOptions()
	if c.HookName != "" {
		opts.HookName = c.HookName
	}
	return opts
}
