package core

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Config holds the build configuration consulted while probing libraries
type Config struct {
	BuildSystem  BuildSystem     `yaml:"build_system"`
	Prefix       string          `yaml:"prefix"`
	Debug        bool            `yaml:"debug"`
	With         map[string]bool `yaml:"with"`
	IncludeDirs  []string        `yaml:"include_dirs"`
	LibraryDirs  []string        `yaml:"library_dirs"`
	RegistryPath string          `yaml:"registry_path"`
}

// DefaultConfig returns a default configuration
func DefaultConfig() *Config {
	return &Config{
		BuildSystem: "", // Auto-detect
		Prefix:      getDefaultPrefix(),
		Debug:       false,
		With:        make(map[string]bool),
	}
}

// LoadConfig loads configuration from file
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = filepath.Join(home, ".config", "buildcfg", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, errors.Wrap(err, "reading config")
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "parsing config")
	}
	if cfg.With == nil {
		cfg.With = make(map[string]bool)
	}
	if cfg.BuildSystem != "" {
		bs, err := ParseBuildSystem(string(cfg.BuildSystem))
		if err != nil {
			return nil, errors.Wrap(err, "parsing config")
		}
		cfg.BuildSystem = bs
	}

	return cfg, nil
}

// SaveConfig saves configuration to file
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		path = filepath.Join(home, ".config", "buildcfg", "config.yaml")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.Wrap(err, "writing config")
	}

	return nil
}

// Enabled reports whether the named library may be used.
// A non-empty WITH_<NAME> in the environment wins over the "with" map; both default to enabled.
func (c *Config) Enabled(name string) bool {
	key := strings.ToLower(name)
	if v := strings.TrimSpace(os.Getenv("WITH_" + strings.ToUpper(key))); v != "" {
		return isTrue(v)
	}
	if c == nil || c.With == nil {
		return true
	}
	enabled, ok := c.With[key]
	if !ok {
		return true
	}
	return enabled
}

func isTrue(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "0", "false", "no", "off":
		return false
	}
	return true
}

func getDefaultPrefix() string {
	if path := os.Getenv("BUILDCFG_PREFIX"); path != "" {
		return path
	}
	return ""
}
