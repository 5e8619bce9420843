package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/scalerapps/scalerui/internal/messages"
)

// FileName is the project config file looked up in the install directory.
const FileName = ".scalerui.toml"

// Config is the parsed contents of .scalerui.toml.
type Config struct {
	Install InstallConfig `toml:"install"`
}

// InstallConfig holds defaults for the install and remove commands.
type InstallConfig struct {
	// Assets overrides the assets directory. Relative values are resolved against the install directory.
	Assets string `toml:"assets"`
	// Version is the default version selector.
	Version string `toml:"version"`
	// Catalog overrides the archive catalog directory. Relative values are resolved against the install directory.
	Catalog string `toml:"catalog"`
	// Overwrite is prompt, always, or never.
	Overwrite string `toml:"overwrite"`
}

// LoadConfig reads and validates the config file at path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, wrapConfigurationError(fmt.Errorf(messages.ConfigMissingFileFmt, path, err))
	}
	return ParseConfig(data, path)
}

// LoadOptional reads installDir/.scalerui.toml when it exists. A missing file
// yields an empty config and an empty source path.
func LoadOptional(installDir string) (*Config, string, error) {
	if strings.TrimSpace(installDir) == "" {
		return &Config{}, "", nil
	}
	path := filepath.Join(installDir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, "", nil
		}
		return nil, "", wrapConfigurationError(fmt.Errorf(messages.ConfigReadFileFmt, path, err))
	}
	cfg, err := ParseConfig(data, path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

// ParseConfig parses and validates config TOML data from a source identifier.
// data is the TOML content; source is used in error messages.
func ParseConfig(data []byte, source string) (*Config, error) {
	var cfg Config
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, wrapConfigurationError(fmt.Errorf(messages.ConfigInvalidConfigFmt, source, err))
	}
	if err := decodeStrict(data); err != nil {
		return nil, wrapConfigurationError(fmt.Errorf("%w: "+messages.ConfigUnrecognizedKeysFmt, ErrConfigValidation, source, err))
	}
	if err := cfg.Validate(source); err != nil {
		return nil, wrapConfigurationError(fmt.Errorf("%w: %w", ErrConfigValidation, err))
	}
	return &cfg, nil
}

// decodeStrict re-decodes the TOML data with strict unknown-field rejection.
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}

// AssetsDir returns the configured assets directory resolved against installDir.
func (c *Config) AssetsDir(installDir string) string {
	if c == nil {
		return ""
	}
	return resolveAgainst(installDir, c.Install.Assets)
}

// CatalogDir returns the configured catalog directory resolved against installDir.
func (c *Config) CatalogDir(installDir string) string {
	if c == nil {
		return ""
	}
	return resolveAgainst(installDir, c.Install.Catalog)
}

// VersionSelector returns the configured default version, or empty when unset.
func (c *Config) VersionSelector() string {
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.Install.Version)
}

// OverwritePolicy returns the configured overwrite policy, defaulting to prompt.
func (c *Config) OverwritePolicy() string {
	if c == nil {
		return OverwritePrompt
	}
	policy := strings.ToLower(strings.TrimSpace(c.Install.Overwrite))
	if policy == "" {
		return OverwritePrompt
	}
	return policy
}

func resolveAgainst(base string, value string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return ""
	}
	expanded, err := expandHome(trimmed)
	if err == nil {
		trimmed = expanded
	}
	if filepath.IsAbs(trimmed) || strings.TrimSpace(base) == "" {
		return filepath.Clean(trimmed)
	}
	return filepath.Join(base, trimmed)
}
