package config

import (
	"fmt"
	"strings"

	"github.com/scalerapps/scalerui/internal/messages"
)

// Overwrite policies accepted by install.overwrite.
const (
	OverwritePrompt = "prompt"
	OverwriteAlways = "always"
	OverwriteNever  = "never"
)

var validOverwritePolicies = map[string]struct{}{
	"":              {},
	OverwritePrompt: {},
	OverwriteAlways: {},
	OverwriteNever:  {},
}

// Validate ensures the config values are usable.
func (c *Config) Validate(path string) error {
	overwrite := strings.ToLower(strings.TrimSpace(c.Install.Overwrite))
	if _, ok := validOverwritePolicies[overwrite]; !ok {
		return fmt.Errorf(messages.ConfigOverwriteInvalidFmt, path, c.Install.Overwrite)
	}
	if c.Install.Version != "" && strings.TrimSpace(c.Install.Version) == "" {
		return fmt.Errorf(messages.ConfigVersionEmptyFmt, path)
	}
	return nil
}
