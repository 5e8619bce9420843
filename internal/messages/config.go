package messages

// Config messages for configuration loading and validation.
const (
	// ConfigMissingFileFmt formats missing config file errors.
	ConfigMissingFileFmt      = "missing config file %s: %w"
	ConfigReadFileFmt         = "failed to read config file %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "config %s contains unrecognized keys: %v"
	ConfigOverwriteInvalidFmt = "%s: install.overwrite must be one of prompt, always, never (got %q)"
	ConfigVersionEmptyFmt     = "%s: install.version must not be blank when set"
	ConfigLoadedDebug         = "loaded config"
)
