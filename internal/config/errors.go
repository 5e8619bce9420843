package config

import (
	"errors"
	"fmt"

	"github.com/scalerapps/scalerui/internal/messages"
)

// ErrConfigValidation is a sentinel that wraps config file validation failures
// (as opposed to TOML syntax or filesystem errors).
var ErrConfigValidation = errors.New("config validation failed")

// ConfigurationError reports missing or invalid input detected before any
// filesystem mutation.
type ConfigurationError struct {
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf(messages.ConfigurationErrorFmt, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// NewConfigurationError returns a ConfigurationError carrying reason.
func NewConfigurationError(reason string) error {
	return &ConfigurationError{Reason: reason}
}

// wrapConfigurationError turns a load or validation error into a ConfigurationError.
func wrapConfigurationError(err error) error {
	if err == nil {
		return nil
	}
	return &ConfigurationError{Reason: err.Error(), Err: err}
}

// IsConfigurationError reports whether err is, or wraps, a ConfigurationError.
func IsConfigurationError(err error) bool {
	var cfgErr *ConfigurationError
	return errors.As(err, &cfgErr)
}
