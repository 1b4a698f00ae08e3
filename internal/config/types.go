// SPDX-License-Identifier: MPL-2.0

package config

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// BindingPolicyLenient registers commands whose binding failed, unbound.
	// Defined locally to avoid coupling config to internal/discovery.
	BindingPolicyLenient BindingPolicy = "lenient"
	// BindingPolicyStrict drops commands whose binding failed.
	BindingPolicyStrict BindingPolicy = "strict"

	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var (
	// ErrInvalidBindingPolicy is returned when a BindingPolicy value is not recognized.
	ErrInvalidBindingPolicy = errors.New("invalid binding policy")
	// ErrInvalidLogLevel is returned when a LogLevel value is not recognized.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidConfig is the sentinel error wrapped by InvalidConfigError.
	ErrInvalidConfig = errors.New("invalid config")
)

type (
	// BindingPolicy mirrors discovery.BindingPolicy; the host converts at the boundary.
	BindingPolicy string

	// InvalidBindingPolicyError is returned when a BindingPolicy value is not recognized.
	// It wraps ErrInvalidBindingPolicy for errors.Is() compatibility.
	InvalidBindingPolicyError struct {
		Value BindingPolicy
	}

	// LogLevel is the minimum level written by the CLI logger.
	LogLevel string

	// InvalidLogLevelError is returned when a LogLevel value is not recognized.
	InvalidLogLevelError struct {
		Value LogLevel
	}

	// InvalidConfigError collects field-level validation errors.
	// It wraps ErrInvalidConfig for errors.Is() compatibility.
	InvalidConfigError struct {
		FieldErrors []error
	}

	// Config holds the application configuration.
	Config struct {
		// Scan configures the bundle scanner.
		Scan ScanConfig `json:"scan" mapstructure:"scan"`
		// Log configures logging.
		Log LogConfig `json:"log" mapstructure:"log"`
		// UI configures terminal output.
		UI UIConfig `json:"ui" mapstructure:"ui"`
		// PresetsFile is an optional TOML file of preset values.
		PresetsFile string `json:"presets_file" mapstructure:"presets_file"`
		// Presets maps group -> command -> text. Keys are case-insensitive.
		Presets map[string]map[string]string `json:"presets" mapstructure:"presets"`
	}

	// ScanConfig configures the bundle scanner.
	ScanConfig struct {
		// BindingPolicy is "lenient" (default) or "strict".
		BindingPolicy BindingPolicy `json:"binding_policy" mapstructure:"binding_policy"`
		// ClearOnRescan empties the registry before every rescan (default: true).
		ClearOnRescan bool `json:"clear_on_rescan" mapstructure:"clear_on_rescan"`
	}

	// LogConfig configures logging.
	LogConfig struct {
		Level LogLevel `json:"level" mapstructure:"level"`
	}

	// UIConfig configures terminal output.
	UIConfig struct {
		// Verbose enables debug logging and full error chains.
		Verbose bool `json:"verbose" mapstructure:"verbose"`
		// Style is the glamour style for rendered Markdown (default: "dark").
		Style string `json:"style" mapstructure:"style"`
	}
)

// String returns the string representation of the BindingPolicy.
func (p BindingPolicy) String() string { return string(p) }

// Validate returns nil for a recognized BindingPolicy.
func (p BindingPolicy) Validate() error {
	switch p {
	case BindingPolicyLenient, BindingPolicyStrict:
		return nil
	default:
		return &InvalidBindingPolicyError{Value: p}
	}
}

// Error implements the error interface.
func (e *InvalidBindingPolicyError) Error() string {
	return fmt.Sprintf("invalid binding policy %q (valid: lenient, strict)", e.Value)
}

// Unwrap returns ErrInvalidBindingPolicy for errors.Is() compatibility.
func (e *InvalidBindingPolicyError) Unwrap() error { return ErrInvalidBindingPolicy }

// String returns the string representation of the LogLevel.
func (l LogLevel) String() string { return string(l) }

// Validate returns nil for a recognized LogLevel.
func (l LogLevel) Validate() error {
	switch l {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		return nil
	default:
		return &InvalidLogLevelError{Value: l}
	}
}

// Error implements the error interface.
func (e *InvalidLogLevelError) Error() string {
	return fmt.Sprintf("invalid log level %q (valid: debug, info, warn, error)", e.Value)
}

// Unwrap returns ErrInvalidLogLevel for errors.Is() compatibility.
func (e *InvalidLogLevelError) Unwrap() error { return ErrInvalidLogLevel }

// Error implements the error interface.
func (e *InvalidConfigError) Error() string {
	msgs := make([]string, 0, len(e.FieldErrors))
	for _, err := range e.FieldErrors {
		msgs = append(msgs, err.Error())
	}
	return fmt.Sprintf("invalid config: %s", strings.Join(msgs, "; "))
}

// Unwrap returns ErrInvalidConfig and the field errors.
func (e *InvalidConfigError) Unwrap() []error {
	return append([]error{ErrInvalidConfig}, e.FieldErrors...)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Scan: ScanConfig{
			BindingPolicy: BindingPolicyLenient,
			ClearOnRescan: true,
		},
		Log: LogConfig{Level: LogLevelInfo},
		UI:  UIConfig{Style: "dark"},
	}
}

// Validate checks every field and returns an *InvalidConfigError listing all
// problems, or nil.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Scan.BindingPolicy.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("scan.binding_policy: %w", err))
	}
	if err := c.Log.Level.Validate(); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if strings.TrimSpace(c.UI.Style) == "" {
		errs = append(errs, errors.New("ui.style: must not be empty"))
	}
	if c.PresetsFile != "" && strings.TrimSpace(c.PresetsFile) == "" {
		errs = append(errs, errors.New("presets_file: must not be whitespace-only"))
	}
	if len(errs) > 0 {
		return &InvalidConfigError{FieldErrors: errs}
	}
	return nil
}
