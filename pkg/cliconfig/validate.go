package cliconfig

import (
	"errors"
	"fmt"
	"strings"

	"github.com/getmockd/apputil/pkg/storage"
)

// Validate checks the configuration for invalid values.
func (c *CLIConfig) Validate() error {
	var errs []error

	switch storage.Backend(c.Storage) {
	case storage.BackendMemory, storage.BackendFile:
	default:
		errs = append(errs, fmt.Errorf("storage %q must be one of memory, file", c.Storage))
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("logLevel %q must be one of debug, info, warn, error", c.LogLevel))
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logFormat %q must be one of text, json", c.LogFormat))
	}

	if !isCountryCode(c.CountryCode) {
		errs = append(errs, fmt.Errorf("countryCode %q must be 1 to 3 digits", c.CountryCode))
	}

	return errors.Join(errs...)
}

func isCountryCode(s string) bool {
	if len(s) < 1 || len(s) > 3 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
