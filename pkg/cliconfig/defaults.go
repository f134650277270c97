package cliconfig

import (
	"github.com/getmockd/apputil/pkg/logging"
	"github.com/getmockd/apputil/pkg/phone"
	"github.com/getmockd/apputil/pkg/storage"
)

// Default values.
const (
	DefaultStorage   = string(storage.BackendFile)
	DefaultLogLevel  = "warn"
	DefaultLogFormat = string(logging.FormatText)
)

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		Storage:     DefaultStorage,
		DataDir:     storage.DefaultDataDir(),
		LogLevel:    DefaultLogLevel,
		LogFormat:   DefaultLogFormat,
		CountryCode: phone.DefaultCountryCode,
		Sources:     make(map[string]string),
	}

	// Mark all as default source
	for _, key := range Keys {
		cfg.Sources[key] = SourceDefault
	}

	return cfg
}
