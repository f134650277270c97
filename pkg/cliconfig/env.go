package cliconfig

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of every environment variable read by the CLI.
const EnvPrefix = "APPUTIL"

// envConfig mirrors CLIConfig with pointer fields, so unset variables stay
// nil and are not merged.
type envConfig struct {
	Config      *string `envconfig:"CONFIG"`
	Storage     *string `envconfig:"STORAGE"`
	DataDir     *string `envconfig:"DATA_DIR"`
	LogLevel    *string `envconfig:"LOG_LEVEL"`
	LogFormat   *string `envconfig:"LOG_FORMAT"`
	LogFile     *string `envconfig:"LOG_FILE"`
	CountryCode *string `envconfig:"COUNTRY_CODE"`
	JSON        *bool   `envconfig:"JSON"`
}

func readEnv() (*envConfig, error) {
	var env envConfig
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	return &env, nil
}

// ConfigFileFromEnv returns the value of APPUTIL_CONFIG, if set.
func ConfigFileFromEnv() (string, error) {
	env, err := readEnv()
	if err != nil {
		return "", err
	}
	return deref(env.Config), nil
}

// LoadEnvConfig applies APPUTIL_* environment variables to cfg. Only
// variables that are set and non-empty are applied.
func LoadEnvConfig(cfg *CLIConfig) error {
	env, err := readEnv()
	if err != nil {
		return err
	}

	source := &CLIConfig{
		Storage:     deref(env.Storage),
		DataDir:     deref(env.DataDir),
		LogLevel:    deref(env.LogLevel),
		LogFormat:   deref(env.LogFormat),
		LogFile:     deref(env.LogFile),
		CountryCode: deref(env.CountryCode),
		SetFields:   map[string]bool{"json": env.JSON != nil},
	}
	if env.JSON != nil {
		source.JSON = *env.JSON
	}

	MergeConfig(cfg, source, SourceEnv)
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
