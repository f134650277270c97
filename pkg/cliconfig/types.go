// Package cliconfig provides configuration types and loading for the apputil CLI.
//
// Configuration is layered with the following precedence (highest first):
//
//  1. Command-line flags
//  2. Environment variables (APPUTIL_* prefix)
//  3. Local config file (.apputilrc.yaml in the working directory), or the
//     file named by --config / APPUTIL_CONFIG
//  4. Global config file ($XDG_CONFIG_HOME/apputil/config.yaml)
//  5. Default values
//
// The source of every value is recorded in CLIConfig.Sources.
package cliconfig

// CLIConfig represents the complete configuration for the apputil CLI.
type CLIConfig struct {
	// Storage settings
	Storage string `yaml:"storage" json:"storage"`
	DataDir string `yaml:"dataDir" json:"dataDir"`

	// Logging settings
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`
	LogFile   string `yaml:"logFile,omitempty" json:"logFile,omitempty"`

	// Phone helpers
	CountryCode string `yaml:"countryCode" json:"countryCode"`

	// Output settings
	JSON bool `yaml:"json" json:"json"`

	// ConfigFile is the explicit config file, if any.
	ConfigFile string `yaml:"-" json:"configFile,omitempty"`

	// SetFields records which keys were present in a loaded file, so an
	// explicit false can be told apart from a missing value.
	SetFields map[string]bool `yaml:"-" json:"-"`

	// Sources tracks where each value came from.
	Sources map[string]string `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFile    = "file"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// Keys lists the configuration keys in display order.
var Keys = []string{"storage", "dataDir", "logLevel", "logFormat", "logFile", "countryCode", "json"}

// Value returns the value of key as a string, or "" for unknown keys.
func (c *CLIConfig) Value(key string) string {
	switch key {
	case "storage":
		return c.Storage
	case "dataDir":
		return c.DataDir
	case "logLevel":
		return c.LogLevel
	case "logFormat":
		return c.LogFormat
	case "logFile":
		return c.LogFile
	case "countryCode":
		return c.CountryCode
	case "json":
		if c.JSON {
			return "true"
		}
		return "false"
	}
	return ""
}
