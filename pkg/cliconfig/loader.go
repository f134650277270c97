package cliconfig

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// GlobalConfigDir is the directory for global config
	GlobalConfigDir = "apputil"
)

// LocalConfigFileNames are the names to search for local config (in order).
var LocalConfigFileNames = []string{".apputilrc.yaml", ".apputilrc.yml"}

// GlobalConfigFileNames are the names to search for global config (in order).
var GlobalConfigFileNames = []string{"config.yaml", "config.yml"}

// FindLocalConfig searches for .apputilrc.yaml or .apputilrc.yml in dir
// (the working directory when dir is empty). Returns "" when none exists.
func FindLocalConfig(dir string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", err
		}
		dir = cwd
	}
	for _, name := range LocalConfigFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// FindGlobalConfig returns the path to the global config file.
// Returns empty string if not found.
func FindGlobalConfig() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		//nolint:nilerr // no config dir means no global config
		return "", nil
	}
	for _, name := range GlobalConfigFileNames {
		path := filepath.Join(configDir, GlobalConfigDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

// LoadConfigFile loads a CLIConfig from a YAML file.
func LoadConfigFile(path string) (*CLIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg CLIConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Path: path, Message: err.Error()}
	}

	// Second pass to learn which keys were present.
	var present map[string]any
	if err := yaml.Unmarshal(data, &present); err != nil {
		return nil, &ConfigError{Path: path, Message: err.Error()}
	}
	cfg.SetFields = make(map[string]bool, len(present))
	for key := range present {
		cfg.SetFields[key] = true
	}

	cfg.Sources = make(map[string]string)
	return &cfg, nil
}

// ConfigError represents a configuration file error.
type ConfigError struct {
	Path    string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Path + ": " + e.Message
}

// LoadOptions controls LoadAll.
type LoadOptions struct {
	// ConfigFile replaces local config discovery when set. It must exist.
	ConfigFile string

	// WorkDir is searched for the local config. Defaults to the working
	// directory.
	WorkDir string
}

// LoadAll loads configuration from all sources except flags and merges
// them. Precedence: env > local (or explicit) config > global config > defaults
func LoadAll(opts LoadOptions) (*CLIConfig, error) {
	// Start with defaults
	cfg := NewDefault()

	// Load global config
	globalPath, err := FindGlobalConfig()
	if err != nil {
		return nil, err
	}
	if globalPath != "" {
		globalCfg, err := LoadConfigFile(globalPath)
		if err != nil {
			return nil, err
		}
		MergeConfig(cfg, globalCfg, SourceGlobal)
	}

	configFile := opts.ConfigFile
	if configFile == "" {
		if configFile, err = ConfigFileFromEnv(); err != nil {
			return nil, err
		}
	}

	if configFile != "" {
		fileCfg, err := LoadConfigFile(configFile)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("config file not found: %s", configFile)
			}
			return nil, err
		}
		MergeConfig(cfg, fileCfg, SourceFile)
		cfg.ConfigFile = configFile
	} else {
		localPath, err := FindLocalConfig(opts.WorkDir)
		if err != nil {
			return nil, err
		}
		if localPath != "" {
			localCfg, err := LoadConfigFile(localPath)
			if err != nil {
				return nil, err
			}
			MergeConfig(cfg, localCfg, SourceLocal)
		}
	}

	// Load environment variables
	if err := LoadEnvConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
