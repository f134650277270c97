package cliconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every config location at empty temp dirs and returns the
// global config dir and a work dir.
func isolate(t *testing.T) (globalDir, workDir string) {
	t.Helper()
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	for _, name := range []string{
		"APPUTIL_CONFIG", "APPUTIL_STORAGE", "APPUTIL_DATA_DIR", "APPUTIL_LOG_LEVEL",
		"APPUTIL_LOG_FORMAT", "APPUTIL_LOG_FILE", "APPUTIL_COUNTRY_CODE", "APPUTIL_JSON",
	} {
		t.Setenv(name, "")
		require.NoError(t, os.Unsetenv(name))
	}

	globalDir = filepath.Join(configHome, GlobalConfigDir)
	require.NoError(t, os.MkdirAll(globalDir, 0755))
	return globalDir, t.TempDir()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
}

func TestNewDefault(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/data")
	cfg := NewDefault()

	assert.Equal(t, "file", cfg.Storage)
	assert.Equal(t, filepath.Join("/data", "apputil"), cfg.DataDir)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "7", cfg.CountryCode)
	for _, key := range Keys {
		assert.Equal(t, SourceDefault, cfg.Sources[key], key)
	}
	assert.NoError(t, cfg.Validate())
}

func TestLoadAll_Precedence(t *testing.T) {
	globalDir, workDir := isolate(t)

	writeFile(t, filepath.Join(globalDir, "config.yaml"), "storage: memory\nlogLevel: info\ncountryCode: \"1\"\njson: true\n")
	writeFile(t, filepath.Join(workDir, ".apputilrc.yaml"), "logLevel: debug\njson: false\n")
	t.Setenv("APPUTIL_COUNTRY_CODE", "44")

	cfg, err := LoadAll(LoadOptions{WorkDir: workDir})
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Storage)
	assert.Equal(t, SourceGlobal, cfg.Sources["storage"])

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, SourceLocal, cfg.Sources["logLevel"])

	assert.False(t, cfg.JSON, "explicit false in local config overrides global true")
	assert.Equal(t, SourceLocal, cfg.Sources["json"])

	assert.Equal(t, "44", cfg.CountryCode)
	assert.Equal(t, SourceEnv, cfg.Sources["countryCode"])

	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, SourceDefault, cfg.Sources["logFormat"])
}

func TestLoadAll_ExplicitConfigFile(t *testing.T) {
	_, workDir := isolate(t)

	writeFile(t, filepath.Join(workDir, ".apputilrc.yaml"), "storage: memory\n")
	explicit := filepath.Join(t.TempDir(), "custom.yml")
	writeFile(t, explicit, "logFormat: json\n")

	cfg, err := LoadAll(LoadOptions{ConfigFile: explicit, WorkDir: workDir})
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, SourceFile, cfg.Sources["logFormat"])
	assert.Equal(t, "file", cfg.Storage, "local config is skipped when a file is given")
	assert.Equal(t, explicit, cfg.ConfigFile)
}

func TestLoadAll_ConfigFileFromEnv(t *testing.T) {
	_, workDir := isolate(t)

	explicit := filepath.Join(t.TempDir(), "env.yaml")
	writeFile(t, explicit, "dataDir: /srv/apputil\n")
	t.Setenv("APPUTIL_CONFIG", explicit)

	cfg, err := LoadAll(LoadOptions{WorkDir: workDir})
	require.NoError(t, err)
	assert.Equal(t, "/srv/apputil", cfg.DataDir)
	assert.Equal(t, SourceFile, cfg.Sources["dataDir"])
}

func TestLoadAll_Errors(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		_, workDir := isolate(t)
		_, err := LoadAll(LoadOptions{ConfigFile: filepath.Join(workDir, "nope.yaml"), WorkDir: workDir})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config file not found")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		globalDir, workDir := isolate(t)
		path := filepath.Join(globalDir, "config.yaml")
		writeFile(t, path, "storage: [unclosed\n")

		_, err := LoadAll(LoadOptions{WorkDir: workDir})
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, path, cfgErr.Path)
	})

	t.Run("invalid env bool", func(t *testing.T) {
		_, workDir := isolate(t)
		t.Setenv("APPUTIL_JSON", "maybe")

		_, err := LoadAll(LoadOptions{WorkDir: workDir})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "environment")
	})
}

func TestLoadEnvConfig(t *testing.T) {
	isolate(t)
	t.Setenv("APPUTIL_STORAGE", "memory")
	t.Setenv("APPUTIL_DATA_DIR", "/tmp/apputil")
	t.Setenv("APPUTIL_LOG_FILE", "/tmp/apputil.log")
	t.Setenv("APPUTIL_JSON", "true")
	t.Setenv("APPUTIL_LOG_LEVEL", "")

	cfg := NewDefault()
	require.NoError(t, LoadEnvConfig(cfg))

	assert.Equal(t, "memory", cfg.Storage)
	assert.Equal(t, "/tmp/apputil", cfg.DataDir)
	assert.Equal(t, "/tmp/apputil.log", cfg.LogFile)
	assert.True(t, cfg.JSON)
	assert.Equal(t, SourceEnv, cfg.Sources["json"])
	assert.Equal(t, DefaultLogLevel, cfg.LogLevel, "empty variables are ignored")
	assert.Equal(t, SourceDefault, cfg.Sources["logLevel"])
}

func TestMergeConfig(t *testing.T) {
	t.Run("merges non-empty values", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, &CLIConfig{Storage: "memory"}, SourceFlag)

		assert.Equal(t, "memory", target.Storage)
		assert.Equal(t, SourceFlag, target.Sources["storage"])
		assert.Equal(t, SourceDefault, target.Sources["logLevel"])
	})

	t.Run("boolean false with SetFields", func(t *testing.T) {
		target := NewDefault()
		target.JSON = true

		MergeConfig(target, &CLIConfig{SetFields: map[string]bool{"json": true}}, SourceLocal)
		assert.False(t, target.JSON)
	})

	t.Run("boolean false without SetFields", func(t *testing.T) {
		target := NewDefault()
		target.JSON = true

		MergeConfig(target, &CLIConfig{}, SourceLocal)
		assert.True(t, target.JSON)
	})

	t.Run("nil source is no-op", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, nil, SourceLocal)
		assert.Equal(t, DefaultStorage, target.Storage)
	})
}

func TestCLIConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CLIConfig)
		wantErr string
	}{
		{"defaults", func(*CLIConfig) {}, ""},
		{"memory storage", func(c *CLIConfig) { c.Storage = "memory" }, ""},
		{"uppercase level", func(c *CLIConfig) { c.LogLevel = "DEBUG" }, ""},
		{"unknown storage", func(c *CLIConfig) { c.Storage = "redis" }, `storage "redis"`},
		{"unknown level", func(c *CLIConfig) { c.LogLevel = "trace" }, `logLevel "trace"`},
		{"unknown format", func(c *CLIConfig) { c.LogFormat = "xml" }, `logFormat "xml"`},
		{"country letters", func(c *CLIConfig) { c.CountryCode = "us" }, `countryCode "us"`},
		{"country too long", func(c *CLIConfig) { c.CountryCode = "1234" }, `countryCode "1234"`},
		{"country empty", func(c *CLIConfig) { c.CountryCode = "" }, `countryCode ""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefault()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCLIConfig_Value(t *testing.T) {
	cfg := &CLIConfig{Storage: "memory", JSON: true, CountryCode: "7"}
	assert.Equal(t, "memory", cfg.Value("storage"))
	assert.Equal(t, "true", cfg.Value("json"))
	assert.Equal(t, "7", cfg.Value("countryCode"))
	assert.Equal(t, "", cfg.Value("unknown"))
}
