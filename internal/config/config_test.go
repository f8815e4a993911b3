package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "data", cfg.Paths.DataDir)
	assert.True(t, cfg.Security.RateLimit.Enabled)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PARKPULSE_SERVER_PORT", "9191")
	t.Setenv("PARKPULSE_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "port out of range", key: "PARKPULSE_SERVER_PORT", value: "70000"},
		{name: "unknown log level", key: "PARKPULSE_LOGGING_LEVEL", value: "verbose"},
		{name: "unknown log output", key: "PARKPULSE_LOGGING_OUTPUT", value: "syslog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestMergeConfigs_EnvTakesPrecedence(t *testing.T) {
	fileCfg := Config{}
	fileCfg.Server.Port = 9000
	fileCfg.Logging.Level = "warn"
	fileCfg.Paths.DataDir = "file-data"

	envCfg := Config{}
	envCfg.Server.Port = 8081

	merged := mergeConfigs(fileCfg, envCfg)

	assert.Equal(t, 8081, merged.Server.Port, "env port wins")
	assert.Equal(t, "warn", merged.Logging.Level, "file fills in empty env values")
	assert.Equal(t, "file-data", merged.Paths.DataDir)
}

func TestGetPaths(t *testing.T) {
	paths, err := GetPaths()
	require.NoError(t, err)

	assert.NotEmpty(t, paths.ExecutableDir)
	assert.Contains(t, paths.DataDir, paths.ExecutableDir)
	assert.Equal(t, filepath.Join(paths.DataDir, "dinosaur.csv"), paths.GetDataFilePath("dinosaur.csv"))
}
