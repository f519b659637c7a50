package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "abort", cfg.Aggregate.RelationPolicy)
	assert.Equal(t, "THIS_WEEK", cfg.Aggregate.DateLiteral)
	assert.Equal(t, BackendMemory, cfg.Store.Backend)
	assert.Equal(t, 30*time.Second, cfg.Store.LockTTL)
	assert.NoError(t, cfg.Validate())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: "invalid log level"},
		{name: "bad policy", mutate: func(c *Config) { c.Aggregate.RelationPolicy = "ignore" }, wantErr: "invalid relation policy"},
		{name: "bad timezone", mutate: func(c *Config) { c.Aggregate.Timezone = "Mars/Olympus" }, wantErr: "invalid timezone"},
		{name: "bad backend", mutate: func(c *Config) { c.Store.Backend = "s3" }, wantErr: "invalid store backend"},
		{name: "skip policy", mutate: func(c *Config) { c.Aggregate.RelationPolicy = "skip" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestConfig_AggregatorOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Aggregate.Timezone = "UTC"

	opts, err := cfg.AggregatorOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 2)
}

func TestLoader_LoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "cadence.yaml")

	configContent := `
log:
  level: debug
aggregate:
  relation_policy: skip
  timezone: UTC
store:
  backend: redis
  redis:
    addr: redis:6379
    ttl: 30m
  mask_fields:
    - "(?i)email"
steps:
  dir: ./steps
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	loader := NewLoader()
	cfg, err := loader.LoadFromFile(configPath)

	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "skip", cfg.Aggregate.RelationPolicy)
	assert.Equal(t, BackendRedis, cfg.Store.Backend)
	assert.Equal(t, "redis:6379", cfg.Store.Redis.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Store.Redis.TTL)
	assert.Equal(t, "cadence:", cfg.Store.Redis.Prefix, "unset keys keep defaults")
	assert.Equal(t, "./steps", cfg.Steps.Dir)
	assert.Equal(t, []string{"(?i)email"}, cfg.Store.MaskFields)
	assert.Equal(t, configPath, loader.ConfigFileUsed())
}

func TestLoader_LoadFromFile_Errors(t *testing.T) {
	_, err := NewLoader().LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "error reading config file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  backend: s3\n"), 0644))
	_, err = NewLoader().LoadFromFile(path)
	assert.ErrorContains(t, err, "invalid store backend")
}

func TestLoader_Load_WithEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("CADENCE_STORE_BACKEND", "file")
	t.Setenv("CADENCE_AGGREGATE_TIMEZONE", "UTC")
	t.Setenv("CADENCE_SERVER_METRICS", "false")

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, BackendFile, cfg.Store.Backend)
	assert.Equal(t, "UTC", cfg.Aggregate.Timezone)
	assert.False(t, cfg.Server.Metrics)
}

func TestLoader_Load_ConfigPathEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9999\"\n"), 0644))
	t.Setenv("CADENCE_CONFIG_PATH", path)

	cfg, err := NewLoader().Load()

	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
}
