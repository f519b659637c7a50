// Package config loads cadence settings with Viper.
//
// Configuration priority (highest to lowest):
//  1. Environment variables (CADENCE_ prefix, dots become underscores:
//     CADENCE_STORE_BACKEND sets store.backend)
//  2. The file named by CADENCE_CONFIG_PATH
//  3. cadence.yaml in the user config directory
//  4. ./cadence.yaml
//  5. [DefaultConfig] defaults
package config

import (
	"fmt"
	"time"

	"github.com/aretw0/cadence/internal/logging"
	"github.com/aretw0/cadence/pkg/aggregate"
	"github.com/aretw0/cadence/pkg/domain"
)

// Store backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
)

// Config is the root configuration container.
type Config struct {
	Log       LogConfig       `mapstructure:"log"`
	Steps     StepsConfig     `mapstructure:"steps"`
	Data      DataConfig      `mapstructure:"data"`
	Aggregate AggregateConfig `mapstructure:"aggregate"`
	Store     StoreConfig     `mapstructure:"store"`
	Server    ServerConfig    `mapstructure:"server"`
	Output    OutputConfig    `mapstructure:"output"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `mapstructure:"level"`
	// Format is text or json.
	Format string `mapstructure:"format"`
}

// StepsConfig locates the wizard step catalog.
type StepsConfig struct {
	// Dir holds one markdown document per step. Empty uses the built-in
	// schedule creator steps.
	Dir string `mapstructure:"dir"`
}

// DataConfig locates the backend fixture.
type DataConfig struct {
	// Fixture is a YAML file with object metadata, session records and the
	// schedule model. Empty starts with an empty in-memory backend.
	Fixture string `mapstructure:"fixture"`
}

// AggregateConfig tunes the record aggregator.
type AggregateConfig struct {
	// RelationPolicy is abort or skip.
	RelationPolicy string `mapstructure:"relation_policy"`
	// Timezone is an IANA name; bucket keys and "today" are read in it.
	Timezone string `mapstructure:"timezone"`
	// DateLiteral is the record window, e.g. THIS_WEEK.
	DateLiteral string `mapstructure:"date_literal"`
}

// StoreConfig selects where wizard cursors and saved schedules live.
type StoreConfig struct {
	Backend string        `mapstructure:"backend"`
	FileDir string        `mapstructure:"file_dir"`
	Redis   RedisConfig   `mapstructure:"redis"`
	LockTTL time.Duration `mapstructure:"lock_ttl"`
	// MaskFields are regular expressions; matching fields of saved
	// schedules and participants are masked before persisting.
	MaskFields []string `mapstructure:"mask_fields"`
}

// RedisConfig contains the Redis connection settings.
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Prefix   string        `mapstructure:"prefix"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// ServerConfig contains the HTTP and MCP listener settings.
type ServerConfig struct {
	Addr    string `mapstructure:"addr"`
	Metrics bool   `mapstructure:"metrics"`
	MCPPort int    `mapstructure:"mcp_port"`
}

// OutputConfig controls terminal rendering.
type OutputConfig struct {
	Markdown bool `mapstructure:"markdown"`
	Banner   bool `mapstructure:"banner"`
}

// DefaultConfig returns settings that work without any file.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Aggregate: AggregateConfig{
			RelationPolicy: string(aggregate.RelationAbort),
			Timezone:       "Local",
			DateLiteral:    domain.DateLiteralThisWeek,
		},
		Store: StoreConfig{
			Backend: BackendMemory,
			FileDir: ".cadence/sessions",
			Redis: RedisConfig{
				Addr:   "localhost:6379",
				Prefix: "cadence:",
			},
			LockTTL: 30 * time.Second,
		},
		Server: ServerConfig{
			Addr:    ":8080",
			Metrics: true,
			MCPPort: 8081,
		},
		Output: OutputConfig{
			Markdown: true,
			Banner:   true,
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	switch aggregate.RelationPolicy(c.Aggregate.RelationPolicy) {
	case aggregate.RelationAbort, aggregate.RelationSkip:
	default:
		return fmt.Errorf("invalid relation policy %q (want abort or skip)", c.Aggregate.RelationPolicy)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	switch c.Store.Backend {
	case BackendMemory, BackendFile, BackendRedis:
	default:
		return fmt.Errorf("invalid store backend %q (want memory, file or redis)", c.Store.Backend)
	}
	return nil
}

// Location resolves Aggregate.Timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Aggregate.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Aggregate.Timezone, err)
	}
	return loc, nil
}

// AggregatorOptions turns the aggregate settings into aggregator options.
func (c *Config) AggregatorOptions() ([]aggregate.Option, error) {
	loc, err := c.Location()
	if err != nil {
		return nil, err
	}
	return []aggregate.Option{
		aggregate.WithLocation(loc),
		aggregate.WithRelationPolicy(aggregate.RelationPolicy(c.Aggregate.RelationPolicy)),
	}, nil
}
