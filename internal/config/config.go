// Package config loads skillmap settings from an optional config file,
// SKILLMAP_* environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "SKILLMAP"

// Config aggregates application configuration values.
type Config struct {
	DB        string          `mapstructure:"db"`
	Log       LogConfig       `mapstructure:"log"`
	Graph     GraphConfig     `mapstructure:"graph"`
	Recommend RecommendConfig `mapstructure:"recommend"`
	Ledger    LedgerConfig    `mapstructure:"ledger"`
	Neo4j     Neo4jConfig     `mapstructure:"neo4j"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level         string `mapstructure:"level"`
	Format        string `mapstructure:"format"` // text|json
	IncludeCaller bool   `mapstructure:"include_caller"`
}

// GraphConfig selects the skill dataset and how strictly it is built.
type GraphConfig struct {
	Strict     bool   `mapstructure:"strict"`
	SkillsFile string `mapstructure:"skills_file"`
}

// RecommendConfig tunes the recommendation service.
type RecommendConfig struct {
	MaxResults int    `mapstructure:"max_results"`
	Reasoner   string `mapstructure:"reasoner"` // template|llm
}

// LedgerConfig controls starter learner seeding.
type LedgerConfig struct {
	// ExpandSteps is how far starters' mastered sets reach from their root skill.
	ExpandSteps int `mapstructure:"expand_steps"`
}

// Neo4jConfig describes the graph database used by `graph export`.
type Neo4jConfig struct {
	URI            string `mapstructure:"uri"`
	Database       string `mapstructure:"database"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
}

const (
	ReasonerTemplate = "template"
	ReasonerLLM      = "llm"
)

var defaults = map[string]any{
	"db":                    "",
	"log.level":             "warn",
	"log.format":            "text",
	"log.include_caller":    false,
	"graph.strict":          false,
	"graph.skills_file":     "",
	"recommend.max_results": 10,
	"recommend.reasoner":    ReasonerTemplate,
	"ledger.expand_steps":   2,
	"neo4j.uri":             "",
	"neo4j.database":        "",
	"neo4j.username":        "",
	"neo4j.password":        "",
	"neo4j.max_connections": 10,
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	cfg, _ := load(newViper())
	return cfg
}

// Load reads configuration. An explicit path must exist; otherwise
// skillmap.{yaml,toml,json} is looked up in the user config dir and the
// working directory, and a missing file is not an error.
func Load(path string) (Config, error) {
	v := newViper()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	} else {
		v.SetConfigName("skillmap")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "skillmap"))
		}
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg, err := load(v)
	if err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// Validate checks values that cannot be corrected silently.
func (c Config) Validate() error {
	var errs []error
	if c.Recommend.MaxResults <= 0 {
		errs = append(errs, fmt.Errorf("recommend.max_results must be positive, got %d", c.Recommend.MaxResults))
	}
	switch c.Recommend.Reasoner {
	case ReasonerTemplate, ReasonerLLM:
	default:
		errs = append(errs, fmt.Errorf("recommend.reasoner must be %q or %q, got %q", ReasonerTemplate, ReasonerLLM, c.Recommend.Reasoner))
	}
	if c.Ledger.ExpandSteps < 0 {
		errs = append(errs, fmt.Errorf("ledger.expand_steps must not be negative, got %d", c.Ledger.ExpandSteps))
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	return errors.Join(errs...)
}
