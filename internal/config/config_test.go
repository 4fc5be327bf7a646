package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.Graph.Strict)
	assert.Equal(t, 10, cfg.Recommend.MaxResults)
	assert.Equal(t, ReasonerTemplate, cfg.Recommend.Reasoner)
	assert.Equal(t, 2, cfg.Ledger.ExpandSteps)
	assert.Equal(t, 10, cfg.Neo4j.MaxConnections)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skillmap.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
db: /tmp/spira.db
log:
  level: debug
  format: json
graph:
  strict: true
recommend:
  max_results: 5
  reasoner: llm
neo4j:
  uri: bolt://localhost:7687
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/spira.db", cfg.DB)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Graph.Strict)
	assert.Equal(t, 5, cfg.Recommend.MaxResults)
	assert.Equal(t, ReasonerLLM, cfg.Recommend.Reasoner)
	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4j.URI)
	assert.Equal(t, 2, cfg.Ledger.ExpandSteps, "unset keys keep defaults")
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "skillmap.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"recommend": {"max_results": 5}}`), 0o644))
	t.Setenv("SKILLMAP_RECOMMEND_MAX_RESULTS", "3")
	t.Setenv("SKILLMAP_LEDGER_EXPAND_STEPS", "0")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Recommend.MaxResults)
	assert.Equal(t, 0, cfg.Ledger.ExpandSteps)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_NoFileUsesDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ReasonerTemplate, cfg.Recommend.Reasoner)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"zero max results", func(c *Config) { c.Recommend.MaxResults = 0 }, "recommend.max_results"},
		{"unknown reasoner", func(c *Config) { c.Recommend.Reasoner = "oracle" }, "recommend.reasoner"},
		{"negative steps", func(c *Config) { c.Ledger.ExpandSteps = -1 }, "ledger.expand_steps"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
