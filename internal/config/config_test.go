package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad_NoFile(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLWithExpansion(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("TEST_HM_PORT", "9191")
	p := writeFile(t, dir, "hm.yaml", `
server:
  addr: ":${TEST_HM_PORT}"
logging:
  level: debug
  format: console
shell:
  theme: dark
  tabs: [calculator, quiz]
defaults:
  activity: moderate
  macros:
    protein_pct: 20
    carbs_pct: 50
    fats_pct: 30
session:
  ttl: 2h
`)

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, ":9191", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "dark", cfg.Shell.Theme)
	assert.Equal(t, []string{"calculator", "quiz"}, cfg.Shell.Tabs)
	assert.Equal(t, "moderate", cfg.Defaults.Activity)
	assert.Equal(t, 20.0, cfg.Defaults.Macros.ProteinPct)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	// untouched sections keep their defaults
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	p := writeFile(t, dir, "hm.yaml", "server:\n  addr: \":7000\"\n")
	t.Setenv("HM_ADDR", ":7777")
	t.Setenv("HM_LOG_LEVEL", "warn")
	t.Setenv("HM_THEME", "dark")
	t.Setenv("HM_METRICS_ENABLED", "false")

	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, ":7777", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "dark", cfg.Shell.Theme)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	writeFile(t, dir, ".env", "HM_THEME=dark\n")
	// godotenv sets the variable process-wide; register cleanup via Setenv.
	t.Setenv("HM_THEME", "")
	require.NoError(t, os.Unsetenv("HM_THEME"))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "dark", cfg.Shell.Theme)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.yaml", "server: [not a map\n")
	_, err = Load(bad)
	assert.Error(t, err)

	t.Setenv("HM_METRICS_ENABLED", "maybe")
	_, err = Load("")
	assert.ErrorContains(t, err, "HM_METRICS_ENABLED")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown theme", func(c *Config) { c.Shell.Theme = "neon" }, "shell.theme"},
		{"no tabs", func(c *Config) { c.Shell.Tabs = nil }, "shell.tabs"},
		{"unknown tab", func(c *Config) { c.Shell.Tabs = []string{"calculator", "chat"} }, "shell.tabs"},
		{"bad activity", func(c *Config) { c.Defaults.Activity = "couch" }, "defaults.activity"},
		{"bad macros", func(c *Config) { c.Defaults.Macros.FatsPct = 50 }, "defaults.macros"},
		{"zero ttl", func(c *Config) { c.Session.TTL = 0 }, "session.ttl"},
		{"metrics without path", func(c *Config) { c.Metrics.Path = "" }, "metrics.path"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
