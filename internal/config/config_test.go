package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpuspush.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, "./files/raw.en", cfg.Dir)
	assert.Equal(t, 500*time.Millisecond, cfg.Delay)
	assert.Zero(t, cfg.Timeout)
	assert.Equal(t, []string{"run", "client/client.go", "-put", "a.txt"}, cfg.ClientArgs("a.txt"))
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load(NewViper(), "")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
dir: /data/corpus
delay: 2s
timeout: 1m
output: json
metrics_file: /tmp/corpuspush.prom
host_stats: false
client:
  command: ./bin/client
  args: []
  put_flag: --put
  output: discard
log:
  level: debug
  format: json
`)

	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)

	assert.Equal(t, "/data/corpus", cfg.Dir)
	assert.Equal(t, 2*time.Second, cfg.Delay)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "/tmp/corpuspush.prom", cfg.MetricsFile)
	assert.False(t, cfg.HostStats)
	assert.Equal(t, "./bin/client", cfg.Client.Command)
	assert.Equal(t, ClientOutputDiscard, cfg.Client.Output)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"--put", "x"}, cfg.ClientArgs("x"))
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "dir: /from/file\ndelay: 2s\n")
	t.Setenv("CORPUSPUSH_DIR", "/from/env")
	t.Setenv("CORPUSPUSH_CLIENT_PUT_FLAG", "-upload")

	cfg, err := Load(NewViper(), path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Dir)
	assert.Equal(t, 2*time.Second, cfg.Delay)
	assert.Equal(t, "-upload", cfg.Client.PutFlag)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(NewViper(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty dir", func(c *Config) { c.Dir = "" }},
		{"empty command", func(c *Config) { c.Client.Command = "" }},
		{"negative delay", func(c *Config) { c.Delay = -time.Second }},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }},
		{"bad output", func(c *Config) { c.Output = "xml" }},
		{"bad client output", func(c *Config) { c.Client.Output = "file" }},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Log.Format = "logfmt" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestClientArgsWithoutPutFlag(t *testing.T) {
	cfg := Default()
	cfg.Client.Args = nil
	cfg.Client.PutFlag = ""
	assert.Equal(t, []string{"a"}, cfg.ClientArgs("a"))
}
