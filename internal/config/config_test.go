package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves into a fresh directory so no stray todo.toml is picked up.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testChdir(t, dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	t.Setenv("HOME", dir)
	return dir
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	assert.Equal(t, StorageJSON, cfg.Storage)
	assert.Equal(t, ".", cfg.DataDir)
	assert.Equal(t, "todos", cfg.Key)
	assert.Equal(t, "classic", cfg.Theme)
	assert.True(t, cfg.Samples)
	assert.NoError(t, cfg.Validate())
}

func TestLoadPriority(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "todo.toml"), []byte(`
storage = "sqlite"
theme = "neon"
key = "from-file"
log_level = "debug"
`), 0o644))
	t.Setenv("TODO_THEME", "mono")
	t.Setenv("TODO_NO_SAMPLES", "true")

	fs := pflag.NewFlagSet("todo", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--key", "from-flag"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)

	assert.Equal(t, "todo.toml", cfg.Source)
	assert.Equal(t, StorageSQLite, cfg.Storage) // file
	assert.Equal(t, "mono", cfg.Theme)          // env beats file
	assert.Equal(t, "from-flag", cfg.Key)       // flag beats file
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Samples)
}

func TestLoadExplicitPathMissing(t *testing.T) {
	chdir(t)
	_, err := Load("nope.toml", nil)
	assert.Error(t, err)
}

func TestLoadBadEnvBool(t *testing.T) {
	chdir(t)
	t.Setenv("TODO_NO_SAMPLES", "sometimes")
	_, err := Load("", nil)
	assert.ErrorContains(t, err, "TODO_NO_SAMPLES")
}

func TestNoSamplesFlag(t *testing.T) {
	chdir(t)
	fs := pflag.NewFlagSet("todo", pflag.ContinueOnError)
	RegisterFlags(fs)
	require.NoError(t, fs.Parse([]string{"--no-samples"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)
	assert.False(t, cfg.Samples)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"storage", func(c *Config) { c.Storage = "redis" }, "storage"},
		{"theme", func(c *Config) { c.Theme = "solarized" }, "theme"},
		{"key", func(c *Config) { c.Key = "a/b" }, "key"},
		{"level", func(c *Config) { c.LogLevel = "loud" }, "log_level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			setDefaults(cfg)
			tt.mutate(cfg)
			assert.ErrorContains(t, cfg.Validate(), tt.want)
		})
	}
}

func TestValidateNormalizesStorage(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Storage = "SQLite"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, StorageSQLite, cfg.Storage)
}

func TestValidateNormalizesTheme(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.Theme = "Neon"
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "neon", cfg.Theme)
}

func TestLogPath(t *testing.T) {
	cfg := &Config{DataDir: "/data", LogFile: "todo.log"}
	assert.Equal(t, filepath.Join("/data", "todo.log"), cfg.LogPath())
	cfg.LogFile = "/var/log/todo.log"
	assert.Equal(t, "/var/log/todo.log", cfg.LogPath())
}

// testChdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func testChdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
