// Package config handles configuration loading and defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/idilsaglam/todo/internal/store"
	"github.com/idilsaglam/todo/internal/ui"
	"github.com/spf13/pflag"
)

// Storage backends.
const (
	StorageJSON   = "json"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

// Default values.
const (
	DefaultStorage  = StorageJSON
	DefaultDataDir  = "."
	DefaultTheme    = "classic"
	DefaultLogLevel = "info"
	DefaultLogFile  = "todo.log"
)

// Config holds the full configuration for todo.
type Config struct {
	// Storage
	Storage string `toml:"storage"` // json, sqlite, memory
	DataDir string `toml:"data_dir"`
	Key     string `toml:"key"`

	// Presentation
	Theme string `toml:"theme"` // classic, neon, mono
	Group bool   `toml:"group"` // `ls` grouped by pending/done

	// Logging. LogFile is used while the TUI owns the terminal; relative
	// paths resolve against DataDir.
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`

	// Seed the sample items when the stored list is empty.
	Samples bool `toml:"samples"`

	// File the config was read from, if any (computed)
	Source string `toml:"-"`
}

// Load loads configuration from multiple sources in priority order:
// 1. Defaults
// 2. Config file (TOML): explicit path, else todo.toml / .todo.toml in the
//    working directory, else <user config dir>/todo/config.toml
// 3. Environment variables
// 4. Flags that were set on fs
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}

	// 1. Set defaults
	setDefaults(cfg)

	// 2. Config file
	file, err := findConfigFile(path)
	if err != nil {
		return nil, err
	}
	if file != "" {
		if _, err := toml.DecodeFile(file, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", file, err)
		}
		cfg.Source = file
	}

	// 3. Override from environment
	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	// 4. Flags override everything
	if fs != nil {
		applyFlags(cfg, fs)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	cfg.Storage = DefaultStorage
	cfg.DataDir = DefaultDataDir
	cfg.Key = store.DefaultKey
	cfg.Theme = DefaultTheme
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFile = DefaultLogFile
	cfg.Samples = true
}

// findConfigFile returns path if given (it must exist), else the first
// default location that exists, else "".
func findConfigFile(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config file: %w", err)
		}
		return path, nil
	}
	names := []string{"todo.toml", ".todo.toml"}
	if dir, err := os.UserConfigDir(); err == nil {
		names = append(names, filepath.Join(dir, "todo", "config.toml"))
	}
	for _, name := range names {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}
	return "", nil
}

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TODO_STORAGE"); v != "" {
		cfg.Storage = v
	}
	if v := os.Getenv("TODO_DATA_DIR"); v != "" {
		cfg.DataDir = v
	}
	if v := os.Getenv("TODO_KEY"); v != "" {
		cfg.Key = v
	}
	if v := os.Getenv("TODO_THEME"); v != "" {
		cfg.Theme = v
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TODO_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("TODO_NO_SAMPLES"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TODO_NO_SAMPLES: %w", err)
		}
		cfg.Samples = !b
	}
	return nil
}

// Flag names shared with the command line.
const (
	FlagStorage   = "storage"
	FlagDataDir   = "data-dir"
	FlagKey       = "key"
	FlagTheme     = "theme"
	FlagLogLevel  = "log-level"
	FlagLogFile   = "log-file"
	FlagNoSamples = "no-samples"
)

// RegisterFlags adds the config flags to fs. Defaults are left empty so only
// flags the user set override file and environment values.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagStorage, "", "storage backend: json, sqlite or memory")
	fs.String(FlagDataDir, "", "directory holding the data files")
	fs.String(FlagKey, "", "storage key the list is saved under")
	fs.String(FlagTheme, "", "color theme: classic, neon or mono")
	fs.String(FlagLogLevel, "", "log level: debug, info, warn, error")
	fs.String(FlagLogFile, "", "log file used by the interactive view")
	fs.Bool(FlagNoSamples, false, "do not seed sample items into an empty list")
}

func applyFlags(cfg *Config, fs *pflag.FlagSet) {
	str := func(name string, dst *string) {
		if f := fs.Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
	str(FlagStorage, &cfg.Storage)
	str(FlagDataDir, &cfg.DataDir)
	str(FlagKey, &cfg.Key)
	str(FlagTheme, &cfg.Theme)
	str(FlagLogLevel, &cfg.LogLevel)
	str(FlagLogFile, &cfg.LogFile)
	if f := fs.Lookup(FlagNoSamples); f != nil && f.Changed {
		if b, err := strconv.ParseBool(f.Value.String()); err == nil {
			cfg.Samples = !b
		}
	}
}

// Validate checks enumerations and the storage key.
func (c *Config) Validate() error {
	var errs []error
	switch strings.ToLower(c.Storage) {
	case StorageJSON, StorageSQLite, StorageMemory:
		c.Storage = strings.ToLower(c.Storage)
	default:
		errs = append(errs, fmt.Errorf("storage: unknown backend %q", c.Storage))
	}
	if ui.ValidTheme(c.Theme) {
		c.Theme = strings.ToLower(c.Theme)
	} else {
		errs = append(errs, fmt.Errorf("theme: unknown theme %q", c.Theme))
	}
	if err := store.ValidKey(c.Key); err != nil {
		errs = append(errs, fmt.Errorf("key: %w", err))
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

// LogPath resolves LogFile against DataDir.
func (c *Config) LogPath() string {
	if c.LogFile == "" || filepath.IsAbs(c.LogFile) {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, c.LogFile)
}
