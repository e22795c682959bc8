package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/decred/dcrd/dcrutil/v4"
	"gopkg.in/yaml.v3"

	"github.com/vctt94/pokereval/pkg/logging"
	"github.com/vctt94/pokereval/pkg/utils"
)

// Config is the pokereval configuration. Values come from
// <datadir>/<appname>.yaml and are then overridden by command line flags.
type Config struct {
	DataDir string `yaml:"-"`

	LogFile     string `yaml:"logfile"`
	DebugLevel  string `yaml:"debuglevel"`
	MaxLogFiles int    `yaml:"maxlogfiles"`

	// Monte-Carlo defaults
	Trials  int   `yaml:"trials"`
	Workers int   `yaml:"workers"`
	Seed    int64 `yaml:"seed"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		DebugLevel:  "info",
		MaxLogFiles: 10,
		Trials:      1000,
		Workers:     runtime.NumCPU(),
	}
}

// LoadConfig loads <datadir>/<appName>.yaml on top of the defaults. An empty
// datadir selects the platform application data directory. A missing file
// is not an error.
func LoadConfig(appName, datadir string) (*Config, error) {
	if datadir == "" {
		datadir = dcrutil.AppDataDir(appName, false)
	}
	if err := utils.EnsureDataDirExists(datadir); err != nil {
		return nil, err
	}

	cfg := Default()
	cfg.DataDir = datadir

	path := filepath.Join(datadir, appName+".yaml")
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(datadir, "logs", appName+".log")
	}
	return cfg, cfg.Validate()
}

// SetConfigValues applies flag overrides keyed by their yaml names.
func (c *Config) SetConfigValues(values map[string]interface{}) error {
	for key, value := range values {
		var ok bool
		switch key {
		case "logfile":
			c.LogFile, ok = value.(string)
		case "debuglevel":
			c.DebugLevel, ok = value.(string)
		case "maxlogfiles":
			c.MaxLogFiles, ok = value.(int)
		case "trials":
			c.Trials, ok = value.(int)
		case "workers":
			c.Workers, ok = value.(int)
		case "seed":
			c.Seed, ok = value.(int64)
		default:
			return fmt.Errorf("unknown config key %q", key)
		}
		if !ok {
			return fmt.Errorf("invalid value %v for config key %q", value, key)
		}
	}
	return c.Validate()
}

// Validate checks the numeric settings.
func (c *Config) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("trials must be positive, got %d", c.Trials)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	return nil
}

// LogConfig returns the logging settings.
func (c *Config) LogConfig() logging.LogConfig {
	return logging.LogConfig{
		LogFile:     c.LogFile,
		DebugLevel:  c.DebugLevel,
		MaxLogFiles: c.MaxLogFiles,
	}
}
