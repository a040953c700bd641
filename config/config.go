// Package config loads qiimewb settings from a YAML file, a local .env file
// and QIIMEWB_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/dendrascience/qiimewb/workdir"
)

// Environment variables that override the config file.
const (
	EnvBaseDir         = "QIIMEWB_BASE_DIR"
	EnvSuffixLength    = "QIIMEWB_SUFFIX_LENGTH"
	EnvExclusive       = "QIIMEWB_EXCLUSIVE"
	EnvQiimeBin        = "QIIMEWB_QIIME_BIN"
	EnvCatalog         = "QIIMEWB_CATALOG"
	EnvDownloadTimeout = "QIIMEWB_DOWNLOAD_TIMEOUT"
)

var (
	ErrInvalidSuffixLength = errors.New("suffix_length must be at least 1")
	ErrEmptyBaseDir        = errors.New("base_dir must not be empty")
)

// Config holds the workbench settings, loaded from YAML and the environment.
type Config struct {
	// Sessions are created below this directory.
	BaseDir string `yaml:"base_dir"`
	// Number of random letters in a session directory name.
	SuffixLength int `yaml:"suffix_length"`
	// Fail instead of reusing a directory whose name was drawn twice.
	Exclusive bool `yaml:"exclusive"`
	// Directory holding the QIIME scripts. Empty means $PATH.
	QiimeBinDir string `yaml:"qiime_bin_dir"`
	// Optional dataset catalog replacing the built-in one.
	Catalog string `yaml:"catalog"`
	// Upper bound for a single dataset download.
	DownloadTimeout time.Duration `yaml:"download_timeout"`
}

// NewDefaultConfig returns the settings used by the tutorial.
func NewDefaultConfig() *Config {
	return &Config{
		BaseDir:         workdir.DefaultBase,
		SuffixLength:    workdir.DefaultSuffixLength,
		DownloadTimeout: 30 * time.Minute,
	}
}

// DefaultConfigPath returns $XDG_CONFIG_HOME/qiimewb/config.yaml.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "qiimewb.yaml"
	}
	return filepath.Join(dir, "qiimewb", "config.yaml")
}

// Load reads the config file at path (DefaultConfigPath when empty), then
// .env in the working directory, then the environment. A missing config
// file or .env is not an error.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigPath()
	}

	cfg, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	// variables already present in the environment win over .env
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile parses a YAML config file on top of the defaults.
func LoadFile(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvBaseDir); ok {
		c.BaseDir = v
	}
	if v, ok := lookup(EnvSuffixLength); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSuffixLength, err)
		}
		c.SuffixLength = n
	}
	if v, ok := lookup(EnvExclusive); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvExclusive, err)
		}
		c.Exclusive = b
	}
	if v, ok := lookup(EnvQiimeBin); ok {
		c.QiimeBinDir = v
	}
	if v, ok := lookup(EnvCatalog); ok {
		c.Catalog = v
	}
	if v, ok := lookup(EnvDownloadTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDownloadTimeout, err)
		}
		c.DownloadTimeout = d
	}
	return nil
}

// Validate returns ErrEmptyBaseDir or ErrInvalidSuffixLength for settings
// the allocator cannot use.
func (c *Config) Validate() error {
	if c.BaseDir == "" {
		return ErrEmptyBaseDir
	}
	if c.SuffixLength < 1 {
		return ErrInvalidSuffixLength
	}
	return nil
}

// AllocateOptions converts the settings into workdir options.
func (c *Config) AllocateOptions() []workdir.Option {
	var opts []workdir.Option
	if c.Exclusive {
		opts = append(opts, workdir.WithExclusive())
	}
	return opts
}
