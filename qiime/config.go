package qiime

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// EnvConfigFP overrides the location of the QIIME config file.
const EnvConfigFP = "QIIME_CONFIG_FP"

// ConfigEntry is one key/value line of a .qiime_config file.
type ConfigEntry struct {
	Key   string
	Value string
}

// Config holds the entries of a .qiime_config file in file order.
type Config struct {
	Path    string
	Entries []ConfigEntry
}

// Get returns the value of key. Later lines override earlier ones.
func (c *Config) Get(key string) (string, bool) {
	for i := len(c.Entries) - 1; i >= 0; i-- {
		if c.Entries[i].Key == key {
			return c.Entries[i].Value, true
		}
	}
	return "", false
}

// LocateConfig returns $QIIME_CONFIG_FP if set, otherwise ~/.qiime_config.
// It fails with ErrNoConfig when the file does not exist.
func LocateConfig() (string, error) {
	path := os.Getenv(EnvConfigFP)
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, ".qiime_config")
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNoConfig, path)
	} else if err != nil {
		return "", err
	}
	return path, nil
}

// ReadConfig parses the config file at path.
func ReadConfig(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := ParseConfig(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c.Path = path
	return c, nil
}

// ParseConfig reads "key<whitespace>value" lines; blank lines and lines
// starting with # are skipped and a key without a value maps to "".
func ParseConfig(r io.Reader) (*Config, error) {
	c := &Config{}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, _ := strings.Cut(line, "\t")
		if strings.ContainsAny(key, " ") {
			key, value, _ = strings.Cut(line, " ")
		}
		c.Entries = append(c.Entries, ConfigEntry{
			Key:   strings.TrimSpace(key),
			Value: strings.TrimSpace(value),
		})
	}
	return c, sc.Err()
}
