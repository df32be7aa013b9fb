// Package config handles bookshop configuration loading and validation.
//
// The configuration file is a plain "key = value" file. Blank lines and
// lines starting with '#' are ignored; unknown keys are skipped so newer
// files keep loading on older builds.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultMinCommission is the platform commission floor (percent) used
// when no value is configured.
const DefaultMinCommission = 10

// Config holds all bookshop configuration values.
type Config struct {
	DataDir       string // base directory for stores and state
	Network       string // "mainnet", "testnet", or "regtest"
	Admin         string // base58 address of the shop admin
	MinCommission uint64 // minimum listing commission, percent 0-100
	LogLevel      string // "debug", "info", "warn", "error"
	LogFile       string // empty = stderr
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DataDir:       defaultDataDir(),
		Network:       "mainnet",
		MinCommission: DefaultMinCommission,
		LogLevel:      "info",
	}
}

// defaultDataDir returns {home}/.bookshop, or ".bookshop" when the home
// directory cannot be determined.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".bookshop"
	}
	return filepath.Join(home, ".bookshop")
}

// LoadConfig reads the configuration file at path, overlaying values onto
// the defaults. Returns ErrConfigNotFound if the file does not exist.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, ErrConfigNotFound
		}
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	for i, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found {
			return cfg, fmt.Errorf("%w: line %d: %q", ErrInvalidConfigLine, i+1, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch strings.ToLower(key) {
		case "datadir":
			cfg.DataDir = value
		case "network":
			cfg.Network = value
		case "admin":
			cfg.Admin = value
		case "mincommission":
			n, err := strconv.ParseUint(value, 10, 64)
			if err != nil {
				return cfg, fmt.Errorf("%w: line %d: mincommission %q", ErrInvalidConfigLine, i+1, value)
			}
			cfg.MinCommission = n
		case "loglevel":
			cfg.LogLevel = value
		case "logfile":
			cfg.LogFile = value
		default:
			// Unknown keys are ignored.
		}
	}

	return cfg, nil
}

// SaveConfig writes the configuration to path, creating parent directories
// as needed.
func SaveConfig(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	var b strings.Builder
	b.WriteString("# Bookshop configuration\n")
	fmt.Fprintf(&b, "datadir = %s\n", cfg.DataDir)
	fmt.Fprintf(&b, "network = %s\n", cfg.Network)
	fmt.Fprintf(&b, "admin = %s\n", cfg.Admin)
	fmt.Fprintf(&b, "mincommission = %d\n", cfg.MinCommission)
	fmt.Fprintf(&b, "loglevel = %s\n", cfg.LogLevel)
	fmt.Fprintf(&b, "logfile = %s\n", cfg.LogFile)

	if err := os.WriteFile(path, []byte(b.String()), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
