package config

import (
	"fmt"
	"strings"

	"github.com/centralb/bookshop-go/identity"
)

// validLogLevels lists the accepted log level strings.
var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// ValidateConfig checks that all configuration values are within acceptable
// ranges and returns the first error encountered, or nil if valid.
func ValidateConfig(cfg Config) error {
	if cfg.DataDir == "" {
		return ErrEmptyDataDir
	}

	if cfg.Network != "mainnet" && cfg.Network != "testnet" && cfg.Network != "regtest" {
		return ErrInvalidNetwork
	}

	// Admin may be left unset in the file; the shop requires it at
	// construction time. If set, it must parse.
	if cfg.Admin != "" {
		if _, err := identity.FromString(cfg.Admin); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidAdmin, err)
		}
	}

	if cfg.MinCommission > 100 {
		return ErrInvalidMinCommission
	}

	if !validLogLevels[strings.ToLower(cfg.LogLevel)] {
		return ErrInvalidLogLevel
	}

	return nil
}
