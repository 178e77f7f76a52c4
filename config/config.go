// Package config defines the runtime configuration for fibd and
// provides helpers for parsing port arguments.
package config

import (
	"fmt"
	"strconv"
	"time"

	errs "fibd/internal/errors"
)

// Config holds every tuneable for a single fibd run.
type Config struct {
	// ── Connection ───────────────────────────────────────────────────
	Listen bool   // -l: serve instead of connect
	Host   string // connect mode: server host
	Port   int    // connect mode: destination port; listen mode: bind port
	NoDNS  bool   // -n: numeric-only, no DNS resolution

	// ── Session ──────────────────────────────────────────────────────
	IdleTimeout time.Duration // server closes a silent connection after this
	GracePeriod time.Duration // shutdown waits this long for live sessions

	// ── Compute ──────────────────────────────────────────────────────
	MaxIndex int // largest Fibonacci index the server will answer

	// ── Output ───────────────────────────────────────────────────────
	Verbose int
}

// ParsePort parses a decimal port argument and range-checks it.
func ParsePort(spec string) (int, error) {
	port, err := strconv.Atoi(spec)
	if err != nil {
		return 0, fmt.Errorf("invalid port %q", spec)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("port %d out of range 1-65535", port)
	}
	return port, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return &errs.ConfigError{
			Field: "port", Value: c.Port,
			Message: "out of range 1-65535",
			Hint:    "use -p <port>",
		}
	}

	// An idle timeout is mandatory: without one an abandoned connection
	// would pin its session goroutine forever.
	if c.IdleTimeout <= 0 {
		return &errs.ConfigError{
			Field: "timeout", Value: c.IdleTimeout,
			Message: "idle timeout must be positive",
			Hint:    "abandoned connections are reclaimed only by the idle timeout",
		}
	}

	if c.Listen {
		if c.Host != "" {
			return &errs.ConfigError{
				Field: "listen", Message: "listen mode takes no host argument",
			}
		}
	} else {
		if c.Host == "" {
			return &errs.ConfigError{
				Field: "host", Message: "hostname is required",
				Hint: "use --help for usage",
			}
		}
	}

	if c.MaxIndex < 0 {
		return &errs.ConfigError{
			Field: "max-index", Value: c.MaxIndex,
			Message: "must be non-negative",
		}
	}

	return nil
}
