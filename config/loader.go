package config

// loader.go - configuration loading from environment variables.
//
// Precedence order (highest wins):
//   1. CLI flags  (handled by cmd/root.go)
//   2. Environment variables  (this file)
//   3. Defaults   (defaults.go)

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// ── Environment variable mapping ─────────────────────────────────────
//
// Every supported env var uses the FIBD_ prefix.  Boolean values
// accept "1", "true", "yes" (case-insensitive).

// LoadFromEnv overlays environment variables onto cfg.  Only non-empty
// env vars override the existing value.  This should be called BEFORE
// CLI flag parsing so that flags take precedence.
func LoadFromEnv(cfg *Config) {
	if v := os.Getenv("FIBD_HOST"); v != "" {
		cfg.Host = v
	}
	if v := envInt("FIBD_PORT"); v > 0 {
		cfg.Port = v
	}
	if envBool("FIBD_LISTEN") {
		cfg.Listen = true
	}
	if envBool("FIBD_NO_DNS") {
		cfg.NoDNS = true
	}
	if v := envInt("FIBD_TIMEOUT"); v > 0 {
		cfg.IdleTimeout = time.Duration(v) * time.Second
	}
	if v := envInt("FIBD_GRACE"); v > 0 {
		cfg.GracePeriod = time.Duration(v) * time.Second
	}
	if v := envInt("FIBD_MAX_INDEX"); v > 0 {
		cfg.MaxIndex = v
	}
	if v := envInt("FIBD_VERBOSE"); v > 0 {
		cfg.Verbose = v
	}
}

// ── helpers ──────────────────────────────────────────────────────────

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

func envBool(key string) bool {
	v := strings.ToLower(os.Getenv(key))
	return v == "1" || v == "true" || v == "yes"
}
