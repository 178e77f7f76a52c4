package config

import (
	"testing"
	"time"
)

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("FIBD_HOST", "fib.example.com")
	t.Setenv("FIBD_PORT", "4040")
	t.Setenv("FIBD_LISTEN", "true")
	t.Setenv("FIBD_TIMEOUT", "7")
	t.Setenv("FIBD_GRACE", "3")
	t.Setenv("FIBD_MAX_INDEX", "500")
	t.Setenv("FIBD_VERBOSE", "2")

	cfg := &Config{}
	LoadFromEnv(cfg)

	if cfg.Host != "fib.example.com" {
		t.Errorf("Host = %q", cfg.Host)
	}
	if cfg.Port != 4040 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if !cfg.Listen {
		t.Error("Listen should be set")
	}
	if cfg.IdleTimeout != 7*time.Second {
		t.Errorf("IdleTimeout = %v", cfg.IdleTimeout)
	}
	if cfg.GracePeriod != 3*time.Second {
		t.Errorf("GracePeriod = %v", cfg.GracePeriod)
	}
	if cfg.MaxIndex != 500 {
		t.Errorf("MaxIndex = %d", cfg.MaxIndex)
	}
	if cfg.Verbose != 2 {
		t.Errorf("Verbose = %d", cfg.Verbose)
	}
}

func TestLoadFromEnv_EmptyLeavesDefaults(t *testing.T) {
	t.Setenv("FIBD_PORT", "")
	t.Setenv("FIBD_TIMEOUT", "")

	cfg := &Config{Port: DefaultPort, IdleTimeout: DefaultIdleTimeout}
	LoadFromEnv(cfg)

	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want default %d", cfg.Port, DefaultPort)
	}
	if cfg.IdleTimeout != DefaultIdleTimeout {
		t.Errorf("IdleTimeout = %v, want default %v", cfg.IdleTimeout, DefaultIdleTimeout)
	}
}

func TestLoadFromEnv_BoolForms(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes", "Yes"} {
		t.Setenv("FIBD_NO_DNS", v)
		cfg := &Config{}
		LoadFromEnv(cfg)
		if !cfg.NoDNS {
			t.Errorf("FIBD_NO_DNS=%q should enable NoDNS", v)
		}
	}

	for _, v := range []string{"0", "false", "no", "junk"} {
		t.Setenv("FIBD_NO_DNS", v)
		cfg := &Config{}
		LoadFromEnv(cfg)
		if cfg.NoDNS {
			t.Errorf("FIBD_NO_DNS=%q should not enable NoDNS", v)
		}
	}
}

func TestLoadFromEnv_MalformedIntIgnored(t *testing.T) {
	t.Setenv("FIBD_PORT", "not-a-number")

	cfg := &Config{Port: DefaultPort}
	LoadFromEnv(cfg)

	if cfg.Port != DefaultPort {
		t.Errorf("malformed FIBD_PORT should be ignored, got %d", cfg.Port)
	}
}
