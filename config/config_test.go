package config

import (
	"strings"
	"testing"
	"time"
)

// TestValidate covers cross-field consistency checks.
func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantSub string // substring expected in error; empty means valid
	}{
		{
			name: "valid listen",
			cfg:  Config{Listen: true, Port: 4000, IdleTimeout: time.Second},
		},
		{
			name: "valid connect",
			cfg:  Config{Host: "example.com", Port: 4000, IdleTimeout: time.Second},
		},
		{
			name:    "missing port",
			cfg:     Config{Listen: true, IdleTimeout: time.Second},
			wantSub: "hint:",
		},
		{
			name:    "port out of range",
			cfg:     Config{Listen: true, Port: 70000, IdleTimeout: time.Second},
			wantSub: "out of range",
		},
		{
			name:    "zero idle timeout",
			cfg:     Config{Listen: true, Port: 4000},
			wantSub: "idle timeout must be positive",
		},
		{
			name:    "negative idle timeout",
			cfg:     Config{Listen: true, Port: 4000, IdleTimeout: -time.Second},
			wantSub: "idle timeout must be positive",
		},
		{
			name:    "listen with host",
			cfg:     Config{Listen: true, Host: "example.com", Port: 4000, IdleTimeout: time.Second},
			wantSub: "no host argument",
		},
		{
			name:    "connect without host",
			cfg:     Config{Port: 4000, IdleTimeout: time.Second},
			wantSub: "hostname is required",
		},
		{
			name:    "negative max index",
			cfg:     Config{Listen: true, Port: 4000, IdleTimeout: time.Second, MaxIndex: -1},
			wantSub: "non-negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantSub == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q should contain %q", err.Error(), tt.wantSub)
			}
		})
	}
}

// TestParsePort covers edge-case port specs.
func TestParsePort(t *testing.T) {
	valid := map[string]int{"1": 1, "4000": 4000, "65535": 65535}
	for spec, want := range valid {
		got, err := ParsePort(spec)
		if err != nil || got != want {
			t.Errorf("ParsePort(%q) = (%d, %v), want (%d, nil)", spec, got, err, want)
		}
	}

	invalid := []string{"0", "-1", "65536", "abc", "", "80-90", "4000 "}
	for _, spec := range invalid {
		if _, err := ParsePort(spec); err == nil {
			t.Errorf("ParsePort(%q) should fail", spec)
		}
	}
}
