package config

import "time"

// ── Default values ───────────────────────────────────────────────────
//
// All tuneable defaults live here so they are easy to audit and reuse
// across CLI flags and environment variable loading.

const (
	// DefaultPort is the port fibd serves on and connects to when no
	// port is given.
	DefaultPort = 4000

	// DefaultIdleTimeout is how long a session's read may block before
	// the connection is presumed abandoned and closed.
	DefaultIdleTimeout = 30 * time.Second

	// DefaultMaxIndex caps the Fibonacci index a server will compute.
	// Fib(100000) is about 21000 decimal digits, still well under a
	// millisecond to compute and a single line to send.
	DefaultMaxIndex = 100000

	// DefaultDialTimeout bounds a single client connection attempt.
	DefaultDialTimeout = 10 * time.Second

	// DefaultGracePeriod is how long server shutdown waits for live
	// sessions to finish.
	DefaultGracePeriod = 5 * time.Second
)
