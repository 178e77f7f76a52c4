// Package cmd wires up the CLI flags and dispatches to serve or
// connect mode.
package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	flag "github.com/spf13/pflag"

	"fibd/client"
	"fibd/compute"
	"fibd/config"
	"fibd/server"
	"fibd/util"
)

// version is overridable at link time:
//
//	go build -ldflags "-X fibd/cmd.version=2.0.0"
var version = "1.0.0" //nolint:gochecknoglobals

// Execute parses args and runs the appropriate fibd mode.
func Execute(ctx context.Context, args []string) error {
	cfg := &config.Config{
		Port:        config.DefaultPort,
		IdleTimeout: config.DefaultIdleTimeout,
		GracePeriod: config.DefaultGracePeriod,
		MaxIndex:    config.DefaultMaxIndex,
	}
	config.LoadFromEnv(cfg)

	fs := flag.NewFlagSet("fibd", flag.ContinueOnError)

	// ── connection ───────────────────────────────────────────────
	fs.BoolVarP(&cfg.Listen, "listen", "l", cfg.Listen, "Listen (serve) mode")
	fs.IntVarP(&cfg.Port, "port", "p", cfg.Port, "Port to serve on or connect to")
	fs.BoolVarP(&cfg.NoDNS, "no-dns", "n", cfg.NoDNS, "Numeric-only, no DNS resolution")

	var timeoutSec int
	fs.IntVarP(&timeoutSec, "timeout", "w", 0, "Idle timeout in seconds")

	// ── compute ──────────────────────────────────────────────────
	fs.IntVar(&cfg.MaxIndex, "max-index", cfg.MaxIndex, "Largest Fibonacci index to answer")

	// ── output ───────────────────────────────────────────────────
	fs.CountVarP(&cfg.Verbose, "verbose", "v", "Increase verbosity (repeatable)")

	var showVersion, showHelp, dryRun bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVar(&dryRun, "dry-run", false, "Validate configuration and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(fs) }

	// ── parse ────────────────────────────────────────────────────
	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp || len(args) == 0 {
		printUsage(fs)
		return nil
	}
	if showVersion {
		fmt.Printf("fibd %s\n", version)
		return nil
	}

	// An explicit -w always wins, even when invalid; Validate rejects
	// non-positive timeouts with a useful message.
	if fs.Changed("timeout") {
		cfg.IdleTimeout = time.Duration(timeoutSec) * time.Second
	}

	// ── positional arguments ─────────────────────────────────────
	if err := parsePositional(cfg, fs.Args()); err != nil {
		return err
	}

	// ── validate ─────────────────────────────────────────────────
	if err := cfg.Validate(); err != nil {
		return err
	}
	if dryRun {
		fmt.Println("configuration ok")
		return nil
	}

	// ── build components ─────────────────────────────────────────
	logger := util.NewLogger(cfg.Verbose)

	if cfg.Listen {
		svc := compute.NewFibonacci(cfg.MaxIndex)
		return server.New(cfg, svc, logger).ListenAndServe(ctx)
	}
	return client.New(cfg, logger).Run(ctx)
}

// ── helpers ──────────────────────────────────────────────────────────

func parsePositional(cfg *config.Config, remaining []string) error {
	if cfg.Listen {
		if len(remaining) > 0 {
			return fmt.Errorf("too many arguments for listen mode")
		}
		return nil
	}

	// Connect mode: host [port]
	switch len(remaining) {
	case 0:
		return fmt.Errorf("hostname required (use --help for usage)")
	case 1:
		cfg.Host = remaining[0]
	case 2:
		cfg.Host = remaining[0]
		port, err := config.ParsePort(remaining[1])
		if err != nil {
			return fmt.Errorf("port: %w", err)
		}
		cfg.Port = port
	default:
		return fmt.Errorf("too many arguments")
	}
	return nil
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(os.Stderr, `fibd – Fibonacci line-protocol server v%s

A concurrent TCP server answering Fibonacci queries, one line at a time.

Usage:
  fibd -l [-p <port>] [options]               Serve
  fibd [options] <host> [port]                Connect

Protocol:
  request   a decimal index, or "exit" to hang up
  response  the Fibonacci number, "Error format: <input>", or "good bye!"

Options:
`, version)
	fs.PrintDefaults()
	fmt.Fprintf(os.Stderr, `
Examples:
  fibd -l -p 4000                             Serve on port 4000
  fibd -l -w 10 -vv                           Serve, 10s idle timeout, verbose
  fibd localhost 4000                         Interactive client
  echo "10" | fibd localhost 4000             One-shot query
`)
}
