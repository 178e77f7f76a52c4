// Package server implements the fibd listener and the per-connection
// session state machine.
package server

import (
	"bufio"
	"strconv"
)

// ── Wire protocol ────────────────────────────────────────────────────
//
// One request line, one response line, strictly in turn.  Lines are
// UTF-8 text terminated by '\n'; a trailing '\r' from telnet-style
// clients is stripped.

const (
	// ExitToken is the reserved request that asks for a graceful close.
	ExitToken = "exit"

	// Farewell is the response to ExitToken, sent just before closing.
	Farewell = "good bye!"

	formatErrPrefix = "Error format: "
)

// formatError builds the response for input that could not be used,
// echoing the raw input verbatim.
func formatError(raw string) string {
	return formatErrPrefix + raw
}

// parseIndex attempts to read a request line as a decimal index.
func parseIndex(line string) (int, bool) {
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, false
	}
	return n, true
}

// writeLine writes one response line and flushes it immediately; no
// buffered data may outlive an exchange.
func writeLine(w *bufio.Writer, line string) error {
	if _, err := w.WriteString(line); err != nil {
		return err
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	return w.Flush()
}
