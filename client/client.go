// Package client implements the connect mode: a thin terminal loop
// speaking the one-line-request, one-line-response protocol.
package client

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net"
	"os"

	"golang.org/x/term"

	"fibd/config"
	errs "fibd/internal/errors"
	"fibd/internal/retry"
	"fibd/server"
	"fibd/util"
)

// Client drives one conversation with a fibd server.
type Client struct {
	cfg *config.Config
	log *util.Logger

	// in/out default to stdin/stdout; tests substitute buffers.
	in  io.Reader
	out io.Writer
}

// New returns a Client reading requests from stdin and printing
// responses to stdout.
func New(cfg *config.Config, logger *util.Logger) *Client {
	return &Client{cfg: cfg, log: logger, in: os.Stdin, out: os.Stdout}
}

// Run connects and converses until the input is exhausted, the user
// asks to exit, or the server closes the connection.
func (c *Client) Run(ctx context.Context) error {
	addr, err := util.ResolveAddr(c.cfg.Host, c.cfg.Port, c.cfg.NoDNS)
	if err != nil {
		return err
	}

	c.log.Verbose("connecting to %s (tcp)", addr)

	conn, err := c.dial(ctx, addr)
	if err != nil {
		return errs.Wrap("dial", addr, err)
	}
	defer conn.Close()

	c.log.Verbose("connected to %s", conn.RemoteAddr())

	// Unblock pending reads when the context expires (Ctrl-C). The
	// watcher is released once the conversation ends.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	defer stop()

	return c.converse(conn)
}

// dial connects with a short backoff so a server still starting up is
// not a hard failure.
func (c *Client) dial(ctx context.Context, addr string) (net.Conn, error) {
	var conn net.Conn

	err := retry.DefaultBackoff().Do(ctx, func(attempt int) error {
		d := net.Dialer{Timeout: config.DefaultDialTimeout}
		var derr error
		conn, derr = d.DialContext(ctx, "tcp", addr)
		if derr != nil {
			c.log.Warn("connect attempt %d: %v", attempt, derr)
		}
		return derr
	})
	return conn, err
}

// converse runs the strictly synchronous exchange loop: one request
// line out, one response line in.
func (c *Client) converse(conn net.Conn) error {
	prompt := c.interactive()
	input := bufio.NewScanner(c.in)
	replies := bufio.NewScanner(conn)
	w := bufio.NewWriter(conn)

	for {
		if prompt {
			fmt.Fprint(c.out, "> ")
		}

		line, more := c.nextRequest(input)
		if !more && line == "" {
			return nil
		}

		if err := send(w, line); err != nil {
			if util.IsClosedErr(err) {
				c.log.Info("server closed the connection")
				return nil
			}
			return fmt.Errorf("send: %w", err)
		}

		if !replies.Scan() {
			if err := replies.Err(); err != nil && !util.IsClosedErr(err) {
				return fmt.Errorf("read response: %w", err)
			}
			c.log.Info("server closed the connection")
			return nil
		}
		fmt.Fprintln(c.out, replies.Text())

		if line == server.ExitToken || !more {
			return nil
		}
	}
}

// nextRequest reads one request from the input.  Exhausted input turns
// into a final termination token so the server side closes gracefully.
func (c *Client) nextRequest(input *bufio.Scanner) (line string, more bool) {
	if input.Scan() {
		return input.Text(), true
	}
	if err := input.Err(); err != nil {
		c.log.Warn("read input: %v", err)
		return "", false
	}
	return server.ExitToken, false
}

// interactive reports whether requests come from a terminal, in which
// case a prompt is printed before each one.
func (c *Client) interactive() bool {
	f, ok := c.in.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func send(w *bufio.Writer, line string) error {
	if _, err := w.WriteString(line); err != nil {
		return err
	}
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	return w.Flush()
}
