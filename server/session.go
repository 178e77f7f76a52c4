package server

import (
	"bufio"
	"errors"
	"net"
	"time"

	"fibd/compute"
	"fibd/internal/metrics"
	"fibd/util"
)

// ── Read outcomes ────────────────────────────────────────────────────
//
// A session's read step classifies its outcome into distinct kinds
// instead of leaving callers to sort error types: a timed-out read and
// a departed peer both end the session, a malformed line does not, and
// the two must never be confused.

type lineKind int

const (
	lineRead lineKind = iota
	lineTimedOut
	linePeerClosed
	lineFailed
)

type lineEvent struct {
	kind lineKind
	text string
	err  error
}

// Session owns one accepted connection end-to-end: it runs the
// read/parse/compute/respond loop until a terminal condition and then
// releases the connection.  No two sessions ever share a connection.
type Session struct {
	id   uint64
	conn net.Conn
	svc  compute.Service
	idle time.Duration
	log  *util.Logger
	mets *metrics.Collector

	in  *bufio.Scanner
	out *bufio.Writer
}

func newSession(id uint64, conn net.Conn, svc compute.Service, idle time.Duration,
	log *util.Logger, mets *metrics.Collector) *Session {
	return &Session{
		id:   id,
		conn: conn,
		svc:  svc,
		idle: idle,
		log:  log,
		mets: mets,
		in:   bufio.NewScanner(conn),
		out:  bufio.NewWriter(conn),
	}
}

// Run drives the session until it closes.  The connection is released
// on every exit path.
func (s *Session) Run() {
	defer s.conn.Close()

	buf := util.GetLineBuf()
	defer util.PutLineBuf(buf)
	s.in.Buffer(*buf, util.LineBufSize)

	for {
		ev := s.readLine()
		switch ev.kind {
		case lineTimedOut:
			s.log.Info("closing: idle for %v", s.idle)
			s.mets.SessionTimedOut()
			return
		case linePeerClosed:
			s.log.Verbose("closing: client disconnected")
			return
		case lineFailed:
			s.log.Warn("closing: read failed: %v", ev.err)
			return
		}

		if ev.text == ExitToken {
			if err := writeLine(s.out, Farewell); err != nil {
				s.log.Warn("farewell write failed: %v", err)
			}
			s.log.Verbose("closing: client requested exit")
			return
		}

		if err := s.process(ev.text); err != nil {
			s.log.Warn("closing: write failed: %v", err)
			return
		}
	}
}

// readLine performs one blocking line read under the idle deadline.
func (s *Session) readLine() lineEvent {
	if err := s.conn.SetReadDeadline(time.Now().Add(s.idle)); err != nil {
		return lineEvent{kind: lineFailed, err: err}
	}

	if s.in.Scan() {
		return lineEvent{kind: lineRead, text: s.in.Text()}
	}

	err := s.in.Err()
	switch {
	case err == nil:
		// Clean EOF: the client closed its end.
		return lineEvent{kind: linePeerClosed}
	case isTimeout(err):
		return lineEvent{kind: lineTimedOut, err: err}
	case util.IsClosedErr(err):
		return lineEvent{kind: linePeerClosed, err: err}
	default:
		return lineEvent{kind: lineFailed, err: err}
	}
}

// process answers one non-exit request line.  Malformed and
// out-of-domain input are recoverable: the error is reported on the
// wire and the session keeps reading.  Only a failed write is terminal.
func (s *Session) process(line string) error {
	n, ok := parseIndex(line)
	if !ok {
		s.log.Verbose("malformed request %q", line)
		s.mets.MalformedRequest()
		return writeLine(s.out, formatError(line))
	}

	val, err := s.svc.Compute(n)
	if err != nil {
		// Out-of-domain indexes read the same as malformed input on
		// the wire; the distinction only matters in the logs.
		s.log.Verbose("rejected index %d: %v", n, err)
		s.mets.MalformedRequest()
		return writeLine(s.out, formatError(line))
	}

	s.mets.RequestServed()
	return writeLine(s.out, val.String())
}

func isTimeout(err error) bool {
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}
